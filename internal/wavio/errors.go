package wavio

import "errors"

var (
	// ErrUnsupportedFormat is returned for file extensions other than
	// .wav, .mp3 and .ogg.
	ErrUnsupportedFormat = errors.New("wavio: unsupported format")

	// ErrInvalidFile is returned when a stream cannot be parsed as audio.
	ErrInvalidFile = errors.New("wavio: invalid audio file")
)
