package audio

import "errors"

var (
	errNoChannels     = errors.New("audio: buffer must have at least one channel")
	errUnevenChannels = errors.New("audio: channels must have equal length")
)
