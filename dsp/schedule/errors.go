package schedule

import "errors"

// Errors returned by the schedulers.
var (
	// ErrEmptySource is returned when the grain pool holds no grains,
	// which happens only for a zero-length source buffer.
	ErrEmptySource = errors.New("schedule: empty grain pool")

	// ErrInvalidDuration is returned for a non-positive output length.
	ErrInvalidDuration = errors.New("schedule: output length must be > 0")
)
