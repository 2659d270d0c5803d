package synth

import "errors"

// Errors returned by Synthesize. Scheduler errors (empty source, invalid
// duration) and the level matcher's channel mismatch pass through
// unwrapped so callers can test them with errors.Is.
var (
	// ErrInvalidParameter is returned for non-numeric parameter values
	// (NaN or infinite). Merely out-of-range values are clamped instead.
	ErrInvalidParameter = errors.New("synth: invalid parameter")

	// ErrUnknownMode is returned for a Mode outside the defined set.
	ErrUnknownMode = errors.New("synth: unknown synthesis mode")
)
