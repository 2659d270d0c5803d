package render

import "errors"

// ErrGrainOutOfRange indicates a scheduled grain that does not fit the
// source buffer. This is an internal invariant violation (a scheduler or
// pool bug), never a recoverable input condition.
var ErrGrainOutOfRange = errors.New("render: grain out of source range")
