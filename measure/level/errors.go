package level

import "errors"

// ErrChannelMismatch indicates that a generated buffer and its reference
// disagree on channel layout. The synthesis pipeline always propagates
// the source layout, so this is an internal invariant violation.
var ErrChannelMismatch = errors.New("level: channel layout mismatch")
