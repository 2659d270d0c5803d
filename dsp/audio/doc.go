// Package audio defines the buffer type shared by the loop synthesis
// pipeline: per-channel float64 samples plus a sample rate.
//
// Channels are stored non-interleaved so windowing and overlap-add can
// operate on contiguous slices. All channels of a buffer have equal
// length and samples are nominally in [-1, 1] but are not clamped on
// input.
package audio
