// Package level measures and matches broadband signal level.
//
// The matcher rescales a generated buffer to the RMS of its reference
// while guaranteeing that no sample exceeds full scale; clipping
// prevention takes precedence over an exact loudness match.
package level

import (
	"fmt"
	"math"

	"github.com/avalancheee11/valanche-loop/dsp/audio"
)

// silenceFloor is the RMS below which a buffer is treated as silent;
// scaling silence toward a target has no meaningful result.
const silenceFloor = 1e-8

// RMS returns the root-mean-square level of samples.
func RMS(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}

	sumSq := 0.0
	for _, v := range samples {
		sumSq += v * v
	}

	return math.Sqrt(sumSq / float64(len(samples)))
}

// Peak returns the maximum absolute sample value.
func Peak(samples []float64) float64 {
	maxAbs := 0.0
	for _, v := range samples {
		if a := math.Abs(v); a > maxAbs {
			maxAbs = a
		}
	}

	return maxAbs
}

// BufferRMS returns the RMS of a multi-channel buffer, averaging channel
// energies.
func BufferRMS(buf *audio.Buffer) float64 {
	if buf == nil || buf.Len() == 0 {
		return 0
	}

	sumSq := 0.0
	for c := range buf.NumChannels() {
		r := RMS(buf.Channel(c))
		sumSq += r * r
	}

	return math.Sqrt(sumSq / float64(buf.NumChannels()))
}

// BufferPeak returns the maximum absolute sample across all channels.
func BufferPeak(buf *audio.Buffer) float64 {
	if buf == nil {
		return 0
	}

	maxAbs := 0.0
	for c := range buf.NumChannels() {
		if p := Peak(buf.Channel(c)); p > maxAbs {
			maxAbs = p
		}
	}

	return maxAbs
}

// MatchRMS rescales out in place so its RMS matches the reference,
// then scales down again if the result would exceed full scale.
// A near-silent output is left untouched. The two buffers must share a
// channel count; a mismatch indicates a pipeline bug and is fatal.
func MatchRMS(out, reference *audio.Buffer) error {
	if out == nil || reference == nil {
		return fmt.Errorf("%w: nil buffer", ErrChannelMismatch)
	}
	if out.NumChannels() != reference.NumChannels() {
		return fmt.Errorf("%w: output has %d channels, reference %d",
			ErrChannelMismatch, out.NumChannels(), reference.NumChannels())
	}

	outRMS := BufferRMS(out)
	if outRMS < silenceFloor {
		return nil
	}

	scale := BufferRMS(reference) / outRMS

	if peak := BufferPeak(out) * scale; peak > 1 {
		scale /= peak
	}

	for c := range out.NumChannels() {
		ch := out.Channel(c)
		for i := range ch {
			ch[i] *= scale
		}
	}

	return nil
}
