package render

import "github.com/avalancheee11/valanche-loop/dsp/core"

// Accumulator collects windowed grain contributions for one channel
// together with the envelope weight at every output position, so overlap
// energy can be normalized after all events have been applied.
type Accumulator struct {
	samples []float64
	weights []float64
}

// Positions whose accumulated envelope weight stays below this floor are
// left unscaled during Normalize; dividing by a near-zero weight would
// blow up instead of smoothing.
const weightFloor = 1e-6

// NewAccumulator returns a zeroed accumulator of the given length.
func NewAccumulator(length int) *Accumulator {
	if length < 0 {
		length = 0
	}

	return &Accumulator{
		samples: make([]float64, length),
		weights: make([]float64, length),
	}
}

// Add overlap-adds a windowed grain at the given output offset. samples
// and env must have equal length; the contribution is samples[i]*env[i]*gain
// while the weight buffer accumulates env[i] alone. Portions falling
// outside the accumulator range are trimmed.
func (a *Accumulator) Add(samples, env []float64, gain float64, offset int) {
	n := len(samples)
	if len(env) < n {
		n = len(env)
	}

	start := 0
	if offset < 0 {
		start = -offset
	}

	for i := start; i < n; i++ {
		pos := offset + i
		if pos >= len(a.samples) {
			break
		}

		w := env[i]
		a.samples[pos] += samples[i] * w * gain
		a.weights[pos] += w
	}
}

// Normalize divides every position by its accumulated envelope weight,
// treating positions below the weight floor as unit weight.
func (a *Accumulator) Normalize() {
	for i, w := range a.weights {
		if w < weightFloor {
			continue
		}

		a.samples[i] /= w
	}
}

// Reset zeroes the accumulator so it can be reused for another channel.
func (a *Accumulator) Reset() {
	core.Zero(a.samples)
	core.Zero(a.weights)
}

// Len returns the accumulator length in samples.
func (a *Accumulator) Len() int { return len(a.samples) }

// Samples returns the accumulated sample buffer without copying.
func (a *Accumulator) Samples() []float64 { return a.samples }

// Weights returns the accumulated envelope weight buffer without
// copying. Useful for asserting seam coverage in tests.
func (a *Accumulator) Weights() []float64 { return a.weights }
