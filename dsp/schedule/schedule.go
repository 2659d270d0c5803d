// Package schedule lays out grain placements over the output timeline.
//
// Both modes guarantee that every output sample is covered by at least
// one tapered grain: events are spaced at most half a grain apart, and a
// pre-roll event before offset zero covers the rising edge of the first
// grain. The renderer trims event contributions that fall outside the
// output range.
package schedule

import (
	"math"
	"math/rand"

	"github.com/avalancheee11/valanche-loop/dsp/grain"
)

// Event is one scheduled grain placement, immutable once created.
//
// Offset is the output insertion offset in samples and may be negative
// for the pre-roll event; the renderer clips out-of-range samples.
// Pitch is the playback ratio (1 = unchanged). Pan is in [-1, 1] with 0
// leaving the source channel mix unchanged.
type Event struct {
	Grain  grain.Grain
	Offset int
	Gain   float64
	Pitch  float64
	Pan    float64
}

// GranularLoop schedules a deterministic cyclic walk over the pool in
// original order. Gain, pitch, and pan are left neutral, so the mode
// reproduces the source texture while extending it to outputLen samples.
func GranularLoop(pool *grain.Pool, outputLen int) ([]Event, error) {
	if outputLen <= 0 {
		return nil, ErrInvalidDuration
	}
	if pool == nil || pool.Len() == 0 {
		return nil, ErrEmptySource
	}

	hop := coverageHop(pool.Hop(), pool.GrainLength())

	events := make([]Event, 0, outputLen/hop+2)
	for i, offset := 0, -hop; offset < outputLen; i, offset = i+1, offset+hop {
		events = append(events, Event{
			Grain:  pool.At(i % pool.Len()),
			Offset: offset,
			Gain:   1,
			Pitch:  1,
			Pan:    0,
		})
	}

	return events, nil
}

// TextureLoop schedules a stochastic grain cloud: grains are drawn
// pseudo-randomly from the pool onto density-controlled slots with small
// pitch and gain variation. Identical pool, outputLen, and configuration
// (including seed) reproduce the identical schedule.
func TextureLoop(pool *grain.Pool, outputLen int, opts ...TextureOption) ([]Event, error) {
	if outputLen <= 0 {
		return nil, ErrInvalidDuration
	}
	if pool == nil || pool.Len() == 0 {
		return nil, ErrEmptySource
	}

	cfg := ApplyTextureOptions(opts...)
	rng := rand.New(rand.NewSource(cfg.Seed))

	hop := textureHop(pool.GrainLength(), cfg.Density)

	events := make([]Event, 0, outputLen/hop+2)
	prev := -1
	for offset := -hop; offset < outputLen; offset += hop {
		idx := rng.Intn(pool.Len())
		if pool.Len() > 1 && idx == prev {
			// One redraw keeps long same-grain runs unlikely without
			// biasing the distribution much.
			idx = rng.Intn(pool.Len())
		}
		prev = idx

		events = append(events, Event{
			Grain:  pool.At(idx),
			Offset: offset,
			Gain:   1 + (rng.Float64()*2-1)*cfg.GainJitter,
			Pitch:  1 + (rng.Float64()*2-1)*cfg.PitchSpread,
			Pan:    (rng.Float64()*2 - 1) * cfg.PanSpread,
		})
	}

	return events, nil
}

// coverageHop caps the scheduling stride at half a grain so adjacent Hann
// tapers always sum to unity; the pool's own hop is used when tighter.
func coverageHop(poolHop, grainLength int) int {
	maxHop := grainLength / 2
	if maxHop < 1 {
		maxHop = 1
	}

	if poolHop < maxHop {
		return poolHop
	}

	return maxHop
}

// textureHop shrinks the slot stride as density grows: density 0 places
// grains half a grain apart (minimum coverage), density 1 a quarter apart.
func textureHop(grainLength int, density float64) int {
	hop := int(math.Round(float64(grainLength) / 2 / (1 + density)))
	if hop < 1 {
		hop = 1
	}

	return hop
}
