// Package grain slices a source buffer into short overlapping fragments
// used as synthesis units.
//
// A Grain is a read-only view into the source buffer; it never owns
// samples. The Pool holds the ordered set of grains the schedulers draw
// from, together with the stride used to lay them out.
package grain

import (
	"fmt"
	"math"

	"github.com/avalancheee11/valanche-loop/dsp/audio"
	"github.com/avalancheee11/valanche-loop/dsp/core"
)

const (
	// MinSizeMs and MaxSizeMs bound the grain duration. Out-of-range
	// requests are clamped, not rejected.
	MinSizeMs = 20.0
	MaxSizeMs = 500.0

	// MinOverlapPct and MaxOverlapPct bound the pool overlap. Out-of-range
	// requests are clamped, not rejected.
	MinOverlapPct = 0.0
	MaxOverlapPct = 90.0
)

// Grain is a read-only view into a source buffer: a start sample index
// and a length in samples. For any grain of a valid pool,
// 0 <= Start and Start+Length <= source length.
type Grain struct {
	Start  int
	Length int
}

// Pool is the ordered set of grains extracted from one source buffer.
type Pool struct {
	grains      []Grain
	grainLength int
	hop         int
}

// BuildPool slices source into grains of grainSizeMs milliseconds spaced
// by grainLength*(1-overlapPct/100) samples. Both parameters are clamped
// to their valid ranges. A source shorter than one grain yields a single
// grain covering the whole source; an empty source yields an empty pool.
func BuildPool(source *audio.Buffer, grainSizeMs, overlapPct float64) (*Pool, error) {
	if !core.IsFinite(grainSizeMs) {
		return nil, fmt.Errorf("grain size must be finite: %f", grainSizeMs)
	}
	if !core.IsFinite(overlapPct) {
		return nil, fmt.Errorf("grain overlap must be finite: %f", overlapPct)
	}

	grainSizeMs = core.Clamp(grainSizeMs, MinSizeMs, MaxSizeMs)
	overlapPct = core.Clamp(overlapPct, MinOverlapPct, MaxOverlapPct)

	grainLength := int(math.Round(grainSizeMs / 1000 * source.SampleRate()))
	if grainLength < 1 {
		grainLength = 1
	}

	hop := int(math.Round(float64(grainLength) * (1 - overlapPct/100)))
	if hop < 1 {
		hop = 1
	}

	pool := &Pool{grainLength: grainLength, hop: hop}

	sourceLen := source.Len()
	if sourceLen == 0 {
		return pool, nil
	}

	if sourceLen < grainLength {
		pool.grainLength = sourceLen
		pool.grains = []Grain{{Start: 0, Length: sourceLen}}
		return pool, nil
	}

	for start := 0; start+grainLength <= sourceLen; start += hop {
		pool.grains = append(pool.grains, Grain{Start: start, Length: grainLength})
	}

	return pool, nil
}

// Len returns the number of grains in the pool.
func (p *Pool) Len() int { return len(p.grains) }

// At returns the grain at index i.
func (p *Pool) At(i int) Grain { return p.grains[i] }

// GrainLength returns the grain length in samples.
func (p *Pool) GrainLength() int { return p.grainLength }

// Hop returns the stride in samples between consecutive pool grains.
func (p *Pool) Hop() int { return p.hop }
