// Package synth turns a captured recording into a seamlessly loopable
// buffer of a caller-chosen duration by granular re-synthesis.
//
// The pipeline slices the source into short overlapping grains, lays
// them out over the output timeline (deterministically or as a seeded
// stochastic cloud), overlap-adds the windowed grains with energy
// normalization, matches the result to the source loudness, and
// crossfades the loop point.
//
// The synthesizer is a pure, single-pass computation: it performs no
// I/O, holds no state between calls, and is safe for concurrent use
// from multiple goroutines.
package synth

import (
	"fmt"
	"math"

	"github.com/avalancheee11/valanche-loop/dsp/audio"
	"github.com/avalancheee11/valanche-loop/dsp/core"
	"github.com/avalancheee11/valanche-loop/dsp/grain"
	"github.com/avalancheee11/valanche-loop/dsp/render"
	"github.com/avalancheee11/valanche-loop/dsp/schedule"
	"github.com/avalancheee11/valanche-loop/measure/level"
)

// Mode selects the synthesis strategy.
type Mode int

const (
	// GranularLoop reuses the grain pool cyclically in original order,
	// reproducing the source texture while extending it.
	GranularLoop Mode = iota

	// TextureLoop scatters randomly chosen grains with slight pitch and
	// gain variation into a denser ambient cloud.
	TextureLoop
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case GranularLoop:
		return "granular"
	case TextureLoop:
		return "texture"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Synthesizer renders seamless loops from source buffers using a fixed
// configuration.
type Synthesizer struct {
	cfg Config
}

// New creates a synthesizer with the given options applied to defaults.
func New(opts ...Option) *Synthesizer {
	return &Synthesizer{cfg: ApplyOptions(opts...)}
}

// Config returns the synthesizer configuration.
func (s *Synthesizer) Config() Config { return s.cfg }

// Synthesize renders a loop of the configured duration from source.
// The output has the source's sample rate and channel count and exactly
// round(duration x sample rate) samples.
func (s *Synthesizer) Synthesize(source *audio.Buffer, mode Mode) (*audio.Buffer, error) {
	if source == nil || source.Len() == 0 {
		return nil, schedule.ErrEmptySource
	}

	outputLen, err := s.outputLength(source.SampleRate())
	if err != nil {
		return nil, err
	}

	pool, err := grain.BuildPool(source, s.grainSize(mode), s.cfg.OverlapPct)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}

	var events []schedule.Event
	switch mode {
	case GranularLoop:
		events, err = schedule.GranularLoop(pool, outputLen)
	case TextureLoop:
		events, err = schedule.TextureLoop(pool, outputLen,
			schedule.WithDensity(s.cfg.TextureDensity),
			schedule.WithPitchSpread(s.cfg.PitchSpread),
			schedule.WithSeed(s.cfg.Seed),
		)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(mode))
	}
	if err != nil {
		return nil, err
	}

	out, err := render.Render(events, outputLen, source)
	if err != nil {
		return nil, err
	}

	if err := level.MatchRMS(out, source); err != nil {
		return nil, err
	}

	if mode == GranularLoop && s.cfg.CrossfadeSec > 0 {
		crossfadeLoop(out, s.cfg.CrossfadeSec)
	}

	return out, nil
}

func (s *Synthesizer) outputLength(sampleRate float64) (int, error) {
	dur := s.cfg.OutputDurationSec
	if !core.IsFinite(dur) {
		return 0, fmt.Errorf("%w: output duration %f", ErrInvalidParameter, dur)
	}
	if dur <= 0 {
		return 0, schedule.ErrInvalidDuration
	}

	dur = core.Clamp(dur, MinOutputDurationSec, MaxOutputDurationSec)

	outputLen := int(math.Round(dur * sampleRate))
	if outputLen <= 0 {
		return 0, schedule.ErrInvalidDuration
	}

	return outputLen, nil
}

func (s *Synthesizer) grainSize(mode Mode) float64 {
	if s.cfg.GrainSizeMs > 0 {
		return s.cfg.GrainSizeMs
	}

	if mode == TextureLoop {
		return textureGrainSizeMs
	}

	return defaultGrainSizeMs
}

// crossfadeLoop folds the head of the loop into its tail with
// complementary raised-cosine fades so end-to-start playback is
// seamless. The fade is capped below half the buffer.
func crossfadeLoop(buf *audio.Buffer, seconds float64) {
	n := int(math.Round(seconds * buf.SampleRate()))
	n = core.ClampInt(n, 0, buf.Len()/2-1)

	if n < 2 {
		return
	}

	for c := range buf.NumChannels() {
		ch := buf.Channel(c)
		tail := len(ch) - n

		for i := range n {
			t := float64(i) / float64(n-1)
			fadeIn := 0.5 - 0.5*math.Cos(math.Pi*t)

			ch[tail+i] = ch[tail+i]*(1-fadeIn) + ch[i]*fadeIn
		}
	}
}
