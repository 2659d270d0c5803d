// Package render overlap-adds scheduled, windowed grains into an output
// buffer, normalizing overlap energy so grain boundaries stay seamless.
package render

import (
	"fmt"
	"sync"

	"github.com/avalancheee11/valanche-loop/dsp/audio"
	"github.com/avalancheee11/valanche-loop/dsp/core"
	"github.com/avalancheee11/valanche-loop/dsp/interp"
	"github.com/avalancheee11/valanche-loop/dsp/schedule"
	"github.com/avalancheee11/valanche-loop/dsp/window"
)

const pitchIdentityEps = 1e-9

// scratchBuf holds pooled scratch memory for pitch-resampled grains.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) ([]float64, *scratchBuf) {
	buf := scratchPool.Get().(*scratchBuf)
	buf.data = core.EnsureLen(buf.data, n)
	return buf.data, buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

// Render overlap-adds the scheduled events into a new buffer of
// outputLen samples with the source's sample rate and channel layout.
//
// Each grain is pitch-resampled to its nominal length (Hermite reads at
// the event's playback ratio), tapered by the grain envelope, scaled by
// the event gain and pan weight, and accumulated; afterwards every
// position is divided by its summed envelope weight.
func Render(events []schedule.Event, outputLen int, source *audio.Buffer) (*audio.Buffer, error) {
	if outputLen <= 0 {
		return nil, schedule.ErrInvalidDuration
	}
	if source == nil || source.Len() == 0 {
		return nil, schedule.ErrEmptySource
	}

	sourceLen := source.Len()
	for i, ev := range events {
		g := ev.Grain
		if g.Start < 0 || g.Length <= 0 || g.Start+g.Length > sourceLen {
			return nil, fmt.Errorf("%w: event %d grain {start=%d len=%d} vs source length %d",
				ErrGrainOutOfRange, i, g.Start, g.Length, sourceLen)
		}
	}

	out, err := audio.New(source.NumChannels(), outputLen, source.SampleRate())
	if err != nil {
		return nil, err
	}

	envelopes := make(map[int][]float64)
	envelopeFor := func(length int) []float64 {
		if env, ok := envelopes[length]; ok {
			return env
		}

		env := window.GrainEnvelope(length)
		envelopes[length] = env
		return env
	}

	acc := NewAccumulator(outputLen)

	for c := range source.NumChannels() {
		acc.Reset()
		channel := source.Channel(c)

		for _, ev := range events {
			g := ev.Grain
			grainSamples := channel[g.Start : g.Start+g.Length]
			gain := ev.Gain * panWeight(ev.Pan, c, source.NumChannels())

			env := envelopeFor(g.Length)

			if core.NearlyEqual(ev.Pitch, 1, pitchIdentityEps) {
				acc.Add(grainSamples, env, gain, ev.Offset)
				continue
			}

			shifted, buf := getScratch(g.Length)
			resamplePitch(shifted, grainSamples, ev.Pitch)
			acc.Add(shifted, env, gain, ev.Offset)
			putScratch(buf)
		}

		acc.Normalize()
		core.CopyInto(out.Channel(c), acc.Samples())
	}

	return out, nil
}

// resamplePitch reads src at the given playback ratio into dst, keeping
// the grain's nominal duration: reads past the source end clamp to the
// final sample, which the envelope tapers to silence anyway.
func resamplePitch(dst, src []float64, ratio float64) {
	pos := 0.0
	for i := range dst {
		dst[i] = interp.ReadHermite(src, pos)
		pos += ratio
	}
}

// panWeight returns the per-channel gain for a pan position in [-1, 1].
// Pan 0 leaves every channel at unity; +1 silences the left channel of a
// stereo pair, -1 the right. Layouts beyond stereo pass through.
func panWeight(pan float64, channel, channels int) float64 {
	if pan == 0 || channels != 2 {
		return 1
	}

	if channel == 0 {
		if pan > 0 {
			return 1 - pan
		}
		return 1
	}

	if pan < 0 {
		return 1 + pan
	}
	return 1
}
