package synth

import (
	"errors"
	"math"
	"testing"

	"github.com/avalancheee11/valanche-loop/dsp/audio"
	"github.com/avalancheee11/valanche-loop/dsp/schedule"
	"github.com/avalancheee11/valanche-loop/dsp/signal"
	"github.com/avalancheee11/valanche-loop/measure/level"
)

func sineSource(t *testing.T, freqHz, amplitude float64, channels, length int, sampleRate float64) *audio.Buffer {
	t.Helper()

	chans := make([][]float64, channels)
	for c := range chans {
		samples, err := signal.Sine(freqHz, amplitude, length, sampleRate)
		if err != nil {
			t.Fatalf("signal.Sine() error = %v", err)
		}
		chans[c] = samples
	}

	buf, err := audio.FromChannels(chans, sampleRate)
	if err != nil {
		t.Fatalf("audio.FromChannels() error = %v", err)
	}

	return buf
}

// The reference scenario: a 2 s, 44.1 kHz mono 440 Hz tone looped to
// 10 s with 100 ms grains at 50% overlap.
func TestSynthesizeGranularReferenceScenario(t *testing.T) {
	source := sineSource(t, 440, 0.5, 1, 2*44100, 44100)

	s := New(
		WithGrainSize(100),
		WithOverlap(50),
		WithDuration(10),
	)

	out, err := s.Synthesize(source, GranularLoop)
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	if out.Len() != 441000 {
		t.Fatalf("output length = %d, want 441000", out.Len())
	}

	if out.NumChannels() != 1 || out.SampleRate() != 44100 {
		t.Fatalf("output layout = %d ch @ %v Hz, want 1 ch @ 44100 Hz",
			out.NumChannels(), out.SampleRate())
	}

	sourceRMS := level.BufferRMS(source)
	outRMS := level.BufferRMS(out)
	if math.Abs(outRMS-sourceRMS)/sourceRMS > 0.05 {
		t.Fatalf("output RMS = %v, want within 5%% of %v", outRMS, sourceRMS)
	}

	// No single-sample jump may exceed the sine's own maximum slope by
	// more than a small margin.
	maxSlope := 2 * math.Pi * 440 * 0.5 / 44100
	limit := 3 * maxSlope

	ch := out.Channel(0)
	for i := 1; i < len(ch); i++ {
		if jump := math.Abs(ch[i] - ch[i-1]); jump > limit {
			t.Fatalf("discontinuity at %d: jump %v exceeds %v", i, jump, limit)
		}
	}
}

func TestSynthesizeLengthInvariant(t *testing.T) {
	source := sineSource(t, 110, 0.4, 1, 3000, 1000)

	for _, dur := range []float64{5, 7.25, 12, 60} {
		s := New(WithDuration(dur), WithCrossfade(0))

		out, err := s.Synthesize(source, GranularLoop)
		if err != nil {
			t.Fatalf("Synthesize(dur=%v) error = %v", dur, err)
		}

		want := int(math.Round(dur * 1000))
		if out.Len() != want {
			t.Fatalf("dur=%v: length = %d, want %d", dur, out.Len(), want)
		}
	}
}

func TestSynthesizeClampsDuration(t *testing.T) {
	source := sineSource(t, 110, 0.4, 1, 3000, 1000)

	// 1 s clamps up to 5 s, 500 s down to 60 s.
	short := New(WithDuration(1))
	out, err := short.Synthesize(source, GranularLoop)
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	if out.Len() != 5000 {
		t.Fatalf("length = %d, want 5000 (clamped to minimum)", out.Len())
	}

	long := New(WithDuration(500))
	out, err = long.Synthesize(source, GranularLoop)
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	if out.Len() != 60000 {
		t.Fatalf("length = %d, want 60000 (clamped to maximum)", out.Len())
	}
}

func TestSynthesizeStereoPreservesLayout(t *testing.T) {
	source := sineSource(t, 220, 0.4, 2, 4000, 2000)

	s := New(WithDuration(5))

	for _, mode := range []Mode{GranularLoop, TextureLoop} {
		out, err := s.Synthesize(source, mode)
		if err != nil {
			t.Fatalf("Synthesize(%v) error = %v", mode, err)
		}

		if out.NumChannels() != 2 || out.SampleRate() != 2000 {
			t.Fatalf("%v output layout = %d ch @ %v Hz, want 2 ch @ 2000 Hz",
				mode, out.NumChannels(), out.SampleRate())
		}
	}
}

func TestSynthesizeTextureDeterministicBySeed(t *testing.T) {
	source := sineSource(t, 220, 0.4, 1, 4000, 2000)

	a, err := New(WithDuration(5), WithSeed(42)).Synthesize(source, TextureLoop)
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	b, err := New(WithDuration(5), WithSeed(42)).Synthesize(source, TextureLoop)
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	for i := range a.Channel(0) {
		if a.Channel(0)[i] != b.Channel(0)[i] {
			t.Fatalf("sample %d differs for identical seed", i)
		}
	}

	c, err := New(WithDuration(5), WithSeed(7)).Synthesize(source, TextureLoop)
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	same := true
	for i := range a.Channel(0) {
		if a.Channel(0)[i] != c.Channel(0)[i] {
			same = false
			break
		}
	}

	if same {
		t.Fatal("expected different seeds to produce different output")
	}
}

func TestSynthesizeNeverClips(t *testing.T) {
	// A nearly full-scale source must not push the output past 1.0.
	source := sineSource(t, 330, 0.99, 1, 4000, 2000)

	for _, mode := range []Mode{GranularLoop, TextureLoop} {
		out, err := New(WithDuration(5)).Synthesize(source, mode)
		if err != nil {
			t.Fatalf("Synthesize(%v) error = %v", mode, err)
		}

		if peak := level.BufferPeak(out); peak > 1+1e-9 {
			t.Fatalf("%v peak = %v, want <= 1", mode, peak)
		}
	}
}

func TestSynthesizeDegenerateShortSource(t *testing.T) {
	// A source shorter than one grain still yields a full-length loop.
	source := sineSource(t, 110, 0.4, 1, 60, 1000)

	out, err := New(WithDuration(5)).Synthesize(source, GranularLoop)
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	if out.Len() != 5000 {
		t.Fatalf("length = %d, want 5000", out.Len())
	}

	if level.BufferRMS(out) == 0 {
		t.Fatal("expected non-silent output from single-grain source")
	}
}

func TestSynthesizeErrors(t *testing.T) {
	source := sineSource(t, 110, 0.4, 1, 3000, 1000)

	empty, err := audio.New(1, 0, 1000)
	if err != nil {
		t.Fatalf("audio.New() error = %v", err)
	}

	if _, err := New().Synthesize(empty, GranularLoop); !errors.Is(err, schedule.ErrEmptySource) {
		t.Fatalf("err = %v, want ErrEmptySource", err)
	}

	if _, err := New().Synthesize(nil, GranularLoop); !errors.Is(err, schedule.ErrEmptySource) {
		t.Fatalf("err = %v, want ErrEmptySource for nil source", err)
	}

	if _, err := New(WithDuration(-3)).Synthesize(source, GranularLoop); !errors.Is(err, schedule.ErrInvalidDuration) {
		t.Fatalf("err = %v, want ErrInvalidDuration", err)
	}

	if _, err := New(WithDuration(math.NaN())).Synthesize(source, GranularLoop); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("err = %v, want ErrInvalidParameter", err)
	}

	if _, err := New().Synthesize(source, Mode(99)); !errors.Is(err, ErrUnknownMode) {
		t.Fatalf("err = %v, want ErrUnknownMode", err)
	}
}

func TestSynthesizeLoudnessMatch(t *testing.T) {
	source, err := audio.FromMono(mustNoise(t, 0.3, 6000), 2000)
	if err != nil {
		t.Fatalf("audio.FromMono() error = %v", err)
	}

	for _, mode := range []Mode{GranularLoop, TextureLoop} {
		out, err := New(WithDuration(6)).Synthesize(source, mode)
		if err != nil {
			t.Fatalf("Synthesize(%v) error = %v", mode, err)
		}

		sourceRMS := level.BufferRMS(source)
		outRMS := level.BufferRMS(out)
		if math.Abs(outRMS-sourceRMS)/sourceRMS > 0.05 {
			t.Fatalf("%v RMS = %v, want within 5%% of %v", mode, outRMS, sourceRMS)
		}
	}
}

func mustNoise(t *testing.T, amplitude float64, samples int) []float64 {
	t.Helper()

	out, err := signal.WhiteNoise(amplitude, samples, 3)
	if err != nil {
		t.Fatalf("signal.WhiteNoise() error = %v", err)
	}

	return out
}

func TestModeString(t *testing.T) {
	if GranularLoop.String() != "granular" || TextureLoop.String() != "texture" {
		t.Fatalf("mode names = %q, %q", GranularLoop.String(), TextureLoop.String())
	}

	if Mode(5).String() != "mode(5)" {
		t.Fatalf("unknown mode name = %q", Mode(5).String())
	}
}

func TestGrainSizeDefaultsPerMode(t *testing.T) {
	s := New()

	if got := s.grainSize(GranularLoop); got != defaultGrainSizeMs {
		t.Fatalf("granular default grain = %v, want %v", got, defaultGrainSizeMs)
	}

	if got := s.grainSize(TextureLoop); got != textureGrainSizeMs {
		t.Fatalf("texture default grain = %v, want %v", got, textureGrainSizeMs)
	}

	explicit := New(WithGrainSize(80))
	if got := explicit.grainSize(TextureLoop); got != 80 {
		t.Fatalf("explicit grain = %v, want 80", got)
	}
}
