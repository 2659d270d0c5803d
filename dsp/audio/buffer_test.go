package audio

import (
	"math"
	"testing"
)

func TestNewRejectsInvalidArguments(t *testing.T) {
	tests := []struct {
		name       string
		channels   int
		length     int
		sampleRate float64
	}{
		{"zero channels", 0, 10, 44100},
		{"negative channels", -1, 10, 44100},
		{"negative length", 1, -1, 44100},
		{"zero rate", 1, 10, 0},
		{"negative rate", 1, 10, -44100},
		{"nan rate", 1, 10, math.NaN()},
		{"inf rate", 1, 10, math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.channels, tt.length, tt.sampleRate); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestNewZeroFilled(t *testing.T) {
	buf, err := New(2, 128, 48000)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if buf.NumChannels() != 2 || buf.Len() != 128 || buf.SampleRate() != 48000 {
		t.Fatalf("unexpected shape: channels=%d len=%d rate=%v",
			buf.NumChannels(), buf.Len(), buf.SampleRate())
	}

	for c := range buf.NumChannels() {
		for i, v := range buf.Channel(c) {
			if v != 0 {
				t.Fatalf("channel %d sample %d = %v, want 0", c, i, v)
			}
		}
	}
}

func TestFromChannelsRejectsUnevenLengths(t *testing.T) {
	_, err := FromChannels([][]float64{make([]float64, 4), make([]float64, 5)}, 44100)
	if err == nil {
		t.Fatal("expected error for uneven channel lengths")
	}
}

func TestFromChannelsRejectsEmpty(t *testing.T) {
	if _, err := FromChannels(nil, 44100); err == nil {
		t.Fatal("expected error for missing channels")
	}
}

func TestFromMonoSharesSamples(t *testing.T) {
	samples := []float64{0.1, 0.2, 0.3}

	buf, err := FromMono(samples, 44100)
	if err != nil {
		t.Fatalf("FromMono() error = %v", err)
	}

	buf.Channel(0)[1] = 0.5
	if samples[1] != 0.5 {
		t.Fatal("expected FromMono to wrap without copying")
	}
}

func TestDuration(t *testing.T) {
	buf, err := New(1, 22050, 44100)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if got := buf.Duration(); math.Abs(got-0.5) > 1e-12 {
		t.Fatalf("Duration() = %v, want 0.5", got)
	}
}

func TestCloneIsDeep(t *testing.T) {
	buf, err := New(2, 8, 44100)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	buf.Channel(0)[3] = 0.25

	clone := buf.Clone()
	clone.Channel(0)[3] = -1

	if buf.Channel(0)[3] != 0.25 {
		t.Fatal("expected Clone to copy samples")
	}

	if clone.SampleRate() != buf.SampleRate() || clone.Len() != buf.Len() {
		t.Fatal("expected Clone to preserve shape")
	}
}
