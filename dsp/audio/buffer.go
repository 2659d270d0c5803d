package audio

import (
	"fmt"

	"github.com/avalancheee11/valanche-loop/dsp/core"
)

// Buffer holds non-interleaved multi-channel samples at a fixed sample rate.
type Buffer struct {
	channels   [][]float64
	sampleRate float64
}

// New returns a zero-filled buffer with the given channel count and length.
func New(channels, length int, sampleRate float64) (*Buffer, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("audio channel count must be > 0: %d", channels)
	}
	if length < 0 {
		return nil, fmt.Errorf("audio length must be >= 0: %d", length)
	}
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("audio sample rate must be positive and finite: %f", sampleRate)
	}

	chans := make([][]float64, channels)
	for i := range chans {
		chans[i] = make([]float64, length)
	}

	return &Buffer{channels: chans, sampleRate: sampleRate}, nil
}

// FromMono wraps a single channel of samples without copying.
func FromMono(samples []float64, sampleRate float64) (*Buffer, error) {
	return FromChannels([][]float64{samples}, sampleRate)
}

// FromChannels wraps existing channel slices without copying.
// All channels must have equal length.
func FromChannels(channels [][]float64, sampleRate float64) (*Buffer, error) {
	if len(channels) == 0 {
		return nil, errNoChannels
	}
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("audio sample rate must be positive and finite: %f", sampleRate)
	}

	length := len(channels[0])
	for i, ch := range channels {
		if len(ch) != length {
			return nil, fmt.Errorf("%w: channel 0 has %d samples, channel %d has %d",
				errUnevenChannels, length, i, len(ch))
		}
	}

	return &Buffer{channels: channels, sampleRate: sampleRate}, nil
}

// SampleRate returns the sample rate in Hz.
func (b *Buffer) SampleRate() float64 { return b.sampleRate }

// NumChannels returns the channel count.
func (b *Buffer) NumChannels() int { return len(b.channels) }

// Len returns the per-channel sample count.
func (b *Buffer) Len() int {
	if len(b.channels) == 0 {
		return 0
	}
	return len(b.channels[0])
}

// Channel returns the samples of channel i. The slice is not copied;
// mutations are visible through the buffer.
func (b *Buffer) Channel(i int) []float64 {
	return b.channels[i]
}

// Duration returns the buffer length in seconds.
func (b *Buffer) Duration() float64 {
	return float64(b.Len()) / b.sampleRate
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	chans := make([][]float64, len(b.channels))
	for i, ch := range b.channels {
		chans[i] = make([]float64, len(ch))
		copy(chans[i], ch)
	}

	return &Buffer{channels: chans, sampleRate: b.sampleRate}
}
