// Package wavio reads and writes audio files for the command line tools.
// WAV, MP3 and Ogg Vorbis sources decode into planar float buffers; output
// is always 16-bit PCM WAV.
package wavio

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	mp3 "github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"

	"github.com/avalancheee11/valanche-loop/dsp/audio"
)

const outputBitDepth = 16

// ReadFile decodes an audio file into a buffer, dispatching on the file
// extension.
func ReadFile(path string) (*audio.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return DecodeWAV(f)
	case ".mp3":
		return DecodeMP3(f)
	case ".ogg":
		return DecodeOgg(f)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// WriteFile encodes a buffer as a 16-bit PCM WAV file.
func WriteFile(path string, buf *audio.Buffer) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := EncodeWAV(f, buf); err != nil {
		return err
	}

	return f.Close()
}

// DecodeWAV decodes a WAV stream into a planar float buffer.
func DecodeWAV(r io.ReadSeeker) (*audio.Buffer, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrInvalidFile
	}

	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, err
	}
	if pcm.Format == nil || pcm.Format.NumChannels <= 0 {
		return nil, ErrInvalidFile
	}

	bitDepth := int(dec.SampleBitDepth())
	if bitDepth == 0 {
		bitDepth = pcm.SourceBitDepth
	}
	if bitDepth == 0 {
		return nil, ErrInvalidFile
	}

	scale := math.Pow(2, float64(bitDepth-1))
	samples := make([]float64, len(pcm.Data))
	for i, v := range pcm.Data {
		samples[i] = float64(v) / scale
	}

	return deinterleave(samples, pcm.Format.NumChannels, float64(pcm.Format.SampleRate))
}

// DecodeMP3 decodes an MP3 stream. The decoder always produces 16-bit
// little-endian stereo.
func DecodeMP3(r io.Reader) (*audio.Buffer, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, err
	}

	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, err
	}

	nsamples := len(raw) / 2
	samples := make([]float64, nsamples)
	for i := range nsamples {
		v := int16(uint16(raw[2*i]) | uint16(raw[2*i+1])<<8)
		samples[i] = float64(v) / 32768
	}

	return deinterleave(samples, 2, float64(dec.SampleRate()))
}

// DecodeOgg decodes an Ogg Vorbis stream.
func DecodeOgg(r io.Reader) (*audio.Buffer, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, err
	}

	channels := dec.Channels()
	if channels <= 0 {
		return nil, ErrInvalidFile
	}

	var samples []float64
	frameBuf := make([]float32, 4096*channels)
	for {
		n, err := dec.Read(frameBuf)
		for _, v := range frameBuf[:n] {
			samples = append(samples, float64(v))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	return deinterleave(samples, channels, float64(dec.SampleRate()))
}

// EncodeWAV writes a buffer to w as 16-bit PCM WAV.
func EncodeWAV(w io.WriteSeeker, buf *audio.Buffer) error {
	if buf == nil || buf.NumChannels() == 0 {
		return ErrInvalidFile
	}

	channels := buf.NumChannels()
	rate := int(math.Round(buf.SampleRate()))

	enc := wav.NewEncoder(w, rate, outputBitDepth, channels, 1)

	intBuf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: channels,
			SampleRate:  rate,
		},
		Data:           make([]int, buf.Len()*channels),
		SourceBitDepth: outputBitDepth,
	}

	for i := range buf.Len() {
		for c := range channels {
			v := buf.Channel(c)[i]
			if v > 1 {
				v = 1
			} else if v < -1 {
				v = -1
			}
			intBuf.Data[i*channels+c] = int(math.Round(v * 32767))
		}
	}

	if err := enc.Write(intBuf); err != nil {
		return err
	}

	return enc.Close()
}

// deinterleave splits interleaved samples into a planar buffer. A trailing
// partial frame is dropped.
func deinterleave(samples []float64, channels int, sampleRate float64) (*audio.Buffer, error) {
	frames := len(samples) / channels

	buf, err := audio.New(channels, frames, sampleRate)
	if err != nil {
		return nil, err
	}

	for i := range frames {
		for c := range channels {
			buf.Channel(c)[i] = samples[i*channels+c]
		}
	}

	return buf, nil
}
