// SPDX-License-Identifier: EPL-2.0

// Package audiotest builds synthetic audio for tests.
package audiotest

import (
	"io"
	"math"
	"sync/atomic"

	"github.com/ik5/patchkit/audio"
)

// Waveform returns the sample for frame on channel.
type Waveform func(frame, channel int) float32

func Silence(int, int) float32 { return 0 }

func Constant(v float32) Waveform {
	return func(int, int) float32 { return v }
}

// Sine is a full scale sine of freq Hz at sampleRate, identical on every
// channel.
func Sine(sampleRate int, freq float64) Waveform {
	return func(frame, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * freq * t))
	}
}

// Buffer renders frames frames of wave into a planar buffer. It panics on
// invalid arguments since it only serves tests.
func Buffer(sampleRate, channels, frames int, wave Waveform) *audio.Buffer {
	data := make([][]float32, channels)
	for c := range data {
		data[c] = make([]float32, frames)
		for f := range frames {
			data[c][f] = wave(f, c)
		}
	}

	b, err := audio.NewBuffer(sampleRate, data)
	if err != nil {
		panic(err)
	}

	return b
}

// Source streams a waveform as an audio.Source.
type Source struct {
	sampleRate int
	channels   int
	bitDepth   int
	frames     int
	generated  int
	wave       Waveform
}

func NewSource(sampleRate, channels, frames int, wave Waveform) *Source {
	return &Source{sampleRate: sampleRate, channels: channels, frames: frames, wave: wave}
}

// WithBitDepth makes the source report bitDepth through audio.BitDepther.
func (s *Source) WithBitDepth(bitDepth int) *Source {
	s.bitDepth = bitDepth
	return s
}

func (s *Source) SampleRate() int { return s.sampleRate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) BitDepth() int   { return s.bitDepth }
func (s *Source) BufSize() int    { return 4096 }
func (s *Source) Close() error    { return nil }

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if s.generated >= s.frames {
		return 0, io.EOF
	}

	n := min(len(dst)/s.channels, s.frames-s.generated)
	for f := range n {
		for c := range s.channels {
			dst[f*s.channels+c] = s.wave(s.generated+f, c)
		}
	}
	s.generated += n

	if s.generated >= s.frames {
		return n * s.channels, io.EOF
	}

	return n * s.channels, nil
}

// CountingEncoder wraps an encoder and counts calls, to observe caching.
type CountingEncoder struct {
	Next  interface{ Encode(*audio.Buffer, int) ([]byte, error) }
	calls atomic.Int64
}

func (e *CountingEncoder) Encode(b *audio.Buffer, bitDepth int) ([]byte, error) {
	e.calls.Add(1)
	return e.Next.Encode(b, bitDepth)
}

func (e *CountingEncoder) Calls() int { return int(e.calls.Load()) }
