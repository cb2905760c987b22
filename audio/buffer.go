// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
	"time"
)

// Buffer is a fully decoded block of audio held as one float32 slice per
// channel. Library code never modifies a Buffer it was handed; every
// transformation returns a new one.
type Buffer struct {
	SampleRate int
	Data       [][]float32
}

// NewBuffer validates and wraps planar channel data.
func NewBuffer(sampleRate int, data [][]float32) (*Buffer, error) {
	if sampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}

	if len(data) == 0 {
		return nil, ErrNoChannels
	}

	for c := 1; c < len(data); c++ {
		if len(data[c]) != len(data[0]) {
			return nil, fmt.Errorf("channel %d has %d frames, want %d: %w",
				c, len(data[c]), len(data[0]), ErrChannelLength)
		}
	}

	return &Buffer{SampleRate: sampleRate, Data: data}, nil
}

func (b *Buffer) Channels() int { return len(b.Data) }

func (b *Buffer) Frames() int {
	if len(b.Data) == 0 {
		return 0
	}

	return len(b.Data[0])
}

// Seconds is the buffer length in seconds.
func (b *Buffer) Seconds() float64 {
	if b.SampleRate <= 0 {
		return 0
	}

	return float64(b.Frames()) / float64(b.SampleRate)
}

func (b *Buffer) Duration() time.Duration {
	return time.Duration(b.Seconds() * float64(time.Second))
}

// Reader streams the buffer as an interleaved Source.
func (b *Buffer) Reader() Source {
	return &bufferSource{buf: b}
}

type bufferSource struct {
	buf   *Buffer
	frame int
}

func (s *bufferSource) SampleRate() int { return s.buf.SampleRate }
func (s *bufferSource) Channels() int   { return s.buf.Channels() }
func (s *bufferSource) BufSize() int    { return 4096 }
func (s *bufferSource) Close() error    { return nil }

func (s *bufferSource) ReadSamples(dst []float32) (int, error) {
	channels := s.buf.Channels()
	if len(dst)%channels != 0 {
		return 0, ErrInvalidDstSize
	}

	remaining := s.buf.Frames() - s.frame
	if remaining <= 0 {
		return 0, io.EOF
	}

	frames := min(len(dst)/channels, remaining)
	for f := range frames {
		for c := range channels {
			dst[f*channels+c] = s.buf.Data[c][s.frame+f]
		}
	}

	s.frame += frames
	if s.frame >= s.buf.Frames() {
		return frames * channels, io.EOF
	}

	return frames * channels, nil
}

// Collect drains src into a Buffer and closes it. sizeHint, when positive,
// is the expected number of frames and is only used to presize storage.
func Collect(src Source, sizeHint int) (*Buffer, error) {
	defer src.Close()

	channels := src.Channels()
	if channels <= 0 {
		return nil, ErrNoChannels
	}

	data := make([][]float32, channels)
	for c := range data {
		data[c] = make([]float32, 0, max(sizeHint, 0))
	}

	bufSize := src.BufSize()
	if bufSize < channels {
		bufSize = 4096
	}
	bufSize -= bufSize % channels
	buf := make([]float32, bufSize)

	for {
		n, err := src.ReadSamples(buf)
		// Partial trailing frames are dropped.
		for f := range n / channels {
			for c := range channels {
				data[c] = append(data[c], buf[f*channels+c])
			}
		}

		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}

		if n == 0 {
			// Guard against sources that never report EOF.
			break
		}
	}

	return NewBuffer(src.SampleRate(), data)
}
