// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/ik5/patchkit/audio"
	"github.com/ik5/patchkit/internal/seekbuf"
)

// pcmReader is the subset of aiff.Decoder used by the source.
type pcmReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

type aiffSource struct {
	dec        pcmReader
	sampleRate int
	channels   int
	bitDepth   int
	scale      float64
	intBuf     *goaudio.IntBuffer
	eof        bool
}

func (s *aiffSource) SampleRate() int { return s.sampleRate }
func (s *aiffSource) Channels() int   { return s.channels }
func (s *aiffSource) BitDepth() int   { return s.bitDepth }
func (s *aiffSource) Close() error    { return nil }

func (s *aiffSource) BufSize() int {
	if s.intBuf != nil {
		return cap(s.intBuf.Data)
	}

	return 4096
}

// fullScale is the magnitude of the most negative value at bitDepth. AIFF
// samples are always signed, 8 bit included.
func fullScale(bitDepth int) float64 {
	return float64(uint64(1) << (bitDepth - 1))
}

func (s *aiffSource) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if s.eof {
		return 0, io.EOF
	}

	want := len(dst) - len(dst)%s.channels
	if s.intBuf == nil || cap(s.intBuf.Data) < want {
		s.intBuf = &goaudio.IntBuffer{
			Data:   make([]int, want),
			Format: s.dec.Format(),
		}
	}
	s.intBuf.Data = s.intBuf.Data[:want]

	n, err := s.dec.PCMBuffer(s.intBuf)
	if err != nil && err != io.EOF {
		return 0, fmt.Errorf("reading aiff samples: %w", err)
	}

	for i := range n {
		dst[i] = float32(float64(s.intBuf.Data[i]) / s.scale)
	}

	if n < want || err == io.EOF {
		s.eof = true
		return n, io.EOF
	}

	return n, nil
}

// Decoder reads uncompressed AIFF files.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, err := seekbuf.From(r)
	if err != nil {
		return nil, err
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}

	dec.ReadInfo()

	bitDepth := int(dec.BitDepth)
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%d bits: %w", bitDepth, ErrUnsupportedBitDepth)
	}

	format := dec.Format()
	if format == nil || format.NumChannels <= 0 || format.SampleRate <= 0 {
		return nil, ErrUnsupportedAiffLayout
	}

	return &aiffSource{
		dec:        dec,
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
		bitDepth:   bitDepth,
		scale:      fullScale(bitDepth),
	}, nil
}
