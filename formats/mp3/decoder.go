// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/patchkit/audio"
)

// BitDepth is what MP3 input reports. The decoder always produces 16 bit
// PCM, so keeping the original depth means 16.
const BitDepth = 16

// go-mp3 always outputs interleaved stereo.
const channels = 2

type pcmReader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type mp3Source struct {
	dec     pcmReader
	buf     []byte
	pending []byte // a trailing partial sample from the previous read
}

func (s *mp3Source) SampleRate() int { return s.dec.SampleRate() }
func (s *mp3Source) Channels() int   { return channels }
func (s *mp3Source) BitDepth() int   { return BitDepth }
func (s *mp3Source) Close() error    { return nil }
func (s *mp3Source) BufSize() int    { return cap(s.buf) / 2 }

func (s *mp3Source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	need := len(dst) * 2
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	have := copy(s.buf, s.pending)
	s.pending = s.pending[:0]

	var err error
	for have < 2 && err == nil {
		var n int
		n, err = s.dec.Read(s.buf[have:])
		have += n
	}

	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("decoding mp3: %w", err)
	}

	samples := have / 2
	for i := range samples {
		dst[i] = float32(int16(binary.LittleEndian.Uint16(s.buf[2*i:]))) / 32768
	}

	if have%2 == 1 {
		s.pending = append(s.pending, s.buf[have-1])
	}

	if err != nil {
		return samples, io.EOF
	}

	return samples, nil
}

// Decoder reads MPEG-1/2 layer III streams with github.com/hajimehoshi/go-mp3.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("opening mp3 stream: %w", err)
	}

	return &mp3Source{dec: dec, buf: make([]byte, 8192)}, nil
}
