// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/patchkit/audio"
	"github.com/jfreymuth/oggvorbis"
)

// BitDepth is the depth Ogg Vorbis input reports when the original
// resolution is kept.
const BitDepth = 16

type floatReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type oggSource struct {
	dec floatReader
	eof bool
}

func (s *oggSource) SampleRate() int { return s.dec.SampleRate() }
func (s *oggSource) Channels() int   { return s.dec.Channels() }
func (s *oggSource) BitDepth() int   { return BitDepth }
func (s *oggSource) BufSize() int    { return 4096 }
func (s *oggSource) Close() error    { return nil }

// ReadSamples decodes straight into dst. oggvorbis fills whole frames and
// returns the number of values written.
func (s *oggSource) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if s.eof {
		return 0, io.EOF
	}

	want := len(dst) - len(dst)%s.dec.Channels()
	if want == 0 {
		return 0, nil
	}

	n, err := s.dec.Read(dst[:want])
	if errors.Is(err, io.EOF) {
		s.eof = true
		return n, io.EOF
	}

	if err != nil {
		return n, fmt.Errorf("decoding vorbis: %w", err)
	}

	return n, nil
}

// Decoder reads Ogg Vorbis streams with github.com/jfreymuth/oggvorbis.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening ogg stream: %w", err)
	}

	return &oggSource{dec: dec}, nil
}
