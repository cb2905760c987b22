// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/go-audio/riff"
	"github.com/ik5/patchkit/audio"
	"github.com/ik5/patchkit/utils"
)

// HeaderSize is the size of the canonical PCM header written by the encoder.
const HeaderSize = 44

const pcmFormat = 1

// Params fully determine the layout of an encoded file.
type Params struct {
	SampleRate int
	BitDepth   int
	Channels   int
}

func (p Params) Validate() error {
	if p.Channels != 1 && p.Channels != 2 {
		return fmt.Errorf("%d channels: %w", p.Channels, ErrUnsupportedChannelCount)
	}

	if p.BitDepth != 16 && p.BitDepth != 24 {
		return fmt.Errorf("%d bits: %w", p.BitDepth, ErrUnsupportedBitDepth)
	}

	if p.SampleRate <= 0 {
		return fmt.Errorf("%d Hz: %w", p.SampleRate, audio.ErrInvalidSampleRate)
	}

	return nil
}

func (p Params) BytesPerSample() int {
	if p.BitDepth == 24 {
		return 3
	}

	return 2
}

func (p Params) BlockAlign() int { return p.Channels * p.BytesPerSample() }
func (p Params) ByteRate() int   { return p.SampleRate * p.BlockAlign() }

// EncodedSize is the file size produced for frames frames of audio.
func EncodedSize(frames, channels, bitDepth int) int {
	p := Params{BitDepth: bitDepth, Channels: channels}
	return HeaderSize + frames*p.BlockAlign()
}

// Header builds the 44 byte RIFF/WAVE header for frames frames.
func Header(p Params, frames int) ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	dataSize := uint32(frames * p.BlockAlign())
	header := make([]byte, HeaderSize)

	copy(header[0:4], riff.RiffID[:])
	binary.LittleEndian.PutUint32(header[4:8], dataSize+36)
	copy(header[8:12], riff.WavFormatID[:])

	copy(header[12:16], riff.FmtID[:])
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], pcmFormat)
	binary.LittleEndian.PutUint16(header[22:24], uint16(p.Channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(p.SampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(p.ByteRate()))
	binary.LittleEndian.PutUint16(header[32:34], uint16(p.BlockAlign()))
	binary.LittleEndian.PutUint16(header[34:36], uint16(p.BitDepth))

	copy(header[36:40], riff.DataFormatID[:])
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	return header, nil
}

// EncodeTo writes b to w as PCM WAV at bitDepth (16 or 24). Samples are
// clamped to [-1, 1] and rounded to the nearest integer step.
func EncodeTo(w io.Writer, b *audio.Buffer, bitDepth int) error {
	p := Params{SampleRate: b.SampleRate, BitDepth: bitDepth, Channels: b.Channels()}

	header, err := Header(p, b.Frames())
	if err != nil {
		return err
	}

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("%w", err)
	}

	const chunkFrames = 8192

	frames := b.Frames()
	if frames == 0 {
		return nil
	}

	bps := p.BytesPerSample()
	buf := make([]byte, min(frames, chunkFrames)*p.BlockAlign())

	for start := 0; start < frames; start += chunkFrames {
		end := min(start+chunkFrames, frames)
		out := buf[:(end-start)*p.BlockAlign()]

		off := 0
		for f := start; f < end; f++ {
			for c := range p.Channels {
				s := b.Data[c][f]
				if bps == 3 {
					utils.PutInt24(out[off:off+3], utils.FloatToInt24(s))
				} else {
					binary.LittleEndian.PutUint16(out[off:off+2], uint16(utils.FloatToInt16(s)))
				}
				off += bps
			}
		}

		if _, err := w.Write(out); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}

// Encode returns b as a complete WAV file.
func Encode(b *audio.Buffer, bitDepth int) ([]byte, error) {
	out := new(bytes.Buffer)
	out.Grow(EncodedSize(b.Frames(), b.Channels(), bitDepth))

	if err := EncodeTo(out, b, bitDepth); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

// Codec exposes Encode as a value so it can be injected.
type Codec struct{}

func (Codec) Encode(b *audio.Buffer, bitDepth int) ([]byte, error) {
	return Encode(b, bitDepth)
}
