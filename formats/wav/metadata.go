// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/go-audio/riff"
	"github.com/ik5/patchkit/note"
)

var smplID = [4]byte{'s', 'm', 'p', 'l'}

// smpl payload layout, see
// https://sites.google.com/site/musicgapi/technical-documents/wav-file-format#smpl
const (
	smplUnityNoteOffset = 12
	smplLoopCountOffset = 28
	smplLoopsOffset     = 36
	smplLoopStartOffset = 8
	smplLoopEndOffset   = 12
	smplLoopSize        = 24
)

// Default loop window, as a fraction of duration, when a file carries none.
const (
	DefaultLoopStart = 0.1
	DefaultLoopEnd   = 0.9
)

// Metadata is what ReadMetadata learns about a WAV file without decoding
// its samples.
type Metadata struct {
	AudioFormat int
	SampleRate  int
	BitDepth    int
	Channels    int
	// Frames and Duration come from the data chunk size. Both are zero when
	// the file has no data chunk.
	Frames   int
	Duration float64

	MIDINote    int
	HasMIDINote bool
	// RootFromSampler is set when MIDINote came from the smpl chunk rather
	// than from a note name in the filename.
	RootFromSampler bool

	// Loop bounds in seconds.
	LoopStart float64
	LoopEnd   float64
	// Loop bounds in frames, only meaningful when HasLoopData is set.
	LoopStartFrame int
	LoopEndFrame   int
	HasLoopData    bool
}

type chunkRef struct {
	offset int
	size   int
	found  bool
}

// ReadMetadata walks the RIFF chunks of data and extracts the format, the
// root note and the first sampler loop. When the file has no root note a
// trailing note name in filename is used instead, if there is one. Slot
// numbers in the filename are not root notes.
// Files without loop points get a loop over 10%..90% of their duration.
func ReadMetadata(data []byte, filename string) (*Metadata, error) {
	if len(data) < 12 || !bytes.Equal(data[0:4], riff.RiffID[:]) || !bytes.Equal(data[8:12], riff.WavFormatID[:]) {
		return nil, ErrNotWavFile
	}

	var fmtChunk, smplChunk, dataChunk chunkRef

	for offset := 12; offset+8 <= len(data); {
		var id [4]byte
		copy(id[:], data[offset:offset+4])
		size := int(binary.LittleEndian.Uint32(data[offset+4 : offset+8]))
		payload := offset + 8

		ref := chunkRef{offset: payload, size: size, found: true}
		switch id {
		case riff.FmtID:
			fmtChunk = ref
		case smplID:
			smplChunk = ref
		case riff.DataFormatID:
			dataChunk = ref
		}

		next := int64(payload) + int64(size) + int64(size&1)
		if next > int64(len(data)) {
			break
		}
		offset = int(next)
	}

	if !fmtChunk.found {
		return nil, ErrMissingFmtChunk
	}

	if fmtChunk.size < 16 || fmtChunk.offset+16 > len(data) {
		return nil, fmt.Errorf("fmt: %w", ErrTruncatedChunk)
	}

	f := data[fmtChunk.offset:]
	meta := &Metadata{
		AudioFormat: int(binary.LittleEndian.Uint16(f[0:2])),
		Channels:    int(binary.LittleEndian.Uint16(f[2:4])),
		SampleRate:  int(binary.LittleEndian.Uint32(f[4:8])),
		BitDepth:    int(binary.LittleEndian.Uint16(f[14:16])),
	}

	blockAlign := int(binary.LittleEndian.Uint16(f[12:14]))
	if blockAlign == 0 {
		blockAlign = meta.Channels * ((meta.BitDepth + 7) / 8)
	}

	if dataChunk.found && blockAlign > 0 && meta.SampleRate > 0 {
		size := min(dataChunk.size, len(data)-dataChunk.offset)
		meta.Frames = size / blockAlign
		meta.Duration = float64(meta.Frames) / float64(meta.SampleRate)
	}

	if smplChunk.found {
		readSamplerLoop(data, smplChunk, meta)
	}

	if !meta.HasMIDINote && filename != "" {
		if parsed, err := note.ParseFilename(filename); err == nil && parsed.IsNote && parsed.KeyOrIndex >= 0 && parsed.KeyOrIndex <= 127 {
			meta.MIDINote = parsed.KeyOrIndex
			meta.HasMIDINote = true
		}
	}

	if !meta.HasLoopData {
		meta.LoopStart = meta.Duration * DefaultLoopStart
		meta.LoopEnd = meta.Duration * DefaultLoopEnd
	}

	return meta, nil
}

func readSamplerLoop(data []byte, ref chunkRef, meta *Metadata) {
	end := ref.offset + smplLoopsOffset + smplLoopSize
	if ref.offset+smplLoopCountOffset+4 > len(data) || end > len(data) {
		return
	}

	s := data[ref.offset:]
	if binary.LittleEndian.Uint32(s[smplLoopCountOffset:]) == 0 {
		return
	}

	meta.MIDINote = int(binary.LittleEndian.Uint32(s[smplUnityNoteOffset:]))
	meta.HasMIDINote = true
	meta.RootFromSampler = true

	loop := s[smplLoopsOffset:]
	meta.LoopStartFrame = int(binary.LittleEndian.Uint32(loop[smplLoopStartOffset:]))
	meta.LoopEndFrame = int(binary.LittleEndian.Uint32(loop[smplLoopEndOffset:]))
	meta.HasLoopData = true

	if meta.SampleRate > 0 {
		meta.LoopStart = float64(meta.LoopStartFrame) / float64(meta.SampleRate)
		meta.LoopEnd = float64(meta.LoopEndFrame) / float64(meta.SampleRate)
	}
}
