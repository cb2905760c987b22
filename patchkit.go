// SPDX-License-Identifier: EPL-2.0

package patchkit

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/ik5/patchkit/audio"
	"github.com/ik5/patchkit/convert"
	"github.com/ik5/patchkit/formats/aiff"
	"github.com/ik5/patchkit/formats/mp3"
	"github.com/ik5/patchkit/formats/vorbis"
	"github.com/ik5/patchkit/formats/wav"
	"github.com/ik5/patchkit/note"
	"github.com/ik5/patchkit/patch"
)

var ErrNoExtension = errors.New("filename has no extension")

// fallbackBitDepth is assumed for sources that do not report one.
const fallbackBitDepth = 16

// DefaultRegistry knows every input format patchkit can decode.
func DefaultRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})

	return reg
}

// Loaded is a decoded input file.
type Loaded struct {
	Filename string
	Sample   *convert.Sample
	// Metadata is only set for WAV input.
	Metadata *wav.Metadata
	// Parsed is nil when the filename carries no key or slot.
	Parsed *note.Parsed
}

// LoadSample decodes data, picking the decoder from the extension of
// filename. Decoding is attempted once and its errors are returned as is.
// A nil reg means DefaultRegistry.
func LoadSample(ctx context.Context, reg *audio.Registry, filename string, data []byte) (*Loaded, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if reg == nil {
		reg = DefaultRegistry()
	}

	ext := strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
	if ext == "" {
		return nil, fmt.Errorf("%q: %w", filename, ErrNoExtension)
	}

	src, err := reg.Decode(ext, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	bitDepth := audio.SourceBitDepth(src, fallbackBitDepth)

	buf, err := audio.Collect(src, 0)
	if err != nil {
		return nil, err
	}

	loaded := &Loaded{
		Filename: filename,
		Sample:   convert.NewSample(buf, bitDepth, len(data)),
	}

	if ext == "wav" {
		meta, err := wav.ReadMetadata(data, filename)
		if err != nil {
			return nil, err
		}
		loaded.Metadata = meta

		if deviceReady(meta) {
			loaded.Sample.Raw = data
		}
	}

	if parsed, err := note.ParseFilename(filename); err == nil {
		loaded.Parsed = &parsed
	}

	return loaded, nil
}

// deviceReady reports whether a WAV file can be copied without re-encoding.
func deviceReady(m *wav.Metadata) bool {
	return m.AudioFormat == 1 &&
		(m.BitDepth == 16 || m.BitDepth == 24) &&
		(m.Channels == 1 || m.Channels == 2)
}

// Key picks the key a sample plays on: the root note stored in the file,
// then a note or slot parsed from the name, then fallback.
func (l *Loaded) Key(fallback int) int {
	if l.Metadata != nil && l.Metadata.HasMIDINote {
		return l.Metadata.MIDINote
	}

	if l.Parsed != nil {
		return l.Parsed.KeyOrIndex
	}

	return fallback
}

// Name is the sanitized base name used for the exported file.
func (l *Loaded) Name() string {
	if l.Parsed != nil && l.Parsed.BaseName != "" {
		return strings.TrimSpace(l.Parsed.BaseName)
	}

	return strings.TrimSpace(note.BaseName(l.Filename))
}

// Exported is a converted sample ready to be packed into a patch.
type Exported struct {
	Data   []byte
	Props  convert.Props
	Region patch.SampleMetadata
}

// Export converts l according to req and describes it as a region on key.
// Loop points stored in a WAV file are carried over, scaled to the new
// rate. Other samples loop over the middle half.
func Export(ctx context.Context, conv *convert.Converter, l *Loaded, req convert.Request, name string, key int) (*Exported, error) {
	if l == nil || l.Sample == nil {
		return nil, convert.ErrNilSample
	}

	if conv == nil {
		conv = &convert.Converter{}
	}

	data, eff, err := conv.Convert(ctx, l.Sample, req)
	if err != nil {
		return nil, err
	}

	orig := l.Sample.Original
	frames := audio.FramesAt(l.Sample.Audio.Frames(), orig.SampleRate, eff.SampleRate)

	region := patch.NewSampleMetadata(frames, name, key)
	if m := l.Metadata; m != nil && m.HasLoopData {
		region = region.WithLoopFrames(
			audio.FramesAt(m.LoopStartFrame, orig.SampleRate, eff.SampleRate),
			audio.FramesAt(m.LoopEndFrame, orig.SampleRate, eff.SampleRate),
		)
	}

	return &Exported{Data: data, Props: eff, Region: region}, nil
}
