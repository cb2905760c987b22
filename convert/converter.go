// SPDX-License-Identifier: EPL-2.0

package convert

import (
	"context"
	"fmt"

	"github.com/ik5/patchkit/audio"
	"github.com/ik5/patchkit/formats/wav"
)

// Sample is a loaded sample together with what is known about its original
// file. The caller owns it; the converter only writes into Cache.
type Sample struct {
	Audio    *audio.Buffer
	Original Props
	// OriginalSize is the byte size of the file the sample came from.
	OriginalSize int
	// Raw holds the original bytes when they are already a WAV the device
	// accepts as is. It may be nil.
	Raw   []byte
	Cache Cache
}

// NewSample describes b with the given original bit depth and attaches an
// empty MemoryCache.
func NewSample(b *audio.Buffer, bitDepth, originalSize int) *Sample {
	return &Sample{
		Audio: b,
		Original: Props{
			SampleRate: b.SampleRate,
			BitDepth:   bitDepth,
			Channels:   b.Channels(),
		},
		OriginalSize: originalSize,
		Cache:        NewMemoryCache(),
	}
}

// Encoder writes a buffer as a WAV file. wav.Codec satisfies it.
type Encoder interface {
	Encode(b *audio.Buffer, bitDepth int) ([]byte, error)
}

// Converter runs the mix, resample and encode steps for a sample. The zero
// value uses audio.DefaultBackend and wav.Codec.
type Converter struct {
	Backend audio.ResampleBackend
	Encoder Encoder
}

func (cv *Converter) backend() audio.ResampleBackend {
	if cv.Backend == nil {
		return audio.DefaultBackend()
	}

	return cv.Backend
}

func (cv *Converter) encoder() Encoder {
	if cv.Encoder == nil {
		return wav.Codec{}
	}

	return cv.Encoder
}

// Convert returns s encoded with the effective properties for req. Mixing
// happens before resampling, and encoding comes last. Results are stored
// in s.Cache and reused on later calls.
func (cv *Converter) Convert(ctx context.Context, s *Sample, req Request) ([]byte, Props, error) {
	if s == nil || s.Audio == nil {
		return nil, Props{}, ErrNilSample
	}

	eff := Plan(s.Original, req)
	if eff == s.Original && s.Raw != nil {
		return s.Raw, eff, nil
	}

	key := eff.CacheKey()
	if s.Cache != nil {
		if e, ok := s.Cache.Get(key); ok && e.Data != nil {
			return e.Data, eff, nil
		}
	}

	buf := s.Audio

	if eff.Channels == 1 && buf.Channels() > 1 {
		mono, err := audio.ToMono(buf)
		if err != nil {
			return nil, Props{}, fmt.Errorf("mixing to mono: %w", err)
		}
		buf = mono
	}

	if eff.SampleRate != buf.SampleRate {
		resampled, err := audio.Resample(ctx, cv.backend(), buf, eff.SampleRate)
		if err != nil {
			return nil, Props{}, fmt.Errorf("resampling to %d Hz: %w", eff.SampleRate, err)
		}
		buf = resampled
	}

	data, err := cv.encoder().Encode(buf, EncodeDepth(eff.BitDepth))
	if err != nil {
		return nil, Props{}, fmt.Errorf("encoding %s: %w", key, err)
	}

	if s.Cache != nil {
		s.Cache.Put(key, Entry{Size: len(data), Data: data})
	}

	return data, eff, nil
}

// ConvertedSize reports the byte size Convert would produce. When nothing
// changes the original size is returned without encoding.
func (cv *Converter) ConvertedSize(ctx context.Context, s *Sample, req Request) (int, error) {
	if s == nil || s.Audio == nil {
		return 0, ErrNilSample
	}

	eff := Plan(s.Original, req)
	if eff == s.Original {
		return s.OriginalSize, nil
	}

	if s.Cache != nil {
		if e, ok := s.Cache.Get(eff.CacheKey()); ok {
			return e.Size, nil
		}
	}

	data, _, err := cv.Convert(ctx, s, req)
	if err != nil {
		return 0, err
	}

	return len(data), nil
}
