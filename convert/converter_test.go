// SPDX-License-Identifier: EPL-2.0

package convert_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/ik5/patchkit/audio"
	"github.com/ik5/patchkit/convert"
	"github.com/ik5/patchkit/formats/wav"
	"github.com/ik5/patchkit/internal/audiotest"
)

func newConverter() (*convert.Converter, *audiotest.CountingEncoder) {
	enc := &audiotest.CountingEncoder{Next: wav.Codec{}}
	return &convert.Converter{Backend: audio.CubicBackend{}, Encoder: enc}, enc
}

func stereoSample(rate, bitDepth int) *convert.Sample {
	b := audiotest.Buffer(rate, 2, rate/2, audiotest.Sine(rate, 440))
	return convert.NewSample(b, bitDepth, wav.EncodedSize(b.Frames(), 2, convert.EncodeDepth(bitDepth)))
}

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	cv, _ := newConverter()
	s := stereoSample(44100, 24)

	req := convert.Request{Rate: convert.Rate22050, Depth: convert.Depth16, Channels: convert.ChannelsMono}
	data, eff, err := cv.Convert(context.Background(), s, req)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	want := convert.Props{SampleRate: 22050, BitDepth: 16, Channels: 1}
	if eff != want {
		t.Errorf("effective = %+v, want %+v", eff, want)
	}

	frames := audio.FramesAt(s.Audio.Frames(), 44100, 22050)
	if len(data) != wav.EncodedSize(frames, 1, 16) {
		t.Errorf("len = %d, want %d", len(data), wav.EncodedSize(frames, 1, 16))
	}

	meta, err := wav.ReadMetadata(data, "")
	if err != nil {
		t.Fatalf("ReadMetadata() error = %v", err)
	}

	if meta.SampleRate != 22050 || meta.BitDepth != 16 || meta.Channels != 1 || meta.Frames != frames {
		t.Errorf("written %+v", meta)
	}

	if s.Audio.Channels() != 2 || s.Audio.SampleRate != 44100 {
		t.Error("Convert() modified the sample's audio")
	}
}

func TestConverter_ConvertedSizeIsCached(t *testing.T) {
	t.Parallel()

	cv, enc := newConverter()
	s := stereoSample(44100, 24)
	req := convert.Request{Depth: convert.Depth16, Channels: convert.ChannelsMono}
	ctx := context.Background()

	first, err := cv.ConvertedSize(ctx, s, req)
	if err != nil {
		t.Fatalf("ConvertedSize() error = %v", err)
	}

	second, err := cv.ConvertedSize(ctx, s, req)
	if err != nil {
		t.Fatalf("ConvertedSize() error = %v", err)
	}

	if first != second {
		t.Errorf("sizes differ: %d, %d", first, second)
	}

	if enc.Calls() != 1 {
		t.Errorf("encoder called %d times, want 1", enc.Calls())
	}

	// Convert reuses the cached bytes as well.
	data, _, err := cv.Convert(ctx, s, req)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	if len(data) != first || enc.Calls() != 1 {
		t.Errorf("Convert() after ConvertedSize encoded again (%d calls)", enc.Calls())
	}

	e, ok := s.Cache.Get("44100-16-1")
	if !ok || e.Size != first || !bytes.Equal(e.Data, data) {
		t.Errorf("cache entry = %+v, %v", e.Size, ok)
	}
}

func TestConverter_ConvertedSizeUnchanged(t *testing.T) {
	t.Parallel()

	cv, enc := newConverter()
	s := stereoSample(22050, 16)
	s.OriginalSize = 12345

	// 16 bit material asked for 24 bits at a higher rate stays as it is
	req := convert.Request{Rate: convert.Rate44100, Depth: convert.Depth24}
	size, err := cv.ConvertedSize(context.Background(), s, req)
	if err != nil {
		t.Fatalf("ConvertedSize() error = %v", err)
	}

	if size != 12345 || enc.Calls() != 0 {
		t.Errorf("size = %d with %d encodes, want original size and no encodes", size, enc.Calls())
	}
}

func TestConverter_RawPassthrough(t *testing.T) {
	t.Parallel()

	cv, enc := newConverter()
	s := stereoSample(44100, 16)
	s.Raw = []byte("original bytes")

	data, _, err := cv.Convert(context.Background(), s, convert.Request{})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	if string(data) != "original bytes" || enc.Calls() != 0 {
		t.Errorf("Convert() = %q with %d encodes", data, enc.Calls())
	}
}

func TestConverter_KeepOddDepth(t *testing.T) {
	t.Parallel()

	cv, _ := newConverter()
	s := stereoSample(8000, 8)

	data, eff, err := cv.Convert(context.Background(), s, convert.Request{})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	if eff.BitDepth != 8 {
		t.Errorf("effective depth = %d, want 8", eff.BitDepth)
	}

	meta, err := wav.ReadMetadata(data, "")
	if err != nil {
		t.Fatalf("ReadMetadata() error = %v", err)
	}

	if meta.BitDepth != 16 {
		t.Errorf("written depth = %d, want 16", meta.BitDepth)
	}
}

func TestConverter_Errors(t *testing.T) {
	t.Parallel()

	cv, _ := newConverter()
	ctx := context.Background()

	if _, _, err := cv.Convert(ctx, nil, convert.Request{}); !errors.Is(err, convert.ErrNilSample) {
		t.Errorf("Convert(nil) error = %v", err)
	}

	if _, err := cv.ConvertedSize(ctx, &convert.Sample{}, convert.Request{Depth: convert.Depth16}); !errors.Is(err, convert.ErrNilSample) {
		t.Errorf("ConvertedSize(empty) error = %v", err)
	}

	b := audiotest.Buffer(44100, 3, 100, audiotest.Silence)
	s := convert.NewSample(b, 16, 0)
	if _, _, err := cv.Convert(ctx, s, convert.Request{}); !errors.Is(err, wav.ErrUnsupportedChannelCount) {
		t.Errorf("Convert(3 channels) error = %v, want ErrUnsupportedChannelCount", err)
	}

	// downmixing makes it writable
	if _, _, err := cv.Convert(ctx, s, convert.Request{Channels: convert.ChannelsMono}); err != nil {
		t.Errorf("Convert(3 channels to mono) error = %v", err)
	}
}

func TestConverter_Canceled(t *testing.T) {
	t.Parallel()

	cv, enc := newConverter()
	s := stereoSample(44100, 16)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	data, _, err := cv.Convert(ctx, s, convert.Request{Rate: convert.Rate11025})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Convert() error = %v, want context.Canceled", err)
	}

	if data != nil || enc.Calls() != 0 {
		t.Error("canceled conversion produced output")
	}

	if _, ok := s.Cache.Get("11025-16-2"); ok {
		t.Error("canceled conversion was cached")
	}
}

func TestConverter_ConcurrentSamples(t *testing.T) {
	t.Parallel()

	cv, enc := newConverter()
	req := convert.Request{Rate: convert.Rate22050, Channels: convert.ChannelsMono}

	samples := make([]*convert.Sample, 4)
	for i := range samples {
		samples[i] = stereoSample(44100, 16)
	}

	var wg sync.WaitGroup
	for _, s := range samples {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cv.ConvertedSize(context.Background(), s, req); err != nil {
				t.Errorf("ConvertedSize() error = %v", err)
			}
		}()
	}
	wg.Wait()

	if enc.Calls() != len(samples) {
		t.Errorf("encoder called %d times, want %d", enc.Calls(), len(samples))
	}
}

func TestMemoryCache(t *testing.T) {
	t.Parallel()

	c := convert.NewMemoryCache()
	if _, ok := c.Get("x"); ok {
		t.Error("Get() on empty cache succeeded")
	}

	c.Put("x", convert.Entry{Size: 3, Data: []byte("abc")})
	e, ok := c.Get("x")
	if !ok || e.Size != 3 || c.Len() != 1 {
		t.Errorf("Get() = %+v, %v; Len() = %d", e, ok, c.Len())
	}
}

func ExamplePlan() {
	orig := convert.Props{SampleRate: 48000, BitDepth: 24, Channels: 2}
	req := convert.Request{Rate: convert.Rate44100, Depth: convert.Depth16, Channels: convert.ChannelsMono}

	eff := convert.Plan(orig, req)
	fmt.Println(eff.CacheKey(), convert.WillConvert(orig, req))
	// Output: 44100-16-1 true
}
