// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"context"
	"errors"
	"fmt"
	"io"

	resampler "github.com/tphakala/go-audio-resampler"
)

// ResampleBackend renders a whole buffer at a new sample rate. Backends may
// take a while on long material and must give up once ctx is done.
type ResampleBackend interface {
	Resample(ctx context.Context, b *Buffer, targetRate int) (*Buffer, error)
}

// DefaultBackend returns the windowed-sinc backend.
func DefaultBackend() ResampleBackend {
	return SincBackend{}
}

// FramesAt returns ceil(frames * dstRate / srcRate), the number of frames
// a buffer of the given length occupies once rendered at dstRate.
func FramesAt(frames, srcRate, dstRate int) int {
	if frames <= 0 || srcRate <= 0 || dstRate <= 0 {
		return 0
	}

	num := int64(frames) * int64(dstRate)
	return int((num + int64(srcRate) - 1) / int64(srcRate))
}

// Resample converts b to targetRate through backend. It returns b itself
// when the rate already matches. The result always holds exactly
// FramesAt(b.Frames(), b.SampleRate, targetRate) frames. If ctx is done
// before the backend finishes, ctx.Err() is returned and nothing else.
func Resample(ctx context.Context, backend ResampleBackend, b *Buffer, targetRate int) (*Buffer, error) {
	if targetRate <= 0 {
		return nil, fmt.Errorf("target %d: %w", targetRate, ErrInvalidSampleRate)
	}

	if targetRate == b.SampleRate {
		return b, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type result struct {
		buf *Buffer
		err error
	}

	done := make(chan result, 1)
	go func() {
		out, err := backend.Resample(ctx, b, targetRate)
		done <- result{buf: out, err: err}
	}()

	var res result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-done:
	}

	if res.err != nil {
		return nil, fmt.Errorf("resample %d -> %d: %w", b.SampleRate, targetRate, res.err)
	}

	if res.buf == nil || res.buf.Channels() != b.Channels() {
		return nil, ErrShortResample
	}

	want := FramesAt(b.Frames(), b.SampleRate, targetRate)
	data := make([][]float32, b.Channels())
	for c, ch := range res.buf.Data {
		data[c] = fitLength(ch, want)
	}

	return NewBuffer(targetRate, data)
}

// fitLength returns a copy of samples trimmed or padded to n. Padding
// repeats the final sample.
func fitLength(samples []float32, n int) []float32 {
	out := make([]float32, n)
	copied := copy(out, samples)

	if copied < n && len(samples) > 0 {
		last := samples[len(samples)-1]
		for i := copied; i < n; i++ {
			out[i] = last
		}
	}

	return out
}

// CubicBackend renders through the streaming Catmull-Rom Resampler.
type CubicBackend struct {
	// BlockFrames is how many frames are rendered between context checks.
	// Zero means 4096.
	BlockFrames int
}

func (cb CubicBackend) Resample(ctx context.Context, b *Buffer, targetRate int) (*Buffer, error) {
	channels := b.Channels()
	if channels == 0 {
		return nil, ErrNoChannels
	}

	block := cb.BlockFrames
	if block <= 0 {
		block = 4096
	}

	rs := NewResampler(b.Reader(), targetRate)
	defer rs.Close()

	want := FramesAt(b.Frames(), b.SampleRate, targetRate)
	data := make([][]float32, channels)
	for c := range data {
		data[c] = make([]float32, 0, want)
	}

	buf := make([]float32, block*channels)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		n, err := rs.ReadSamples(buf)
		for f := range n / channels {
			for c := range channels {
				data[c] = append(data[c], buf[f*channels+c])
			}
		}

		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}

		if err != nil || n == 0 {
			break
		}
	}

	return NewBuffer(targetRate, data)
}

// SincBackend renders each channel with a Kaiser-windowed sinc polyphase
// filter bank.
type SincBackend struct{}

func (SincBackend) Resample(ctx context.Context, b *Buffer, targetRate int) (*Buffer, error) {
	if b.Channels() == 0 {
		return nil, ErrNoChannels
	}

	data := make([][]float32, b.Channels())
	for c, ch := range b.Data {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if len(ch) == 0 {
			data[c] = []float32{}
			continue
		}

		out, err := resampler.ResampleMonoFloat32(ch, float64(b.SampleRate), float64(targetRate), resampler.QualityHigh)
		if err != nil {
			return nil, fmt.Errorf("channel %d: %w", c, err)
		}
		data[c] = out
	}

	return NewBuffer(targetRate, data)
}
