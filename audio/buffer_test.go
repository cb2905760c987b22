// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"testing"
	"time"
)

func TestNewBuffer_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		rate    int
		data    [][]float32
		wantErr error
	}{
		{name: "valid stereo", rate: 44100, data: [][]float32{{0, 1}, {0, 1}}},
		{name: "zero rate", rate: 0, data: [][]float32{{0}}, wantErr: ErrInvalidSampleRate},
		{name: "no channels", rate: 8000, data: nil, wantErr: ErrNoChannels},
		{name: "ragged channels", rate: 8000, data: [][]float32{{0, 1}, {0}}, wantErr: ErrChannelLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewBuffer(tt.rate, tt.data)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewBuffer() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBuffer_Properties(t *testing.T) {
	t.Parallel()

	b := constantBuffer(8000, 2, 4000, 0.25)

	if b.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", b.Channels())
	}

	if b.Frames() != 4000 {
		t.Errorf("Frames() = %d, want 4000", b.Frames())
	}

	if b.Seconds() != 0.5 {
		t.Errorf("Seconds() = %v, want 0.5", b.Seconds())
	}

	if b.Duration() != 500*time.Millisecond {
		t.Errorf("Duration() = %v, want 500ms", b.Duration())
	}
}

func TestBuffer_ReaderInterleaves(t *testing.T) {
	t.Parallel()

	b := &Buffer{SampleRate: 8000, Data: [][]float32{{1, 2, 3}, {-1, -2, -3}}}
	src := b.Reader()

	dst := make([]float32, 4)
	n, err := src.ReadSamples(dst)
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}

	want := []float32{1, -1, 2, -2}
	if n != 4 {
		t.Fatalf("ReadSamples() n = %d, want 4", n)
	}

	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("dst[%d] = %v, want %v", i, dst[i], want[i])
		}
	}

	n, err = src.ReadSamples(dst)
	if n != 2 || err != io.EOF {
		t.Errorf("second ReadSamples() = (%d, %v), want (2, EOF)", n, err)
	}

	if _, err := src.ReadSamples(make([]float32, 3)); err != ErrInvalidDstSize {
		t.Errorf("odd dst error = %v, want ErrInvalidDstSize", err)
	}
}

func TestCollect_RoundTrip(t *testing.T) {
	t.Parallel()

	in := sineBuffer(22050, 2, 10000, 440)
	out, err := Collect(in.Reader(), in.Frames())
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	if out.SampleRate != in.SampleRate || out.Channels() != 2 || out.Frames() != in.Frames() {
		t.Fatalf("Collect() = %d ch x %d @ %d", out.Channels(), out.Frames(), out.SampleRate)
	}

	for c := range in.Data {
		for f := range in.Data[c] {
			if out.Data[c][f] != in.Data[c][f] {
				t.Fatalf("sample [%d][%d] = %v, want %v", c, f, out.Data[c][f], in.Data[c][f])
			}
		}
	}
}

func TestCollect_Empty(t *testing.T) {
	t.Parallel()

	out, err := Collect(newSilentSource(8000, 1, 0), 0)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	if out.Frames() != 0 || out.Channels() != 1 {
		t.Errorf("Collect(empty) = %d ch x %d", out.Channels(), out.Frames())
	}
}
