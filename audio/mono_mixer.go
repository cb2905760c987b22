// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"math"
)

// MonoMixer streams the per-frame arithmetic mean of every channel of src.
type MonoMixer struct {
	src Source
	tmp []float32
}

func NewMonoMixer(src Source) *MonoMixer {
	return &MonoMixer{
		src: src,
		tmp: make([]float32, 4096),
	}
}

func (m *MonoMixer) SampleRate() int { return m.src.SampleRate() }
func (m *MonoMixer) Channels() int   { return 1 }
func (m *MonoMixer) BufSize() int    { return m.src.BufSize() }

func (m *MonoMixer) Close() error {
	err := m.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (m *MonoMixer) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	channels := m.src.Channels()
	if channels == 1 {
		return m.src.ReadSamples(dst)
	}

	samplesNeeded := len(dst) * channels
	if cap(m.tmp) < samplesNeeded {
		m.tmp = make([]float32, max(samplesNeeded, 8192))
	}
	m.tmp = m.tmp[:samplesNeeded]

	n, err := m.src.ReadSamples(m.tmp)
	if n == 0 {
		return 0, err
	}
	frames := n / channels

	if channels == 2 {
		for f := range frames {
			idx := f << 1
			dst[f] = (m.tmp[idx] + m.tmp[idx+1]) * 0.5
		}

		return frames, err
	}

	inv := float32(1) / float32(channels)
	for f := range frames {
		var sum float32
		base := f * channels
		for c := range channels {
			sum += m.tmp[base+c]
		}
		dst[f] = sum * inv
	}

	return frames, err
}

// ToMono downmixes b to a single channel. Buffers that already have one
// channel are returned as is. When the averaged signal peaks above full
// scale every sample is scaled by 1/peak, so the result stays in [-1, 1]
// without clipping.
func ToMono(b *Buffer) (*Buffer, error) {
	if b.Channels() <= 1 {
		return b, nil
	}

	mono, err := Collect(NewMonoMixer(b.Reader()), b.Frames())
	if err != nil {
		return nil, fmt.Errorf("downmix: %w", err)
	}

	samples := mono.Data[0]

	var peak float64
	for _, s := range samples {
		peak = math.Max(peak, math.Abs(float64(s)))
	}

	if peak > 1 {
		gain := float32(1 / peak)
		for i := range samples {
			samples[i] *= gain
		}
	}

	return mono, nil
}
