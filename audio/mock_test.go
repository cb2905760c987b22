// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"math"
)

// genBuffer builds a planar buffer whose sample values come from wave.
func genBuffer(sampleRate, channels, frames int, wave func(frame, channel int) float32) *Buffer {
	data := make([][]float32, channels)
	for c := range data {
		data[c] = make([]float32, frames)
		for f := range frames {
			data[c][f] = wave(f, c)
		}
	}

	return &Buffer{SampleRate: sampleRate, Data: data}
}

func constantBuffer(sampleRate, channels, frames int, value float32) *Buffer {
	return genBuffer(sampleRate, channels, frames, func(int, int) float32 { return value })
}

func sineBuffer(sampleRate, channels, frames int, freq float64) *Buffer {
	return genBuffer(sampleRate, channels, frames, func(f, _ int) float32 {
		return float32(math.Sin(2 * math.Pi * freq * float64(f) / float64(sampleRate)))
	})
}

// newSilentSource streams silence through the Source interface.
func newSilentSource(sampleRate, channels, frames int) Source {
	return constantBuffer(sampleRate, channels, frames, 0).Reader()
}

func newConstantSource(sampleRate, channels, frames int, value float32) Source {
	return constantBuffer(sampleRate, channels, frames, value).Reader()
}

func newMockSource(sampleRate, channels, frames int, wave func(frame, channel int) float32) Source {
	return genBuffer(sampleRate, channels, frames, wave).Reader()
}

func newSineSource(sampleRate, channels, frames int, freq float64) Source {
	return sineBuffer(sampleRate, channels, frames, freq).Reader()
}
