// SPDX-License-Identifier: EPL-2.0

package patch

import (
	"cmp"
	"slices"
)

// SampleMetadata is one region of a patch. The dotted JSON names are the
// device's field names and must not change.
type SampleMetadata struct {
	FrameCount    int    `json:"framecount"`
	Gain          int    `json:"gain"`
	HiKey         int    `json:"hikey"`
	LoKey         int    `json:"lokey"`
	LoopCrossfade int    `json:"loop.crossfade"`
	LoopEnd       int    `json:"loop.end"`
	LoopOnRelease bool   `json:"loop.onrelease"`
	LoopStart     int    `json:"loop.start"`
	KeyCenter     int    `json:"pitch.keycenter"`
	Reverse       bool   `json:"reverse"`
	Sample        string `json:"sample"`
	SampleEnd     int    `json:"sample.end"`
	SampleStart   int    `json:"sample.start"`
	Tune          int    `json:"tune"`
}

// Default loop window for exported regions, as a fraction of frames.
const (
	DefaultLoopStart = 0.25
	DefaultLoopEnd   = 0.75
)

// DrumBaseKey is the key of drum slot 0. Slot n plays on DrumBaseKey+n.
const DrumBaseKey = 53

const maxKey = 127

func clampKey(k int) int { return min(max(k, 0), maxKey) }

// NewSampleMetadata describes a region playing the whole of sample on a
// single key, looping over the middle half.
func NewSampleMetadata(frames int, sample string, key int) SampleMetadata {
	key = clampKey(key)

	return SampleMetadata{
		FrameCount: frames,
		HiKey:      key,
		LoKey:      key,
		LoopStart:  int(float64(frames) * DefaultLoopStart),
		LoopEnd:    int(float64(frames) * DefaultLoopEnd),
		KeyCenter:  key,
		Sample:     sample,
		SampleEnd:  frames,
	}
}

// DrumSlotKey is the key a drum slot index is mapped to.
func DrumSlotKey(slot int) int {
	return clampKey(DrumBaseKey + slot)
}

// WithLoopFrames returns m with the loop set to [start, end], limited to the
// sample and ordered.
func (m SampleMetadata) WithLoopFrames(start, end int) SampleMetadata {
	start = min(max(start, 0), m.FrameCount)
	end = min(max(end, 0), m.FrameCount)
	if end < start {
		start, end = end, start
	}

	m.LoopStart = start
	m.LoopEnd = end

	return m
}

// AssignKeyRanges spreads regions over the keyboard for a multisample
// patch. Regions are ordered by key centre; each one covers the keys from
// just above the previous region up to its own centre, and the last one
// extends to the top. The input is not modified.
func AssignKeyRanges(regions []SampleMetadata) []SampleMetadata {
	out := slices.Clone(regions)
	slices.SortStableFunc(out, func(a, b SampleMetadata) int {
		return cmp.Compare(a.KeyCenter, b.KeyCenter)
	})

	lo := 0
	for i := range out {
		lo = min(lo, maxKey)

		hi := maxKey
		if i < len(out)-1 {
			hi = max(clampKey(out[i].KeyCenter), lo)
		}

		out[i].LoKey = lo
		out[i].HiKey = hi
		lo = hi + 1
	}

	return out
}
