// SPDX-License-Identifier: EPL-2.0

package patch

import (
	"encoding/json"
	"testing"
)

func TestSampleMetadata_JSONKeys(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal(NewSampleMetadata(1000, "kick.wav", 60))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	keys := []string{
		"framecount", "gain", "hikey", "lokey", "loop.crossfade", "loop.end",
		"loop.onrelease", "loop.start", "pitch.keycenter", "reverse", "sample",
		"sample.end", "sample.start", "tune",
	}

	if len(fields) != len(keys) {
		t.Errorf("got %d fields, want %d: %v", len(fields), len(keys), fields)
	}

	for _, k := range keys {
		if _, ok := fields[k]; !ok {
			t.Errorf("missing key %q", k)
		}
	}

	if fields["loop.start"] != float64(250) || fields["loop.end"] != float64(750) {
		t.Errorf("loop = %v..%v, want 250..750", fields["loop.start"], fields["loop.end"])
	}

	if fields["pitch.keycenter"] != float64(60) || fields["sample.end"] != float64(1000) {
		t.Errorf("fields = %v", fields)
	}
}

func TestNewSampleMetadata(t *testing.T) {
	t.Parallel()

	m := NewSampleMetadata(44100, "pad.wav", 200)
	if m.KeyCenter != 127 || m.LoKey != 127 || m.HiKey != 127 {
		t.Errorf("keys = %d/%d/%d, want clamped to 127", m.LoKey, m.KeyCenter, m.HiKey)
	}

	if m.LoopStart != 11025 || m.LoopEnd != 33075 {
		t.Errorf("loop = %d..%d", m.LoopStart, m.LoopEnd)
	}

	if m.SampleStart != 0 || m.SampleEnd != 44100 || m.FrameCount != 44100 {
		t.Errorf("sample bounds = %d..%d of %d", m.SampleStart, m.SampleEnd, m.FrameCount)
	}
}

func TestWithLoopFrames(t *testing.T) {
	t.Parallel()

	base := NewSampleMetadata(100, "x.wav", 60)

	tests := []struct {
		name       string
		start, end int
		wantStart  int
		wantEnd    int
	}{
		{name: "inside", start: 10, end: 90, wantStart: 10, wantEnd: 90},
		{name: "swapped", start: 90, end: 10, wantStart: 10, wantEnd: 90},
		{name: "past end", start: 50, end: 500, wantStart: 50, wantEnd: 100},
		{name: "negative", start: -5, end: 20, wantStart: 0, wantEnd: 20},
	}

	for _, tt := range tests {
		m := base.WithLoopFrames(tt.start, tt.end)
		if m.LoopStart != tt.wantStart || m.LoopEnd != tt.wantEnd {
			t.Errorf("%s: loop = %d..%d, want %d..%d", tt.name, m.LoopStart, m.LoopEnd, tt.wantStart, tt.wantEnd)
		}
	}

	if base.LoopStart != 25 {
		t.Error("WithLoopFrames() modified the receiver")
	}
}

func TestDrumSlotKey(t *testing.T) {
	t.Parallel()

	if DrumSlotKey(0) != DrumBaseKey || DrumSlotKey(5) != DrumBaseKey+5 || DrumSlotKey(500) != 127 {
		t.Errorf("DrumSlotKey() = %d %d %d", DrumSlotKey(0), DrumSlotKey(5), DrumSlotKey(500))
	}
}

func TestAssignKeyRanges(t *testing.T) {
	t.Parallel()

	in := []SampleMetadata{
		NewSampleMetadata(10, "c5", 84),
		NewSampleMetadata(10, "c3", 60),
		NewSampleMetadata(10, "c4", 72),
	}

	out := AssignKeyRanges(in)

	want := []struct {
		name   string
		lo, hi int
	}{
		{"c3", 0, 60},
		{"c4", 61, 72},
		{"c5", 73, 127},
	}

	for i, w := range want {
		if out[i].Sample != w.name || out[i].LoKey != w.lo || out[i].HiKey != w.hi {
			t.Errorf("region %d = %s %d..%d, want %s %d..%d",
				i, out[i].Sample, out[i].LoKey, out[i].HiKey, w.name, w.lo, w.hi)
		}
	}

	if in[0].Sample != "c5" || in[0].LoKey != 84 {
		t.Error("AssignKeyRanges() modified its input")
	}
}

func TestAssignKeyRanges_SameCenter(t *testing.T) {
	t.Parallel()

	out := AssignKeyRanges([]SampleMetadata{
		NewSampleMetadata(1, "a", 60),
		NewSampleMetadata(1, "b", 60),
		NewSampleMetadata(1, "c", 60),
	})

	prevHi := -1
	for i, r := range out {
		if r.LoKey > r.HiKey || r.LoKey != prevHi+1 {
			t.Errorf("region %d = %d..%d after %d", i, r.LoKey, r.HiKey, prevHi)
		}
		prevHi = r.HiKey
	}

	if prevHi != 127 {
		t.Errorf("last region ends at %d, want 127", prevHi)
	}
}

func TestAssignKeyRanges_Single(t *testing.T) {
	t.Parallel()

	out := AssignKeyRanges([]SampleMetadata{NewSampleMetadata(1, "a", 60)})
	if out[0].LoKey != 0 || out[0].HiKey != 127 {
		t.Errorf("single region = %d..%d, want 0..127", out[0].LoKey, out[0].HiKey)
	}

	if len(AssignKeyRanges(nil)) != 0 {
		t.Error("AssignKeyRanges(nil) returned regions")
	}
}
