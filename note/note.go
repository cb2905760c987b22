// SPDX-License-Identifier: EPL-2.0

package note

import (
	"fmt"
	"strconv"
	"strings"
)

// letterOffsets is indexed by letter, A=0 .. G=6.
var letterOffsets = [7]int{33, 35, 24, 26, 28, 29, 31}

var chromaticNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteStringToMIDI converts a note name such as "C4", "f#3" or "Bb2" to its
// key number: octave*12 + letter offset + accidental.
func NoteStringToMIDI(s string) (int, error) {
	if len(s) < 2 {
		return 0, fmt.Errorf("%q: %w", s, ErrBadNoteFormat)
	}

	letter := strings.ToUpper(s[:1])[0]
	if letter < 'A' || letter > 'G' {
		return 0, fmt.Errorf("%q: %w", s, ErrBadNote)
	}

	rest := s[1:]
	sharpen := 0

	switch rest[0] {
	case '#':
		sharpen = 1
		rest = rest[1:]
	case 'b', 'B':
		sharpen = -1
		rest = rest[1:]
	}

	octave, err := strconv.Atoi(rest)
	if err != nil {
		return 0, fmt.Errorf("%q: octave: %w", s, ErrBadNoteFormat)
	}

	return octave*12 + letterOffsets[letter-'A'] + sharpen, nil
}

// MIDIToNoteString renders a key number with sharps-only chromatic names,
// placing C0 at 24.
func MIDIToNoteString(value int) string {
	octave := floorDiv(value, 12) - 2
	idx := value - floorDiv(value, 12)*12

	return chromaticNames[idx] + strconv.Itoa(octave)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}

	return q
}
