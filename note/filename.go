// SPDX-License-Identifier: EPL-2.0

package note

import (
	"fmt"
	"path"
	"regexp"
	"strconv"
	"strings"
)

var (
	extensionRe = regexp.MustCompile(`\.[^./\\]+$`)
	filenameRe  = regexp.MustCompile(`(?i)^(.*?)[ -]?([A-G][#b]?\d|\d{1,3})$`)
	noteTokenRe = regexp.MustCompile(`(?i)^[A-G][#b]?\d$`)
	disallowed  = regexp.MustCompile(`[^A-Za-z0-9 #\-().]`)
)

// Parsed is the result of ParseFilename.
type Parsed struct {
	BaseName string
	// KeyOrIndex is a key number when IsNote is set, a slot index otherwise.
	KeyOrIndex int
	IsNote     bool
}

// StripExtension removes a trailing ".ext" from name.
func StripExtension(name string) string {
	return extensionRe.ReplaceAllString(name, "")
}

// ParseFilename extracts the base name and trailing note or slot number from
// a sample filename. Directories in name are ignored.
func ParseFilename(name string) (Parsed, error) {
	stem := StripExtension(path.Base(strings.ReplaceAll(name, `\`, "/")))

	m := filenameRe.FindStringSubmatch(stem)
	if m == nil {
		return Parsed{}, fmt.Errorf("%q: %w", name, ErrPatternMismatch)
	}

	prefix, token := m[1], m[2]
	parsed := Parsed{BaseName: SanitizeName(prefix)}

	if noteTokenRe.MatchString(token) {
		key, err := NoteStringToMIDI(token)
		if err != nil {
			return Parsed{}, err
		}

		parsed.KeyOrIndex = key
		parsed.IsNote = true

		return parsed, nil
	}

	n, err := strconv.Atoi(token)
	if err != nil {
		return Parsed{}, fmt.Errorf("%q: %w", name, ErrPatternMismatch)
	}
	parsed.KeyOrIndex = n

	return parsed, nil
}

// SanitizeName drops every character outside letters, digits, space and
// "#-().".
func SanitizeName(name string) string {
	return disallowed.ReplaceAllString(name, "")
}

// BaseName returns the sanitized file stem, for use when a filename carries
// no key information.
func BaseName(name string) string {
	return SanitizeName(StripExtension(path.Base(strings.ReplaceAll(name, `\`, "/"))))
}
