// SPDX-License-Identifier: EPL-2.0

package note

import "errors"

var (
	ErrBadNoteFormat   = errors.New("bad note format")
	ErrBadNote         = errors.New("bad note")
	ErrPatternMismatch = errors.New("filename does not match expected pattern")
)
