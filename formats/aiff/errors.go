// SPDX-License-Identifier: EPL-2.0

package aiff

import "errors"

var (
	ErrNotAiffFile = errors.New("not an AIFF file")
	// ErrUnsupportedBitDepth is returned for anything but 8, 16, 24 or 32
	// bit integer PCM.
	ErrUnsupportedBitDepth   = errors.New("unsupported AIFF bit depth")
	ErrUnsupportedAiffLayout = errors.New("unsupported AIFF layout")
)
