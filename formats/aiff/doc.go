// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes uncompressed AIFF files through
// github.com/go-audio/aiff.
//
// Signed integer PCM of 8, 16, 24 and 32 bits is accepted and scaled to
// float32 in [-1, 1). The returned source also implements audio.BitDepther
// so callers can keep the original resolution when re-encoding.
//
//	src, err := aiff.Decoder{}.Decode(f)
//	if errors.Is(err, aiff.ErrUnsupportedBitDepth) {
//	    // AIFF-C or an odd sample size
//	}
//
// Readers that cannot seek are buffered in memory first.
package aiff
