// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis files into an audio.Source using
// github.com/jfreymuth/oggvorbis.
//
// Vorbis has no inherent bit depth. The source reports 16 so that a "keep"
// depth request re-encodes at CD resolution.
package vorbis
