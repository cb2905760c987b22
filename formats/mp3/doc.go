// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 files into an audio.Source.
//
// github.com/hajimehoshi/go-mp3 always yields 16 bit stereo, mono files
// included, so the source reports two channels and a bit depth of 16.
// Downmixing happens later in the conversion pipeline.
package mp3
