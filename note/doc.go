// SPDX-License-Identifier: EPL-2.0

// Package note maps sample filenames to key assignments.
//
// Filenames are expected to end in either a note name ("kick C4.wav",
// "pad-F#3.aif") or a slot number ("snare-12.wav"). ParseFilename splits the
// name into a sanitized base name and the key or slot it encodes.
//
// Note names are turned into numbers with a fixed per-letter offset table
// ({A:33, B:35, C:24, D:26, E:28, F:29, G:31} plus 12 per octave), which puts
// C0 at 24. MIDIToNoteString renders numbers with sharps-only chromatic
// names, so flats do not survive a round trip: "Bb2" comes back as "A#2".
package note
