// SPDX-License-Identifier: EPL-2.0

// Package patch builds the JSON document that maps samples onto keys.
//
// Every sample becomes a SampleMetadata region. Regions are inserted into a
// Template, which keeps all other fields of the patch as raw JSON:
//
//	regions := []patch.SampleMetadata{
//	    patch.NewSampleMetadata(frames, "kick.wav", patch.DrumSlotKey(0)),
//	}
//	doc, err := patch.Build(patch.DrumTemplate(), regions)
//
// Exported regions loop over 25%..75% of the sample unless the source file
// carried its own loop points.
package patch
