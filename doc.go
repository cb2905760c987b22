// SPDX-License-Identifier: EPL-2.0

// Package patchkit turns audio samples into WAV files and key regions for a
// sampler or drum machine patch.
//
// LoadSample decodes a file once and gathers what is known about it: the
// decoded audio, the original format, embedded root note and loop points
// for WAV input, and any note or slot number in the filename. Export then
// rewrites the audio with the requested settings and describes it as a
// patch region:
//
//	loaded, err := patchkit.LoadSample(ctx, nil, "Piano C4.wav", data)
//	if err != nil {
//	    return err
//	}
//
//	var conv convert.Converter
//	out, err := patchkit.Export(ctx, &conv, loaded, convert.Request{
//	    Rate:     convert.Rate22050,
//	    Channels: convert.ChannelsMono,
//	}, loaded.Name()+".wav", loaded.Key(60))
//
// The regions of all exported samples are combined with patch.Build.
//
// # Packages
//
//   - audio: buffers, streams, downmixing and resampling
//   - formats/wav: the WAV codec and chunk reader; formats/aiff, formats/mp3
//     and formats/vorbis decode other inputs
//   - convert: the conversion planner and per-sample result cache
//   - note: filename and note name parsing
//   - patch: region metadata and patch documents
package patchkit
