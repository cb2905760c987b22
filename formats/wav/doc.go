// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes the WAV files exchanged with the sampler.
//
// # Encoding
//
// Encode writes an audio.Buffer as canonical 44 byte header PCM at 16 or
// 24 bits. Mono and stereo are the only accepted layouts:
//
//	data, err := wav.Encode(buf, 24)
//	if errors.Is(err, wav.ErrUnsupportedChannelCount) {
//	    // downmix first
//	}
//
// Samples are clamped to [-1, 1], scaled by 0x7FFF or 0x7FFFFF and rounded
// half away from zero. The output length is always
// EncodedSize(frames, channels, bitDepth).
//
// # Metadata
//
// ReadMetadata walks the RIFF chunk list of an existing file and reports
// its format together with the root note and first loop of a smpl chunk:
//
//	meta, err := wav.ReadMetadata(data, "pad C3.wav")
//	if err == nil && meta.HasLoopData {
//	    fmt.Println(meta.LoopStartFrame, meta.LoopEndFrame)
//	}
//
// # Decoding
//
// Decoder turns integer PCM files (8, 16, 24 or 32 bits) into an
// audio.Source through github.com/go-audio/wav. The source also reports the
// bit depth it was decoded from.
package wav
