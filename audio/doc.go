// SPDX-License-Identifier: EPL-2.0

// Package audio provides the audio buffer model and the transforms applied
// to samples before they are written out.
//
// Two views of audio live here:
//   - Source, a pull-based interleaved stream produced by decoders
//   - Buffer, a fully decoded planar block with a fixed sample rate
//
// Collect turns a Source into a Buffer and Buffer.Reader goes the other way,
// so streaming stages can be reused on decoded material.
//
// # Channel Mixing
//
// MonoMixer averages channels on a stream. ToMono does the same for a
// Buffer and additionally rescales the result when the average peaks above
// full scale:
//
//	mono, err := audio.ToMono(buf)
//
// # Resampling
//
// Resampler is a streaming Catmull-Rom interpolator with a low-pass in
// front of it when downsampling. For whole buffers, Resample drives a
// ResampleBackend and guarantees the output length is
// ceil(frames * target / rate):
//
//	out, err := audio.Resample(ctx, audio.DefaultBackend(), buf, 22050)
//
// DefaultBackend uses a windowed-sinc polyphase filter; CubicBackend wraps
// the streaming Resampler. Resample gives up as soon as ctx is done and
// never hands back partial output.
//
// # Format Registry
//
// Registry maps format keys (usually file extensions) to decoders:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	src, err := registry.Decode(".wav", file)
//
// # Sample Format
//
// Samples are float32 with full scale at [-1.0, 1.0]. Values outside that
// range are allowed in buffers and are clamped only when quantised.
package audio
