// SPDX-License-Identifier: EPL-2.0

// Package convert decides how a sample is rewritten for the device and
// performs the rewrite.
//
// A Request holds the user's choices (target rate, bit depth, channel
// layout). Plan turns it into effective properties that never exceed the
// original: no upsampling, no added bits, no mono to stereo. The single
// exception is 48 kHz material, the device's native rate, which may be
// converted to any standard rate.
//
//	eff := convert.Plan(sample.Original, convert.Request{
//	    Rate:     convert.Rate22050,
//	    Depth:    convert.Depth16,
//	    Channels: convert.ChannelsMono,
//	})
//
// Converter applies a plan: downmix, then resample, then encode. Each
// Sample carries its own Cache so repeated size queries for the same
// settings do not encode twice:
//
//	var cv convert.Converter
//	size, err := cv.ConvertedSize(ctx, sample, req)
package convert
