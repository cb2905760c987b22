// SPDX-License-Identifier: EPL-2.0

package convert

import "fmt"

// exemptRate is the device's native rate. Originals at this rate may be
// converted to any standard rate, including higher ones.
const exemptRate = 48000

// Props describe a piece of audio as it would be written.
type Props struct {
	SampleRate int
	BitDepth   int
	Channels   int
}

// CacheKey renders p as "{rate}-{depth}-{channels}".
func (p Props) CacheKey() string {
	return fmt.Sprintf("%d-%d-%d", p.SampleRate, p.BitDepth, p.Channels)
}

func EffectiveSampleRate(original int, choice RateChoice) int {
	target := choice.Hz()
	if target == 0 {
		return original
	}

	if original == exemptRate {
		return target
	}

	return min(original, target)
}

// EffectiveBitDepth never raises the depth: asking for 24 bits from 16 bit
// material keeps 16.
func EffectiveBitDepth(original int, choice DepthChoice) int {
	switch choice {
	case Depth16:
		if original >= 16 {
			return 16
		}
	case Depth24:
		if original >= 24 {
			return 24
		}
	}

	return original
}

func EffectiveChannels(original int, choice ChannelChoice) int {
	if choice == ChannelsMono && original > 1 {
		return 1
	}

	return original
}

// Plan resolves req against the original properties.
func Plan(original Props, req Request) Props {
	return Props{
		SampleRate: EffectiveSampleRate(original.SampleRate, req.Rate),
		BitDepth:   EffectiveBitDepth(original.BitDepth, req.Depth),
		Channels:   EffectiveChannels(original.Channels, req.Channels),
	}
}

// WillConvert reports whether honouring req changes the audio at all.
func WillConvert(original Props, req Request) bool {
	depthChanges := req.Depth != DepthKeep && req.Depth != "" &&
		EffectiveBitDepth(original.BitDepth, req.Depth) != original.BitDepth

	return depthChanges ||
		EffectiveSampleRate(original.SampleRate, req.Rate) != original.SampleRate ||
		(req.Channels == ChannelsMono && original.Channels > 1)
}

// EncodeDepth maps an effective depth onto one the WAV codec can write.
// Depths up to 16 are written as 16 bit, deeper ones as 24 bit.
func EncodeDepth(depth int) int {
	if depth > 16 {
		return 24
	}

	return 16
}
