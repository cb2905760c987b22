// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Full-scale multipliers used when quantising float samples.
const (
	MaxInt16Scale = 0x7FFF
	MaxInt24Scale = 0x7FFFFF

	MinInt24 = -8388608
	MaxInt24 = 8388607
)

// Clamp limits x to [-1, 1].
func Clamp(x float32) float32 {
	if x > 1 {
		return 1
	} else if x < -1 {
		return -1
	}

	return x
}

// FloatToInt16 clamps x, scales it by 0x7FFF and rounds half away from zero.
func FloatToInt16(x float32) int16 {
	return int16(math.Round(float64(Clamp(x)) * MaxInt16Scale))
}

// FloatToInt24 clamps x, scales it by 0x7FFFFF and rounds half away from zero.
// The result always fits in a signed 24 bit integer.
func FloatToInt24(x float32) int32 {
	v := int32(math.Round(float64(Clamp(x)) * MaxInt24Scale))
	if v > MaxInt24 {
		v = MaxInt24
	} else if v < MinInt24 {
		v = MinInt24
	}

	return v
}

// PutInt24 stores the low 24 bits of v into b, least significant byte first.
func PutInt24(b []byte, v int32) {
	_ = b[2] // bounds check hint
	u := uint32(v)
	b[0] = byte(u)
	b[1] = byte(u >> 8)
	b[2] = byte(u >> 16)
}

// Int24 reads a little-endian signed 24 bit integer from b.
func Int24(b []byte) int32 {
	_ = b[2]
	u := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
	if u&0x800000 != 0 {
		u |= 0xFF000000
	}

	return int32(u)
}
