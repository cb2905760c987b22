// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
)

// chunk renders a RIFF sub-chunk, padding odd payloads.
func chunk(id string, payload []byte) []byte {
	out := make([]byte, 8, 8+len(payload)+1)
	copy(out[0:4], id)
	binary.LittleEndian.PutUint32(out[4:8], uint32(len(payload)))
	out = append(out, payload...)

	if len(payload)%2 == 1 {
		out = append(out, 0)
	}

	return out
}

func riffFile(chunks ...[]byte) []byte {
	var body []byte
	for _, c := range chunks {
		body = append(body, c...)
	}

	out := make([]byte, 12, 12+len(body))
	copy(out[0:4], "RIFF")
	binary.LittleEndian.PutUint32(out[4:8], uint32(4+len(body)))
	copy(out[8:12], "WAVE")

	return append(out, body...)
}

func fmtPayload(channels, rate, bits int) []byte {
	p := make([]byte, 16)
	blockAlign := channels * bits / 8
	binary.LittleEndian.PutUint16(p[0:2], 1)
	binary.LittleEndian.PutUint16(p[2:4], uint16(channels))
	binary.LittleEndian.PutUint32(p[4:8], uint32(rate))
	binary.LittleEndian.PutUint32(p[8:12], uint32(rate*blockAlign))
	binary.LittleEndian.PutUint16(p[12:14], uint16(blockAlign))
	binary.LittleEndian.PutUint16(p[14:16], uint16(bits))

	return p
}

func smplPayload(rootNote uint32, loops ...[2]uint32) []byte {
	p := make([]byte, 36+24*len(loops))
	binary.LittleEndian.PutUint32(p[12:16], rootNote)
	binary.LittleEndian.PutUint32(p[28:32], uint32(len(loops)))

	for i, l := range loops {
		base := 36 + 24*i
		binary.LittleEndian.PutUint32(p[base+8:base+12], l[0])
		binary.LittleEndian.PutUint32(p[base+12:base+16], l[1])
	}

	return p
}
