// SPDX-License-Identifier: EPL-2.0

// Package seekbuf adapts plain readers for decoders that need to seek.
package seekbuf

import (
	"errors"
	"fmt"
	"io"
)

var (
	ErrInvalidWhence    = errors.New("invalid whence")
	ErrNegativePosition = errors.New("negative position")
)

// From returns r itself when it can already seek, otherwise it reads r
// fully into memory.
func From(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("buffering input: %w", err)
	}

	return New(data), nil
}

// Reader is an in-memory io.ReadSeeker.
type Reader struct {
	data   []byte
	offset int64
}

func New(data []byte) *Reader {
	return &Reader{data: data}
}

func (rs *Reader) Read(p []byte) (int, error) {
	if rs.offset >= int64(len(rs.data)) {
		return 0, io.EOF
	}

	n := copy(p, rs.data[rs.offset:])
	rs.offset += int64(n)

	return n, nil
}

func (rs *Reader) Seek(offset int64, whence int) (int64, error) {
	var next int64

	switch whence {
	case io.SeekStart:
		next = offset
	case io.SeekCurrent:
		next = rs.offset + offset
	case io.SeekEnd:
		next = int64(len(rs.data)) + offset
	default:
		return 0, fmt.Errorf("%d: %w", whence, ErrInvalidWhence)
	}

	if next < 0 {
		return 0, ErrNegativePosition
	}

	rs.offset = next

	return next, nil
}
