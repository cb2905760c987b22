// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile              = errors.New("not a WAV file")
	ErrMissingFmtChunk         = errors.New("missing fmt chunk")
	ErrTruncatedChunk          = errors.New("truncated chunk")
	ErrUnsupportedFormat       = errors.New("unsupported WAV sample format")
	ErrUnsupportedChannelCount = errors.New("unsupported channel count, expected 1 or 2")
	ErrUnsupportedBitDepth     = errors.New("unsupported bit depth, expected 16 or 24")
)
