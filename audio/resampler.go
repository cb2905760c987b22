// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"math"

	"github.com/ik5/patchkit/utils"
)

// Resampler streams from src to a target sample rate using Catmull-Rom
// interpolation. Works on interleaved samples and preserves channel count.
// When downsampling, a one-pole low-pass tuned to the target Nyquist
// frequency runs ahead of the interpolator.
type Resampler struct {
	src      Source
	dstRate  int
	step     float64 // source frames advanced per output frame
	channels int

	// window[0..3] hold frames t-1, t0, t+1, t+2 around pos.
	window [4][]float32
	valid  [4]bool
	primed bool

	pos float64

	frameBuf []float32
	eof      bool

	lowpass bool
	seeded  bool
	alpha   float32
	state   []float32
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	step := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:      src,
		dstRate:  dstRate,
		step:     step,
		channels: channels,
		frameBuf: make([]float32, channels),
		state:    make([]float32, channels),
	}

	if step > 1 {
		// cutoff at the destination Nyquist frequency
		cutoff := float64(dstRate) / 2
		r.lowpass = true
		r.alpha = float32(1 - math.Exp(-2*math.Pi*cutoff/float64(src.SampleRate())))
	}

	for i := range r.window {
		r.window[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	err := r.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// readFrame reads one source frame into dst, applying the low-pass when
// enabled. ok is false once the source has no more frames.
func (r *Resampler) readFrame(dst []float32) (bool, error) {
	if r.eof {
		return false, nil
	}

	n, err := r.src.ReadSamples(r.frameBuf)
	if err == io.EOF {
		r.eof = true
	} else if err != nil {
		return false, fmt.Errorf("%w", err)
	}

	if n < r.channels {
		r.eof = true
		return false, nil
	}

	copy(dst, r.frameBuf)
	if r.lowpass {
		if !r.seeded {
			// start the filter at the first sample to avoid a fade-in
			copy(r.state, dst)
			r.seeded = true
		}

		for c := range r.channels {
			r.state[c] += r.alpha * (dst[c] - r.state[c])
			dst[c] = r.state[c]
		}
	}

	return true, nil
}

func (r *Resampler) prime() error {
	r.primed = true

	ok, err := r.readFrame(r.window[1])
	if err != nil || !ok {
		return err
	}

	r.valid[1] = true
	for i := 2; i < 4; i++ {
		ok, err := r.readFrame(r.window[i])
		if err != nil {
			return err
		}
		r.valid[i] = ok
	}

	return nil
}

// advance shifts the window one frame forward.
func (r *Resampler) advance() error {
	r.window[0], r.window[1], r.window[2], r.window[3] = r.window[1], r.window[2], r.window[3], r.window[0]
	r.valid[0], r.valid[1], r.valid[2] = r.valid[1], r.valid[2], r.valid[3]

	ok, err := r.readFrame(r.window[3])
	if err != nil {
		return err
	}
	r.valid[3] = ok

	return nil
}

// ReadSamples produces dst samples at the target rate.
// dst length should be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	written := 0
	framesNeeded := len(dst) / r.channels

	for written < framesNeeded {
		for r.pos >= 1 {
			r.pos--
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}

		if !r.valid[1] {
			return written * r.channels, io.EOF
		}

		x := float32(r.pos)
		out := dst[written*r.channels : (written+1)*r.channels]

		for c := range r.channels {
			y1 := r.window[1][c]
			y0, y2, y3 := y1, y1, y1

			if r.valid[0] {
				y0 = r.window[0][c]
			}

			if r.valid[2] {
				y2 = r.window[2][c]
				y3 = y2
			}

			if r.valid[3] {
				y3 = r.window[3][c]
			}

			out[c] = utils.CubicInterpolate(y0, y1, y2, y3, x)
		}

		written++
		r.pos += r.step
	}

	return written * r.channels, nil
}
