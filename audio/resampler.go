// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ik5/audframe/utils"
)

// Resampler streams from src to target sample rate using cubic interpolation.
// Works on interleaved samples; preserves channel count.
// A one-pole low-pass runs on the input when downsampling.
type Resampler struct {
	src      Source
	dstRate  int
	ratio    float64 // source samples per output sample
	channels int

	// Four-frame window for cubic interpolation:
	// window[0] = t-1, window[1] = t0, window[2] = t+1, window[3] = t+2
	window [4][]float32
	filled [4]bool
	primed bool

	// Fractional position between window[1] and window[2].
	pos float64

	srcBuf []float32
	eof    bool
	done   bool

	lowpass     bool
	alpha       float32
	filterState []float32
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	ratio := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:         src,
		dstRate:     dstRate,
		ratio:       ratio,
		channels:    channels,
		srcBuf:      make([]float32, channels),
		lowpass:     ratio > 1.0,
		alpha:       0.5,
		filterState: make([]float32, channels),
	}

	for i := range r.window {
		r.window[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

// TotalDuration is unchanged by resampling.
func (r *Resampler) TotalDuration() (time.Duration, bool) {
	if d, ok := r.src.(Durationer); ok {
		return d.TotalDuration()
	}
	return 0, false
}

func (r *Resampler) Close() error {
	err := r.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// readFrame reads one sample frame from src into dst, filtered when
// downsampling. ok reports whether a frame was read.
func (r *Resampler) readFrame(dst []float32) (ok bool, err error) {
	if r.eof {
		return false, nil
	}

	n, err := r.src.ReadSamples(r.srcBuf)
	if n > 0 {
		copy(dst, r.srcBuf[:n])
		if r.lowpass {
			for c := range r.channels {
				// y[n] = a*x[n] + (1-a)*y[n-1]
				dst[c] = r.alpha*dst[c] + (1-r.alpha)*r.filterState[c]
				r.filterState[c] = dst[c]
			}
		}
	}

	if errors.Is(err, io.EOF) {
		r.eof = true
		return n > 0, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w", err)
	}
	return n > 0, nil
}

// prime fills the interpolation window. Missing trailing frames repeat the
// last frame that was read.
func (r *Resampler) prime() error {
	r.primed = true

	for i := range r.window {
		if i == 0 && r.lowpass {
			// Seed the filter with the first input frame to avoid a fade-in.
			n, err := r.src.ReadSamples(r.srcBuf)
			if n > 0 {
				copy(r.filterState, r.srcBuf[:n])
				copy(r.window[0], r.srcBuf[:n])
				r.filled[0] = true
			}
			if errors.Is(err, io.EOF) {
				r.eof = true
			} else if err != nil {
				return fmt.Errorf("%w", err)
			}
			if r.filled[0] {
				continue
			}
			return io.EOF
		}

		ok, err := r.readFrame(r.window[i])
		if err != nil {
			return err
		}
		if !ok {
			if i == 0 {
				return io.EOF
			}
			for j := i; j < len(r.window); j++ {
				copy(r.window[j], r.window[i-1])
				r.filled[j] = true
			}
			return nil
		}
		r.filled[i] = true
	}

	return nil
}

// shift slides the window forward by one source frame.
func (r *Resampler) shift() error {
	if r.eof {
		return io.EOF
	}

	first := r.window[0]
	copy(r.window[:], r.window[1:])
	copy(r.filled[:], r.filled[1:])
	r.window[3] = first

	ok, err := r.readFrame(r.window[3])
	if err != nil {
		return err
	}
	r.filled[3] = ok

	if !ok && r.eof {
		return io.EOF
	}
	return nil
}

// ReadSamples produces dst samples at the destination rate.
// dst length should be a multiple of r.channels.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if r.done {
		return 0, io.EOF
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			if errors.Is(err, io.EOF) {
				r.done = true
			}
			return 0, err
		}
	}

	written := 0
	framesNeeded := len(dst) / r.channels

	for written < framesNeeded {
		for r.pos >= 1.0 {
			r.pos -= 1.0
			if err := r.shift(); err != nil {
				if errors.Is(err, io.EOF) {
					r.done = true
					return written * r.channels, io.EOF
				}
				return written * r.channels, err
			}
		}

		if !r.filled[1] || !r.filled[2] {
			r.done = true
			return written * r.channels, io.EOF
		}

		alpha := float32(r.pos)
		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range out {
			y1, y2 := r.window[1][c], r.window[2][c]
			y0, y3 := y1, y2
			if r.filled[0] {
				y0 = r.window[0][c]
			}
			if r.filled[3] {
				y3 = r.window[3][c]
			}
			out[c] = utils.CubicInterpolate(y0, y1, y2, y3, alpha)
		}

		written++
		r.pos += r.ratio
	}

	return written * r.channels, nil
}
