// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
	"time"
)

// maxEmptyReads bounds how many (0, nil) reads a SampleReader tolerates
// before giving up with io.ErrNoProgress.
const maxEmptyReads = 100

// SampleReader adapts a bulk Source to the per-sample Stream contract.
// It reads one block of src.BufSize() samples at a time and hands them out
// individually, so no allocation happens after construction.
type SampleReader struct {
	src  Source
	buf  []float32
	pos  int
	n    int
	done bool
	err  error

	duration    time.Duration
	hasDuration bool
}

func NewSampleReader(src Source) *SampleReader {
	channels := max(src.Channels(), 1)
	size := src.BufSize()
	if size <= 0 {
		size = 4096
	}
	// Whole sample frames only, never less than one.
	size = max(size-size%channels, channels)

	r := &SampleReader{
		src: src,
		buf: make([]float32, size),
	}

	if d, ok := src.(Durationer); ok {
		r.duration, r.hasDuration = d.TotalDuration()
	}

	return r
}

func (r *SampleReader) Channels() int   { return r.src.Channels() }
func (r *SampleReader) SampleRate() int { return r.src.SampleRate() }

func (r *SampleReader) CurrentFrameLen() (int, bool) {
	if r.pos < r.n {
		return r.n - r.pos, true
	}
	return 0, false
}

func (r *SampleReader) TotalDuration() (time.Duration, bool) {
	return r.duration, r.hasDuration
}

func (r *SampleReader) Next() (float32, bool) {
	if r.pos >= r.n && !r.fill() {
		return 0, false
	}

	v := r.buf[r.pos]
	r.pos++
	return v, true
}

// Err returns the first non-EOF error the underlying source reported.
func (r *SampleReader) Err() error { return r.err }

func (r *SampleReader) Close() error {
	err := r.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (r *SampleReader) fill() bool {
	r.pos, r.n = 0, 0

	for empty := 0; !r.done; empty++ {
		if empty >= maxEmptyReads {
			r.done, r.err = true, io.ErrNoProgress
			break
		}

		n, err := r.src.ReadSamples(r.buf)
		if err != nil {
			r.done = true
			if !errors.Is(err, io.EOF) {
				r.err = err
			}
		}
		if n > 0 {
			r.n = n
			return true
		}
	}

	return false
}

// StreamSource adapts a Stream back to the bulk Source contract so that
// per-sample pipelines can feed the Resampler, the ChannelMixer or an
// encoder.
type StreamSource struct {
	s       Stream
	bufSize int
	eof     bool
}

func NewStreamSource(s Stream, bufSize int) *StreamSource {
	if bufSize <= 0 {
		bufSize = 4096
	}
	return &StreamSource{s: s, bufSize: bufSize}
}

func (s *StreamSource) SampleRate() int { return s.s.SampleRate() }
func (s *StreamSource) Channels() int   { return s.s.Channels() }
func (s *StreamSource) BufSize() int    { return s.bufSize }

func (s *StreamSource) TotalDuration() (time.Duration, bool) {
	return s.s.TotalDuration()
}

// Close closes the wrapped stream when it implements io.Closer.
func (s *StreamSource) Close() error {
	if c, ok := s.s.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return fmt.Errorf("%w", err)
		}
	}
	return nil
}

// ReadSamples pulls len(dst) samples from the stream. A trailing partial
// sample frame is completed with silence.
func (s *StreamSource) ReadSamples(dst []float32) (int, error) {
	channels := s.s.Channels()
	if len(dst)%channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if s.eof {
		return 0, io.EOF
	}

	n := 0
	for n < len(dst) {
		v, ok := s.s.Next()
		if !ok {
			s.eof = true
			break
		}
		dst[n] = v
		n++
	}

	for n%channels != 0 {
		dst[n] = 0
		n++
	}

	if s.eof {
		if n == 0 {
			return 0, io.EOF
		}
		return n, io.EOF
	}
	return n, nil
}

type silence struct {
	channels  int
	rate      int
	remaining int
	unbounded bool
}

// Silence returns a stream of zeros. samples is the total number of values
// (not frames) to produce; a negative count never ends.
func Silence(channels, rate, samples int) Stream {
	return &silence{
		channels:  channels,
		rate:      rate,
		remaining: samples,
		unbounded: samples < 0,
	}
}

func (s *silence) Channels() int   { return s.channels }
func (s *silence) SampleRate() int { return s.rate }

func (s *silence) CurrentFrameLen() (int, bool) {
	if s.unbounded {
		return 0, false
	}
	return s.remaining, true
}

func (s *silence) TotalDuration() (time.Duration, bool) {
	if s.unbounded {
		return 0, false
	}
	return durationOf(int64(s.remaining/max(s.channels, 1)), s.rate), true
}

func (s *silence) Next() (float32, bool) {
	if s.unbounded {
		return 0, true
	}
	if s.remaining <= 0 {
		return 0, false
	}
	s.remaining--
	return 0, true
}
