// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides deterministic sources and streams for tests.
package audiotest

import (
	"io"
	"math"
	"time"
)

// Waveform returns the value of one sample for a channel.
type Waveform func(sample int, channel int) float32

// MockSource is a bulk source generating totalSamples frames of waveform.
// It implements audio.Source without importing it to avoid cycles.
type MockSource struct {
	sampleRate   int
	channels     int
	totalSamples int // per channel
	generated    int // per channel
	waveform     Waveform
	closed       bool
}

func NewMockSource(sampleRate, channels, totalSamples int, waveform Waveform) *MockSource {
	return &MockSource{
		sampleRate:   sampleRate,
		channels:     channels,
		totalSamples: totalSamples,
		waveform:     waveform,
	}
}

// NewSilentSource creates a mock source that generates silence.
func NewSilentSource(sampleRate, channels, totalSamples int) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, Constant(0))
}

// NewSineSource creates a mock source that generates a sine wave.
func NewSineSource(sampleRate, channels, totalSamples int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, Sine(sampleRate, frequency))
}

// NewConstantSource creates a mock source with constant value.
func NewConstantSource(sampleRate, channels, totalSamples int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, Constant(value))
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }

func (m *MockSource) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockSource) Closed() bool { return m.closed }

func (m *MockSource) TotalDuration() (time.Duration, bool) {
	return time.Duration(m.totalSamples) * time.Second / time.Duration(m.sampleRate), true
}

// Reset rewinds the source to its first sample.
func (m *MockSource) Reset() {
	m.generated = 0
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.generated >= m.totalSamples {
		return 0, io.EOF
	}

	frames := min(len(dst)/m.channels, m.totalSamples-m.generated)
	for f := range frames {
		for ch := range m.channels {
			dst[f*m.channels+ch] = m.waveform(m.generated+f, ch)
		}
	}
	m.generated += frames

	if m.generated >= m.totalSamples {
		return frames * m.channels, io.EOF
	}
	return frames * m.channels, nil
}

// Stream is a per-sample stream over a fixed slice of interleaved values.
// It counts how many values were pulled so tests can assert laziness.
type Stream struct {
	channels int
	rate     int
	values   []float32
	pos      int
	pulls    int
	duration time.Duration
	hasDur   bool
}

// NewStream returns a stream that yields values in order and then ends.
func NewStream(channels, rate int, values []float32) *Stream {
	return &Stream{channels: channels, rate: rate, values: values}
}

// Ramp returns a stream of n values 1, 2, 3, ... n.
func Ramp(channels, rate, n int) *Stream {
	values := make([]float32, n)
	for i := range values {
		values[i] = float32(i + 1)
	}
	return NewStream(channels, rate, values)
}

// WithDuration makes TotalDuration report d.
func (s *Stream) WithDuration(d time.Duration) *Stream {
	s.duration, s.hasDur = d, true
	return s
}

func (s *Stream) Channels() int   { return s.channels }
func (s *Stream) SampleRate() int { return s.rate }

func (s *Stream) CurrentFrameLen() (int, bool) {
	return len(s.values) - s.pos, true
}

func (s *Stream) TotalDuration() (time.Duration, bool) {
	return s.duration, s.hasDur
}

func (s *Stream) Next() (float32, bool) {
	s.pulls++
	if s.pos >= len(s.values) {
		return 0, false
	}
	v := s.values[s.pos]
	s.pos++
	return v, true
}

// Consumed is the number of values handed out so far.
func (s *Stream) Consumed() int { return s.pos }

// Pulls is the number of Next calls, including those past the end.
func (s *Stream) Pulls() int { return s.pulls }

// Endless is a stream that never ends, yielding waveform values round-robin.
type Endless struct {
	channels int
	rate     int
	waveform Waveform
	idx      int
}

func NewEndless(channels, rate int, waveform Waveform) *Endless {
	return &Endless{channels: channels, rate: rate, waveform: waveform}
}

func (e *Endless) Channels() int                        { return e.channels }
func (e *Endless) SampleRate() int                      { return e.rate }
func (e *Endless) CurrentFrameLen() (int, bool)         { return 0, false }
func (e *Endless) TotalDuration() (time.Duration, bool) { return 0, false }

func (e *Endless) Next() (float32, bool) {
	v := e.waveform(e.idx/e.channels, e.idx%e.channels)
	e.idx++
	return v, true
}

// Constant returns a waveform with the same value everywhere.
func Constant(value float32) Waveform {
	return func(int, int) float32 { return value }
}

// Sine returns a sine waveform at frequency Hz, identical on every channel.
func Sine(sampleRate int, frequency float64) Waveform {
	return func(sample int, _ int) float32 {
		t := float64(sample) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	}
}
