// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"
	"time"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/audframe/audio"
)

// oggReader is the part of oggvorbis.Reader a source needs.
type oggReader interface {
	SampleRate() int
	Channels() int
	// Read returns the number of values decoded, not frames.
	Read([]float32) (int, error)
}

// lengther is implemented by oggvorbis.Reader; Length counts samples per
// channel and is zero when unknown.
type lengther interface {
	Length() int64
}

type source struct {
	dec        oggReader
	sampleRate int
	channels   int
	duration   time.Duration
}

func newSource(dec oggReader) *source {
	s := &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   dec.Channels(),
	}
	if l, ok := dec.(lengther); ok && s.sampleRate > 0 {
		if n := l.Length(); n > 0 {
			s.duration = time.Duration(n) * time.Second / time.Duration(s.sampleRate)
		}
	}
	return s
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return 4096 }

func (s *source) TotalDuration() (time.Duration, bool) {
	return s.duration, s.duration > 0
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	// Whole frames only, so a read never ends between channels.
	whole := len(dst) - len(dst)%s.channels
	if whole == 0 {
		return 0, nil
	}
	return s.dec.Read(dst[:whole])
}

// Decoder opens Ogg Vorbis streams.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("decoding vorbis header: %w", err)
	}
	return newSource(dec), nil
}
