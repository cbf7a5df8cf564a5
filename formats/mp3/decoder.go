// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"
	"time"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/audframe/audio"
)

// go-mp3 always produces interleaved stereo, 16-bit little-endian.
const (
	channels       = 2
	bytesPerSample = 2
	bytesPerFrame  = channels * bytesPerSample
)

// mp3Reader is the part of gomp3.Decoder a source needs.
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

// lengther is implemented by gomp3.Decoder; Length is the decoded size in
// bytes, or -1 when the input cannot seek.
type lengther interface {
	Length() int64
}

type source struct {
	dec        mp3Reader
	sampleRate int
	duration   time.Duration
	buf        []byte
}

func newSource(dec mp3Reader) *source {
	s := &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		buf:        make([]byte, 8192),
	}
	if l, ok := dec.(lengther); ok && s.sampleRate > 0 {
		if n := l.Length(); n > 0 {
			frames := n / bytesPerFrame
			s.duration = time.Duration(frames) * time.Second / time.Duration(s.sampleRate)
		}
	}
	return s
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return channels }
func (s *source) Close() error    { return nil }

// BufSize is in samples, not bytes.
func (s *source) BufSize() int { return cap(s.buf) / bytesPerSample }

// TotalDuration is known only when the input was seekable.
func (s *source) TotalDuration() (time.Duration, bool) {
	return s.duration, s.duration > 0
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	need := len(dst) * bytesPerSample
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	n, err := s.dec.Read(s.buf)
	samples := n / bytesPerSample
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(s.buf[i*bytesPerSample:]))
		dst[i] = float32(v) / 32768.0
	}

	return samples, err
}

// Decoder opens MPEG-1/2 Layer III streams.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("decoding mp3 header: %w", err)
	}
	return newSource(dec), nil
}
