// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"encoding/binary"
	"io"
	"math"
	"sync/atomic"

	"github.com/ik5/audframe/audio"
)

const bytesPerSample = 4

// streamReader renders a Stream as little-endian float32 bytes for oto.
type streamReader struct {
	s      audio.Stream
	pulled atomic.Int64
	done   atomic.Bool
}

func newStreamReader(s audio.Stream) *streamReader {
	return &streamReader{s: s}
}

// Read fills whole samples only. Once the stream ends it returns io.EOF.
func (r *streamReader) Read(p []byte) (int, error) {
	if r.done.Load() {
		return 0, io.EOF
	}

	n := 0
	for n+bytesPerSample <= len(p) {
		v, ok := r.s.Next()
		if !ok {
			r.done.Store(true)
			r.pulled.Add(int64(n / bytesPerSample))
			return n, io.EOF
		}
		binary.LittleEndian.PutUint32(p[n:], math.Float32bits(v))
		n += bytesPerSample
	}

	r.pulled.Add(int64(n / bytesPerSample))
	return n, nil
}

// Samples is how many samples have been handed to the device so far.
func (r *streamReader) Samples() int64 { return r.pulled.Load() }
