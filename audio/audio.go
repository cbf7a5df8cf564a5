// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"strings"
	"sync"
	"time"
)

// Source is a bulk, interleaved PCM reader.
type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns number of float32 values written (not frames). When n == 0 with err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)

	BufSize() int

	// Close releases any resources.
	Close() error
}

// Stream yields one sample at a time. Multi-channel samples arrive
// round-robin: channel 0, channel 1, ..., channel 0, channel 1, ...
//
// Channels and SampleRate are fixed for the lifetime of the stream.
type Stream interface {
	Channels() int
	SampleRate() int
	// CurrentFrameLen is a read-size hint: how many samples are guaranteed
	// before the shape could change. ok is false when unknown.
	CurrentFrameLen() (n int, ok bool)
	// Next pulls exactly one sample. ok is false once the stream is
	// exhausted.
	Next() (sample float32, ok bool)
	// TotalDuration is advisory only.
	TotalDuration() (d time.Duration, ok bool)
}

// Durationer is implemented by sources that know their total length.
type Durationer interface {
	TotalDuration() (time.Duration, bool)
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Registry for decoders by format key (e.g., "wav", "mp3", "ogg").
type Registry struct {
	codecs map[string]Decoder

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		mtx:    &sync.Mutex{},
	}
}

// Register adds d under format. Keys are case-insensitive and a leading
// dot is ignored, so ".WAV" and "wav" name the same decoder.
func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[formatKey(format)] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[formatKey(format)]
	return d, ok
}

// Decode looks up the decoder for format and decodes r with it.
func (r *Registry) Decode(format string, rd io.Reader) (Source, error) {
	d, ok := r.Get(format)
	if !ok {
		return nil, ErrUnknownFormat
	}
	return d.Decode(rd)
}

func formatKey(format string) string {
	return strings.ToLower(strings.TrimPrefix(format, "."))
}

// durationOf converts a per-channel sample count to a duration.
func durationOf(frames int64, rate int) time.Duration {
	if rate <= 0 {
		return 0
	}
	return time.Duration(frames) * time.Second / time.Duration(rate)
}
