// SPDX-License-Identifier: EPL-2.0

package frame

import "fmt"

// Buffer is a non-interleaved block of float32 samples: one contiguous run
// of Len() samples per channel. The shape never changes after New.
type Buffer struct {
	data     []float32
	channels [][]float32
	length   int
}

// New allocates a zeroed buffer of channels x length samples.
func New(channels, length int) (*Buffer, error) {
	if channels <= 0 || length <= 0 {
		return nil, fmt.Errorf("%w: %d channels x %d samples", ErrInvalidShape, channels, length)
	}

	b := &Buffer{
		data:     make([]float32, channels*length),
		channels: make([][]float32, channels),
		length:   length,
	}

	for c := range channels {
		// Full slice expression so append on a channel can never spill into
		// the next one.
		b.channels[c] = b.data[c*length : (c+1)*length : (c+1)*length]
	}

	return b, nil
}

// MustNew is like New but panics on an invalid shape.
func MustNew(channels, length int) *Buffer {
	b, err := New(channels, length)
	if err != nil {
		panic(err)
	}
	return b
}

func (b *Buffer) NumChannels() int { return len(b.channels) }
func (b *Buffer) Len() int         { return b.length }

// At returns the sample at index i of channel ch.
func (b *Buffer) At(ch, i int) float32 { return b.channels[ch][i] }

// Set stores v at index i of channel ch.
func (b *Buffer) Set(ch, i int, v float32) { b.channels[ch][i] = v }

// Channel returns the storage of one channel. The slice aliases the buffer.
func (b *Buffer) Channel(ch int) []float32 { return b.channels[ch] }

// Channels returns the per-channel table. The table and every slice in it
// stay valid for the lifetime of the buffer; callers must not retain them
// past the call they were handed the buffer for.
func (b *Buffer) Channels() [][]float32 { return b.channels }

// Zero fills the buffer with silence.
func (b *Buffer) Zero() {
	clear(b.data)
}

// CheckShape reports whether the buffer has exactly the given shape,
// including every channel slice still being length long.
func (b *Buffer) CheckShape(channels, length int) error {
	if len(b.channels) != channels || b.length != length {
		return fmt.Errorf("%w: have %dx%d, want %dx%d",
			ErrShapeMismatch, len(b.channels), b.length, channels, length)
	}
	for ch, samples := range b.channels {
		if len(samples) != length {
			return fmt.Errorf("%w: channel %d has %d samples, want %d",
				ErrShapeMismatch, ch, len(samples), length)
		}
	}
	return nil
}

// CopyFrom copies src into b. Both buffers must have the same shape.
func (b *Buffer) CopyFrom(src *Buffer) {
	if err := b.CheckShape(src.NumChannels(), src.Len()); err != nil {
		panic(err)
	}
	copy(b.data, src.data)
}

// Interleave writes the first frames sample frames of b into dst as
// interleaved samples (c0, c1, ..., c0, c1, ...). It returns the number of
// values written, which is frames*NumChannels().
func (b *Buffer) Interleave(dst []float32, frames int) int {
	frames = min(frames, b.length)
	ch := len(b.channels)
	n := frames * ch
	if len(dst) < n {
		panic(fmt.Errorf("%w: interleave needs %d values, dst holds %d", ErrShapeMismatch, n, len(dst)))
	}

	switch ch {
	case 1:
		copy(dst, b.channels[0][:frames])
	case 2:
		l, r := b.channels[0], b.channels[1]
		for i := range frames {
			dst[2*i] = l[i]
			dst[2*i+1] = r[i]
		}
	default:
		for c, samples := range b.channels {
			for i := range frames {
				dst[i*ch+c] = samples[i]
			}
		}
	}

	return n
}

// Deinterleave distributes src round-robin across the channels of b, the
// sample index advancing every NumChannels() values. Positions src does not
// reach are set to silence. It returns the number of sample frames touched
// by src, counting a trailing partial frame as one.
func (b *Buffer) Deinterleave(src []float32) int {
	ch := len(b.channels)
	n := min(len(src), ch*b.length)

	for idx := range n {
		b.channels[idx%ch][idx/ch] = src[idx]
	}
	for idx := n; idx < ch*b.length; idx++ {
		b.channels[idx%ch][idx/ch] = 0
	}

	return (n + ch - 1) / ch
}
