// SPDX-License-Identifier: EPL-2.0

package frame

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		length   int
		wantErr  bool
	}{
		{name: "mono", channels: 1, length: 64},
		{name: "stereo", channels: 2, length: 1024},
		{name: "ambisonic order 1", channels: 4, length: 256},
		{name: "zero channels", channels: 0, length: 64, wantErr: true},
		{name: "zero length", channels: 2, length: 0, wantErr: true},
		{name: "negative", channels: -1, length: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b, err := New(tt.channels, tt.length)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidShape) {
					t.Fatalf("New() error = %v, want ErrInvalidShape", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}

			if b.NumChannels() != tt.channels {
				t.Errorf("NumChannels() = %d, want %d", b.NumChannels(), tt.channels)
			}
			if b.Len() != tt.length {
				t.Errorf("Len() = %d, want %d", b.Len(), tt.length)
			}

			for c := range tt.channels {
				if len(b.Channel(c)) != tt.length {
					t.Errorf("len(Channel(%d)) = %d, want %d", c, len(b.Channel(c)), tt.length)
				}
				for i, v := range b.Channel(c) {
					if v != 0 {
						t.Fatalf("Channel(%d)[%d] = %v, want silence", c, i, v)
					}
				}
			}
		})
	}
}

func TestBuffer_ChannelsDoNotOverlap(t *testing.T) {
	t.Parallel()

	b := MustNew(3, 4)
	for c := range 3 {
		for i := range 4 {
			b.Set(c, i, float32(c*10+i))
		}
	}

	for c := range 3 {
		for i := range 4 {
			if got, want := b.At(c, i), float32(c*10+i); got != want {
				t.Errorf("At(%d, %d) = %v, want %v", c, i, got, want)
			}
		}
	}

	// Appending to one channel must not clobber its neighbour.
	_ = append(b.Channel(0), 99)
	if b.At(1, 0) != 10 {
		t.Errorf("append to channel 0 overwrote channel 1: At(1, 0) = %v", b.At(1, 0))
	}
}

func TestBuffer_OutOfBoundsPanics(t *testing.T) {
	t.Parallel()

	b := MustNew(2, 8)

	tests := []struct {
		name string
		fn   func()
	}{
		{name: "channel past end", fn: func() { b.Set(2, 0, 1) }},
		{name: "sample past end", fn: func() { _ = b.At(0, 8) }},
		{name: "negative sample", fn: func() { _ = b.At(0, -1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestBuffer_CheckShape(t *testing.T) {
	t.Parallel()

	b := MustNew(2, 16)

	if err := b.CheckShape(2, 16); err != nil {
		t.Errorf("CheckShape(2, 16) = %v, want nil", err)
	}
	if err := b.CheckShape(1, 16); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("CheckShape(1, 16) = %v, want ErrShapeMismatch", err)
	}
	if err := b.CheckShape(2, 32); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("CheckShape(2, 32) = %v, want ErrShapeMismatch", err)
	}

	b.Channels()[1] = b.Channel(1)[:8]
	if err := b.CheckShape(2, 16); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("CheckShape after truncating a channel = %v, want ErrShapeMismatch", err)
	}
}

func TestBuffer_CopyFrom(t *testing.T) {
	t.Parallel()

	src := MustNew(2, 4)
	for i := range 4 {
		src.Set(0, i, float32(i))
		src.Set(1, i, float32(-i))
	}

	dst := MustNew(2, 4)
	dst.CopyFrom(src)

	for c := range 2 {
		for i := range 4 {
			if dst.At(c, i) != src.At(c, i) {
				t.Errorf("At(%d, %d) = %v, want %v", c, i, dst.At(c, i), src.At(c, i))
			}
		}
	}

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrShapeMismatch) {
			t.Errorf("CopyFrom mismatched shape recovered %v, want ErrShapeMismatch", r)
		}
	}()
	MustNew(1, 4).CopyFrom(src)
}

func TestBuffer_DeinterleaveRoundRobin(t *testing.T) {
	t.Parallel()

	b := MustNew(2, 4)
	// L0 R0 L1 R1 L2 R2 L3 R3
	src := []float32{1, -1, 2, -2, 3, -3, 4, -4}

	frames := b.Deinterleave(src)
	if frames != 4 {
		t.Errorf("Deinterleave() = %d, want 4", frames)
	}

	wantL := []float32{1, 2, 3, 4}
	wantR := []float32{-1, -2, -3, -4}
	for i := range 4 {
		if b.At(0, i) != wantL[i] {
			t.Errorf("left[%d] = %v, want %v", i, b.At(0, i), wantL[i])
		}
		if b.At(1, i) != wantR[i] {
			t.Errorf("right[%d] = %v, want %v", i, b.At(1, i), wantR[i])
		}
	}
}

func TestBuffer_DeinterleavePadsWithSilence(t *testing.T) {
	t.Parallel()

	b := MustNew(2, 4)
	for c := range 2 {
		for i := range 4 {
			b.Set(c, i, 9)
		}
	}

	// Three values: one full frame and half of the next.
	frames := b.Deinterleave([]float32{1, 2, 3})
	if frames != 2 {
		t.Errorf("Deinterleave() = %d, want 2", frames)
	}

	want := [][]float32{{1, 3, 0, 0}, {2, 0, 0, 0}}
	for c := range 2 {
		for i := range 4 {
			if b.At(c, i) != want[c][i] {
				t.Errorf("At(%d, %d) = %v, want %v", c, i, b.At(c, i), want[c][i])
			}
		}
	}
}

func TestBuffer_Interleave(t *testing.T) {
	t.Parallel()

	for _, channels := range []int{1, 2, 3} {
		b := MustNew(channels, 5)
		for c := range channels {
			for i := range 5 {
				b.Set(c, i, float32(i*channels+c))
			}
		}

		dst := make([]float32, channels*5)
		n := b.Interleave(dst, 3)
		if n != 3*channels {
			t.Errorf("%d channels: Interleave() = %d, want %d", channels, n, 3*channels)
		}
		for i := range n {
			if dst[i] != float32(i) {
				t.Errorf("%d channels: dst[%d] = %v, want %v", channels, i, dst[i], float32(i))
			}
		}
	}
}

func TestBuffer_Zero(t *testing.T) {
	t.Parallel()

	b := MustNew(2, 3)
	b.Set(1, 2, 0.5)
	b.Zero()

	if b.At(1, 2) != 0 {
		t.Errorf("At(1, 2) = %v after Zero, want 0", b.At(1, 2))
	}
}

func TestBuffer_DeinterleaveZeroAllocs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	b := MustNew(2, 512)
	src := make([]float32, 1024)
	dst := make([]float32, 1024)

	allocs := testing.AllocsPerRun(100, func() {
		b.Deinterleave(src)
		b.Interleave(dst, 512)
	})

	if allocs > 0 {
		t.Errorf("Deinterleave/Interleave allocated %v times, want 0", allocs)
	}
}

func BenchmarkBuffer_Deinterleave(b *testing.B) {
	buf := MustNew(2, 1024)
	src := make([]float32, 2048)

	b.ResetTimer()
	b.ReportAllocs()

	for range b.N {
		buf.Deinterleave(src)
	}
}
