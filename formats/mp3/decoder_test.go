// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"testing"
	"time"
)

// mockMP3Reader emits 16-bit little-endian PCM like gomp3.Decoder.
type mockMP3Reader struct {
	sampleRate int
	samples    []int16
	offset     int
	length     int64
	err        error
}

func (m *mockMP3Reader) SampleRate() int { return m.sampleRate }
func (m *mockMP3Reader) Length() int64   { return m.length }

func (m *mockMP3Reader) Read(buf []byte) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if m.offset >= len(m.samples) {
		return 0, io.EOF
	}

	count := min(len(buf)/2, len(m.samples)-m.offset)
	for i := range count {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(m.samples[m.offset+i]))
	}
	m.offset += count

	if m.offset >= len(m.samples) {
		return count * 2, io.EOF
	}
	return count * 2, nil
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	for _, data := range [][]byte{nil, []byte("This is not MP3 data")} {
		if _, err := (Decoder{}).Decode(bytes.NewReader(data)); err == nil {
			t.Errorf("Decode(%q) error = nil", data)
		}
	}
}

func TestSource_Metadata(t *testing.T) {
	t.Parallel()

	src := newSource(&mockMP3Reader{sampleRate: 44100})

	if src.SampleRate() != 44100 || src.Channels() != 2 {
		t.Errorf("format = %d ch @ %d Hz", src.Channels(), src.SampleRate())
	}
	if src.BufSize() != 4096 {
		t.Errorf("BufSize() = %d, want 4096", src.BufSize())
	}
	if err := src.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
}

func TestSource_TotalDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		length int64
		want   time.Duration
		ok     bool
	}{
		{"one second", 4 * 8000, time.Second, true},
		{"half second", 2 * 8000, 500 * time.Millisecond, true},
		{"unknown", -1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := newSource(&mockMP3Reader{sampleRate: 8000, length: tt.length})
			d, ok := src.TotalDuration()
			if d != tt.want || ok != tt.ok {
				t.Errorf("TotalDuration() = %v, %v; want %v, %v", d, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	src := newSource(&mockMP3Reader{
		sampleRate: 8000,
		samples:    []int16{0, 16384, 32767, -16384, -32768, 8192, -8192, 0},
	})

	dst := make([]float32, 8)
	n, err := src.ReadSamples(dst)
	if err != nil && err != io.EOF {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != 8 {
		t.Fatalf("ReadSamples() n = %d, want 8", n)
	}

	expected := []float32{0, 0.5, 1, -0.5, -1, 0.25, -0.25, 0}
	for i := range n {
		if math.Abs(float64(dst[i]-expected[i])) > 0.001 {
			t.Errorf("dst[%d] = %v, want %v", i, dst[i], expected[i])
		}
	}
}

func TestSource_ReadSamples_Chunks(t *testing.T) {
	t.Parallel()

	samples := make([]int16, 100)
	for i := range samples {
		samples[i] = int16(i * 100)
	}
	src := newSource(&mockMP3Reader{sampleRate: 8000, samples: samples})

	var got []float32
	dst := make([]float32, 6)
	for {
		n, err := src.ReadSamples(dst)
		got = append(got, dst[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
	}

	if len(got) != len(samples) {
		t.Fatalf("read %d samples, want %d", len(got), len(samples))
	}
	for i, s := range samples {
		if got[i] != float32(s)/32768 {
			t.Errorf("sample %d = %v, want %v", i, got[i], float32(s)/32768)
		}
	}
}

func TestSource_ReadSamples_GrowsBuffer(t *testing.T) {
	t.Parallel()

	src := newSource(&mockMP3Reader{sampleRate: 8000, samples: make([]int16, 10000)})
	n, _ := src.ReadSamples(make([]float32, 10000))
	if n != 10000 {
		t.Errorf("n = %d, want 10000", n)
	}
	if src.BufSize() < 10000 {
		t.Errorf("BufSize() = %d after large read", src.BufSize())
	}
}

func TestSource_ReadSamples_Error(t *testing.T) {
	t.Parallel()

	src := newSource(&mockMP3Reader{sampleRate: 8000, err: io.ErrUnexpectedEOF})
	if _, err := src.ReadSamples(make([]float32, 4)); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("err = %v", err)
	}
}

func BenchmarkSource_ReadSamples(b *testing.B) {
	samples := make([]int16, 44100*2)
	dst := make([]float32, 4096)

	b.ReportAllocs()
	b.ResetTimer()

	for b.Loop() {
		src := newSource(&mockMP3Reader{sampleRate: 44100, samples: samples})
		for {
			if _, err := src.ReadSamples(dst); err != nil {
				break
			}
		}
	}
}
