// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/ik5/audframe/internal/audiotest"
)

// mockDecoder is a test decoder implementation
type mockDecoder struct {
	name string
}

func (d *mockDecoder) Decode(r io.Reader) (Source, error) {
	return audiotest.NewSilentSource(44100, 2, 100), nil
}

// failingDecoder always returns an error
type failingDecoder struct{}

func (d *failingDecoder) Decode(r io.Reader) (Source, error) {
	return nil, errors.New("decode failed")
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	wavDecoder := &mockDecoder{name: "wav"}
	mp3Decoder := &mockDecoder{name: "mp3"}

	registry.Register("wav", wavDecoder)
	registry.Register(".MP3", mp3Decoder)

	tests := []struct {
		format string
		want   Decoder
		wantOK bool
	}{
		{"wav", wavDecoder, true},
		{".wav", wavDecoder, true},
		{"WAV", wavDecoder, true},
		{"mp3", mp3Decoder, true},
		{"flac", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			got, ok := registry.Get(tt.format)
			if ok != tt.wantOK {
				t.Errorf("Registry.Get(%q) ok = %v, want %v", tt.format, ok, tt.wantOK)
			}
			if tt.wantOK && got != tt.want {
				t.Errorf("Registry.Get(%q) returned wrong decoder", tt.format)
			}
		})
	}
}

func TestRegistry_Decode(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	registry.Register("wav", &mockDecoder{})
	registry.Register("bad", &failingDecoder{})

	src, err := registry.Decode("wav", strings.NewReader(""))
	if err != nil {
		t.Fatalf("Decode(wav) error = %v", err)
	}
	if src.Channels() != 2 {
		t.Errorf("Decode(wav).Channels() = %d, want 2", src.Channels())
	}

	if _, err := registry.Decode("bad", strings.NewReader("")); err == nil {
		t.Error("Decode(bad) error = nil, want decoder error")
	}

	if _, err := registry.Decode("flac", strings.NewReader("")); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Decode(flac) error = %v, want ErrUnknownFormat", err)
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder := &mockDecoder{name: "test"}

	done := make(chan bool)
	for range 10 {
		go func() {
			registry.Register("format", decoder)
			done <- true
		}()
	}
	for range 10 {
		go func() {
			_, _ = registry.Get("format")
			done <- true
		}()
	}
	for range 20 {
		<-done
	}

	got, ok := registry.Get("format")
	if !ok || got != decoder {
		t.Error("Registry returned wrong decoder after concurrent operations")
	}
}

func TestDurationOf(t *testing.T) {
	t.Parallel()

	if got := durationOf(44100, 44100); got != time.Second {
		t.Errorf("durationOf(44100, 44100) = %v, want 1s", got)
	}
	if got := durationOf(100, 0); got != 0 {
		t.Errorf("durationOf(100, 0) = %v, want 0", got)
	}
}

func BenchmarkRegistry_Get(b *testing.B) {
	registry := NewRegistry()
	registry.Register("wav", &mockDecoder{})

	b.ResetTimer()
	b.ReportAllocs()

	for b.Loop() {
		_, _ = registry.Get("wav")
	}
}
