// SPDX-License-Identifier: EPL-2.0

package audframe

import (
	"errors"
	"testing"

	"github.com/ik5/audframe/effect"
	"github.com/ik5/audframe/frame"
	"github.com/ik5/audframe/internal/audiotest"
	"github.com/ik5/audframe/transform"
	"github.com/ik5/audframe/utils"
)

func TestTransformToPCM16_Gain(t *testing.T) {
	t.Parallel()

	src := audiotest.NewConstantSource(16000, 2, 1000, 0.5)
	gain, err := effect.NewGain(2, effect.NewParam[float32](0.5))
	if err != nil {
		t.Fatal(err)
	}

	pcm, err := TransformToPCM16(src, gain, 2, 128, 4096)
	if err != nil {
		t.Fatalf("TransformToPCM16() error = %v", err)
	}

	// The last frame holds 104 real frames; its silence padding is not emitted.
	if len(pcm) != 2*1000 {
		t.Fatalf("len = %d, want %d", len(pcm), 2*1000)
	}
	want := utils.Float32ToInt16(0.25)
	for i, v := range pcm {
		if v != want {
			t.Fatalf("pcm[%d] = %d, want %d", i, v, want)
		}
	}
	if !src.Closed() {
		t.Error("source was not closed")
	}
}

func TestTransformToPCM16_ChangesChannels(t *testing.T) {
	t.Parallel()

	src := audiotest.NewConstantSource(8000, 1, 64, 0.5)
	panner, err := effect.NewPanner(1, nil)
	if err != nil {
		t.Fatal(err)
	}

	pcm, err := TransformToPCM16(src, panner, 2, 32, 100)
	if err != nil {
		t.Fatal(err)
	}
	if len(pcm) != 128 {
		t.Fatalf("len = %d, want 128", len(pcm))
	}
	// A source straight ahead lands equally on both sides.
	if pcm[0] != pcm[1] || pcm[0] == 0 {
		t.Errorf("front source = %d/%d", pcm[0], pcm[1])
	}
}

func TestTransformToPCM16_Errors(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(8000, 2, 10)
	if _, err := TransformToPCM16(src, nil, 2, 16, 64); !errors.Is(err, transform.ErrNilProcessor) {
		t.Errorf("nil processor err = %v", err)
	}
	if !src.Closed() {
		t.Error("source was not closed after a failed setup")
	}

	src = audiotest.NewSilentSource(8000, 2, 10)
	gain, _ := effect.NewGain(1, nil)
	if _, err := TransformToPCM16(src, gain, 1, 16, 64); !errors.Is(err, frame.ErrShapeMismatch) {
		t.Errorf("shape err = %v", err)
	}
}

func TestTransformToPCM16_EmptySource(t *testing.T) {
	t.Parallel()

	pcm, err := TransformToPCM16(audiotest.NewSilentSource(8000, 1, 0), effect.Copy, 1, 16, 64)
	if err != nil || len(pcm) != 0 {
		t.Errorf("empty source = %d samples, %v", len(pcm), err)
	}
}

func TestResampleToPCM16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		rate       int
		channels   int
		targetRate int
		targetCh   int
		want       int
		tolerance  int
	}{
		{"downsample to mono", 44100, 2, 8000, 1, 8000, 200},
		{"same rate upmix", 16000, 1, 16000, 2, 32000, 0},
		{"upsample", 8000, 1, 16000, 1, 16000, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewSineSource(tt.rate, tt.channels, tt.rate, 440)
			pcm, err := ResampleToPCM16(src, tt.targetRate, tt.targetCh, 1001)
			if err != nil {
				t.Fatal(err)
			}
			if d := len(pcm) - tt.want; d < -tt.tolerance || d > tt.tolerance {
				t.Errorf("len = %d, want %d (±%d)", len(pcm), tt.want, tt.tolerance)
			}
			if len(pcm)%tt.targetCh != 0 {
				t.Errorf("len %d is not whole sample frames", len(pcm))
			}
		})
	}
}

func BenchmarkTransformToPCM16(b *testing.B) {
	b.ReportAllocs()

	for b.Loop() {
		src := audiotest.NewSineSource(44100, 2, 44100, 440)
		if _, err := TransformToPCM16(src, effect.Copy, 2, 512, 4096); err != nil {
			b.Fatal(err)
		}
	}
}
