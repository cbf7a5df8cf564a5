// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"testing"

	"github.com/ik5/audframe/internal/audiotest"
)

func TestUniform(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		inCh, inRate int
		outCh, rate  int
		unchanged    bool
	}{
		{name: "already uniform", inCh: 2, inRate: 48000, outCh: 2, rate: 48000, unchanged: true},
		{name: "rate only", inCh: 1, inRate: 44100, outCh: 1, rate: 48000},
		{name: "downmix and resample", inCh: 2, inRate: 44100, outCh: 1, rate: 16000},
		{name: "upmix and resample", inCh: 1, inRate: 8000, outCh: 2, rate: 48000},
		{name: "channels only", inCh: 6, inRate: 48000, outCh: 2, rate: 48000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewConstantSource(tt.inRate, tt.inCh, tt.inRate/10, 0.5)
			out := Uniform(src, tt.outCh, tt.rate)

			if out.Channels() != tt.outCh || out.SampleRate() != tt.rate {
				t.Errorf("Uniform() = %d ch @ %d Hz, want %d ch @ %d Hz",
					out.Channels(), out.SampleRate(), tt.outCh, tt.rate)
			}
			if tt.unchanged && out != Source(src) {
				t.Error("Uniform() wrapped a source already in shape")
			}

			samples := drain(t, out, 64*tt.outCh)
			if len(samples)%tt.outCh != 0 {
				t.Errorf("read %d samples, not a whole number of %d-channel frames", len(samples), tt.outCh)
			}
			for i, v := range samples[len(samples)/4 : len(samples)/2] {
				if v < 0.4 || v > 0.6 {
					t.Fatalf("sample %d = %v, want ≈0.5", i, v)
				}
			}
		})
	}
}

func TestUniform_UpmixRunsAfterResampling(t *testing.T) {
	t.Parallel()

	out := Uniform(audiotest.NewSilentSource(8000, 1, 100), 2, 48000)

	m, ok := out.(*ChannelMixer)
	if !ok {
		t.Fatalf("Uniform() outer stage = %T, want *ChannelMixer", out)
	}
	if m.src.SampleRate() != 48000 || m.src.Channels() != 1 {
		t.Errorf("ChannelMixer input = %d ch @ %d Hz, want mono @ 48000 Hz",
			m.src.Channels(), m.src.SampleRate())
	}
}
