// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes integer PCM WAV files on top of
// github.com/go-audio/wav.
//
// Decoder accepts 8, 16, 24 and 32-bit PCM (plain or WAVE_FORMAT_EXTENSIBLE)
// with any channel count and sample rate, and normalizes samples to float32
// in [-1, 1]. The decoder needs to seek, so a reader without Seek is read
// into memory first. The returned source also implements audio.Durationer.
//
//	f, _ := os.Open("voice.wav")
//	src, err := wav.Decoder{}.Decode(f)
//
// Encode drains any audio.Source into a file:
//
//	out, _ := os.Create("out.wav")
//	err := wav.Encode(out, src, 16)
//
// LoadImpulse reads an impulse response into per-channel kernels for
// effect.NewConvolver.
package wav
