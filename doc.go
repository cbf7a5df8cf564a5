// SPDX-License-Identifier: EPL-2.0

// Package audframe turns sample-at-a-time audio streams into frame-at-a-time
// processing and back again.
//
// A decoder produces an audio.Source; audio.NewSampleReader exposes it as an
// audio.Stream, which hands out one sample per call. transform.New wraps
// that stream, groups its samples into fixed-size frames, runs a
// transform.Processor on each frame only when a reader asks for it, and
// yields the processed frame sample by sample again. Transforms stack and
// can be cloned cheaply, so several readers may share one processed stream.
//
// # Packages
//
//   - audio: the Source and Stream contracts, resampling, channel mixing and
//     a live Mixer.
//   - frame: planar frame buffers and interleave helpers.
//   - transform: the lazy frame transform.
//   - effect: ready-made processors (Gain, Panner, Convolver, Chain).
//   - formats/wav, formats/aiff, formats/mp3, formats/vorbis: decoders, plus
//     WAV and AIFF encoders.
//   - playback: sound card output and a gopxl/beep adapter.
//
// # Quick Start
//
// TransformToPCM16 runs a whole file through a processor:
//
//	src, _ := wav.Decoder{}.Decode(file)
//	gain, _ := effect.NewGain(src.Channels(), effect.NewParam[float32](0.5))
//	pcm, err := audframe.TransformToPCM16(src, gain, src.Channels(), 512, 4096)
//
// ResampleToPCM16 covers the plain rate and layout conversion case:
//
//	pcm, err := audframe.ResampleToPCM16(src, 8000, 1, 4096)
package audframe
