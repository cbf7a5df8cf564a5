// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) decoding and
// encoding on top of github.com/go-audio/aiff.
//
// AIFF is the big-endian cousin of WAV used on Apple platforms. Decoder
// accepts 8, 16, 24 and 32-bit PCM with any channel count and sample rate;
// samples come out as float32 in [-1, 1]. The source also reports the file
// length through audio.Durationer.
//
//	f, _ := os.Open("loop.aif")
//	src, err := aiff.Decoder{}.Decode(f)
//	if errors.Is(err, aiff.ErrNotAiffFile) {
//	    // not AIFF
//	}
//
// Encode writes any audio.Source back out as AIFF.
//
// AIFF-C (compressed) files are not supported.
package aiff
