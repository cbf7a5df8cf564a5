// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 files with github.com/hajimehoshi/go-mp3.
//
// The decoder always yields interleaved stereo at the file's sample rate,
// normalized to float32 in [-1, 1]; mono files are duplicated by go-mp3.
// Use audio.Uniform or audio.NewChannelMixer for other layouts.
//
//	f, _ := os.Open("song.mp3")
//	src, err := mp3.Decoder{}.Decode(f)
//
// When the input is an io.Seeker the source also reports its length through
// audio.Durationer.
package mp3
