// SPDX-License-Identifier: EPL-2.0

// Package playback sends audio.Stream values to a sound card.
//
// Open and Device.NewPlayer drive the output through
// github.com/ebitengine/oto/v3 in float32 mode. Streamer adapts a stream to
// github.com/gopxl/beep/v2 so it can be mixed or controlled with beep's
// combinators.
package playback
