// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"github.com/gopxl/beep/v2"

	"github.com/ik5/audframe/audio"
)

// Format describes s as beep sees it after Streamer.
func Format(s audio.Stream) beep.Format {
	return beep.Format{
		SampleRate:  beep.SampleRate(s.SampleRate()),
		NumChannels: 2,
		Precision:   4,
	}
}

// Streamer adapts s to a beep.Streamer. Mono is duplicated to both sides;
// channels past the second are dropped.
func Streamer(s audio.Stream) beep.Streamer {
	return &streamer{s: s, channels: s.Channels()}
}

type streamer struct {
	s        audio.Stream
	channels int
	done     bool
}

func (st *streamer) Stream(samples [][2]float64) (int, bool) {
	if st.done {
		return 0, false
	}

	for i := range samples {
		left, ok := st.s.Next()
		if !ok {
			st.done = true
			return i, i > 0
		}
		right := left

		for ch := 1; ch < st.channels; ch++ {
			v, ok := st.s.Next()
			if !ok {
				// A cut-off final sample frame is played as far as it got.
				st.done = true
				break
			}
			if ch == 1 {
				right = v
			}
		}

		samples[i] = [2]float64{float64(left), float64(right)}
		if st.done {
			return i + 1, true
		}
	}

	return len(samples), true
}

func (st *streamer) Err() error { return nil }
