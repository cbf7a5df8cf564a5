// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/audframe/audio"
	"github.com/ik5/audframe/utils"
)

// Encode drains src into w as integer PCM of the given bit depth, keeping
// the source's rate and channel count. The header is finalized once src
// reports io.EOF. src is not closed.
func Encode(w io.WriteSeeker, src audio.Source, bitDepth int) error {
	if !validBitDepth(bitDepth) {
		return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	channels := src.Channels()
	size := src.BufSize()
	if size <= 0 {
		size = 4096
	}
	// Whole frames only, so every Write carries complete sample frames.
	size = max(size-size%channels, channels)

	enc := wav.NewEncoder(w, src.SampleRate(), bitDepth, channels, formatPCM)
	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: channels,
			SampleRate:  src.SampleRate(),
		},
		SourceBitDepth: bitDepth,
		Data:           make([]int, size),
	}
	samples := make([]float32, size)

	for {
		n, err := src.ReadSamples(samples)
		if n > 0 {
			buf.Data = buf.Data[:n]
			for i, v := range samples[:n] {
				s := utils.FloatToPCM(v, bitDepth)
				if bitDepth == 8 {
					s += 128
				}
				buf.Data[i] = s
			}
			if werr := enc.Write(buf); werr != nil {
				return fmt.Errorf("writing wav samples: %w", werr)
			}
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("reading source: %w", err)
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing wav header: %w", err)
	}
	return nil
}
