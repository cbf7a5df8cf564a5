// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audframe/audio"
	"github.com/ik5/audframe/utils"
)

// Encode drains src into w as big-endian PCM of the given bit depth.
// src is not closed.
func Encode(w io.WriteSeeker, src audio.Source, bitDepth int) error {
	if !validBitDepth(bitDepth) {
		return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	channels := src.Channels()
	size := src.BufSize()
	if size <= 0 {
		size = 4096
	}
	size = max(size-size%channels, channels)

	enc := aiff.NewEncoder(w, src.SampleRate(), bitDepth, channels)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: src.SampleRate()},
		SourceBitDepth: bitDepth,
		Data:           make([]int, size),
	}
	samples := make([]float32, size)

	for {
		n, err := src.ReadSamples(samples)
		if n > 0 {
			buf.Data = buf.Data[:n]
			for i, v := range samples[:n] {
				buf.Data[i] = utils.FloatToPCM(v, bitDepth)
			}
			if werr := enc.Write(buf); werr != nil {
				return fmt.Errorf("writing aiff samples: %w", werr)
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
		return fmt.Errorf("finalizing aiff header: %w", err)
	}
	return nil
}
