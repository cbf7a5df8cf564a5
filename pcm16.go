// SPDX-License-Identifier: EPL-2.0

package audframe

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audframe/audio"
	"github.com/ik5/audframe/transform"
	"github.com/ik5/audframe/utils"
)

// TransformToPCM16 runs src through p one frame of frameLen samples per
// channel at a time and collects the result as 16-bit PCM with outChannels
// interleaved channels. src is closed when the function returns.
//
// For more control, build the pipeline from audio.NewSampleReader,
// transform.New and audio.NewStreamSource directly.
//
// Example:
//
//	src, _ := wav.Decoder{}.Decode(file)
//	pcm, err := audframe.TransformToPCM16(src, effect.Copy, src.Channels(), 512, 4096)
func TransformToPCM16(src audio.Source, p transform.Processor, outChannels, frameLen, bufSize int, opts ...transform.Option) ([]int16, error) {
	reader := audio.NewSampleReader(src)
	t, err := transform.New(reader, p, outChannels, frameLen, opts...)
	if err != nil {
		_ = src.Close()
		return nil, err
	}

	out := audio.NewStreamSource(t, roundDown(bufSize, outChannels))
	pcm, err := collectPCM16(out, estimate(src.SampleRate(), outChannels))
	if cerr := out.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("close pipeline: %w", cerr)
	}
	if err == nil && reader.Err() != nil {
		err = fmt.Errorf("read source: %w", reader.Err())
	}
	if err != nil {
		return nil, err
	}
	return pcm, nil
}

// ResampleToPCM16 converts src to the given rate and channel count and
// collects it as 16-bit PCM.
func ResampleToPCM16(src audio.Source, targetRate, channels, bufSize int) ([]int16, error) {
	u := audio.Uniform(src, channels, targetRate)
	defer u.Close()

	return collectPCM16(roundedSource{u, roundDown(bufSize, channels)}, estimate(targetRate, channels))
}

// estimate is a starting capacity of about two seconds.
func estimate(rate, channels int) int { return rate * channels * 2 }

func roundDown(n, multiple int) int {
	if n <= 0 {
		n = 4096
	}
	return max(n-n%multiple, multiple)
}

// roundedSource overrides BufSize so reads stay on sample frame boundaries.
type roundedSource struct {
	audio.Source
	size int
}

func (r roundedSource) BufSize() int { return r.size }

func collectPCM16(src audio.Source, capacity int) ([]int16, error) {
	pcm16 := make([]int16, 0, capacity)
	buf := make([]float32, src.BufSize())

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			// Grow by at least n samples, or double capacity.
			if cap(pcm16)-len(pcm16) < n {
				grown := make([]int16, len(pcm16), len(pcm16)+max(n, cap(pcm16)))
				copy(grown, pcm16)
				pcm16 = grown
			}

			start := len(pcm16)
			pcm16 = pcm16[:start+n]
			for i, x := range buf[:n] {
				pcm16[start+i] = utils.Float32ToInt16(x)
			}
		}

		if errors.Is(err, io.EOF) {
			return pcm16, nil
		}
		if err != nil {
			return nil, fmt.Errorf("collect pcm: %w", err)
		}
	}
}
