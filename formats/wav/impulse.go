// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
	"io"
)

// LoadImpulse decodes a WAV impulse response into one kernel per channel,
// ready for effect.NewConvolver, and returns its sample rate.
func LoadImpulse(r io.Reader) ([][]float64, int, error) {
	src, err := Decoder{}.Decode(r)
	if err != nil {
		return nil, 0, err
	}
	defer src.Close()

	channels := src.Channels()
	kernels := make([][]float64, channels)
	buf := make([]float32, src.BufSize())
	ch := 0

	for {
		n, err := src.ReadSamples(buf)
		for _, v := range buf[:n] {
			kernels[ch] = append(kernels[ch], float64(v))
			ch = (ch + 1) % channels
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("reading impulse response: %w", err)
		}
	}

	if len(kernels[0]) == 0 {
		return nil, 0, ErrEmptyImpulse
	}
	return kernels, src.SampleRate(), nil
}
