// SPDX-License-Identifier: EPL-2.0

package effect

import (
	"errors"
	"fmt"

	"github.com/ik5/audframe/frame"
	"github.com/ik5/audframe/transform"
)

var (
	ErrInvalidChannels = errors.New("effect: channel count must be positive")
	ErrEmptyKernel     = errors.New("effect: empty impulse response")
	ErrUnshaped        = errors.New("effect: processor does not declare its channels")
)

// Copy passes frames through unchanged. Input and output must share a shape.
var Copy transform.Processor = transform.ProcessorFunc(func(in, out *frame.Buffer) {
	out.CopyFrom(in)
})

// mustShape panics unless in and out carry the channels a processor was
// built for and agree on length.
func mustShape(in, out *frame.Buffer, inCh, outCh int) {
	if in.NumChannels() != inCh || out.NumChannels() != outCh || in.Len() != out.Len() {
		panic(fmt.Errorf("%w: got %dx%d → %dx%d, want %d → %d channels",
			frame.ErrShapeMismatch,
			in.NumChannels(), in.Len(), out.NumChannels(), out.Len(), inCh, outCh))
	}
}

// toFloat64 widens src into dst, which must be at least as long.
func toFloat64(dst []float64, src []float32) {
	for i, v := range src {
		dst[i] = float64(v)
	}
}

func toFloat32(dst []float32, src []float64) {
	for i := range dst {
		dst[i] = float32(src[i])
	}
}
