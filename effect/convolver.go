// SPDX-License-Identifier: EPL-2.0

package effect

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/ik5/audframe/frame"
)

// ConvolverOption mutates convolver construction parameters.
type ConvolverOption func(*convolverConfig) error

type convolverConfig struct {
	mix       float64
	normalize bool
}

// WithMix sets the dry/wet mix in [0, 1].
func WithMix(mix float64) ConvolverOption {
	return func(cfg *convolverConfig) error {
		if mix < 0 || mix > 1 || math.IsNaN(mix) {
			return fmt.Errorf("convolver mix must be in [0, 1]: %f", mix)
		}
		cfg.mix = mix
		return nil
	}
}

// WithNormalize scales every impulse response to unit energy.
func WithNormalize(on bool) ConvolverOption {
	return func(cfg *convolverConfig) error {
		cfg.normalize = on
		return nil
	}
}

// Convolver applies an FIR impulse response to each channel with FFT
// overlap-add, carrying the convolution tail from one frame into the next.
// Channel ch uses kernels[ch % len(kernels)], so a single mono impulse
// response serves any channel count.
type Convolver struct {
	channels  int
	frameLen  int
	kernelLen int
	mix       float64

	plan      *algofft.Plan[complex128]
	kernelFFT [][]complex128
	tails     [][]float64

	spectrum []complex128
	conv     []float64
	dry      []float64
}

func NewConvolver(channels, frameLen int, kernels [][]float64, opts ...ConvolverOption) (*Convolver, error) {
	if channels <= 0 {
		return nil, ErrInvalidChannels
	}
	if frameLen <= 0 {
		return nil, fmt.Errorf("%w: frame length %d", frame.ErrInvalidShape, frameLen)
	}
	if len(kernels) == 0 {
		return nil, ErrEmptyKernel
	}

	cfg := convolverConfig{mix: 1}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	kernelLen := 0
	for i, k := range kernels {
		if len(k) == 0 {
			return nil, fmt.Errorf("%w: kernel %d", ErrEmptyKernel, i)
		}
		kernelLen = max(kernelLen, len(k))
	}

	fftSize := nextPowerOf2(frameLen + kernelLen - 1)
	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("convolver: failed to create FFT plan: %w", err)
	}

	c := &Convolver{
		channels:  channels,
		frameLen:  frameLen,
		kernelLen: kernelLen,
		mix:       cfg.mix,
		plan:      plan,
		kernelFFT: make([][]complex128, len(kernels)),
		tails:     make([][]float64, channels),
		spectrum:  make([]complex128, fftSize),
		conv:      make([]float64, frameLen+kernelLen-1),
		dry:       make([]float64, frameLen),
	}

	for i, k := range kernels {
		padded := make([]complex128, fftSize)
		scale := 1.0
		if cfg.normalize {
			if e := energy(k); e > 0 {
				scale = 1 / math.Sqrt(e)
			}
		}
		for j, v := range k {
			padded[j] = complex(v*scale, 0)
		}

		c.kernelFFT[i] = make([]complex128, fftSize)
		if err := plan.Forward(c.kernelFFT[i], padded); err != nil {
			return nil, fmt.Errorf("convolver: failed to compute kernel FFT: %w", err)
		}
	}

	for ch := range c.tails {
		c.tails[ch] = make([]float64, kernelLen-1)
	}

	return c, nil
}

func (c *Convolver) Channels() (in, out int) { return c.channels, c.channels }

// TailLen is how many samples one frame rings into the frames after it.
func (c *Convolver) TailLen() int { return c.kernelLen - 1 }

func (c *Convolver) Process(in, out *frame.Buffer) {
	mustShape(in, out, c.channels, c.channels)
	if in.Len() != c.frameLen {
		panic(fmt.Errorf("%w: convolver built for %d-sample frames, got %d",
			frame.ErrShapeMismatch, c.frameLen, in.Len()))
	}

	for ch := range c.channels {
		src := in.Channel(ch)
		toFloat64(c.dry, src)

		for i := range c.spectrum {
			c.spectrum[i] = 0
		}
		for i, v := range c.dry {
			c.spectrum[i] = complex(v, 0)
		}

		// Errors only come from length mismatches, which the plan size rules out.
		if err := c.plan.Forward(c.spectrum, c.spectrum); err != nil {
			panic(fmt.Errorf("convolver: forward FFT failed: %w", err))
		}
		kernel := c.kernelFFT[ch%len(c.kernelFFT)]
		for i := range c.spectrum {
			c.spectrum[i] *= kernel[i]
		}
		if err := c.plan.Inverse(c.spectrum, c.spectrum); err != nil {
			panic(fmt.Errorf("convolver: inverse FFT failed: %w", err))
		}

		for i := range c.conv {
			c.conv[i] = real(c.spectrum[i])
		}

		tail := c.tails[ch]
		vecmath.AddBlockInPlace(c.conv[:len(tail)], tail)
		copy(tail, c.conv[c.frameLen:])

		wet := c.conv[:c.frameLen]
		if c.mix < 1 {
			vecmath.ScaleBlock(wet, wet, c.mix)
			vecmath.ScaleBlock(c.dry, c.dry, 1-c.mix)
			vecmath.AddBlockInPlace(wet, c.dry)
		}
		toFloat32(out.Channel(ch), wet)
	}
}

// Reset clears the carried tails.
func (c *Convolver) Reset() {
	for _, tail := range c.tails {
		clear(tail)
	}
}

func energy(k []float64) float64 {
	var e float64
	for _, v := range k {
		e += v * v
	}
	return e
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
