// SPDX-License-Identifier: EPL-2.0

package effect

import (
	"fmt"
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/ik5/audframe/frame"
)

// GainOption mutates gain construction parameters.
type GainOption func(*gainConfig) error

type gainConfig struct {
	smooth bool
	max    float64
}

func defaultGainConfig() gainConfig {
	return gainConfig{smooth: true, max: 4}
}

// WithGainSmoothing ramps linearly from the previous frame's gain to the
// current one across each frame instead of jumping at the boundary.
func WithGainSmoothing(on bool) GainOption {
	return func(cfg *gainConfig) error {
		cfg.smooth = on
		return nil
	}
}

// WithMaxGain clamps the parameter to [0, limit].
func WithMaxGain(limit float64) GainOption {
	return func(cfg *gainConfig) error {
		if limit <= 0 || math.IsNaN(limit) || math.IsInf(limit, 0) {
			return fmt.Errorf("gain limit must be > 0 and finite: %f", limit)
		}
		cfg.max = limit
		return nil
	}
}

// Gain scales every channel by a shared factor read once per frame. It
// stands in for distance attenuation.
type Gain struct {
	channels int
	gain     *Param[float32]
	smooth   bool
	max      float64

	prev    float64
	started bool
	work    []float64
	ramp    []float64
}

func NewGain(channels int, gain *Param[float32], opts ...GainOption) (*Gain, error) {
	if channels <= 0 {
		return nil, ErrInvalidChannels
	}
	if gain == nil {
		gain = NewParam[float32](1)
	}

	cfg := defaultGainConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	return &Gain{
		channels: channels,
		gain:     gain,
		smooth:   cfg.smooth,
		max:      cfg.max,
	}, nil
}

func (g *Gain) Channels() (in, out int) { return g.channels, g.channels }

func (g *Gain) Process(in, out *frame.Buffer) {
	mustShape(in, out, g.channels, g.channels)

	n := in.Len()
	if len(g.work) < n {
		g.work = make([]float64, n)
		g.ramp = make([]float64, n)
	}
	work, ramp := g.work[:n], g.ramp[:n]

	target := min(max(float64(g.gain.Load()), 0), g.max)
	if !g.started {
		g.prev, g.started = target, true
	}

	smooth := g.smooth && target != g.prev
	if smooth {
		step := (target - g.prev) / float64(n)
		for i := range ramp {
			ramp[i] = g.prev + step*float64(i+1)
		}
	}

	for ch := range g.channels {
		toFloat64(work, in.Channel(ch))
		if smooth {
			vecmath.MulBlockInPlace(work, ramp)
		} else {
			vecmath.ScaleBlock(work, work, target)
		}
		toFloat32(out.Channel(ch), work)
	}

	g.prev = target
}

// Reset forgets the previous frame's gain.
func (g *Gain) Reset() {
	g.started = false
}
