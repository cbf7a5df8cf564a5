// SPDX-License-Identifier: EPL-2.0

package effect

import (
	"fmt"
	"math"

	"github.com/ik5/audframe/frame"
)

// PannerOption mutates panner construction parameters.
type PannerOption func(*pannerConfig) error

type pannerConfig struct {
	blend float64
}

// WithSpatialBlend mixes between an unpanned centre image (0) and the fully
// panned signal (1).
func WithSpatialBlend(blend float64) PannerOption {
	return func(cfg *pannerConfig) error {
		if blend < 0 || blend > 1 || math.IsNaN(blend) {
			return fmt.Errorf("spatial blend must be in [0, 1]: %f", blend)
		}
		cfg.blend = blend
		return nil
	}
}

// Panner places a source in the stereo field from its direction relative to
// the listener using an equal-power pan law. Multi-channel input is folded
// to mono first.
type Panner struct {
	channels  int
	direction *Param[Vec3]
	blend     float64
}

func NewPanner(channels int, direction *Param[Vec3], opts ...PannerOption) (*Panner, error) {
	if channels <= 0 {
		return nil, ErrInvalidChannels
	}
	if direction == nil {
		direction = NewParam(Vec3{Z: -1})
	}

	cfg := pannerConfig{blend: 1}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	return &Panner{channels: channels, direction: direction, blend: cfg.blend}, nil
}

func (p *Panner) Channels() (in, out int) { return p.channels, 2 }

// Gains returns the left and right gains for direction d.
func (p *Panner) Gains(d Vec3) (left, right float32) {
	pan := math.Sin(d.Azimuth()) // -1 hard left, 1 hard right
	theta := (pan + 1) * math.Pi / 4

	l := p.blend*math.Cos(theta) + (1-p.blend)*math.Sqrt2/2
	r := p.blend*math.Sin(theta) + (1-p.blend)*math.Sqrt2/2
	return float32(l), float32(r)
}

func (p *Panner) Process(in, out *frame.Buffer) {
	mustShape(in, out, p.channels, 2)

	gl, gr := p.Gains(p.direction.Load())
	left, right := out.Channel(0), out.Channel(1)

	if p.channels == 1 {
		for i, v := range in.Channel(0) {
			left[i] = v * gl
			right[i] = v * gr
		}
		return
	}

	scale := 1 / float32(p.channels)
	for i := range left {
		var sum float32
		for ch := range p.channels {
			sum += in.At(ch, i)
		}
		sum *= scale
		left[i] = sum * gl
		right[i] = sum * gr
	}
}
