// SPDX-License-Identifier: EPL-2.0

package effect

import (
	"math"
	"sync"
)

// Param is a value written by one goroutine and read by the audio goroutine
// once per frame. A reader may see the previous value for the frame that
// straddles a Store.
type Param[T any] struct {
	mu sync.Mutex
	v  T
}

func NewParam[T any](v T) *Param[T] {
	return &Param[T]{v: v}
}

func (p *Param[T]) Load() T {
	p.mu.Lock()
	v := p.v
	p.mu.Unlock()
	return v
}

func (p *Param[T]) Store(v T) {
	p.mu.Lock()
	p.v = v
	p.mu.Unlock()
}

// Vec3 is a direction or position relative to the listener. The listener
// faces -Z with +X to its right and +Y up.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalize returns v scaled to unit length. The zero vector stays zero.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return Vec3{}
	}
	return Vec3{X: v.X / l, Y: v.Y / l, Z: v.Z / l}
}

// Azimuth is the horizontal angle of v in radians: 0 straight ahead, π/2 to
// the right, -π/2 to the left.
func (v Vec3) Azimuth() float64 {
	if v.X == 0 && v.Z == 0 {
		return 0
	}
	return math.Atan2(v.X, -v.Z)
}
