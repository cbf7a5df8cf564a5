// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"sync"
	"sync/atomic"
	"time"
)

// Mixer sums any number of streams sharing one channel layout and sample
// rate. Streams may be added from any goroutine while another goroutine
// reads; new streams join at the next sample frame boundary and exhausted
// ones are dropped.
//
// Without keepAlive the mixer ends the first time it has no inputs at a
// frame boundary. With keepAlive it plays silence instead and never ends.
type Mixer struct {
	channels  int
	rate      int
	keepAlive bool

	mu         sync.Mutex
	pending    []Stream
	hasPending atomic.Bool
	done       atomic.Bool

	// Owned by the reading goroutine.
	active []Stream
	pos    int
}

func NewMixer(channels, rate int, keepAlive bool) *Mixer {
	return &Mixer{
		channels:  max(channels, 1),
		rate:      rate,
		keepAlive: keepAlive,
	}
}

// Add queues s for mixing.
func (m *Mixer) Add(s Stream) error {
	if s.Channels() != m.channels {
		return ErrChannelMismatch
	}
	if s.SampleRate() != m.rate {
		return ErrRateMismatch
	}
	if m.done.Load() {
		return ErrMixerDone
	}

	m.mu.Lock()
	m.pending = append(m.pending, s)
	m.hasPending.Store(true)
	m.mu.Unlock()

	return nil
}

func (m *Mixer) Channels() int                        { return m.channels }
func (m *Mixer) SampleRate() int                      { return m.rate }
func (m *Mixer) CurrentFrameLen() (int, bool)         { return 0, false }
func (m *Mixer) TotalDuration() (time.Duration, bool) { return 0, false }

// Active reports how many inputs the reader is currently mixing.
// Only meaningful from the reading goroutine.
func (m *Mixer) Active() int { return len(m.active) }

func (m *Mixer) Next() (float32, bool) {
	if m.done.Load() {
		return 0, false
	}

	if m.pos == 0 {
		if m.hasPending.Load() {
			m.mu.Lock()
			m.active = append(m.active, m.pending...)
			clear(m.pending)
			m.pending = m.pending[:0]
			m.hasPending.Store(false)
			m.mu.Unlock()
		}

	}

	var sum float32
	for i := 0; i < len(m.active); {
		v, ok := m.active[i].Next()
		if !ok {
			last := len(m.active) - 1
			m.active[i] = m.active[last]
			m.active[last] = nil
			m.active = m.active[:last]
			continue
		}
		sum += v
		i++
	}

	if m.pos == 0 && len(m.active) == 0 && !m.keepAlive {
		m.done.Store(true)
		return 0, false
	}

	m.pos++
	if m.pos == m.channels {
		m.pos = 0
	}

	return sum, true
}
