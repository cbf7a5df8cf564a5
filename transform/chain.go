// SPDX-License-Identifier: EPL-2.0

package transform

import (
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/ik5/audframe/audio"
	"github.com/ik5/audframe/frame"
	"github.com/ik5/audframe/internal/observe"
)

type nodeState uint8

const (
	statePending nodeState = iota
	stateMaterialized
	stateExhausted
)

// node is one position of the frame chain. Once materialized its samples
// never change until the node is recycled, which only happens after the last
// reference is gone.
type node struct {
	state   nodeState
	refs    int
	samples []float32 // interleaved output
	next    *node
	up      *upstream // set on the tail node only
}

// upstream is everything needed to produce the next frame. It moves from
// one pending node to the next and is never shared.
type upstream struct {
	src     audio.Stream
	proc    Processor
	in, out *frame.Buffer
	pulled  []float32
	done    bool
}

// pull reads up to len(u.pulled) samples and reports how many arrived.
// An exhausted upstream is never asked again.
func (u *upstream) pull() int {
	if u.done {
		return 0
	}

	n := 0
	for n < len(u.pulled) {
		v, ok := u.src.Next()
		if !ok {
			u.done = true
			break
		}
		u.pulled[n] = v
		n++
	}
	return n
}

func (u *upstream) close() error {
	if c, ok := u.src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Stats is a snapshot of a chain's node accounting.
type Stats struct {
	LiveNodes       int // allocated and not yet released
	AllocatedNodes  int // handed out in total, new or reused
	ReleasedNodes   int
	FramesProcessed int
}

// chain is the state shared by a Transform and its clones. Every field and
// every node field other than a materialized node's samples is guarded by mu.
type chain struct {
	mu sync.Mutex

	outChannels int
	idle        []*node
	maxIdle     int
	stats       Stats

	name string
	log  *slog.Logger
	rec  *observe.Recorder
}

func (c *chain) newNode() *node {
	var n *node
	if last := len(c.idle) - 1; last >= 0 {
		n = c.idle[last]
		c.idle[last] = nil
		c.idle = c.idle[:last]
	} else {
		n = &node{}
	}

	n.refs = 1
	c.stats.AllocatedNodes++
	c.stats.LiveNodes++
	c.rec.Nodes(1)
	return n
}

// release drops one reference to n. Freeing a node drops the reference its
// next edge held, so the walk continues down the chain in a loop instead of
// recursing. It returns the upstream if the tail node was freed with it.
func (c *chain) release(n *node) *upstream {
	var up *upstream
	for n != nil {
		n.refs--
		if n.refs > 0 {
			break
		}

		next := n.next
		if n.up != nil {
			up = n.up
		}
		c.recycle(n)
		n = next
	}
	return up
}

func (c *chain) recycle(n *node) {
	n.state = statePending
	n.next = nil
	n.up = nil
	n.samples = n.samples[:0]

	c.stats.ReleasedNodes++
	c.stats.LiveNodes--
	c.rec.Nodes(-1)

	if len(c.idle) < c.maxIdle {
		c.idle = append(c.idle, n)
	}
}

// materialize runs the processor for the pending node n.
func (c *chain) materialize(n *node) {
	up := n.up
	pulled := up.pull()

	if pulled == 0 {
		n.state = stateExhausted
		c.rec.Exhausted()
		c.log.Debug("upstream exhausted",
			slog.String("stream", c.name),
			slog.Int("frames", c.stats.FramesProcessed),
		)
		return
	}

	frames := up.in.Deinterleave(up.pulled[:pulled])

	// n stays exhausted if the processor panics, so a recovered caller
	// sees the end of the stream instead of a half-built frame.
	n.state = stateExhausted

	start := time.Now()
	up.proc.Process(up.in, up.out)
	c.rec.Frame(time.Since(start))
	c.stats.FramesProcessed++

	if err := up.out.CheckShape(c.outChannels, up.in.Len()); err != nil {
		panic(err)
	}

	size := frames * c.outChannels
	if full := up.out.Len() * c.outChannels; cap(n.samples) < full {
		n.samples = make([]float32, 0, full)
	}
	n.samples = n.samples[:size]
	up.out.Interleave(n.samples, frames)

	next := c.newNode()
	next.up = up
	n.up = nil
	n.next = next
	n.state = stateMaterialized
}

func (c *chain) snapshot() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.stats
}
