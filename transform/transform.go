// SPDX-License-Identifier: EPL-2.0

package transform

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ik5/audframe/audio"
	"github.com/ik5/audframe/frame"
)

// Transform is a per-sample stream produced by running a Processor over
// fixed-size frames of an upstream stream. It implements audio.Stream.
//
// Frames are produced on demand: nothing is pulled from upstream and the
// processor is not called until Next needs a sample that does not exist yet.
//
// A Transform is not safe for concurrent use. Clones share the frame chain
// and may be read from different goroutines.
type Transform struct {
	c *chain

	cur  *node
	buf  []float32 // cur.samples, cached under the chain lock
	pos  int
	done bool

	channels    int
	rate        int
	duration    time.Duration
	hasDuration bool
}

// New wraps src so that every frameLen sample frames pass through p, which
// produces outChannels channels.
func New(src audio.Stream, p Processor, outChannels, frameLen int, opts ...Option) (*Transform, error) {
	if src == nil {
		return nil, ErrNilStream
	}
	if p == nil {
		return nil, ErrNilProcessor
	}

	inChannels := src.Channels()
	if s, ok := p.(Shaped); ok {
		if in, out := s.Channels(); in != inChannels || out != outChannels {
			return nil, fmt.Errorf("%w: processor takes %d→%d channels, stream is %d→%d",
				frame.ErrShapeMismatch, in, out, inChannels, outChannels)
		}
	}

	in, err := frame.New(inChannels, frameLen)
	if err != nil {
		return nil, fmt.Errorf("input frame: %w", err)
	}
	out, err := frame.New(outChannels, frameLen)
	if err != nil {
		return nil, fmt.Errorf("output frame: %w", err)
	}

	cfg := applyOptions(opts...)
	c := &chain{
		outChannels: outChannels,
		maxIdle:     cfg.MaxIdleNodes,
		name:        cfg.Name,
		log:         cfg.Logger,
		rec:         cfg.Metrics.Stream(cfg.Name),
	}

	head := c.newNode()
	head.up = &upstream{
		src:    src,
		proc:   p,
		in:     in,
		out:    out,
		pulled: make([]float32, inChannels*frameLen),
	}

	t := &Transform{
		c:        c,
		cur:      head,
		channels: outChannels,
		rate:     src.SampleRate(),
	}
	t.duration, t.hasDuration = src.TotalDuration()

	c.log.Debug("transform created",
		slog.String("stream", c.name),
		slog.Int("in_channels", inChannels),
		slog.Int("out_channels", outChannels),
		slog.Int("frame_len", frameLen),
	)

	return t, nil
}

// NewFunc is New with a plain function as the processor.
func NewFunc(src audio.Stream, f func(in, out *frame.Buffer), outChannels, frameLen int, opts ...Option) (*Transform, error) {
	if f == nil {
		return nil, ErrNilProcessor
	}
	return New(src, ProcessorFunc(f), outChannels, frameLen, opts...)
}

func (t *Transform) Channels() int   { return t.channels }
func (t *Transform) SampleRate() int { return t.rate }

// TotalDuration reports upstream's duration as it was when t was created.
// It is not updated as the stream is consumed.
func (t *Transform) TotalDuration() (time.Duration, bool) {
	return t.duration, t.hasDuration
}

// CurrentFrameLen reports how many samples remain in the frame being read.
// Before the first frame and after the end it is unknown.
func (t *Transform) CurrentFrameLen() (int, bool) {
	if rest := len(t.buf) - t.pos; rest > 0 {
		return rest, true
	}
	return 0, false
}

// Next returns the next interleaved output sample.
func (t *Transform) Next() (float32, bool) {
	if t.pos < len(t.buf) {
		v := t.buf[t.pos]
		t.pos++
		return v, true
	}
	return t.advance()
}

// advance moves past a drained node, materializing the next one if no other
// reader has done so yet.
func (t *Transform) advance() (float32, bool) {
	if t.done || t.cur == nil {
		return 0, false
	}

	t.step()
	if t.done {
		t.buf = nil
		return 0, false
	}

	t.pos = 1
	return t.buf[0], true
}

// step points t at the node it reads next. A panicking processor unwinds
// through here with the chain unlocked.
func (t *Transform) step() {
	c := t.c
	c.mu.Lock()
	defer c.mu.Unlock()

	// A clone taken before n was materialized arrives here with pos 0 and
	// still has to read n.
	n := t.cur
	if n.state == stateMaterialized && t.pos >= len(n.samples) {
		next := n.next
		next.refs++
		c.release(n)
		n = next
		t.cur = n
	}
	if n.state == statePending {
		c.materialize(n)
	}

	t.buf = n.samples
	t.pos = 0
	t.done = n.state == stateExhausted
}

// Clone returns a second reader positioned where t is. Both see the same
// samples and each frame is still processed once.
func (t *Transform) Clone() *Transform {
	clone := *t
	if t.cur == nil {
		return &clone
	}

	t.c.mu.Lock()
	t.cur.refs++
	t.c.mu.Unlock()

	return &clone
}

// Close releases the reader's position in the chain. Nodes nobody else
// references are reclaimed, and when the last reader closes the upstream is
// closed too if it implements io.Closer. Close is idempotent; afterwards
// Next reports the end of the stream.
func (t *Transform) Close() error {
	if t.cur == nil {
		return nil
	}

	c := t.c
	c.mu.Lock()
	up := c.release(t.cur)
	live := c.stats.LiveNodes
	c.mu.Unlock()

	t.cur = nil
	t.buf = nil
	t.pos = 0
	t.done = true

	if up == nil {
		return nil
	}

	c.log.Debug("transform closed",
		slog.String("stream", c.name),
		slog.Int("live_nodes", live),
	)
	if err := up.close(); err != nil {
		return fmt.Errorf("close upstream: %w", err)
	}
	return nil
}

// Stats returns the node accounting of the chain t reads from.
func (t *Transform) Stats() Stats {
	return t.c.snapshot()
}
