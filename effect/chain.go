// SPDX-License-Identifier: EPL-2.0

package effect

import (
	"fmt"

	"github.com/ik5/audframe/frame"
	"github.com/ik5/audframe/transform"
)

// Chain runs several processors on each frame, feeding each stage's output
// to the next through buffers owned by the chain. Every stage must implement
// transform.Shaped so the intermediate layouts are known up front.
type Chain struct {
	stages []transform.Processor
	bufs   []*frame.Buffer
	in     int
	out    int
}

func NewChain(frameLen int, stages ...transform.Processor) (*Chain, error) {
	if len(stages) == 0 {
		return nil, fmt.Errorf("%w: empty chain", ErrUnshaped)
	}

	c := &Chain{stages: stages}
	prevOut := 0
	for i, p := range stages {
		s, ok := p.(transform.Shaped)
		if !ok {
			return nil, fmt.Errorf("%w: stage %d (%T)", ErrUnshaped, i, p)
		}
		in, out := s.Channels()
		if i == 0 {
			c.in = in
		} else if in != prevOut {
			return nil, fmt.Errorf("%w: stage %d takes %d channels, stage %d gives %d",
				frame.ErrShapeMismatch, i, in, i-1, prevOut)
		}

		if i < len(stages)-1 {
			buf, err := frame.New(out, frameLen)
			if err != nil {
				return nil, fmt.Errorf("stage %d buffer: %w", i, err)
			}
			c.bufs = append(c.bufs, buf)
		}
		prevOut = out
	}
	c.out = prevOut

	return c, nil
}

func (c *Chain) Channels() (in, out int) { return c.in, c.out }

func (c *Chain) Process(in, out *frame.Buffer) {
	src := in
	for i, p := range c.stages {
		dst := out
		if i < len(c.bufs) {
			dst = c.bufs[i]
		}
		p.Process(src, dst)
		src = dst
	}
}
