// SPDX-License-Identifier: EPL-2.0

package transform

import "github.com/ik5/audframe/frame"

// Processor turns one input frame into one output frame.
//
// Process must write every sample of out and must not keep either buffer
// after it returns. It runs on the goroutine pulling the stream, so real-time
// deployments should not allocate inside it.
type Processor interface {
	Process(in, out *frame.Buffer)
}

// ProcessorFunc adapts a plain function to Processor.
type ProcessorFunc func(in, out *frame.Buffer)

func (f ProcessorFunc) Process(in, out *frame.Buffer) { f(in, out) }

// Shaped is implemented by processors built for a fixed channel layout.
// New rejects a processor whose layout disagrees with the stream.
type Shaped interface {
	Channels() (in, out int)
}
