// SPDX-License-Identifier: EPL-2.0

// Package frame provides the fixed-shape multi-channel sample buffer that
// frame processors read from and write to.
//
// A Buffer stores channels x length float32 samples non-interleaved: each
// channel is one contiguous slice, and all channels share a single backing
// array allocated once in New. Because the backing array never moves, the
// per-channel table returned by Channels stays valid for the buffer's whole
// life, which is what lets a processor hold on to it for the duration of one
// Process call without copying.
//
//	buf, err := frame.New(2, 1024)
//	if err != nil {
//	    return err
//	}
//	left := buf.Channel(0)
//	left[0] = 0.5
//
// Out-of-range channel or sample indexes panic. A shape disagreement between
// two buffers is a programming error and is reported through
// ErrShapeMismatch, either as a returned error from CheckShape or as a panic
// from the operations that cannot proceed without matching shapes.
package frame
