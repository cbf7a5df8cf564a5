// SPDX-License-Identifier: EPL-2.0

// Package transform runs a frame Processor over a per-sample audio stream.
//
// A Transform pulls interleaved samples from an upstream audio.Stream,
// gathers frameLen sample frames into a frame.Buffer, hands it to the
// Processor together with an output buffer, and serves the processed frame
// back one interleaved sample at a time. Since a Transform is itself an
// audio.Stream, transforms stack:
//
//	direct, _ := transform.New(src, gain, 1, 1024)
//	spatial, _ := transform.New(direct, panner, 2, 1024)
//
// # Laziness
//
// No upstream sample is read and no frame is processed until Next needs it.
// Reading m samples processes at most ceil(m / (frameLen*channels)) frames.
// A short final frame is padded with silence and processed once; only the
// samples actually backed by input are emitted.
//
// # Frame chain
//
// Processed frames live in a singly linked chain of reference-counted nodes.
// Each node is pending, materialized or exhausted. Clone gives a second
// reader over the same chain, and Close drops a reader's reference. Nodes are
// reclaimed by walking the chain in a loop, so arbitrarily long chains are
// torn down in constant stack space, and released nodes are reused so a
// single reader allocates nothing once warmed up.
//
// # Errors
//
// New returns errors for nil arguments and invalid frame shapes. After
// construction the only terminal condition is upstream exhaustion, reported
// by Next as (0, false) on every later call.
//
// A processor that panics, or leaves the output buffer in another shape,
// panics out of Next. The frame it was building becomes the end of the
// stream, and the chain can still be cloned and closed.
package transform
