// SPDX-License-Identifier: EPL-2.0

// Package effect provides frame processors for transform.Transform.
//
//   - Gain scales all channels by a factor that may change between frames.
//   - Panner places a source in the stereo field from its direction.
//   - Convolver applies FIR impulse responses with FFT overlap-add.
//   - Chain runs several processors back to back inside one frame.
//
// Parameters that another goroutine updates while audio is playing, such as
// a source direction, are passed as *Param values. Processors read them once
// per frame.
//
// Every processor declares its channel layout through Channels, so
// transform.New can reject a mismatched stream up front. Process panics with
// frame.ErrShapeMismatch if it is handed buffers of another shape.
package effect
