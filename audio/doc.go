// SPDX-License-Identifier: EPL-2.0

// Package audio provides the stream contracts and the sample plumbing built
// on top of them.
//
// Two contracts coexist:
//   - Source is the bulk form decoders produce: ReadSamples fills a slice of
//     interleaved float32 samples and returns io.EOF at the end.
//   - Stream is the pull form frame transforms consume: Next hands out one
//     interleaved sample at a time and reports false once exhausted.
//
// SampleReader turns a Source into a Stream and StreamSource goes the other
// way, so decoders, transforms and sinks can be chained freely:
//
//	src, _ := registry.Decode("wav", f)
//	s := audio.NewSampleReader(audio.Uniform(src, 2, 48000))
//
// # Conversion
//
// Resampler changes the sample rate with cubic interpolation and
// ChannelMixer folds or spreads channels. Uniform applies both in the order
// that keeps the resampler on the smaller layout.
//
// # Mixing
//
// Mixer sums streams sharing one layout and rate. Streams may be added from
// any goroutine; they join at the next sample frame boundary.
//
// # Sample Format
//
// Samples are float32 in [-1.0, 1.0]. Intermediate stages do not clip.
//
// # Error Handling
//
// Bulk readers return io.EOF when no more data is available:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    if errors.Is(err, io.EOF) {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    // process buf[:n]
//	}
//
// A Stream has no error channel; SampleReader records the source error and
// exposes it through Err once Next reports false.
package audio
