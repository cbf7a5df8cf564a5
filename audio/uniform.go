// SPDX-License-Identifier: EPL-2.0

package audio

// Uniform converts src to the given channel count and sample rate. Stages
// that would be no-ops are skipped, so a source already in the requested
// shape is returned unchanged.
//
// Channel mapping runs before resampling when it reduces the channel count
// and after it otherwise, so the resampler always works on the smaller
// layout.
func Uniform(src Source, channels, rate int) Source {
	out := src

	if channels < out.Channels() {
		out = NewChannelMixer(out, channels)
	}
	if out.SampleRate() != rate {
		out = NewResampler(out, rate)
	}
	if channels > out.Channels() {
		out = NewChannelMixer(out, channels)
	}

	return out
}
