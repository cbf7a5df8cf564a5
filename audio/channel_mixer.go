// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"time"
)

// ChannelMixer remaps the channel count of a Source.
//
// Downmixing averages every input channel c into output channel c%out, so
// stereo to mono averages L and R and quad to stereo averages (0,2) and
// (1,3). Upmixing copies input channel o%in into output channel o, so mono
// is duplicated across all outputs.
type ChannelMixer struct {
	src      Source
	channels int
	tmp      []float32
}

func NewChannelMixer(src Source, channels int) *ChannelMixer {
	return &ChannelMixer{
		src:      src,
		channels: max(channels, 1),
		tmp:      make([]float32, 4096),
	}
}

// NewMonoMixer averages all channels of src into one.
func NewMonoMixer(src Source) *ChannelMixer {
	return NewChannelMixer(src, 1)
}

func (m *ChannelMixer) SampleRate() int { return m.src.SampleRate() }
func (m *ChannelMixer) Channels() int   { return m.channels }
func (m *ChannelMixer) BufSize() int    { return m.src.BufSize() }

func (m *ChannelMixer) TotalDuration() (time.Duration, bool) {
	if d, ok := m.src.(Durationer); ok {
		return d.TotalDuration()
	}
	return 0, false
}

func (m *ChannelMixer) Close() error {
	err := m.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (m *ChannelMixer) ReadSamples(dst []float32) (int, error) {
	if len(dst)%m.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if len(dst) == 0 {
		return 0, nil
	}

	in := m.src.Channels()
	if in == m.channels {
		return m.src.ReadSamples(dst)
	}

	frames := len(dst) / m.channels
	need := frames * in

	// Grow tmp only when needed, never shrink.
	if cap(m.tmp) < need {
		m.tmp = make([]float32, max(need, 8192))
	}
	tmp := m.tmp[:need]

	n, err := m.src.ReadSamples(tmp)
	if n == 0 {
		return 0, err
	}
	frames = n / in

	switch {
	case m.channels == 1:
		downmixMono(dst, tmp, frames, in)
	case in == 1:
		for f := range frames {
			v := tmp[f]
			row := dst[f*m.channels : (f+1)*m.channels]
			for o := range row {
				row[o] = v
			}
		}
	case in < m.channels:
		for f := range frames {
			for o := range m.channels {
				dst[f*m.channels+o] = tmp[f*in+o%in]
			}
		}
	default:
		m.downmix(dst, tmp, frames, in)
	}

	return frames * m.channels, err
}

func downmixMono(dst, src []float32, frames, in int) {
	switch in {
	case 2:
		for f := range frames {
			idx := f << 1
			dst[f] = (src[idx] + src[idx+1]) * 0.5
		}
	case 4:
		for f := range frames {
			idx := f << 2
			dst[f] = (src[idx] + src[idx+1] + src[idx+2] + src[idx+3]) * 0.25
		}
	default:
		inv := float32(1.0) / float32(in)
		for f := range frames {
			sum := float32(0)
			for _, v := range src[f*in : (f+1)*in] {
				sum += v
			}
			dst[f] = sum * inv
		}
	}
}

func (m *ChannelMixer) downmix(dst, src []float32, frames, in int) {
	out := m.channels
	for f := range frames {
		row := dst[f*out : (f+1)*out]
		clear(row)
		for c, v := range src[f*in : (f+1)*in] {
			row[c%out] += v
		}
		for o := range row {
			// Number of input channels folded into o.
			folded := (in - o + out - 1) / out
			row[o] /= float32(folded)
		}
	}
}
