// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audframe/audio"
	"github.com/ik5/audframe/formats/internal/intpcm"
)

// Decoder opens PCM AIFF files.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	// go-audio requires io.ReadSeeker
	rs, err := intpcm.Seekable(r)
	if err != nil {
		return nil, fmt.Errorf("reading aiff data: %w", err)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}
	dec.ReadInfo()

	bitDepth := int(dec.BitDepth)
	if !validBitDepth(bitDepth) {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	if dec.Format() == nil || dec.NumChans == 0 {
		return nil, ErrUnsupportedAiffLayout
	}

	duration, err := dec.Duration()
	if err != nil {
		return nil, fmt.Errorf("reading aiff duration: %w", err)
	}

	var pcm intpcm.Reader = dec
	if bitDepth == 8 {
		pcm = signed8{dec}
	}

	return intpcm.New(pcm, bitDepth, duration), nil
}

func validBitDepth(bitDepth int) bool {
	switch bitDepth {
	case 8, 16, 24, 32:
		return true
	}
	return false
}

// signed8 sign-extends 8-bit AIFF samples, which go-audio hands back as
// raw bytes.
type signed8 struct {
	intpcm.Reader
}

func (s signed8) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	n, err := s.Reader.PCMBuffer(buf)
	for i, v := range buf.Data[:n] {
		buf.Data[i] = int(int8(v))
	}
	return n, err
}
