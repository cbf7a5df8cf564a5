// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/audframe/audio"
	"github.com/ik5/audframe/formats/internal/intpcm"
)

const (
	formatPCM        = 1
	formatExtensible = 0xFFFE
)

// Decoder opens integer PCM WAV files.
type Decoder struct{}

// Decode reads the WAV header from r and returns a Source positioned at the
// first sample. Readers that cannot seek are buffered in memory.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, err := intpcm.Seekable(r)
	if err != nil {
		return nil, fmt.Errorf("reading wav data: %w", err)
	}

	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}

	switch dec.WavAudioFormat {
	case formatPCM, formatExtensible:
	default:
		return nil, fmt.Errorf("%w: format tag %#x", ErrUnsupportedEncoding, dec.WavAudioFormat)
	}

	bitDepth := int(dec.BitDepth)
	if !validBitDepth(bitDepth) {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	duration, err := dec.Duration()
	if err != nil {
		return nil, fmt.Errorf("reading wav duration: %w", err)
	}

	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("locating wav data: %w", err)
	}

	var pcm intpcm.Reader = dec
	if bitDepth == 8 {
		pcm = unsigned8{dec}
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

// unsigned8 recenters 8-bit WAV samples, which are stored unsigned.
type unsigned8 struct {
	intpcm.Reader
}

func (u unsigned8) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	n, err := u.Reader.PCMBuffer(buf)
	for i := range buf.Data[:n] {
		buf.Data[i] -= 128
	}
	return n, err
}
