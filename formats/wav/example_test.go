// SPDX-License-Identifier: EPL-2.0

package wav_test

import (
	"fmt"
	"io"
	"os"

	"github.com/ik5/audframe/audio"
	"github.com/ik5/audframe/formats/wav"
	"github.com/ik5/audframe/internal/audiotest"
)

// Example shows a 24-bit round trip through a file.
func Example() {
	f, err := os.CreateTemp("", "example-*.wav")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer os.Remove(f.Name())
	defer f.Close()

	tone := audiotest.NewStream(2, 16000, []float32{0.5, -0.5, 0.25, -0.25})
	if err := wav.Encode(f, audio.NewStreamSource(tone, 64), 24); err != nil {
		fmt.Println(err)
		return
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		fmt.Println(err)
		return
	}

	src, err := wav.Decoder{}.Decode(f)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer src.Close()

	buf := make([]float32, 8)
	n, _ := src.ReadSamples(buf)
	fmt.Printf("%d ch @ %d Hz\n", src.Channels(), src.SampleRate())
	for _, v := range buf[:n] {
		fmt.Printf("%.2f ", v)
	}
	fmt.Println()
	// Output:
	// 2 ch @ 16000 Hz
	// 0.50 -0.50 0.25 -0.25
}
