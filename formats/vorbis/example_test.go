// SPDX-License-Identifier: EPL-2.0

package vorbis_test

import (
	"fmt"
	"log"
	"os"

	"github.com/ik5/audframe/audio"
	"github.com/ik5/audframe/formats/vorbis"
)

// ExampleDecoder_Decode decodes an Ogg Vorbis file through a registry.
func ExampleDecoder_Decode() {
	reg := audio.NewRegistry()
	reg.Register("ogg", vorbis.Decoder{})

	f, err := os.Open("input.ogg")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	src, err := reg.Decode("ogg", f)
	if err != nil {
		log.Fatal(err)
	}
	defer src.Close()

	fmt.Printf("%d ch @ %d Hz\n", src.Channels(), src.SampleRate())
}
