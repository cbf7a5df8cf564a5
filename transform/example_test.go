// SPDX-License-Identifier: EPL-2.0

package transform_test

import (
	"fmt"
	"strings"

	"github.com/ik5/audframe/frame"
	"github.com/ik5/audframe/internal/audiotest"
	"github.com/ik5/audframe/transform"
)

// Example shows a mono stream spread to stereo, one frame at a time.
func Example() {
	src := audiotest.Ramp(1, 8000, 5)

	wide, err := transform.NewFunc(src, func(in, out *frame.Buffer) {
		for i, v := range in.Channel(0) {
			out.Set(0, i, v)
			out.Set(1, i, -v)
		}
	}, 2, 4)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer wide.Close()

	for {
		v, ok := wide.Next()
		if !ok {
			break
		}
		fmt.Print(v, " ")
	}
	fmt.Println()
	// Output:
	// 1 -1 2 -2 3 -3 4 -4 5 -5
}

// Example_clone shows two readers sharing one processed chain.
func Example_clone() {
	calls := 0
	tr, _ := transform.NewFunc(audiotest.Ramp(1, 8000, 6), func(in, out *frame.Buffer) {
		calls++
		out.CopyFrom(in)
	}, 1, 3)
	defer tr.Close()

	other := tr.Clone()
	defer other.Close()

	same := make([]string, 0, 6)
	for range 6 {
		a, _ := tr.Next()
		b, _ := other.Next()
		same = append(same, fmt.Sprint(a == b))
	}
	fmt.Println(strings.Join(same, " "))
	fmt.Println("frames processed:", calls)
	// Output:
	// true true true true true true
	// frames processed: 2
}
