// SPDX-License-Identifier: EPL-2.0

package utils

// PCMScale returns the magnitude of full scale for signed integer PCM of the
// given bit depth, for example 32768 for 16-bit. Unknown depths fall back to
// 16-bit.
func PCMScale(bitDepth int) float32 {
	switch bitDepth {
	case 8:
		return 128.0
	case 16:
		return 32768.0
	case 24:
		return 8388608.0
	case 32:
		return 2147483648.0
	default:
		return 32768.0
	}
}

// FloatToPCM converts x to a signed integer sample of bitDepth bits,
// clamping to [-1, 1] first.
func FloatToPCM(x float32, bitDepth int) int {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// One step below full scale on the positive side, as in Float32ToInt16.
	return int(float64(x) * float64(PCMScale(bitDepth)-1))
}
