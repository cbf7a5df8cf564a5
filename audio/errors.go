// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize  = errors.New("dst size must be multiple of channels")
	ErrUnknownFormat   = errors.New("no decoder registered for format")
	ErrChannelMismatch = errors.New("stream channel count does not match mixer")
	ErrRateMismatch    = errors.New("stream sample rate does not match mixer")
	ErrMixerDone       = errors.New("mixer has already ended")
)
