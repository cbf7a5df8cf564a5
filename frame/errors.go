// SPDX-License-Identifier: EPL-2.0

package frame

import "errors"

var (
	ErrInvalidShape  = errors.New("frame: channels and length must be positive")
	ErrShapeMismatch = errors.New("frame: buffer shape mismatch")
)
