// SPDX-License-Identifier: EPL-2.0

package transform

import "errors"

var (
	ErrNilStream    = errors.New("transform: nil upstream stream")
	ErrNilProcessor = errors.New("transform: nil processor")
)
