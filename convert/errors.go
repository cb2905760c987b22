// SPDX-License-Identifier: EPL-2.0

package convert

import "errors"

var (
	ErrNilSample     = errors.New("nil sample")
	ErrInvalidChoice = errors.New("invalid conversion choice")
)
