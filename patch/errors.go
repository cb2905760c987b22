// SPDX-License-Identifier: EPL-2.0

package patch

import "errors"

var (
	ErrBadTemplate = errors.New("bad patch template")
	ErrNoRegions   = errors.New("patch has no regions")
)
