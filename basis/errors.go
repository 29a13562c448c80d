// SPDX-License-Identifier: MIT
package basis

import (
	"errors"
	"fmt"
)

// ErrDataInconsistency reports a precondition violation: D_max ≤ 0, an index
// n < 1, a negative slit size, or a non-finite argument.
var ErrDataInconsistency = errors.New("basis: data inconsistency")

func inconsistent(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrDataInconsistency)
}
