// SPDX-License-Identifier: MIT
package invert

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/prinv/basis"
)

var (
	// ErrDataInconsistency reports invalid input: mismatched lengths, Q ≤ 0,
	// non-finite values, dI < 0 (or dI = 0 on a fitted point), D_max ≤ 0,
	// nfunc < 1, too few points, or a negative alpha.
	ErrDataInconsistency = basis.ErrDataInconsistency

	// ErrSingularSystem reports that the regularized normal matrix is not
	// invertible to working precision.
	ErrSingularSystem = errors.New("invert: singular system")

	// ErrNotReady reports a query made before a successful Invert, or an
	// Invert attempted before both data and D_max were set.
	ErrNotReady = errors.New("invert: engine not ready")
)

// ConvergenceWarning is a non-fatal condition raised by iterative layers built
// on top of the linear solve, such as EstimateAlpha. It never accompanies a
// failed inversion.
type ConvergenceWarning struct {
	Op     string
	Reason string
}

func (w *ConvergenceWarning) Error() string {
	return fmt.Sprintf("invert: %s did not converge: %s", w.Op, w.Reason)
}

func inconsistent(op, format string, args ...any) error {
	return fmt.Errorf("%s: %s: %w", op, fmt.Sprintf(format, args...), ErrDataInconsistency)
}

func invertErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
