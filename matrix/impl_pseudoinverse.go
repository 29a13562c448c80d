// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"
)

// SymPinv inverts a symmetric positive semi-definite matrix through its spectrum.
// MAIN DESCRIPTION:
//   - For a symmetric matrix the Jacobi eigen-decomposition is its SVD, so the
//     inverse is Q·diag(1/λ)·Qᵀ. Rank deficiency is reported, not truncated.
//
// Implementation:
//   - Stage 1: validate (nil, square, finite, symmetric within eps·max|m|).
//   - Stage 2: equilibrate: S = diag(1/√m[i,i]), B = S·m·S (unit diagonal).
//     A non-positive diagonal entry means a null direction: ErrSingular.
//   - Stage 3: Eigen(B); if min λ ≤ rcond·max λ the system is singular.
//   - Stage 4: m⁻¹ = S·Q·diag(1/λ)·Qᵀ·S, assembled symmetrically.
//
// Inputs:
//   - m: symmetric n×n matrix (e.g. a regularized normal matrix).
//   - opts: WithRCond, WithEigenTolerance, WithMaxIter, WithEpsilon.
//
// Returns:
//   - *Dense: the inverse (exactly symmetric).
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrNaNInf, ErrAsymmetry (validation).
//   - ErrSingular (null or numerically negligible eigen-directions).
//   - ErrMatrixEigenFailed (Jacobi did not converge).
//
// Complexity:
//   - Time O(n³) per Jacobi sweep, Space O(n²).
//
// AI-Hints:
//   - Equilibration makes rcond a scale-free threshold; badly scaled columns
//     (e.g. a background column next to basis columns) do not trip it.
func SymPinv(m Matrix, opts ...Option) (*Dense, error) {
	o := gatherOptions(opts...)
	if err := ValidateFinite(m); err != nil {
		return nil, matrixErrorf(opSymPinv, err)
	}
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opSymPinv, err)
	}
	dm, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opSymPinv, err)
	}
	if err = ValidateSymmetric(dm, o.eps*math.Max(1, vecmath.MaxAbs(dm.data))); err != nil {
		return nil, matrixErrorf(opSymPinv, err)
	}

	n := dm.r
	s := make([]float64, n)
	for i, d := range dm.Diag() {
		if !(d > 0) {
			return nil, matrixErrorf(opSymPinv, fmt.Errorf("diag[%d]=%g: %w", i, d, ErrSingular))
		}
		s[i] = 1 / math.Sqrt(d)
	}

	b, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opSymPinv, err)
	}
	var v float64
	for i := 0; i < n; i++ {
		b.data[i*n+i] = 1
		for j := i + 1; j < n; j++ {
			v = dm.data[i*n+j] * s[i] * s[j]
			b.data[i*n+j] = v
			b.data[j*n+i] = v
		}
	}

	eigs, q, err := Eigen(b, o.eigenTol, o.maxIter)
	if err != nil {
		return nil, matrixErrorf(opSymPinv, err)
	}
	lmax := math.Inf(-1)
	lmin := math.Inf(1)
	for _, l := range eigs {
		lmax = math.Max(lmax, l)
		lmin = math.Min(lmin, l)
	}
	if !(lmax > 0) || lmin <= o.rcond*lmax {
		return nil, matrixErrorf(opSymPinv, fmt.Errorf("rcond=%.3g: %w", lmin/lmax, ErrSingular))
	}

	// w[k] = 1/λ_k; column k of Q scaled by w[k] gives the middle factor.
	w := make([]float64, n)
	for k, l := range eigs {
		w[k] = 1 / l
	}
	qt, err := Transpose(q)
	if err != nil {
		return nil, matrixErrorf(opSymPinv, err)
	}
	scaled := qt.cloneDense()
	for k := 0; k < n; k++ {
		vecmath.ScaleBlockInPlace(scaled.rawRow(k), w[k])
	}

	res, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opSymPinv, err)
	}
	col := make([]float64, n)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			// (Q·W·Qᵀ)[i,j] = Σ_k Q[i,k]·w[k]·Q[j,k]
			for k := 0; k < n; k++ {
				col[k] = scaled.data[k*n+j]
			}
			v = vecmath.DotProduct(q.rawRow(i), col) * s[i] * s[j]
			res.data[i*n+j] = v
			res.data[j*n+i] = v
		}
	}

	return res, nil
}

// SolveSym solves m·x = b for a symmetric positive definite m via SymPinv.
// It also returns the inverse so callers can reuse it (e.g. as a covariance).
func SolveSym(m Matrix, b []float64, opts ...Option) ([]float64, *Dense, error) {
	inv, err := SymPinv(m, opts...)
	if err != nil {
		return nil, nil, err
	}
	x, err := MatVec(inv, b)
	if err != nil {
		return nil, nil, matrixErrorf(opSymPinv, err)
	}

	return x, inv, nil
}
