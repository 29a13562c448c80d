// SPDX-License-Identifier: MIT

// Package matrix - dense linear algebra kernels.
//
// Purpose:
//   - Products and reshapes needed by weighted least squares: Mul, Transpose,
//     MatVec, TMatVec, Gram (AᵀA), ScaleRows, QuadForm, Trace, Add, Scale.
//   - Symmetric spectral decomposition (Jacobi) used by SymPinv.
//
// Determinism:
//   - Fixed loop orders; no goroutines; no map iteration.
//
// AI-Hints:
//   - Every kernel calls asDense once; pass *Dense to avoid the conversion copy.
//   - Inner products go through vecmath.DotProduct, which dispatches to SIMD
//     implementations where the CPU supports them.
package matrix

import (
	"fmt"
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"
)

// NormZero is the additive identity for norm and accumulation operations.
const NormZero = 0.0

// Operation name constants for unified error wrapping.
const (
	opAdd       = "Add"
	opMul       = "Mul"
	opTranspose = "Transpose"
	opScale     = "Scale"
	opScaleRows = "ScaleRows"
	opEigen     = "Eigen"
	opMatVec    = "MatVec"
	opTMatVec   = "TMatVec"
	opGram      = "Gram"
	opQuadForm  = "QuadForm"
	opTrace     = "Trace"
	opSymPinv   = "SymPinv"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Add returns a + b as a new Dense.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Add(a, b Matrix) (*Dense, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opAdd, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opAdd, err)
	}
	if err := ValidateSameShape(a, b); err != nil {
		return nil, matrixErrorf(opAdd, err)
	}
	da, err := asDense(a)
	if err != nil {
		return nil, matrixErrorf(opAdd, err)
	}
	db, err := asDense(b)
	if err != nil {
		return nil, matrixErrorf(opAdd, err)
	}
	res, err := NewDense(da.r, da.c)
	if err != nil {
		return nil, matrixErrorf(opAdd, err)
	}
	vecmath.AddBlock(res.data, da.data, db.data)

	return res, nil
}

// Scale returns alpha*m as a new Dense. The input is not mutated.
func Scale(m Matrix, alpha float64) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	if math.IsNaN(alpha) || math.IsInf(alpha, 0) {
		return nil, matrixErrorf(opScale, ErrNaNInf)
	}
	dm, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	res, err := NewDense(dm.r, dm.c)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	vecmath.ScaleBlock(res.data, dm.data, alpha)

	return res, nil
}

// Mul computes C = A × B.
//
// Implementation:
//   - Stage 1: ValidateMulCompatible(a, b); allocate C (r×c).
//   - Stage 2: i→k→j accumulation over flat rows; zero A[i,k] are skipped.
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (inner mismatch).
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
func Mul(a, b Matrix) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	da, err := asDense(a)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	db, err := asDense(b)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	res, err := NewDense(da.r, db.c)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	var (
		i, k int
		av   float64
		row  []float64
	)
	for i = 0; i < da.r; i++ {
		row = res.rawRow(i)
		for k = 0; k < da.c; k++ {
			av = da.data[i*da.c+k]
			if av == 0 {
				continue
			}
			for j, bv := range db.rawRow(k) {
				row[j] += av * bv
			}
		}
	}

	return res, nil
}

// Transpose returns a new matrix with rows and columns swapped (mᵀ).
// Complexity: O(r*c).
func Transpose(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	dm, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	res, err := NewDense(dm.c, dm.r)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	for i := 0; i < dm.r; i++ {
		for j := 0; j < dm.c; j++ {
			res.data[j*dm.r+i] = dm.data[i*dm.c+j]
		}
	}

	return res, nil
}

// MatVec computes y = m·x.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (len(x) != Cols).
//
// Complexity:
//   - Time O(r*c), Space O(r).
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	dm, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	y := make([]float64, dm.r)
	for i := range y {
		y[i] = vecmath.DotProduct(dm.rawRow(i), x)
	}

	return y, nil
}

// TMatVec computes y = mᵀ·x without materializing mᵀ.
// Complexity: O(r*c).
func TMatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTMatVec, err)
	}
	if err := ValidateVecLen(x, m.Rows()); err != nil {
		return nil, matrixErrorf(opTMatVec, err)
	}
	dm, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opTMatVec, err)
	}
	y := make([]float64, dm.c)
	for i := 0; i < dm.r; i++ {
		if x[i] == 0 {
			continue
		}
		for j, v := range dm.rawRow(i) {
			y[j] += x[i] * v
		}
	}

	return y, nil
}

// Gram returns the symmetric product AᵀA (c×c).
//
// Implementation:
//   - Stage 1: materialize Aᵀ so each column of A is a contiguous row.
//   - Stage 2: fill the upper triangle with column dot products and mirror it,
//     so the result is exactly symmetric.
//
// Complexity:
//   - Time O(r*c²), Space O(r*c + c²).
func Gram(a Matrix) (*Dense, error) {
	at, err := Transpose(a)
	if err != nil {
		return nil, matrixErrorf(opGram, err)
	}
	n := at.r
	res, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opGram, err)
	}
	var v float64
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v = vecmath.DotProduct(at.rawRow(i), at.rawRow(j))
			res.data[i*n+j] = v
			res.data[j*n+i] = v
		}
	}

	return res, nil
}

// ScaleRows returns a copy of m with row i multiplied by s[i].
// Used to apply per-observation weights to a design matrix.
func ScaleRows(m Matrix, s []float64) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScaleRows, err)
	}
	if err := ValidateVecLen(s, m.Rows()); err != nil {
		return nil, matrixErrorf(opScaleRows, err)
	}
	dm, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opScaleRows, err)
	}
	res := dm.cloneDense()
	for i := 0; i < res.r; i++ {
		vecmath.ScaleBlockInPlace(res.rawRow(i), s[i])
	}

	return res, nil
}

// QuadForm returns xᵀ·m·x for a square m.
func QuadForm(m Matrix, x []float64) (float64, error) {
	if err := ValidateSquare(m); err != nil {
		return 0, matrixErrorf(opQuadForm, err)
	}
	if err := ValidateVecLen(x, m.Rows()); err != nil {
		return 0, matrixErrorf(opQuadForm, err)
	}
	dm, err := asDense(m)
	if err != nil {
		return 0, matrixErrorf(opQuadForm, err)
	}
	var sum float64
	for i, xi := range x {
		if xi == 0 {
			continue
		}
		sum += xi * vecmath.DotProduct(dm.rawRow(i), x)
	}

	return sum, nil
}

// Trace returns Σ m[i,i] of a square matrix.
func Trace(m Matrix) (float64, error) {
	if err := ValidateSquare(m); err != nil {
		return 0, matrixErrorf(opTrace, err)
	}
	dm, err := asDense(m)
	if err != nil {
		return 0, matrixErrorf(opTrace, err)
	}

	return vecmath.Sum(dm.Diag()), nil
}

// Eigen performs the classical Jacobi eigen-decomposition of a symmetric matrix.
// MAIN DESCRIPTION:
//   - Returns eigenvalues (unsorted, in diagonal order) and the orthogonal matrix Q
//     whose columns are the matching eigenvectors: m = Q·diag(λ)·Qᵀ.
//
// Implementation:
//   - Stage 1: ValidateSymmetric(m, tol); copy m into a working buffer A; Q = I.
//   - Stage 2: repeat up to maxIter times:
//     pick (p,q) maximizing |A[p,q]|; stop when it is below tol;
//     rotate A and accumulate the rotation into Q.
//   - Stage 3: verify convergence; read eigenvalues from diag(A).
//
// Errors:
//   - ErrNilMatrix/ErrNonSquare/ErrAsymmetry from validation.
//   - ErrMatrixEigenFailed when the off-diagonal mass stays above tol.
//
// Determinism:
//   - Pivot search scans the strict upper triangle in i→j order; ties keep the first.
//
// Complexity:
//   - Time O(maxIter·n²) worst case, typically a few sweeps of n²/2 rotations.
//
// AI-Hints:
//   - tol is absolute; scale the input to a unit diagonal for a scale-free threshold.
func Eigen(m Matrix, tol float64, maxIter int) ([]float64, *Dense, error) {
	if err := ValidateSymmetric(m, tol); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	src, err := asDense(m)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	n := src.r
	a := src.cloneDense()
	q, err := Identity(n)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}

	var (
		iter, i, j         int
		p, r               int     // current pivot indices (row p, column r)
		maxOff, off        float64 // current max |A[p,r]|
		app, arr, apr      float64
		aip, air, qip, qir float64
		theta, t, c, s     float64
	)
	for iter = 0; iter < maxIter; iter++ {
		maxOff = NormZero
		for i = 0; i < n; i++ {
			for j = i + 1; j < n; j++ {
				off = math.Abs(a.data[i*n+j])
				if off > maxOff {
					maxOff, p, r = off, i, j
				}
			}
		}
		if maxOff < tol {
			break
		}

		app = a.data[p*n+p]
		arr = a.data[r*n+r]
		apr = a.data[p*n+r]
		theta = (arr - app) / (2 * apr)
		t = math.Copysign(1.0/(math.Abs(theta)+math.Hypot(theta, 1)), theta)
		c = 1.0 / math.Sqrt(t*t+1)
		s = t * c

		for i = 0; i < n; i++ {
			if i == p || i == r {
				continue
			}
			aip = a.data[i*n+p]
			air = a.data[i*n+r]
			a.data[i*n+p] = c*aip - s*air
			a.data[p*n+i] = a.data[i*n+p]
			a.data[i*n+r] = s*aip + c*air
			a.data[r*n+i] = a.data[i*n+r]
		}
		a.data[p*n+p] = app - t*apr
		a.data[r*n+r] = arr + t*apr
		a.data[p*n+r], a.data[r*n+p] = 0, 0

		for i = 0; i < n; i++ {
			qip = q.data[i*n+p]
			qir = q.data[i*n+r]
			q.data[i*n+p] = c*qip - s*qir
			q.data[i*n+r] = s*qip + c*qir
		}
	}

	maxOff = NormZero
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			maxOff = math.Max(maxOff, math.Abs(a.data[i*n+j]))
		}
	}
	if maxOff >= tol {
		return nil, nil, matrixErrorf(opEigen, ErrMatrixEigenFailed)
	}

	return a.Diag(), q, nil
}
