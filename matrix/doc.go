// Package matrix offers the dense linear algebra used by the P(r) inversion.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with bounds-checked At/Set.
//   - Products for weighted least squares: Mul, Transpose, MatVec, TMatVec,
//     Gram (AᵀA), ScaleRows, QuadForm, Trace.
//   - Eigen, a classical Jacobi decomposition for symmetric matrices.
//   - SymPinv / SolveSym, a spectral inverse of symmetric positive definite
//     systems that reports rank deficiency as ErrSingular instead of
//     silently truncating it.
//
// All kernels validate their inputs and return sentinel errors (errors.go)
// wrapped with an operation tag; none of them panic on user input.
package matrix
