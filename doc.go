// Package prinv computes the pair-distance distribution P(r) of a particle from
// its small-angle scattering curve I(Q), by regularized indirect Fourier
// transformation.
//
// 🚀 What is in prinv?
//
//	• Basis: P(r) = Σ c_n·2r·sin(nπr/D_max) and its closed-form transform Φ_n(Q)
//	• Inversion: weighted least squares with a curvature penalty α·∫P''²
//	• Diagnostics: Rg, I(0), oscillation, positivity, peak count, chi2
//	• Exploration: parallel sweeps over D_max
//	• Persistence: text state files that regenerate P(r) without the data
//
// Everything is organized under these packages:
//
//	matrix/    : dense row-major matrices, Gram/MatVec kernels, Jacobi eigen & SymPinv
//	basis/     : φ_n, Φ_n (slit-smeared or not), closed-form moments, roughness matrix
//	invert/    : Dataset, Engine state machine, Result, diagnostics, alpha estimation
//	explore/   : D_max sweep with bounded parallelism
//	prfile/    : state file reader/writer
//	synthetic/ : analytic sphere curves for tests and demos
//	cmd/prinv/ : command line: invert, explore, sphere, version
//
// Quick start:
//
//	e := invert.New()
//	_ = e.SetData(q, i, di)
//	_ = e.SetDmax(120)
//	alpha, _ := e.SuggestAlpha(15)
//	res, _ := e.Invert(15, 1e-3*alpha)
//	rg, _ := e.Rg(res.Coefficients)
//
//	go get github.com/katalvlaran/prinv
package prinv
