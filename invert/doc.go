// Package invert recovers a pair-distance distribution P(r) from a small-angle
// scattering curve I(Q) by regularized indirect Fourier transformation.
//
// P(r) is expanded in the sine basis of package basis, P(r) = Σ c_n·φ_n(r),
// and the coefficients minimise
//
//	‖W(A·c − I)‖² + α·cᵀRc,    A[i][n] = Φ_n(Q_i),  W = diag(1/dI_i)
//
// where R is the curvature (second-derivative) Gram matrix of the basis. The
// normal system (AᵀWᵀWA + αR)·c = AᵀWᵀW·I is solved through the spectral
// inverse of package matrix; its scaled inverse is the coefficient covariance.
//
// An Engine follows a small state machine:
//
//	StateUninitialized → StateDataSet (data and D_max set) → StateInverted
//
// Every setter moves the engine back to StateDataSet and discards the last
// Result; queries made before a successful Invert return ErrNotReady. A failed
// Invert leaves the previous state and Result untouched.
//
// An Engine is not safe for concurrent use. Datasets are immutable values and
// may be shared freely between engines.
package invert
