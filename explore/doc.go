// SPDX-License-Identifier: MIT

// Package explore sweeps the maximum distance D_max of an inversion.
//
// For every D_max in a linear range the Explorer solves a fresh invert.Engine
// on the shared, immutable Dataset and records its diagnostics. The sweep runs
// with bounded parallelism; a point that fails is reported in
// SweepResult.Errors and never aborts the rest.
//
// Typical use: look for the D_max at which chi2 stops improving while P(r)
// stays positive and smooth.
//
//	ex, err := explore.New(ds, 15, alpha, explore.WithRange(60, 140), explore.WithPoints(17))
//	if err != nil { ... }
//	sweep, err := ex.Run(ctx)
//	best, ok := sweep.Best()
package explore
