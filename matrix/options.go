// SPDX-License-Identifier: MIT

// Package matrix: functional configuration of the numeric policy used by the
// spectral kernels (Eigen, SymPinv). This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal).
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - Safe by construction: panic only on invalid parameters (programmer error).
package matrix

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultEpsilon is the tolerance used by structural checks (symmetry).
	DefaultEpsilon = 1e-9

	// DefaultValidateNaNInf toggles strict finite-value validation on ingestion and Set.
	DefaultValidateNaNInf = true

	// DefaultEigenTol is the absolute off-diagonal threshold at which Jacobi stops.
	// SymPinv equilibrates its input to a unit diagonal first, so an absolute
	// threshold is meaningful there.
	DefaultEigenTol = 1e-14

	// DefaultEigenMaxIter bounds the number of Jacobi rotations.
	DefaultEigenMaxIter = 200_000

	// DefaultRCond is the smallest accepted ratio λ_min/λ_max of an equilibrated
	// symmetric system; below it the system is reported as ErrSingular.
	DefaultRCond = 1e-13
)

// Options holds the resolved numeric policy.
type Options struct {
	eps      float64
	eigenTol float64
	maxIter  int
	rcond    float64
}

// Option mutates Options.
type Option func(*Options)

// WithEpsilon sets the symmetry tolerance. Panics on negative or NaN.
func WithEpsilon(eps float64) Option {
	if !(eps >= 0) {
		panic("matrix: WithEpsilon requires eps >= 0")
	}

	return func(o *Options) { o.eps = eps }
}

// WithEigenTolerance sets the Jacobi stopping threshold. Panics unless tol > 0.
func WithEigenTolerance(tol float64) Option {
	if !(tol > 0) {
		panic("matrix: WithEigenTolerance requires tol > 0")
	}

	return func(o *Options) { o.eigenTol = tol }
}

// WithMaxIter bounds Jacobi rotations. Panics unless n > 0.
func WithMaxIter(n int) Option {
	if n <= 0 {
		panic("matrix: WithMaxIter requires n > 0")
	}

	return func(o *Options) { o.maxIter = n }
}

// WithRCond sets the singularity threshold of SymPinv. Panics unless 0 <= r < 1.
func WithRCond(r float64) Option {
	if !(r >= 0 && r < 1) {
		panic("matrix: WithRCond requires 0 <= r < 1")
	}

	return func(o *Options) { o.rcond = r }
}

// gatherOptions applies opts on top of the documented defaults.
func gatherOptions(opts ...Option) Options {
	o := Options{
		eps:      DefaultEpsilon,
		eigenTol: DefaultEigenTol,
		maxIter:  DefaultEigenMaxIter,
		rcond:    DefaultRCond,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
