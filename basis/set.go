// SPDX-License-Identifier: MIT
package basis

import (
	"fmt"

	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/katalvlaran/prinv/matrix"
)

const (
	// DefaultSmearPoints is the number of samples per slit dimension.
	DefaultSmearPoints = 21

	// DefaultRoughnessIntervals is the number of Simpson intervals used to
	// integrate φ''_n·φ''_m over [0, D]. It must be even.
	DefaultRoughnessIntervals = 1000
)

// Set is an immutable basis of N functions on [0, DMax], optionally slit-smeared.
// The zero value is not usable; build it with New.
type Set struct {
	dmax       float64
	n          int
	slitHeight float64
	slitWidth  float64
	smearPts   int
}

// Option configures a Set.
type Option func(*Set)

// WithSlit sets the slit height and width in Q units. Zero disables smearing
// in that direction.
func WithSlit(height, width float64) Option {
	return func(s *Set) {
		s.slitHeight = height
		s.slitWidth = width
	}
}

// WithSmearPoints sets the number of samples per slit dimension.
func WithSmearPoints(n int) Option {
	return func(s *Set) { s.smearPts = n }
}

// New validates and builds a basis Set.
//
// Errors:
//   - ErrDataInconsistency when dmax ≤ 0, n < 1, or the slit is invalid.
func New(dmax float64, n int, opts ...Option) (Set, error) {
	s := Set{dmax: dmax, n: n, smearPts: DefaultSmearPoints}
	for _, opt := range opts {
		opt(&s)
	}
	if err := checkIndex(s.dmax, s.n); err != nil {
		return Set{}, err
	}
	if err := checkSlit(s.slitHeight, s.slitWidth, s.smearPts); err != nil {
		return Set{}, err
	}

	return s, nil
}

// DMax returns the maximum distance.
func (s Set) DMax() float64 { return s.dmax }

// N returns the number of basis functions.
func (s Set) N() int { return s.n }

// Slit returns the slit height and width.
func (s Set) Slit() (height, width float64) { return s.slitHeight, s.slitWidth }

// IsSmeared reports whether TransformRow applies slit smearing.
func (s Set) IsSmeared() bool { return s.slitHeight > 0 || s.slitWidth > 0 }

// Values returns [φ_1(r) … φ_N(r)].
func (s Set) Values(r float64) []float64 {
	out := make([]float64, s.n)
	for k := range out {
		out[k] = phi(s.dmax, k+1, r)
	}

	return out
}

// Derivatives returns [φ'_1(r) … φ'_N(r)].
func (s Set) Derivatives(r float64) []float64 {
	out := make([]float64, s.n)
	for k := range out {
		out[k] = phiPrime(s.dmax, k+1, r)
	}

	return out
}

// TransformRow returns [Φ_1(q) … Φ_N(q)], slit-smeared when configured.
func (s Set) TransformRow(q float64) []float64 {
	out := make([]float64, s.n)
	for k := range out {
		if s.IsSmeared() {
			out[k] = smeared(s.dmax, k+1, q, s.slitHeight, s.slitWidth, s.smearPts)
		} else {
			out[k] = bigPhi(s.dmax, k+1, q)
		}
	}

	return out
}

// ZeroQ returns the analytic Q → 0 limits [Φ_1(0) … Φ_N(0)]. Smearing does not
// apply: the zero-angle intensity is a property of the unsmeared curve.
func (s Set) ZeroQ() []float64 {
	return s.TransformRowUnsmeared(0)
}

// TransformRowUnsmeared returns [Φ_1(q) … Φ_N(q)] ignoring the slit.
func (s Set) TransformRowUnsmeared(q float64) []float64 {
	out := make([]float64, s.n)
	for k := range out {
		out[k] = bigPhi(s.dmax, k+1, q)
	}

	return out
}

// FirstMoments returns [∫φ_1 dr … ∫φ_N dr].
func (s Set) FirstMoments() []float64 {
	out := make([]float64, s.n)
	for k := range out {
		out[k] = firstMoment(s.dmax, k+1)
	}

	return out
}

// SecondMoments returns [∫r²φ_1 dr … ∫r²φ_N dr].
func (s Set) SecondMoments() []float64 {
	out := make([]float64, s.n)
	for k := range out {
		out[k] = secondMoment(s.dmax, k+1)
	}

	return out
}

// Roughness returns R (N×N), R_nm = ∫₀^D φ''_n(r)·φ''_m(r) dr, integrated with
// composite Simpson over DefaultRoughnessIntervals intervals. R is symmetric
// positive definite, so cᵀRc > 0 for every c ≠ 0.
func (s Set) Roughness() (*matrix.Dense, error) {
	const k = DefaultRoughnessIntervals
	h := s.dmax / k

	// Simpson weights 1,4,2,4,…,4,1 scaled by h/3.
	w := make([]float64, k+1)
	for i := range w {
		switch {
		case i == 0 || i == k:
			w[i] = 1
		case i%2 == 1:
			w[i] = 4
		default:
			w[i] = 2
		}
	}
	vecmath.ScaleBlockInPlace(w, h/3)

	f := make([][]float64, s.n)
	g := make([][]float64, s.n)
	for n := range f {
		f[n] = make([]float64, k+1)
		for i := range f[n] {
			f[n][i] = phiSecond(s.dmax, n+1, float64(i)*h)
		}
		g[n] = make([]float64, k+1)
		vecmath.MulBlock(g[n], f[n], w)
	}

	r, err := matrix.NewDense(s.n, s.n)
	if err != nil {
		return nil, fmt.Errorf("Roughness: %w", err)
	}
	var v float64
	for i := 0; i < s.n; i++ {
		for j := i; j < s.n; j++ {
			v = vecmath.DotProduct(g[i], f[j])
			if err = r.Set(i, j, v); err != nil {
				return nil, fmt.Errorf("Roughness: %w", err)
			}
			if err = r.Set(j, i, v); err != nil {
				return nil, fmt.Errorf("Roughness: %w", err)
			}
		}
	}

	return r, nil
}
