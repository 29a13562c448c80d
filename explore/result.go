// SPDX-License-Identifier: MIT
package explore

import (
	"fmt"

	"github.com/katalvlaran/prinv/invert"
)

// Point is one solved D_max.
type Point struct {
	DMax float64
	invert.Diagnostics
	// Result is the full inversion, for callers that want P(r) at the point.
	Result *invert.Result
}

// PointError records a D_max whose inversion failed.
type PointError struct {
	DMax float64
	Err  error
}

func (e PointError) Error() string {
	return fmt.Sprintf("d_max=%g: %v", e.DMax, e.Err)
}

func (e PointError) Unwrap() error { return e.Err }

// SweepResult holds the solved points and the failures, both in D_max order.
type SweepResult struct {
	Points []Point
	Errors []PointError
}

func (s *SweepResult) column(f func(Point) float64) []float64 {
	out := make([]float64, len(s.Points))
	for k, p := range s.Points {
		out[k] = f(p)
	}

	return out
}

// DMax returns the D_max of every solved point.
func (s *SweepResult) DMax() []float64 { return s.column(func(p Point) float64 { return p.DMax }) }

// Chi2 returns chi2 per point.
func (s *SweepResult) Chi2() []float64 { return s.column(func(p Point) float64 { return p.Chi2 }) }

// Rg returns the radius of gyration per point.
func (s *SweepResult) Rg() []float64 { return s.column(func(p Point) float64 { return p.Rg }) }

// IQ0 returns the extrapolated I(0) per point.
func (s *SweepResult) IQ0() []float64 { return s.column(func(p Point) float64 { return p.IQ0 }) }

// Background returns the background per point.
func (s *SweepResult) Background() []float64 {
	return s.column(func(p Point) float64 { return p.Background })
}

// Oscillation returns the oscillation score per point.
func (s *SweepResult) Oscillation() []float64 {
	return s.column(func(p Point) float64 { return p.Oscillation })
}

// Positive returns the positive fraction per point.
func (s *SweepResult) Positive() []float64 {
	return s.column(func(p Point) float64 { return p.Positive })
}

// PosErr returns the above-error-bar fraction per point.
func (s *SweepResult) PosErr() []float64 {
	return s.column(func(p Point) float64 { return p.PosErr })
}

// Best returns the point with the smallest chi2; ok is false for an empty sweep.
func (s *SweepResult) Best() (best Point, ok bool) {
	for k, p := range s.Points {
		if k == 0 || p.Chi2 < best.Chi2 {
			best, ok = p, true
		}
	}

	return best, ok
}
