// SPDX-License-Identifier: MIT
package invert

import (
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/katalvlaran/prinv/basis"
	"github.com/katalvlaran/prinv/matrix"
)

// The functions below evaluate a coefficient vector against a basis Set. They
// are pure; Engine and Result wrap them with state and shape checks.

const opEval = "Eval"

func checkCoeffs(s basis.Set, c []float64) error {
	if len(c) != s.N() {
		return inconsistent(opEval, "len(c)=%d, basis has %d functions", len(c), s.N())
	}

	return nil
}

func checkCov(s basis.Set, cov matrix.Matrix) error {
	if err := matrix.ValidateSquare(cov); err != nil {
		return inconsistent(opEval, "covariance: %v", err)
	}
	if cov.Rows() != s.N() {
		return inconsistent(opEval, "covariance is %dx%d, basis has %d functions", cov.Rows(), cov.Cols(), s.N())
	}

	return nil
}

// PR returns P(r) = Σ c_n·φ_n(r).
func PR(s basis.Set, c []float64, r float64) (float64, error) {
	if err := checkCoeffs(s, c); err != nil {
		return 0, err
	}

	return vecmath.DotProduct(c, s.Values(r)), nil
}

// PRErr returns P(r) and its propagated error √|vᵀ·cov·v| with v = φ(r).
func PRErr(s basis.Set, c []float64, cov matrix.Matrix, r float64) (pr, dpr float64, err error) {
	if err = checkCoeffs(s, c); err != nil {
		return 0, 0, err
	}
	if err = checkCov(s, cov); err != nil {
		return 0, 0, err
	}
	v := s.Values(r)
	q, err := matrix.QuadForm(cov, v)
	if err != nil {
		return 0, 0, invertErrorf(opEval, err)
	}

	return vecmath.DotProduct(c, v), math.Sqrt(math.Abs(q)), nil
}

// IQ returns Σ c_n·Φ_n(q) + background, slit-smeared when the Set is.
func IQ(s basis.Set, c []float64, background, q float64) (float64, error) {
	if err := checkCoeffs(s, c); err != nil {
		return 0, err
	}
	if !(q >= 0) || math.IsInf(q, 1) {
		return 0, inconsistent(opEval, "q=%g", q)
	}

	return vecmath.DotProduct(c, s.TransformRow(q)) + background, nil
}

// IQ0 returns the Q → 0 limit Σ c_n·Φ_n(0) + background.
func IQ0(s basis.Set, c []float64, background float64) (float64, error) {
	if err := checkCoeffs(s, c); err != nil {
		return 0, err
	}

	return vecmath.DotProduct(c, s.ZeroQ()) + background, nil
}

// Rg returns the radius of gyration √(∫r²P dr / (2∫P dr)) from the closed-form
// basis moments. It is NaN when the ratio is not positive.
func Rg(s basis.Set, c []float64) (float64, error) {
	if err := checkCoeffs(s, c); err != nil {
		return 0, err
	}
	m1 := vecmath.DotProduct(c, s.FirstMoments())
	m2 := vecmath.DotProduct(c, s.SecondMoments())
	if m1 == 0 || m2/m1 <= 0 {
		return math.NaN(), nil
	}

	return math.Sqrt(m2 / (2 * m1)), nil
}

// Oscillations returns (D/π)·√(∫P'² dr / ∫P² dr) sampled on DiagnosticPoints
// slices. A single half sine scores 1 and a sphere about 1.1; larger values
// indicate under-regularized, wiggly solutions. It is NaN for P ≡ 0.
func Oscillations(s basis.Set, c []float64) (float64, error) {
	if err := checkCoeffs(s, c); err != nil {
		return 0, err
	}
	var (
		num, den float64
		p, dp    float64
	)
	d := s.DMax()
	for k := 0; k <= DiagnosticPoints; k++ {
		r := d * float64(k) / DiagnosticPoints
		p = vecmath.DotProduct(c, s.Values(r))
		dp = vecmath.DotProduct(c, s.Derivatives(r))
		w := 1.0
		if k == 0 || k == DiagnosticPoints {
			w = 0.5
		}
		num += w * dp * dp
		den += w * p * p
	}
	if den == 0 {
		return math.NaN(), nil
	}

	return d / math.Pi * math.Sqrt(num/den), nil
}

// Positive returns the fraction of the midpoint grid r_k = D(k+½)/DiagnosticPoints
// where P(r_k) > 0.
func Positive(s basis.Set, c []float64) (float64, error) {
	if err := checkCoeffs(s, c); err != nil {
		return 0, err
	}
	pos := 0
	for _, r := range diagnosticGrid(s.DMax()) {
		if vecmath.DotProduct(c, s.Values(r)) > 0 {
			pos++
		}
	}

	return float64(pos) / DiagnosticPoints, nil
}

// PosErr returns the fraction of the midpoint grid where P(r) exceeds its own
// propagated error bar.
func PosErr(s basis.Set, c []float64, cov matrix.Matrix) (float64, error) {
	if err := checkCoeffs(s, c); err != nil {
		return 0, err
	}
	if err := checkCov(s, cov); err != nil {
		return 0, err
	}
	pos := 0
	for _, r := range diagnosticGrid(s.DMax()) {
		p, dp, err := PRErr(s, c, cov, r)
		if err != nil {
			return 0, err
		}
		if p > dp {
			pos++
		}
	}

	return float64(pos) / DiagnosticPoints, nil
}

// Peaks counts the local maxima of P(r) on the midpoint grid.
func Peaks(s basis.Set, c []float64) (int, error) {
	if err := checkCoeffs(s, c); err != nil {
		return 0, err
	}
	var (
		peaks  int
		rising bool
		prev   float64
	)
	for k, r := range diagnosticGrid(s.DMax()) {
		p := vecmath.DotProduct(c, s.Values(r))
		if k > 0 {
			switch {
			case p > prev:
				rising = true
			case p < prev && rising:
				peaks++
				rising = false
			}
		}
		prev = p
	}

	return peaks, nil
}

func diagnosticGrid(d float64) []float64 {
	out := make([]float64, DiagnosticPoints)
	for k := range out {
		out[k] = d * (float64(k) + 0.5) / DiagnosticPoints
	}

	return out
}
