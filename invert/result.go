// SPDX-License-Identifier: MIT
package invert

import (
	"time"

	"github.com/katalvlaran/prinv/basis"
	"github.com/katalvlaran/prinv/matrix"
)

// Result is the outcome of one successful Invert. An Engine never mutates a
// Result after publishing it; callers should treat it as read-only.
type Result struct {
	// Coefficients c_n of P(r) = Σ c_n·φ_n(r), len == NFunc.
	Coefficients []float64
	// Covariance of Coefficients, NFunc×NFunc symmetric.
	Covariance *matrix.Dense
	// Chi2 is Σ((I − iq)/dI)² over the fitted points.
	Chi2 float64

	DMax       float64
	Alpha      float64
	NFunc      int
	Background float64
	// BackgroundErr is the standard error of an estimated background, else 0.
	BackgroundErr       float64
	EstimatedBackground bool

	SlitHeight  float64
	SlitWidth   float64
	SmearPoints int
	QMin, QMax  float64

	// RegTerm is cᵀRc, the roughness of the solution.
	RegTerm float64
	// SuggestedAlpha is trace(AᵀWᵀWA)/trace(R): the alpha at which data and
	// smoothness terms carry comparable weight.
	SuggestedAlpha float64
	// NPoints is the number of points inside the Q window.
	NPoints  int
	Elapsed  time.Duration
	DataHash uint64
}

// Diagnostics is the set of derived scalars used to judge an inversion.
type Diagnostics struct {
	Chi2        float64
	Rg          float64
	IQ0         float64
	Background  float64
	Oscillation float64
	Positive    float64
	PosErr      float64
	Peaks       int
}

// Basis rebuilds the basis Set the Result was computed with.
func (r *Result) Basis() (basis.Set, error) {
	opts := []basis.Option{basis.WithSlit(r.SlitHeight, r.SlitWidth)}
	if r.SmearPoints > 0 {
		opts = append(opts, basis.WithSmearPoints(r.SmearPoints))
	}

	return basis.New(r.DMax, r.NFunc, opts...)
}

// PR evaluates the reconstructed P(r).
func (r *Result) PR(x float64) (float64, error) {
	s, err := r.Basis()
	if err != nil {
		return 0, err
	}

	return PR(s, r.Coefficients, x)
}

// PRErr evaluates P(r) and its error bar.
func (r *Result) PRErr(x float64) (float64, float64, error) {
	s, err := r.Basis()
	if err != nil {
		return 0, 0, err
	}

	return PRErr(s, r.Coefficients, r.Covariance, x)
}

// IQ evaluates the fitted intensity, background included.
func (r *Result) IQ(q float64) (float64, error) {
	s, err := r.Basis()
	if err != nil {
		return 0, err
	}

	return IQ(s, r.Coefficients, r.Background, q)
}

// Diagnostics computes the full DiagnosticSet.
func (r *Result) Diagnostics() (Diagnostics, error) {
	s, err := r.Basis()
	if err != nil {
		return Diagnostics{}, err
	}
	d := Diagnostics{Chi2: r.Chi2, Background: r.Background}
	if d.Rg, err = Rg(s, r.Coefficients); err != nil {
		return Diagnostics{}, err
	}
	if d.IQ0, err = IQ0(s, r.Coefficients, r.Background); err != nil {
		return Diagnostics{}, err
	}
	if d.Oscillation, err = Oscillations(s, r.Coefficients); err != nil {
		return Diagnostics{}, err
	}
	if d.Positive, err = Positive(s, r.Coefficients); err != nil {
		return Diagnostics{}, err
	}
	if d.PosErr, err = PosErr(s, r.Coefficients, r.Covariance); err != nil {
		return Diagnostics{}, err
	}
	if d.Peaks, err = Peaks(s, r.Coefficients); err != nil {
		return Diagnostics{}, err
	}

	return d, nil
}
