// SPDX-License-Identifier: MIT
package invert

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/katalvlaran/prinv/basis"
	"github.com/katalvlaran/prinv/matrix"
)

// State is the lifecycle stage of an Engine.
type State int

const (
	StateUninitialized State = iota
	StateDataSet
	StateInverted
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateDataSet:
		return "data-set"
	case StateInverted:
		return "inverted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Operation tags for error wrapping.
const (
	opSetData  = "SetData"
	opSetDmax  = "SetDmax"
	opSetSlit  = "SetSlit"
	opInvert   = "Invert"
	opQuery    = "Query"
	opEstimate = "EstimateAlpha"
	opSuggest  = "SuggestAlpha"
)

// Engine owns one dataset and one D_max and solves the regularized inversion.
type Engine struct {
	cfg     config
	data    Dataset
	hasData bool
	dmax    float64
	state   State
	result  *Result
}

// New returns an Engine in StateUninitialized.
func New(opts ...Option) *Engine {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return &Engine{cfg: cfg}
}

// Clone returns an independent Engine with the same data, D_max and options.
// The current Result is shared, since Results are never mutated.
func (e *Engine) Clone() *Engine {
	cp := *e

	return &cp
}

// State returns the current lifecycle stage.
func (e *Engine) State() State { return e.state }

// Dataset returns the current dataset and whether one is set.
func (e *Engine) Dataset() (Dataset, bool) { return e.data, e.hasData }

// Dmax returns the configured D_max (0 if unset).
func (e *Engine) Dmax() float64 { return e.dmax }

// Result returns the last successful Result, or ErrNotReady.
func (e *Engine) Result() (*Result, error) {
	if e.state != StateInverted {
		return nil, invertErrorf(opQuery, ErrNotReady)
	}

	return e.result, nil
}

// SetData validates (Q, I, dI) and installs it as the current dataset.
// Any slit set with SetSlit is kept.
func (e *Engine) SetData(q, i, di []float64) error {
	ds, err := NewDataset(q, i, di)
	if err != nil {
		return invertErrorf(opSetData, err)
	}
	if e.hasData {
		h, w := e.data.Slit()
		if ds, err = ds.WithSlit(h, w); err != nil {
			return invertErrorf(opSetData, err)
		}
	}

	return e.SetDataset(ds)
}

// SetDataset installs an already validated Dataset.
func (e *Engine) SetDataset(ds Dataset) error {
	if ds.Len() == 0 {
		return inconsistent(opSetData, "empty dataset")
	}
	e.data = ds
	e.hasData = true
	e.reset()

	return nil
}

// SetDmax sets the maximum distance; d must be finite and > 0.
func (e *Engine) SetDmax(d float64) error {
	if !finite(d) || d <= 0 {
		return inconsistent(opSetDmax, "d_max=%g must be > 0", d)
	}
	e.dmax = d
	e.reset()

	return nil
}

// SetSlit sets the slit height and width on the current dataset.
func (e *Engine) SetSlit(height, width float64) error {
	if !e.hasData {
		return invertErrorf(opSetSlit, ErrNotReady)
	}
	ds, err := e.data.WithSlit(height, width)
	if err != nil {
		return invertErrorf(opSetSlit, err)
	}
	e.data = ds
	e.reset()

	return nil
}

// SetBackground sets a fixed background and disables background estimation.
func (e *Engine) SetBackground(b float64) error {
	if !finite(b) {
		return inconsistent("SetBackground", "background=%g", b)
	}
	e.cfg.background = b
	e.cfg.estimateBck = false
	e.reset()

	return nil
}

// SetEstimateBackground toggles fitting of a constant background.
func (e *Engine) SetEstimateBackground(on bool) {
	e.cfg.estimateBck = on
	e.reset()
}

// SetQRange restricts the fitted points to qmin ≤ Q ≤ qmax (bounds ≤ 0 are open).
func (e *Engine) SetQRange(qmin, qmax float64) error {
	if !finite(qmin) || !finite(qmax) || (qmin > 0 && qmax > 0 && qmin > qmax) {
		return inconsistent("SetQRange", "q range [%g, %g]", qmin, qmax)
	}
	e.cfg.qmin, e.cfg.qmax = qmin, qmax
	e.reset()

	return nil
}

// reset discards the last Result and recomputes the state from what is set.
func (e *Engine) reset() {
	e.result = nil
	if e.hasData && e.dmax > 0 {
		e.state = StateDataSet
	} else {
		e.state = StateUninitialized
	}
}

// accepted returns the indices of points inside the Q window.
func (e *Engine) accepted() []int {
	idx := make([]int, 0, len(e.data.q))
	for k, q := range e.data.q {
		if e.cfg.qmin > 0 && q < e.cfg.qmin {
			continue
		}
		if e.cfg.qmax > 0 && q > e.cfg.qmax {
			continue
		}
		idx = append(idx, k)
	}

	return idx
}

// system is the weighted least-squares problem for one nfunc, before
// regularization: Aw = W·A, b = W·(I − bg), Gram = AwᵀAw, rhs = Awᵀb.
type system struct {
	set   basis.Set
	aw    *matrix.Dense
	b     []float64
	gram  *matrix.Dense
	rhs   []float64
	rough *matrix.Dense
	off   int // 1 when column 0 is the background
	bg    float64
	npts  int
}

// build validates the engine and assembles the weighted system for nfunc.
func (e *Engine) build(op string, nfunc int) (*system, error) {
	if e.state == StateUninitialized {
		return nil, invertErrorf(op, fmt.Errorf("data set=%t, d_max=%g: %w", e.hasData, e.dmax, ErrNotReady))
	}
	if nfunc < 1 {
		return nil, inconsistent(op, "nfunc=%d must be >= 1", nfunc)
	}
	h, w := e.data.Slit()
	set, err := basis.New(e.dmax, nfunc, basis.WithSlit(h, w), basis.WithSmearPoints(e.cfg.smearPts))
	if err != nil {
		return nil, invertErrorf(op, err)
	}

	idx := e.accepted()
	for _, k := range idx {
		if e.data.di[k] == 0 {
			return nil, inconsistent(op, "dI[%d]=0 at Q=%g", k, e.data.q[k])
		}
	}
	sys := &system{set: set, bg: e.cfg.background, npts: len(idx)}
	if e.cfg.estimateBck {
		sys.off = 1
		sys.bg = 0
	}
	ncol := nfunc + sys.off
	if len(idx) < ncol {
		return nil, inconsistent(op, "%d points in Q range, need at least %d", len(idx), ncol)
	}

	a, err := matrix.NewDense(sys.npts, ncol)
	if err != nil {
		return nil, invertErrorf(op, err)
	}
	wts := make([]float64, sys.npts)
	sys.b = make([]float64, sys.npts)
	for row, k := range idx {
		wts[row] = 1 / e.data.di[k]
		sys.b[row] = (e.data.i[k] - sys.bg) * wts[row]
		if sys.off == 1 {
			if err = a.Set(row, 0, 1); err != nil {
				return nil, invertErrorf(op, err)
			}
		}
		for n, v := range set.TransformRow(e.data.q[k]) {
			if err = a.Set(row, n+sys.off, v); err != nil {
				return nil, invertErrorf(op, err)
			}
		}
	}
	if sys.aw, err = matrix.ScaleRows(a, wts); err != nil {
		return nil, invertErrorf(op, err)
	}
	if sys.gram, err = matrix.Gram(sys.aw); err != nil {
		return nil, invertErrorf(op, err)
	}
	if sys.rhs, err = matrix.TMatVec(sys.aw, sys.b); err != nil {
		return nil, invertErrorf(op, err)
	}
	if sys.rough, err = set.Roughness(); err != nil {
		return nil, invertErrorf(op, err)
	}

	return sys, nil
}

// SuggestAlpha returns trace(AᵀWᵀWA)/trace(R) for nfunc functions without
// solving: the alpha at which data and smoothness carry comparable weight.
// Useful alphas are usually a small multiple (1e-5 to 1e-1) of it.
func (e *Engine) SuggestAlpha(nfunc int) (float64, error) {
	sys, err := e.build(opSuggest, nfunc)
	if err != nil {
		return 0, err
	}

	return suggestAlpha(sys.gram, sys.rough, sys.off), nil
}

// Invert solves for nfunc coefficients with regularization weight alpha.
//
// Implementation:
//   - Stage 1: validate state, nfunc, alpha and the fitted points (dI > 0,
//     enough points); nothing is computed before validation passes.
//   - Stage 2: weighted design matrix Aw[i][n] = Φ_n(Q_i)/dI_i, with a leading
//     1/dI_i column when the background is estimated; b_i = (I_i − bg)/dI_i.
//   - Stage 3: H = AwᵀAw + α·R (R padded with a zero background row/column),
//     g = Awᵀb; solve H·x = g by the spectral inverse.
//   - Stage 4: chi2, roughness, covariance = |(chi2 + α·cᵀRc)/(N − nfunc)|·H⁻¹,
//     suggested alpha; publish the Result.
//
// Errors:
//   - ErrNotReady (data or D_max missing).
//   - ErrDataInconsistency (bad nfunc/alpha, dI = 0 on a fitted point, too few points).
//   - ErrSingularSystem (H not invertible to working precision).
//
// On error the engine keeps its previous state and Result.
func (e *Engine) Invert(nfunc int, alpha float64) (*Result, error) {
	start := time.Now()

	if !finite(alpha) || alpha < 0 {
		return nil, inconsistent(opInvert, "alpha=%g must be finite and >= 0", alpha)
	}
	if !(e.cfg.rcond >= 0 && e.cfg.rcond < 1) {
		return nil, inconsistent(opInvert, "rcond=%g must be in [0, 1)", e.cfg.rcond)
	}
	sys, err := e.build(opInvert, nfunc)
	if err != nil {
		return nil, err
	}
	off := sys.off

	// Regularized normal equations; the background is not penalized.
	hmat := sys.gram.Clone().(*matrix.Dense)
	var gv, rv float64
	for i := 0; i < nfunc; i++ {
		for j := 0; j < nfunc; j++ {
			gv, _ = hmat.At(i+off, j+off)
			rv, _ = sys.rough.At(i, j)
			if err = hmat.Set(i+off, j+off, gv+alpha*rv); err != nil {
				return nil, invertErrorf(opInvert, singular(err))
			}
		}
	}
	x, hinv, err := matrix.SolveSym(hmat, sys.rhs, matrix.WithRCond(e.cfg.rcond))
	if err != nil {
		return nil, invertErrorf(opInvert, singular(err))
	}

	// Statistics.
	fitted, err := matrix.MatVec(sys.aw, x)
	if err != nil {
		return nil, invertErrorf(opInvert, err)
	}
	resid := make([]float64, sys.npts)
	vecmath.AddMulBlock(resid, fitted, negated(sys.b), 1)
	chi2 := vecmath.DotProduct(resid, resid)

	basisIdx := make([]int, nfunc)
	for i := range basisIdx {
		basisIdx[i] = i + off
	}
	c := make([]float64, nfunc)
	copy(c, x[off:])
	reg, err := matrix.QuadForm(sys.rough, c)
	if err != nil {
		return nil, invertErrorf(opInvert, err)
	}
	dof := max(sys.npts-nfunc-off, 1)
	scale := math.Abs((chi2 + alpha*reg) / float64(dof))
	fullCov, err := matrix.Scale(hinv, scale)
	if err != nil {
		return nil, invertErrorf(opInvert, singular(err))
	}
	cov, err := fullCov.Induced(basisIdx, basisIdx)
	if err != nil {
		return nil, invertErrorf(opInvert, err)
	}

	h, w := e.data.Slit()
	res := &Result{
		Coefficients:        c,
		Covariance:          cov,
		Chi2:                chi2,
		DMax:                e.dmax,
		Alpha:               alpha,
		NFunc:               nfunc,
		Background:          sys.bg,
		EstimatedBackground: off == 1,
		SlitHeight:          h,
		SlitWidth:           w,
		SmearPoints:         e.cfg.smearPts,
		QMin:                e.cfg.qmin,
		QMax:                e.cfg.qmax,
		RegTerm:             reg,
		SuggestedAlpha:      suggestAlpha(sys.gram, sys.rough, off),
		NPoints:             sys.npts,
		DataHash:            e.data.Fingerprint(),
	}
	if off == 1 {
		res.Background = x[0]
		v, _ := fullCov.At(0, 0)
		res.BackgroundErr = math.Sqrt(math.Abs(v))
	}
	res.Elapsed = time.Since(start)

	e.result = res
	e.state = StateInverted
	e.cfg.logger.Debug("inversion complete",
		slog.Float64("d_max", e.dmax),
		slog.Int("nfunc", nfunc),
		slog.Float64("alpha", alpha),
		slog.Float64("chi2", chi2),
		slog.Int("points", sys.npts),
		slog.Duration("elapsed", res.Elapsed),
		slog.String("data_hash", fmt.Sprintf("%016x", res.DataHash)),
	)

	return res, nil
}

// suggestAlpha returns trace(AᵀA) over the basis block divided by trace(R).
func suggestAlpha(gram, rough *matrix.Dense, off int) float64 {
	g := vecmath.Sum(gram.Diag()[off:])
	r := vecmath.Sum(rough.Diag())
	if r == 0 {
		return 0
	}

	return g / r
}

// singular maps numerical failures of the solver onto ErrSingularSystem.
func singular(err error) error {
	if errors.Is(err, matrix.ErrSingular) || errors.Is(err, matrix.ErrNaNInf) || errors.Is(err, matrix.ErrMatrixEigenFailed) {
		return fmt.Errorf("%w: %w", ErrSingularSystem, err)
	}

	return err
}

func negated(v []float64) []float64 {
	out := make([]float64, len(v))
	vecmath.ScaleBlock(out, v, -1)

	return out
}

// ---------- queries ----------

// current returns the basis of the last Result and checks c against it.
func (e *Engine) current(c []float64) (basis.Set, error) {
	if e.state != StateInverted {
		return basis.Set{}, invertErrorf(opQuery, ErrNotReady)
	}
	s, err := e.result.Basis()
	if err != nil {
		return basis.Set{}, invertErrorf(opQuery, err)
	}
	if err = checkCoeffs(s, c); err != nil {
		return basis.Set{}, invertErrorf(opQuery, err)
	}

	return s, nil
}

// PR evaluates Σ c_n·φ_n(r) on the current basis.
func (e *Engine) PR(c []float64, r float64) (float64, error) {
	s, err := e.current(c)
	if err != nil {
		return 0, err
	}

	return PR(s, c, r)
}

// PRErr evaluates P(r) and its error bar √|vᵀ·cov·v|.
func (e *Engine) PRErr(c []float64, cov matrix.Matrix, r float64) (float64, float64, error) {
	s, err := e.current(c)
	if err != nil {
		return 0, 0, err
	}

	return PRErr(s, c, cov, r)
}

// IQ evaluates Σ c_n·Φ_n(q) + background on the current basis.
func (e *Engine) IQ(c []float64, q float64) (float64, error) {
	s, err := e.current(c)
	if err != nil {
		return 0, err
	}

	return IQ(s, c, e.result.Background, q)
}

// Rg returns the radius of gyration of P(r).
func (e *Engine) Rg(c []float64) (float64, error) {
	s, err := e.current(c)
	if err != nil {
		return 0, err
	}

	return Rg(s, c)
}

// IQ0 returns the extrapolated zero-angle intensity, background included.
func (e *Engine) IQ0(c []float64) (float64, error) {
	s, err := e.current(c)
	if err != nil {
		return 0, err
	}

	return IQ0(s, c, e.result.Background)
}

// Oscillations returns the oscillation score of P(r).
func (e *Engine) Oscillations(c []float64) (float64, error) {
	s, err := e.current(c)
	if err != nil {
		return 0, err
	}

	return Oscillations(s, c)
}

// Positive returns the fraction of the r-grid where P(r) > 0.
func (e *Engine) Positive(c []float64) (float64, error) {
	s, err := e.current(c)
	if err != nil {
		return 0, err
	}

	return Positive(s, c)
}

// PosErr returns the fraction of the r-grid where P(r) exceeds its error bar.
func (e *Engine) PosErr(c []float64, cov matrix.Matrix) (float64, error) {
	s, err := e.current(c)
	if err != nil {
		return 0, err
	}

	return PosErr(s, c, cov)
}

// Peaks returns the number of local maxima of P(r).
func (e *Engine) Peaks(c []float64) (int, error) {
	s, err := e.current(c)
	if err != nil {
		return 0, err
	}

	return Peaks(s, c)
}

// Diagnostics computes the DiagnosticSet of the current Result.
func (e *Engine) Diagnostics() (Diagnostics, error) {
	if e.state != StateInverted {
		return Diagnostics{}, invertErrorf(opQuery, ErrNotReady)
	}

	return e.result.Diagnostics()
}
