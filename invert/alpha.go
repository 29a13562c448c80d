// SPDX-License-Identifier: MIT
package invert

import (
	"context"
	"fmt"
	"math"
)

const (
	// alphaShrink is the factor applied to alpha at each EstimateAlpha step.
	alphaShrink = 0.33
	// alphaSteps bounds the number of EstimateAlpha steps.
	alphaSteps = 10
)

// AlphaEstimate is the outcome of EstimateAlpha.
type AlphaEstimate struct {
	// Alpha is the smallest tried value whose P(r) still has a single peak.
	Alpha float64
	// Suggested is the data-to-smoothness scale alpha the search started from.
	Suggested float64
	// Steps is the number of inversions performed.
	Steps int
	// Warning is set when no second peak appeared within the search budget;
	// Alpha is then the last value tried and remains usable.
	Warning *ConvergenceWarning
	Message string
}

// EstimateAlpha searches for a regularization weight: starting from the
// suggested scale trace(AᵀA)/trace(R), alpha is shrunk by a constant factor
// until P(r) develops a second peak, and the last single-peak value is kept.
// The engine's own state and Result are not modified.
//
// ctx is checked between inversions.
func (e *Engine) EstimateAlpha(ctx context.Context, nfunc int) (AlphaEstimate, error) {
	if e.state == StateUninitialized {
		return AlphaEstimate{}, invertErrorf(opEstimate, ErrNotReady)
	}
	suggested, err := e.SuggestAlpha(nfunc)
	if err != nil {
		return AlphaEstimate{}, invertErrorf(opEstimate, err)
	}
	est := AlphaEstimate{Suggested: suggested}
	work := e.Clone()
	if !(est.Suggested > 0) || math.IsInf(est.Suggested, 0) {
		return AlphaEstimate{}, inconsistent(opEstimate, "suggested alpha %g", est.Suggested)
	}

	best := est.Suggested
	for i := 0; i < alphaSteps; i++ {
		if err = ctx.Err(); err != nil {
			return AlphaEstimate{}, invertErrorf(opEstimate, err)
		}
		alpha := est.Suggested * math.Pow(alphaShrink, float64(i))
		res, err := work.Invert(nfunc, alpha)
		est.Steps++
		if err != nil {
			return AlphaEstimate{}, invertErrorf(opEstimate, err)
		}
		s, err := res.Basis()
		if err != nil {
			return AlphaEstimate{}, invertErrorf(opEstimate, err)
		}
		peaks, err := Peaks(s, res.Coefficients)
		if err != nil {
			return AlphaEstimate{}, invertErrorf(opEstimate, err)
		}
		if peaks > 1 {
			est.Alpha = best
			est.Message = fmt.Sprintf("second peak appears below alpha=%.3g", best)
			e.cfg.logger.Debug("alpha estimated", "alpha", best, "steps", est.Steps)

			return est, nil
		}
		best = alpha
	}

	est.Alpha = best
	est.Warning = &ConvergenceWarning{Op: opEstimate, Reason: fmt.Sprintf("P(r) kept a single peak down to alpha=%.3g", best)}
	est.Message = est.Warning.Error()
	e.cfg.logger.Debug("alpha estimate did not converge", "alpha", best, "steps", est.Steps)

	return est, nil
}
