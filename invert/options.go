// SPDX-License-Identifier: MIT
package invert

import (
	"log/slog"

	"github.com/katalvlaran/prinv/basis"
	"github.com/katalvlaran/prinv/matrix"
)

// Defaults (single source of truth).
const (
	// DefaultRCond is the singularity threshold handed to the spectral solver.
	DefaultRCond = matrix.DefaultRCond

	// DefaultSmearPoints is the number of slit samples per dimension.
	DefaultSmearPoints = basis.DefaultSmearPoints

	// DiagnosticPoints is the size of the r-grid used by Positive, PosErr,
	// Peaks and Oscillations.
	DiagnosticPoints = 100
)

type config struct {
	background  float64
	estimateBck bool
	qmin, qmax  float64
	smearPts    int
	rcond       float64
	logger      *slog.Logger
}

func defaultConfig() config {
	return config{
		smearPts: DefaultSmearPoints,
		rcond:    DefaultRCond,
		logger:   slog.Default(),
	}
}

// Option configures an Engine.
type Option func(*config)

// WithBackground sets a fixed background that is subtracted before the fit
// and added back by IQ and IQ0.
func WithBackground(b float64) Option {
	return func(c *config) { c.background = b }
}

// WithEstimateBackground fits a constant background as an extra, unpenalized
// parameter. A fixed background set with WithBackground is then ignored.
func WithEstimateBackground(on bool) Option {
	return func(c *config) { c.estimateBck = on }
}

// WithQRange restricts the fit to qmin ≤ Q ≤ qmax. A bound ≤ 0 is open.
func WithQRange(qmin, qmax float64) Option {
	return func(c *config) { c.qmin, c.qmax = qmin, qmax }
}

// WithSmearPoints sets the slit quadrature size.
func WithSmearPoints(n int) Option {
	return func(c *config) { c.smearPts = n }
}

// WithRCond sets the singularity threshold (0 ≤ r < 1).
func WithRCond(r float64) Option {
	return func(c *config) { c.rcond = r }
}

// WithLogger sets the logger used for inversion summaries.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
