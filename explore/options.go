// SPDX-License-Identifier: MIT
package explore

import (
	"log/slog"

	"github.com/katalvlaran/prinv/invert"
)

const (
	// DefaultPoints is the number of D_max values in a sweep.
	DefaultPoints = 10
	// DefaultLowFactor and DefaultHighFactor bound the sweep around a reference D_max.
	DefaultLowFactor  = 0.8
	DefaultHighFactor = 1.2
)

type config struct {
	dmin, dmax  float64
	hasRange    bool
	reference   float64
	points      int
	concurrency int
	logger      *slog.Logger
	engineOpts  []invert.Option
}

// Option configures an Explorer.
type Option func(*config)

// WithRange sets the swept interval [dmin, dmax]. It takes precedence over WithReference.
func WithRange(dmin, dmax float64) Option {
	return func(c *config) {
		c.dmin, c.dmax = dmin, dmax
		c.hasRange = true
	}
}

// WithReference sweeps DefaultLowFactor·d … DefaultHighFactor·d.
func WithReference(d float64) Option {
	return func(c *config) { c.reference = d }
}

// WithPoints sets the number of D_max values (>= 2, or 1 for a degenerate range).
func WithPoints(n int) Option {
	return func(c *config) { c.points = n }
}

// WithConcurrency bounds the number of inversions running at once.
// Values <= 0 keep the default (GOMAXPROCS).
func WithConcurrency(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithLogger sets the sweep logger; it is also handed to every engine.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithEngineOptions forwards options (background, Q range, slit quadrature)
// to the engine built for every point.
func WithEngineOptions(opts ...invert.Option) Option {
	return func(c *config) { c.engineOpts = append(c.engineOpts, opts...) }
}
