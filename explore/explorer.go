// SPDX-License-Identifier: MIT
package explore

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/prinv/invert"
)

const opNew = "explore.New"

// Explorer runs one inversion per D_max over a fixed dataset.
type Explorer struct {
	data  invert.Dataset
	nfunc int
	alpha float64
	cfg   config
}

// New validates the sweep parameters.
//
// Errors:
//   - invert.ErrDataInconsistency for an empty dataset, nfunc < 1, a negative
//     or non-finite alpha, a missing or invalid range, or a bad point count.
func New(ds invert.Dataset, nfunc int, alpha float64, opts ...Option) (*Explorer, error) {
	cfg := config{
		points:      DefaultPoints,
		concurrency: runtime.GOMAXPROCS(0),
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	switch {
	case ds.Len() == 0:
		return nil, inconsistent("empty dataset")
	case nfunc < 1:
		return nil, inconsistent("nfunc=%d must be >= 1", nfunc)
	case math.IsNaN(alpha) || math.IsInf(alpha, 0) || alpha < 0:
		return nil, inconsistent("alpha=%g must be finite and >= 0", alpha)
	}
	if !cfg.hasRange {
		if !(cfg.reference > 0) || math.IsInf(cfg.reference, 0) {
			return nil, inconsistent("no D_max range: set WithRange or WithReference")
		}
		cfg.dmin, cfg.dmax = DefaultLowFactor*cfg.reference, DefaultHighFactor*cfg.reference
	}
	switch {
	case !(cfg.dmin > 0) || math.IsInf(cfg.dmax, 0) || cfg.dmax < cfg.dmin:
		return nil, inconsistent("range [%g, %g] must satisfy 0 < dmin <= dmax", cfg.dmin, cfg.dmax)
	case cfg.points < 1 || (cfg.points == 1 && cfg.dmin != cfg.dmax):
		return nil, inconsistent("points=%d for range [%g, %g]", cfg.points, cfg.dmin, cfg.dmax)
	}

	return &Explorer{data: ds, nfunc: nfunc, alpha: alpha, cfg: cfg}, nil
}

// Grid returns the D_max values of the sweep in ascending order.
func (x *Explorer) Grid() []float64 {
	n := x.cfg.points
	out := make([]float64, n)
	if n == 1 {
		out[0] = x.cfg.dmin
		return out
	}
	step := (x.cfg.dmax - x.cfg.dmin) / float64(n-1)
	for k := range out {
		out[k] = x.cfg.dmin + float64(k)*step
	}
	out[n-1] = x.cfg.dmax

	return out
}

// Run performs the sweep.
//
// Each D_max gets its own engine, so points run in parallel up to the
// configured concurrency. Failures are collected per point. Cancellation is
// observed before each point starts; on cancellation Run returns the points
// completed so far together with ctx.Err().
func (x *Explorer) Run(ctx context.Context) (*SweepResult, error) {
	grid := x.Grid()
	start := time.Now()
	x.cfg.logger.Info("starting d_max sweep",
		"dmin", x.cfg.dmin,
		"dmax", x.cfg.dmax,
		"points", len(grid),
		"nfunc", x.nfunc,
		"alpha", x.alpha,
		"concurrency", x.cfg.concurrency,
	)

	// Slots are indexed by grid position; each goroutine writes only its own.
	points := make([]*Point, len(grid))
	failures := make([]error, len(grid))

	var g errgroup.Group
	g.SetLimit(x.cfg.concurrency)
	for k, d := range grid {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			p, err := x.solve(d)
			if err != nil {
				x.cfg.logger.Warn("d_max point failed", "d_max", d, "error", err)
				failures[k] = err
				return nil
			}
			x.cfg.logger.Debug("d_max point solved", "d_max", d, "chi2", p.Chi2, "rg", p.Rg)
			points[k] = p

			return nil
		})
	}
	_ = g.Wait()

	res := &SweepResult{}
	for k := range grid {
		switch {
		case points[k] != nil:
			res.Points = append(res.Points, *points[k])
		case failures[k] != nil:
			res.Errors = append(res.Errors, PointError{DMax: grid[k], Err: failures[k]})
		}
	}
	x.cfg.logger.Info("d_max sweep finished",
		"solved", len(res.Points),
		"failed", len(res.Errors),
		"elapsed", time.Since(start),
	)
	if err := ctx.Err(); err != nil {
		return res, fmt.Errorf("explore: sweep interrupted: %w", err)
	}

	return res, nil
}

// solve inverts at one D_max on a fresh engine.
func (x *Explorer) solve(d float64) (*Point, error) {
	opts := append([]invert.Option{invert.WithLogger(x.cfg.logger)}, x.cfg.engineOpts...)
	e := invert.New(opts...)
	if err := e.SetDataset(x.data); err != nil {
		return nil, err
	}
	if err := e.SetDmax(d); err != nil {
		return nil, err
	}
	res, err := e.Invert(x.nfunc, x.alpha)
	if err != nil {
		return nil, err
	}
	diag, err := res.Diagnostics()
	if err != nil {
		return nil, err
	}

	return &Point{DMax: d, Diagnostics: diag, Result: res}, nil
}

func inconsistent(format string, args ...any) error {
	return fmt.Errorf("%s: %s: %w", opNew, fmt.Sprintf(format, args...), invert.ErrDataInconsistency)
}
