// SPDX-License-Identifier: MIT
package explore_test

import (
	"context"
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/katalvlaran/prinv/explore"
	"github.com/katalvlaran/prinv/invert"
	"github.com/katalvlaran/prinv/synthetic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	sphereRadius = 50.0
	sphereDmax   = 2 * sphereRadius
	nfunc        = 10
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

// sphereDataset returns the noisy default sphere and a relative alpha for it.
func sphereDataset(t *testing.T) (invert.Dataset, float64) {
	t.Helper()
	c, err := synthetic.Sphere(synthetic.DefaultSphere())
	require.NoError(t, err)
	ds, err := invert.NewDataset(c.Q, c.I, c.DI)
	require.NoError(t, err)

	e := invert.New()
	require.NoError(t, e.SetDataset(ds))
	require.NoError(t, e.SetDmax(sphereDmax))
	scale, err := e.SuggestAlpha(nfunc)
	require.NoError(t, err)

	return ds, 1e-5 * scale
}

// TestRun_SphereChi2Minimum sweeps 0.5D…1.5D and finds chi2 stops improving past D.
func TestRun_SphereChi2Minimum(t *testing.T) {
	ds, alpha := sphereDataset(t)
	ex, err := explore.New(ds, nfunc, alpha,
		explore.WithRange(0.5*sphereDmax, 1.5*sphereDmax),
		explore.WithPoints(5),
		explore.WithConcurrency(2),
		explore.WithLogger(quiet),
	)
	require.NoError(t, err)

	sweep, err := ex.Run(context.Background())
	require.NoError(t, err)
	require.Empty(t, sweep.Errors)
	require.Len(t, sweep.Points, 5)
	assert.Equal(t, []float64{50, 75, 100, 125, 150}, sweep.DMax())

	chi2 := sweep.Chi2()
	lo := 0
	for k := range chi2 {
		if chi2[k] < chi2[lo] {
			lo = k
		}
	}
	assert.GreaterOrEqual(t, lo, 1, "a D_max half the particle size cannot fit best")
	assert.Greater(t, chi2[0], chi2[2])
	assert.LessOrEqual(t, chi2[2], 1.5*chi2[lo])

	best, ok := sweep.Best()
	require.True(t, ok)
	assert.Equal(t, chi2[lo], best.Chi2)
	assert.NotNil(t, best.Result)

	for _, col := range [][]float64{sweep.Rg(), sweep.IQ0(), sweep.Background(), sweep.Oscillation(), sweep.Positive(), sweep.PosErr()} {
		assert.Len(t, col, 5)
	}
	assert.InEpsilon(t, synthetic.SphereRg(sphereRadius), sweep.Rg()[2], 0.05)
}

// TestRun_MatchesSequentialEngine checks a parallel point equals a direct inversion.
func TestRun_MatchesSequentialEngine(t *testing.T) {
	ds, alpha := sphereDataset(t)
	ex, err := explore.New(ds, nfunc, alpha, explore.WithReference(sphereDmax), explore.WithPoints(3), explore.WithLogger(quiet))
	require.NoError(t, err)
	assert.Equal(t, []float64{80, 100, 120}, ex.Grid())

	sweep, err := ex.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, sweep.Points, 3)

	e := invert.New()
	require.NoError(t, e.SetDataset(ds))
	require.NoError(t, e.SetDmax(100))
	res, err := e.Invert(nfunc, alpha)
	require.NoError(t, err)
	assert.Equal(t, res.Coefficients, sweep.Points[1].Result.Coefficients)
	assert.Equal(t, res.Chi2, sweep.Points[1].Chi2)
}

// TestRun_FailingPoints keeps going and reports every failure in D_max order.
func TestRun_FailingPoints(t *testing.T) {
	ds, err := invert.NewDataset(
		[]float64{0.05, 0.05, 0.05, 0.05},
		[]float64{1, 1, 1, 1},
		[]float64{0.1, 0.1, 0.1, 0.1},
	)
	require.NoError(t, err)
	ex, err := explore.New(ds, 3, 0, explore.WithRange(80, 120), explore.WithPoints(4), explore.WithLogger(quiet))
	require.NoError(t, err)

	sweep, err := ex.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sweep.Points)
	require.Len(t, sweep.Errors, 4)
	for k, pe := range sweep.Errors {
		assert.Equal(t, ex.Grid()[k], pe.DMax)
		assert.ErrorIs(t, pe, invert.ErrSingularSystem)
		assert.Contains(t, pe.Error(), "d_max=")
	}
	_, ok := sweep.Best()
	assert.False(t, ok)
}

// TestRun_Cancelled returns the partial sweep with the context error.
func TestRun_Cancelled(t *testing.T) {
	ds, alpha := sphereDataset(t)
	ex, err := explore.New(ds, nfunc, alpha, explore.WithReference(sphereDmax), explore.WithLogger(quiet))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sweep, err := ex.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, sweep)
	assert.Empty(t, sweep.Points)
	assert.Empty(t, sweep.Errors)
}

// TestNew_Validation covers the rejected sweep configurations.
func TestNew_Validation(t *testing.T) {
	ds, alpha := sphereDataset(t)
	tests := []struct {
		name  string
		ds    invert.Dataset
		nfunc int
		alpha float64
		opts  []explore.Option
	}{
		{"empty dataset", invert.Dataset{}, nfunc, alpha, []explore.Option{explore.WithReference(100)}},
		{"zero nfunc", ds, 0, alpha, []explore.Option{explore.WithReference(100)}},
		{"negative alpha", ds, nfunc, -1, []explore.Option{explore.WithReference(100)}},
		{"inf alpha", ds, nfunc, math.Inf(1), []explore.Option{explore.WithReference(100)}},
		{"no range", ds, nfunc, alpha, nil},
		{"inverted range", ds, nfunc, alpha, []explore.Option{explore.WithRange(120, 80)}},
		{"zero dmin", ds, nfunc, alpha, []explore.Option{explore.WithRange(0, 80)}},
		{"one point wide range", ds, nfunc, alpha, []explore.Option{explore.WithRange(80, 120), explore.WithPoints(1)}},
		{"zero points", ds, nfunc, alpha, []explore.Option{explore.WithReference(100), explore.WithPoints(0)}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := explore.New(tc.ds, tc.nfunc, tc.alpha, tc.opts...)
			assert.ErrorIs(t, err, invert.ErrDataInconsistency)
		})
	}

	ex, err := explore.New(ds, nfunc, alpha, explore.WithRange(90, 90), explore.WithPoints(1))
	require.NoError(t, err)
	assert.Equal(t, []float64{90}, ex.Grid())
}
