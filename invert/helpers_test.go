// SPDX-License-Identifier: MIT
package invert_test

import (
	"testing"

	"github.com/katalvlaran/prinv/invert"
	"github.com/katalvlaran/prinv/synthetic"
	"github.com/stretchr/testify/require"
)

const (
	sphereRadius = 50.0
	sphereDmax   = 2 * sphereRadius
	sphereNFunc  = 10
)

// sphereCurve returns the default 100-point sphere curve, with or without noise.
func sphereCurve(tb testing.TB, noisy bool) synthetic.Curve {
	tb.Helper()
	cfg := synthetic.DefaultSphere()
	cfg.Noisy = noisy
	c, err := synthetic.Sphere(cfg)
	require.NoError(tb, err)

	return c
}

// sphereEngine returns an engine in StateDataSet loaded with a sphere curve.
func sphereEngine(tb testing.TB, noisy bool, opts ...invert.Option) *invert.Engine {
	tb.Helper()
	c := sphereCurve(tb, noisy)
	e := invert.New(opts...)
	require.NoError(tb, e.SetData(c.Q, c.I, c.DI))
	require.NoError(tb, e.SetDmax(sphereDmax))
	require.Equal(tb, invert.StateDataSet, e.State())

	return e
}

// alphaScale returns the suggested alpha of e for nfunc functions.
func alphaScale(tb testing.TB, e *invert.Engine, nfunc int) float64 {
	tb.Helper()
	a, err := e.SuggestAlpha(nfunc)
	require.NoError(tb, err)
	require.Greater(tb, a, 0.0)

	return a
}
