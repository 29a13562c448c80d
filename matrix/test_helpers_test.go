// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic fixtures for kernel tests.
//   • Keep all data finite and well-formed to avoid numeric-policy interference.

package matrix_test

import (
	"math/rand/v2"
	"testing"

	"github.com/katalvlaran/prinv/matrix"
	"github.com/stretchr/testify/require"
)

// hide wraps any Matrix to hide its concrete type, forcing the At-based
// conversion path inside kernels.
type hide struct{ matrix.Matrix }

// MustDense builds an r×c *Dense from row-major values or fails the test.
func MustDense(tb testing.TB, r, c int, vals ...float64) *matrix.Dense {
	tb.Helper()
	if len(vals) == 0 {
		vals = make([]float64, r*c)
	}
	m, err := matrix.NewDenseFrom(r, c, vals)
	require.NoError(tb, err)

	return m
}

// MustAt reads m[i,j] or fails the test.
func MustAt(tb testing.TB, m matrix.Matrix, i, j int) float64 {
	tb.Helper()
	v, err := m.At(i, j)
	require.NoError(tb, err)

	return v
}

// randSPD returns a deterministic n×n symmetric positive definite matrix
// B·Bᵀ + n·I built from a seeded generator.
func randSPD(tb testing.TB, n int, seed uint64) *matrix.Dense {
	tb.Helper()
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	b := MustDense(tb, n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			require.NoError(tb, b.Set(i, j, rng.Float64()*2-1))
		}
	}
	bt, err := matrix.Transpose(b)
	require.NoError(tb, err)
	g, err := matrix.Gram(bt)
	require.NoError(tb, err)
	for i := 0; i < n; i++ {
		require.NoError(tb, g.Set(i, i, MustAt(tb, g, i, i)+float64(n)))
	}

	return g
}

// requireIdentity asserts m ≈ I elementwise within tol.
func requireIdentity(tb testing.TB, m matrix.Matrix, tol float64) {
	tb.Helper()
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			want := 0.0
			if i == j {
				want = 1
			}
			require.InDeltaf(tb, want, MustAt(tb, m, i, j), tol, "(%d,%d)", i, j)
		}
	}
}
