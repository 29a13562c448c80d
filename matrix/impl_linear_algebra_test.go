// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"sort"
	"testing"

	"github.com/katalvlaran/prinv/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMul_KnownProduct checks a hand-computed 2×3 · 3×2 product, on both paths.
func TestMul_KnownProduct(t *testing.T) {
	a := MustDense(t, 2, 3, 1, 2, 3, 4, 5, 6)
	b := MustDense(t, 3, 2, 7, 8, 9, 10, 11, 12)
	want := []float64{58, 64, 139, 154}

	for name, lhs := range map[string]matrix.Matrix{"dense": a, "fallback": hide{a}} {
		t.Run(name, func(t *testing.T) {
			c, err := matrix.Mul(lhs, b)
			require.NoError(t, err)
			assert.Equal(t, want, []float64{MustAt(t, c, 0, 0), MustAt(t, c, 0, 1), MustAt(t, c, 1, 0), MustAt(t, c, 1, 1)})
		})
	}

	_, err := matrix.Mul(a, a)
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.Mul(nil, a)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// TestTranspose_Shape checks shape and element mapping.
func TestTranspose_Shape(t *testing.T) {
	a := MustDense(t, 2, 3, 1, 2, 3, 4, 5, 6)
	at, err := matrix.Transpose(a)
	require.NoError(t, err)
	assert.Equal(t, 3, at.Rows())
	assert.Equal(t, 2, at.Cols())
	assert.Equal(t, 6.0, MustAt(t, at, 2, 1))
}

// TestMatVec_TMatVec compares both products against hand values.
func TestMatVec_TMatVec(t *testing.T) {
	a := MustDense(t, 2, 3, 1, 2, 3, 4, 5, 6)
	y, err := matrix.MatVec(a, []float64{1, 0, -1})
	require.NoError(t, err)
	assert.Equal(t, []float64{-2, -2}, y)

	z, err := matrix.TMatVec(a, []float64{1, 1})
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 7, 9}, z)

	_, err = matrix.MatVec(a, []float64{1})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.TMatVec(a, []float64{1, 2, 3})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestGram_MatchesMul verifies AᵀA equals Transpose+Mul and is exactly symmetric.
func TestGram_MatchesMul(t *testing.T) {
	a := MustDense(t, 3, 2, 1, 2, 3, 4, 5, 6)
	g, err := matrix.Gram(a)
	require.NoError(t, err)
	at, err := matrix.Transpose(a)
	require.NoError(t, err)
	ref, err := matrix.Mul(at, a)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			assert.InDelta(t, MustAt(t, ref, i, j), MustAt(t, g, i, j), 1e-12)
		}
	}
	assert.Equal(t, MustAt(t, g, 0, 1), MustAt(t, g, 1, 0))
}

// TestScaleRows_QuadForm_Trace covers the weighting helpers.
func TestScaleRows_QuadForm_Trace(t *testing.T) {
	a := MustDense(t, 2, 2, 1, 2, 3, 4)
	s, err := matrix.ScaleRows(a, []float64{2, 0.5})
	require.NoError(t, err)
	assert.Equal(t, 4.0, MustAt(t, s, 0, 1))
	assert.Equal(t, 1.5, MustAt(t, s, 1, 0))
	assert.Equal(t, 1.0, MustAt(t, a, 0, 0), "input must not be mutated")

	q, err := matrix.QuadForm(a, []float64{1, 1})
	require.NoError(t, err)
	assert.Equal(t, 10.0, q)

	tr, err := matrix.Trace(a)
	require.NoError(t, err)
	assert.Equal(t, 5.0, tr)

	_, err = matrix.Trace(MustDense(t, 2, 3))
	assert.ErrorIs(t, err, matrix.ErrNonSquare)
}

// TestAddScale checks the elementwise kernels.
func TestAddScale(t *testing.T) {
	a := MustDense(t, 1, 3, 1, 2, 3)
	b := MustDense(t, 1, 3, 10, 20, 30)
	sum, err := matrix.Add(a, hide{b})
	require.NoError(t, err)
	assert.Equal(t, 33.0, MustAt(t, sum, 0, 2))

	sc, err := matrix.Scale(a, -2)
	require.NoError(t, err)
	assert.Equal(t, -4.0, MustAt(t, sc, 0, 1))
	_, err = matrix.Scale(a, math.NaN())
	assert.ErrorIs(t, err, matrix.ErrNaNInf)
	_, err = matrix.Add(a, MustDense(t, 3, 1))
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestEigen_Reconstruct checks Q·diag(λ)·Qᵀ == A and the known spectrum of a 2×2.
func TestEigen_Reconstruct(t *testing.T) {
	a := MustDense(t, 2, 2, 2, 1, 1, 2)
	eigs, q, err := matrix.Eigen(a, 1e-14, 100)
	require.NoError(t, err)
	sorted := append([]float64(nil), eigs...)
	sort.Float64s(sorted)
	assert.InDelta(t, 1.0, sorted[0], 1e-12)
	assert.InDelta(t, 3.0, sorted[1], 1e-12)

	spd := randSPD(t, 6, 7)
	eigs, q, err = matrix.Eigen(spd, 1e-13, 10_000)
	require.NoError(t, err)
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			var v float64
			for k := 0; k < 6; k++ {
				v += MustAt(t, q, i, k) * eigs[k] * MustAt(t, q, j, k)
			}
			assert.InDelta(t, MustAt(t, spd, i, j), v, 1e-9)
		}
	}
}

// TestEigen_Errors covers asymmetry and iteration exhaustion.
func TestEigen_Errors(t *testing.T) {
	_, _, err := matrix.Eigen(MustDense(t, 2, 2, 1, 2, 3, 4), 1e-12, 10)
	assert.ErrorIs(t, err, matrix.ErrAsymmetry)

	_, _, err = matrix.Eigen(randSPD(t, 5, 3), 1e-14, 1)
	assert.ErrorIs(t, err, matrix.ErrMatrixEigenFailed)
}
