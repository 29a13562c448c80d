// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/prinv/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewDense_InvalidDimensions verifies non-positive shapes are rejected.
func TestNewDense_InvalidDimensions(t *testing.T) {
	for _, sh := range [][2]int{{0, 1}, {1, 0}, {-1, 3}} {
		_, err := matrix.NewDense(sh[0], sh[1])
		assert.ErrorIs(t, err, matrix.ErrInvalidDimensions)
	}
}

// TestNewDenseFrom_CopiesAndValidates checks length, NaN policy and isolation from the source slice.
func TestNewDenseFrom_CopiesAndValidates(t *testing.T) {
	src := []float64{1, 2, 3, 4}
	m, err := matrix.NewDenseFrom(2, 2, src)
	require.NoError(t, err)
	src[0] = 99
	assert.Equal(t, 1.0, MustAt(t, m, 0, 0))

	_, err = matrix.NewDenseFrom(2, 2, []float64{1, 2, 3})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.NewDenseFrom(1, 2, []float64{1, math.NaN()})
	assert.ErrorIs(t, err, matrix.ErrNaNInf)
}

// TestDense_AtSetBounds ensures indexers return ErrOutOfRange instead of panicking.
func TestDense_AtSetBounds(t *testing.T) {
	m := MustDense(t, 2, 3)
	_, err := m.At(2, 0)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)
	assert.ErrorIs(t, m.Set(0, 3, 1), matrix.ErrOutOfRange)
	assert.ErrorIs(t, m.Set(0, 0, math.Inf(1)), matrix.ErrNaNInf)

	require.NoError(t, m.Set(1, 2, 7))
	assert.Equal(t, 7.0, MustAt(t, m, 1, 2))
	r, c := m.Shape()
	assert.Equal(t, [2]int{2, 3}, [2]int{r, c})
}

// TestDense_CloneRowDiag checks deep copies and accessor copies.
func TestDense_CloneRowDiag(t *testing.T) {
	m := MustDense(t, 2, 2, 1, 2, 3, 4)
	cl := m.Clone()
	require.NoError(t, m.Set(0, 0, -1))
	assert.Equal(t, 1.0, MustAt(t, cl, 0, 0))

	row, err := m.Row(1)
	require.NoError(t, err)
	row[0] = 100
	assert.Equal(t, 3.0, MustAt(t, m, 1, 0))
	_, err = m.Row(5)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)

	assert.Equal(t, []float64{-1, 4}, m.Diag())
	assert.Equal(t, "[-1, 2]\n[3, 4]\n", m.String())
}

// TestIdentity verifies the identity constructor.
func TestIdentity(t *testing.T) {
	id, err := matrix.Identity(3)
	require.NoError(t, err)
	requireIdentity(t, id, 0)
}

// TestDense_Induced checks submatrix extraction and bounds.
func TestDense_Induced(t *testing.T) {
	m := MustDense(t, 3, 3, 1, 2, 3, 4, 5, 6, 7, 8, 9)
	sub, err := m.Induced([]int{1, 2}, []int{1, 2})
	require.NoError(t, err)
	assert.Equal(t, "[5, 6]\n[8, 9]\n", sub.String())

	_, err = m.Induced([]int{3}, []int{0})
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)
	_, err = m.Induced(nil, []int{0})
	assert.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}
