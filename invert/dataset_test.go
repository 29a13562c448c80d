// SPDX-License-Identifier: MIT
package invert_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/prinv/invert"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewDataset_Validation covers every rejected input shape.
func TestNewDataset_Validation(t *testing.T) {
	tests := []struct {
		name     string
		q, i, di []float64
	}{
		{"empty", nil, nil, nil},
		{"length mismatch", []float64{0.1, 0.2}, []float64{1}, []float64{1, 1}},
		{"zero q", []float64{0}, []float64{1}, []float64{1}},
		{"negative q", []float64{-0.1}, []float64{1}, []float64{1}},
		{"nan i", []float64{0.1}, []float64{math.NaN()}, []float64{1}},
		{"inf q", []float64{math.Inf(1)}, []float64{1}, []float64{1}},
		{"negative di", []float64{0.1}, []float64{1}, []float64{-1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := invert.NewDataset(tc.q, tc.i, tc.di)
			assert.ErrorIs(t, err, invert.ErrDataInconsistency)
		})
	}

	ds, err := invert.NewDataset([]float64{0.1}, []float64{1}, []float64{0})
	require.NoError(t, err, "dI = 0 is accepted until it lands inside a fit")
	assert.Equal(t, 1, ds.Len())
}

// TestDataset_CopiesInput checks neither the source nor the accessors alias storage.
func TestDataset_CopiesInput(t *testing.T) {
	q := []float64{0.1, 0.2}
	i := []float64{5, 4}
	di := []float64{0.5, 0.4}
	ds, err := invert.NewDataset(q, i, di)
	require.NoError(t, err)

	q[0] = 99
	assert.Equal(t, 0.1, ds.Q()[0])
	out := ds.I()
	out[0] = -1
	assert.Equal(t, []float64{5, 4}, ds.I())
	assert.Equal(t, []float64{0.5, 0.4}, ds.DI())
}

// TestDataset_Fingerprint changes with any value or the slit and is stable otherwise.
func TestDataset_Fingerprint(t *testing.T) {
	mk := func(i1 float64) invert.Dataset {
		ds, err := invert.NewDataset([]float64{0.1, 0.2}, []float64{5, i1}, []float64{0.5, 0.4})
		require.NoError(t, err)
		return ds
	}
	a, b := mk(4), mk(4)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), mk(4.0000001).Fingerprint())

	s, err := a.WithSlit(0.1, 0)
	require.NoError(t, err)
	assert.NotEqual(t, a.Fingerprint(), s.Fingerprint())
	h, w := a.Slit()
	assert.Zero(t, h, "WithSlit returns a copy")
	assert.Zero(t, w)

	_, err = a.WithSlit(math.NaN(), 0)
	assert.ErrorIs(t, err, invert.ErrDataInconsistency)
}
