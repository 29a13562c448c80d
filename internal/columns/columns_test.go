// SPDX-License-Identifier: MIT
package columns_test

import (
	"bytes"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/katalvlaran/prinv/internal/columns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRead_ThreeColumns skips comments and text headers.
func TestRead_ThreeColumns(t *testing.T) {
	in := "# sphere\n<Q> <I> <dI>\n\n0.01 100 1\n0.02,90,0.9\n0.03\t80\t0.8\n"
	d, err := columns.Read(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []float64{0.01, 0.02, 0.03}, d.Q)
	assert.Equal(t, []float64{100, 90, 80}, d.I)
	assert.Equal(t, []float64{1, 0.9, 0.8}, d.DI)
	assert.False(t, d.AssumedErrors)
}

// TestRead_AssumedErrors fills missing dI from the first row's scale.
func TestRead_AssumedErrors(t *testing.T) {
	d, err := columns.Read(strings.NewReader("0.01 100\n0.02 25\n"))
	require.NoError(t, err)
	assert.True(t, d.AssumedErrors)
	// scale = 0.05·√100 = 0.5, floor = 0.01·100 = 1.
	assert.InDelta(t, 0.5*10+1, d.DI[0], 1e-12)
	assert.InDelta(t, 0.5*5+1, d.DI[1], 1e-12)
}

// TestRead_Errors covers empty input and malformed numeric rows.
func TestRead_Errors(t *testing.T) {
	_, err := columns.Read(strings.NewReader("# nothing\n"))
	assert.ErrorIs(t, err, columns.ErrNoData)
	_, err = columns.Read(strings.NewReader("0.01\n"))
	assert.ErrorIs(t, err, columns.ErrMalformed)
	_, err = columns.Read(strings.NewReader("0.01 abc 1\n"))
	assert.ErrorIs(t, err, columns.ErrMalformed)
	_, err = columns.Read(strings.NewReader("0.01 1 x\n"))
	assert.ErrorIs(t, err, columns.ErrMalformed)
	_, err = columns.ReadFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

// TestWrite_RoundTrip writes and reads back a curve.
func TestWrite_RoundTrip(t *testing.T) {
	d := columns.Data{Q: []float64{0.01, 0.5}, I: []float64{1e3, 2.5}, DI: []float64{10, math.Pi}}
	var buf bytes.Buffer
	require.NoError(t, columns.Write(&buf, d, "generated"))
	assert.True(t, strings.HasPrefix(buf.String(), "# generated\n"))

	got, err := columns.Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, d.Q, got.Q)
	assert.Equal(t, d.I, got.I)
	assert.InDelta(t, math.Pi, got.DI[1], 1e-5)

	assert.ErrorIs(t, columns.Write(&buf, columns.Data{Q: []float64{1}}), columns.ErrMalformed)
}
