// SPDX-License-Identifier: MIT
package invert

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

const opDataset = "Dataset"

// Dataset is an immutable scattering curve (Q, I, dI) with an optional slit.
// Accessors return copies, so a Dataset can be shared between engines.
type Dataset struct {
	q, i, di   []float64
	slitHeight float64
	slitWidth  float64
}

// NewDataset validates and copies a scattering curve.
//
// Errors:
//   - ErrDataInconsistency when lengths differ, the curve is empty, any Q ≤ 0,
//     any value is non-finite, or any dI < 0.
//
// A dI of exactly zero is accepted here and rejected by Invert only if the
// point lies inside the fitted Q range.
func NewDataset(q, i, di []float64) (Dataset, error) {
	if len(q) != len(i) || len(q) != len(di) {
		return Dataset{}, inconsistent(opDataset, "len(Q)=%d len(I)=%d len(dI)=%d", len(q), len(i), len(di))
	}
	if len(q) == 0 {
		return Dataset{}, inconsistent(opDataset, "empty dataset")
	}
	for k := range q {
		switch {
		case !finite(q[k]) || q[k] <= 0:
			return Dataset{}, inconsistent(opDataset, "Q[%d]=%g must be finite and > 0", k, q[k])
		case !finite(i[k]):
			return Dataset{}, inconsistent(opDataset, "I[%d]=%g must be finite", k, i[k])
		case !finite(di[k]) || di[k] < 0:
			return Dataset{}, inconsistent(opDataset, "dI[%d]=%g must be finite and >= 0", k, di[k])
		}
	}

	return Dataset{q: clone(q), i: clone(i), di: clone(di)}, nil
}

// WithSlit returns a copy of d carrying the given slit height and width (Q units).
func (d Dataset) WithSlit(height, width float64) (Dataset, error) {
	if !finite(height) || !finite(width) || height < 0 || width < 0 {
		return Dataset{}, inconsistent(opDataset, "slit height=%g width=%g must be finite and >= 0", height, width)
	}
	d.slitHeight, d.slitWidth = height, width

	return d, nil
}

// Len returns the number of points.
func (d Dataset) Len() int { return len(d.q) }

// Q returns a copy of the momentum transfer values.
func (d Dataset) Q() []float64 { return clone(d.q) }

// I returns a copy of the intensities.
func (d Dataset) I() []float64 { return clone(d.i) }

// DI returns a copy of the intensity uncertainties.
func (d Dataset) DI() []float64 { return clone(d.di) }

// Slit returns the slit height and width.
func (d Dataset) Slit() (height, width float64) { return d.slitHeight, d.slitWidth }

// Fingerprint is an xxhash-64 digest of the arrays and the slit. Results carry
// it so a persisted inversion can be matched with the data it came from.
func (d Dataset) Fingerprint() uint64 {
	h := xxhash.New()
	var buf [8]byte
	put := func(v float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		_, _ = h.Write(buf[:])
	}
	binary.LittleEndian.PutUint64(buf[:], uint64(len(d.q)))
	_, _ = h.Write(buf[:])
	for _, s := range [][]float64{d.q, d.i, d.di} {
		for _, v := range s {
			put(v)
		}
	}
	put(d.slitHeight)
	put(d.slitWidth)

	return h.Sum64()
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func clone(s []float64) []float64 {
	out := make([]float64, len(s))
	copy(out, s)

	return out
}
