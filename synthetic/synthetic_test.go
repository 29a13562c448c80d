// SPDX-License-Identifier: MIT
package synthetic_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/prinv/synthetic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSpherePR_NormalizedAndRg checks ∫P = 1 and √(∫r²P/2) = √(3/5)·R numerically.
func TestSpherePR_NormalizedAndRg(t *testing.T) {
	const r = 30.0
	const k = 4000
	h := 2 * r / k
	var m0, m2 float64
	for i := 0; i <= k; i++ {
		x := float64(i) * h
		w := 1.0
		if i == 0 || i == k {
			w = 0.5
		}
		p := synthetic.SpherePR(r, x)
		m0 += w * p * h
		m2 += w * x * x * p * h
	}
	assert.InDelta(t, 1.0, m0, 1e-6)
	assert.InEpsilon(t, synthetic.SphereRg(r), math.Sqrt(m2/(2*m0)), 1e-5)
}

// TestSphereFormFactor_Limits checks the q→0 branch and the first zero at x ≈ 4.4934.
func TestSphereFormFactor_Limits(t *testing.T) {
	assert.Equal(t, 1.0, synthetic.SphereFormFactor(0, 50))
	for _, x := range []float64{0.01, 0.049, 0.051, 0.1} {
		assert.InDelta(t, 1-x*x/5, synthetic.SphereFormFactor(x/50, 50), 1e-5, "x=%g", x)
	}
	assert.InDelta(t, 0, synthetic.SphereFormFactor(4.493409457909064/50, 50), 1e-20)
}

// TestSphere_DeterministicAndValidated checks seeding and config validation.
func TestSphere_DeterministicAndValidated(t *testing.T) {
	a, err := synthetic.Sphere(synthetic.DefaultSphere())
	require.NoError(t, err)
	b, err := synthetic.Sphere(synthetic.DefaultSphere())
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a.Q, 100)
	assert.Equal(t, 0.25, a.Q[99])

	cfg := synthetic.DefaultSphere()
	cfg.Noisy = false
	clean, err := synthetic.Sphere(cfg)
	require.NoError(t, err)
	assert.NotEqual(t, a.I, clean.I)
	assert.Equal(t, a.DI, clean.DI)

	cfg.Points = 1
	_, err = synthetic.Sphere(cfg)
	assert.ErrorIs(t, err, synthetic.ErrInvalidConfig)
	cfg = synthetic.DefaultSphere()
	cfg.QMax = cfg.QMin
	_, err = synthetic.Sphere(cfg)
	assert.ErrorIs(t, err, synthetic.ErrInvalidConfig)
}

// TestLinSpace covers endpoints and degenerate sizes.
func TestLinSpace(t *testing.T) {
	assert.Equal(t, []float64{0, 0.5, 1}, synthetic.LinSpace(0, 1, 3))
	assert.Equal(t, []float64{2}, synthetic.LinSpace(2, 5, 1))
	assert.Nil(t, synthetic.LinSpace(0, 1, 0))
}
