// SPDX-License-Identifier: MIT

// Package synthetic generates analytic scattering curves with controlled
// noise, for tests, examples and the command line "sphere" generator.
package synthetic

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
)

// ErrInvalidConfig reports a nonsensical generator configuration.
var ErrInvalidConfig = errors.New("synthetic: invalid config")

// SphereConfig describes a noisy sphere curve on a linear Q grid.
type SphereConfig struct {
	Radius float64 // sphere radius R (length units)
	QMin   float64 // first Q (> 0)
	QMax   float64 // last Q
	Points int     // number of Q points (>= 2)
	I0     float64 // forward intensity scale
	// NoiseRel and NoiseFloor define dI = NoiseRel·I + NoiseFloor·I0.
	NoiseRel   float64
	NoiseFloor float64
	// Noisy adds Gaussian noise with standard deviation dI to each intensity.
	Noisy bool
	Seed  uint64
}

// DefaultSphere is a 100-point curve of a sphere of radius 50 on Q ∈ [0.002, 0.25].
func DefaultSphere() SphereConfig {
	return SphereConfig{
		Radius:     50,
		QMin:       0.002,
		QMax:       0.25,
		Points:     100,
		I0:         1000,
		NoiseRel:   0.01,
		NoiseFloor: 1e-5,
		Noisy:      true,
		Seed:       1,
	}
}

// Curve is a generated (Q, I, dI) triple.
type Curve struct {
	Q, I, DI []float64
}

// Sphere generates the curve I(Q) = I0·[3(sin x − x·cos x)/x³]², x = QR.
func Sphere(cfg SphereConfig) (Curve, error) {
	switch {
	case !(cfg.Radius > 0):
		return Curve{}, fmt.Errorf("radius=%g: %w", cfg.Radius, ErrInvalidConfig)
	case !(cfg.QMin > 0) || !(cfg.QMax > cfg.QMin):
		return Curve{}, fmt.Errorf("q range [%g, %g]: %w", cfg.QMin, cfg.QMax, ErrInvalidConfig)
	case cfg.Points < 2:
		return Curve{}, fmt.Errorf("points=%d: %w", cfg.Points, ErrInvalidConfig)
	case !(cfg.I0 > 0) || cfg.NoiseRel < 0 || cfg.NoiseFloor < 0:
		return Curve{}, fmt.Errorf("scale/noise: %w", ErrInvalidConfig)
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x5851f42d4c957f2d))
	q := LinSpace(cfg.QMin, cfg.QMax, cfg.Points)
	out := Curve{Q: q, I: make([]float64, len(q)), DI: make([]float64, len(q))}
	for k, v := range q {
		iv := cfg.I0 * SphereFormFactor(v, cfg.Radius)
		di := cfg.NoiseRel*iv + cfg.NoiseFloor*cfg.I0
		if cfg.Noisy {
			iv += di * rng.NormFloat64()
		}
		out.I[k] = iv
		out.DI[k] = di
	}

	return out, nil
}

// SphereFormFactor returns [3(sin x − x·cos x)/x³]² with x = qR; it is 1 at q = 0.
func SphereFormFactor(q, radius float64) float64 {
	x := q * radius
	if math.Abs(x) < 0.05 {
		// 3(sin x − x cos x)/x³ = 1 − x²/10 + x⁴/280 + O(x⁶)
		x2 := x * x
		f := 1 - x2/10 + x2*x2/280

		return f * f
	}
	s, c := math.Sincos(x)
	f := 3 * (s - x*c) / (x * x * x)

	return f * f
}

// SpherePR returns the normalized sphere pair-distance distribution
// P(r) = 12x²(1−x)²(2+x)/D, x = r/D, D = 2R, zero outside [0, D].
// It integrates to 1 over r.
func SpherePR(radius, r float64) float64 {
	d := 2 * radius
	if r <= 0 || r >= d {
		return 0
	}
	x := r / d

	return 12 * x * x * (1 - x) * (1 - x) * (2 + x) / d
}

// SphereRg returns the analytic radius of gyration √(3/5)·R.
func SphereRg(radius float64) float64 {
	return math.Sqrt(3.0/5.0) * radius
}

// LinSpace returns n evenly spaced values from a to b inclusive. For n == 1 it
// returns [a].
func LinSpace(a, b float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = a
		return out
	}
	step := (b - a) / float64(n-1)
	for k := range out {
		out[k] = a + float64(k)*step
	}
	out[n-1] = b

	return out
}
