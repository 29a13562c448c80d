// SPDX-License-Identifier: MIT
package basis

import (
	"math"
)

// singularRelTol is the relative distance |QD − nπ| / max(1, nπ) below which
// Transform returns the analytic limit at the removable singularity.
const singularRelTol = 1e-9

// Func returns φ_n(r) = 2r·sin(nπr/D). It is zero outside [0, D].
func Func(dmax float64, n int, r float64) (float64, error) {
	if err := checkIndex(dmax, n); err != nil {
		return 0, err
	}
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, inconsistent("r=%g", r)
	}

	return phi(dmax, n, r), nil
}

// Transform returns Φ_n(Q) for Q ≥ 0, using the analytic limits at Q = 0 and
// at QD = nπ.
func Transform(dmax float64, n int, q float64) (float64, error) {
	if err := checkIndex(dmax, n); err != nil {
		return 0, err
	}
	if !(q >= 0) || math.IsInf(q, 1) {
		return 0, inconsistent("q=%g", q)
	}

	return bigPhi(dmax, n, q), nil
}

// Smeared returns Φ_n averaged over a slit of height h and width w sampled on
// an npts×npts grid. With h = w = 0 it equals Transform.
func Smeared(dmax float64, n int, q, h, w float64, npts int) (float64, error) {
	if err := checkIndex(dmax, n); err != nil {
		return 0, err
	}
	if err := checkSlit(h, w, npts); err != nil {
		return 0, err
	}
	if !(q >= 0) || math.IsInf(q, 1) {
		return 0, inconsistent("q=%g", q)
	}

	return smeared(dmax, n, q, h, w, npts), nil
}

func checkIndex(dmax float64, n int) error {
	if !(dmax > 0) || math.IsInf(dmax, 1) {
		return inconsistent("d_max=%g must be > 0", dmax)
	}
	if n < 1 {
		return inconsistent("n=%d must be >= 1", n)
	}

	return nil
}

func checkSlit(h, w float64, npts int) error {
	if !(h >= 0) || !(w >= 0) || math.IsInf(h, 1) || math.IsInf(w, 1) {
		return inconsistent("slit height=%g width=%g must be finite and >= 0", h, w)
	}
	if (h > 0 || w > 0) && npts < 2 {
		return inconsistent("smearing points=%d must be >= 2", npts)
	}

	return nil
}

// sign returns (−1)^(n+1).
func sign(n int) float64 {
	if n%2 == 0 {
		return -1
	}

	return 1
}

func phi(dmax float64, n int, r float64) float64 {
	if r <= 0 || r >= dmax {
		return 0
	}

	return 2 * r * math.Sin(float64(n)*math.Pi*r/dmax)
}

// phiPrime returns dφ_n/dr = 2·sin(ar) + 2ar·cos(ar), a = nπ/D.
func phiPrime(dmax float64, n int, r float64) float64 {
	if r < 0 || r > dmax {
		return 0
	}
	a := float64(n) * math.Pi / dmax
	s, c := math.Sincos(a * r)

	return 2*s + 2*a*r*c
}

// phiSecond returns d²φ_n/dr² = 4a·cos(ar) − 2a²r·sin(ar).
func phiSecond(dmax float64, n int, r float64) float64 {
	if r < 0 || r > dmax {
		return 0
	}
	a := float64(n) * math.Pi / dmax
	s, c := math.Sincos(a * r)

	return 4*a*c - 2*a*a*r*s
}

func bigPhi(dmax float64, n int, q float64) float64 {
	fn := float64(n)
	if q == 0 {
		return 8 * dmax * dmax * sign(n) / fn
	}
	npi := fn * math.Pi
	qd := q * dmax
	if math.Abs(qd-npi) <= singularRelTol*math.Max(1, npi) {
		return 4 * math.Pi * dmax / q
	}

	return 8 * math.Pi * math.Pi * dmax * fn * sign(n) * math.Sin(qd) / (q * (npi*npi - qd*qd))
}

func smeared(dmax float64, n int, q, h, w float64, npts int) float64 {
	nh, nw := 1, 1
	if h > 0 {
		nh = npts
	}
	if w > 0 {
		nw = npts
	}
	var (
		sum  float64
		y, z float64
	)
	for j := 0; j < nh; j++ {
		z = 0
		if h > 0 {
			z = h * float64(j) / float64(npts-1)
		}
		for i := 0; i < nw; i++ {
			y = 0
			if w > 0 {
				y = -w/2 + w*float64(i)/float64(npts-1)
			}
			sum += bigPhi(dmax, n, math.Hypot(q-y, z))
		}
	}

	return sum / float64(nh*nw)
}

// firstMoment returns ∫₀^D φ_n dr = 2D(−1)^(n+1)/a.
func firstMoment(dmax float64, n int) float64 {
	a := float64(n) * math.Pi / dmax

	return 2 * dmax * sign(n) / a
}

// secondMoment returns ∫₀^D r²φ_n dr = 2(−1)^(n+1)(D³/a − 6D/a³).
func secondMoment(dmax float64, n int) float64 {
	a := float64(n) * math.Pi / dmax

	return 2 * sign(n) * (dmax*dmax*dmax/a - 6*dmax/(a*a*a))
}
