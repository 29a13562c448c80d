// Package basis defines the sine basis used to expand a pair-distance
// distribution P(r) on [0, D_max], together with its closed-form transform
// into scattering space.
//
// What & Why:
//
//	φ_n(r) = 2r·sin(nπr/D)          n = 1..N, vanishes at r = 0 and r = D
//	Φ_n(Q) = 4π∫φ_n(r)·sin(Qr)/(Qr) dr
//	       = 8π²·D·n·(−1)^(n+1)·sin(QD) / (Q·[(πn)² − (QD)²])
//
//	The transform has a removable singularity at QD = nπ (limit 4πD/Q) and an
//	analytic Q → 0 limit 8D²(−1)^(n+1)/n; both are returned directly instead of
//	being evaluated through the 0/0 form.
//
//	Slit smearing averages Φ_n over a fixed grid of the instrument's slit
//	height and width, Φ̃_n(Q) = ⟨Φ_n(√((Q−y)² + z²))⟩.
//
//	Roughness returns the Gram matrix of second derivatives,
//	R_nm = ∫₀^D φ''_n·φ''_m dr, used as the smoothness penalty cᵀRc.
//
// Complexity:
//
//	Func/Transform are O(1); Smeared is O(npts²); Roughness is O(N²·K) with K
//	quadrature intervals.
package basis
