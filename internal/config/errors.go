// SPDX-License-Identifier: MIT
package config

import "errors"

// Validation errors returned by Config.Validate.
var (
	// ErrInvalidNFunc is returned when the number of basis functions is below 1.
	ErrInvalidNFunc = errors.New("invalid nfunc: must be at least 1")

	// ErrInvalidAlpha is returned for a negative or non-finite alpha.
	// Zero means "estimate alpha".
	ErrInvalidAlpha = errors.New("invalid alpha: must be finite and non-negative")

	// ErrInvalidDmax is returned when d_max is not positive.
	ErrInvalidDmax = errors.New("invalid d_max: must be positive")

	// ErrInvalidQRange is returned when q_min > q_max with both bounds set, or a bound is negative.
	ErrInvalidQRange = errors.New("invalid q range: need 0 <= q_min <= q_max")

	// ErrInvalidSlit is returned for negative slit dimensions or smearing points below 1.
	ErrInvalidSlit = errors.New("invalid slit: height, width must be >= 0 and smear points >= 1")

	// ErrInvalidSweep is returned for a sweep with fewer than 2 points, a bad
	// factor range or a negative concurrency.
	ErrInvalidSweep = errors.New("invalid sweep: need points >= 2, 0 < low <= high, concurrency >= 0")

	// ErrInvalidOutputPoints is returned when fewer than 1 P(r) row is requested.
	ErrInvalidOutputPoints = errors.New("invalid output points: must be at least 1")
)
