// SPDX-License-Identifier: MIT
package basis_test

import (
	"fmt"
	"math"

	"github.com/katalvlaran/prinv/basis"
)

// ExampleTransform evaluates the first basis transform at Q = 0 and at its
// removable singularity QD = π.
func ExampleTransform() {
	const d = 10.0
	z, _ := basis.Transform(d, 1, 0)
	s, _ := basis.Transform(d, 1, math.Pi/d)
	fmt.Printf("Φ_1(0) = %.1f\n", z)
	fmt.Printf("Φ_1(π/D) = %.1f\n", s)
	// Output:
	// Φ_1(0) = 800.0
	// Φ_1(π/D) = 400.0
}
