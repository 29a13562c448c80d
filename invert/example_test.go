// SPDX-License-Identifier: MIT
package invert_test

import (
	"fmt"
	"math"

	"github.com/katalvlaran/prinv/invert"
	"github.com/katalvlaran/prinv/synthetic"
)

// ExampleEngine_Invert recovers the radius of gyration of a sphere of radius 50.
func ExampleEngine_Invert() {
	cfg := synthetic.DefaultSphere()
	cfg.Noisy = false
	curve, err := synthetic.Sphere(cfg)
	if err != nil {
		fmt.Println(err)
		return
	}

	e := invert.New()
	if err = e.SetData(curve.Q, curve.I, curve.DI); err != nil {
		fmt.Println(err)
		return
	}
	if err = e.SetDmax(100); err != nil {
		fmt.Println(err)
		return
	}
	scale, err := e.SuggestAlpha(10)
	if err != nil {
		fmt.Println(err)
		return
	}
	res, err := e.Invert(10, 1e-4*scale)
	if err != nil {
		fmt.Println(err)
		return
	}
	rg, _ := e.Rg(res.Coefficients)
	fmt.Printf("Rg within 2%%: %t\n", math.Abs(rg-synthetic.SphereRg(50)) < 0.02*synthetic.SphereRg(50))
	fmt.Println("coefficients:", len(res.Coefficients))
	// Output:
	// Rg within 2%: true
	// coefficients: 10
}
