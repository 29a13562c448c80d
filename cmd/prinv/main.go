// Package main provides the prinv command line tool.
//
// prinv computes the pair-distance distribution P(r) of a small-angle
// scattering curve by regularized indirect Fourier transform.
//
// Usage:
//
//	prinv invert data.txt --d-max 120 --nfunc 15
//	prinv explore data.txt --d-max 120 --markdown
//	prinv sphere --radius 50 -o sphere.txt
//
// See --help for all available options.
package main

func main() {
	Execute()
}
