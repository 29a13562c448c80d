// SPDX-License-Identifier: MIT

// Package prfile reads and writes inversion state files.
//
// A state file is plain text: a header of "#key=value" lines describing the
// inversion, one "#C_i=value+-variance" line per coefficient, then a
// "<r>  <Pr>  <dPr>" table sampling P(r) on [0, D_max). Reading restores the
// coefficients and the diagonal of the covariance, which is enough to
// regenerate P(r) and I(Q) without the original data.
//
// Header keys: d_max, nfunc, alpha, chi2, elapsed (seconds), qmin, qmax
// ("None" for an open bound), slit_height, slit_width, background, has_bck
// (0/1), alpha_estimate, data_hash (hex xxhash of the dataset).
package prfile
