// SPDX-License-Identifier: MIT

package source

import "math"

// StataMaxDouble is the largest non-missing value of a Stata double.
// Everything above it (the ., .a, ..., .z family) encodes a missing value.
const StataMaxDouble = 8.988465674311579e+307

// StataMissing reports whether x is a Stata missing value or NaN.
func StataMissing(x float64) bool {
	return math.IsNaN(x) || x > StataMaxDouble
}

// NaNMissing treats only NaN as missing. Used by spreadsheets, which surface
// empty cells as NaN and carry no Stata missing codes.
func NaNMissing(x float64) bool {
	return math.IsNaN(x)
}
