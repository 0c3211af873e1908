// SPDX-License-Identifier: MIT
// Package: extract
//
// Purpose:
//  - Keep every configuration check in one place so both builders fail the
//    same way, and always before the first accessor call.
//  - Return sentinel errors wrapped with a validator tag.

package extract

import (
	"fmt"
	"math"
)

// validatorErrorf tags a validation failure.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateSentinel checks that s is representable in T.
// Complexity: O(1).
func ValidateSentinel[T Integer](s int64) error {
	lo, hi := limits[T]()
	if WidthOf[T]().Signed() {
		if s < int64(lo) || s > int64(hi) {
			return validatorErrorf("ValidateSentinel",
				fmt.Errorf("sentinel %d not representable in %s: %w", s, WidthOf[T](), ErrConfiguration))
		}

		return nil
	}
	if s < 0 || uint64(s) > uint64(hi) {
		return validatorErrorf("ValidateSentinel",
			fmt.Errorf("sentinel %d not representable in %s: %w", s, WidthOf[T](), ErrConfiguration))
	}

	return nil
}

// ValidateOverflow rejects unknown policies.
func ValidateOverflow(p OverflowPolicy) error {
	switch p {
	case OverflowWrap, OverflowSaturate, OverflowError:
		return nil
	default:
		return validatorErrorf("ValidateOverflow", fmt.Errorf("%s: %w", p, ErrConfiguration))
	}
}

// ValidateRounding rejects unknown rounding modes.
func ValidateRounding(m RoundingMode) error {
	switch m {
	case RoundHalfUp, RoundHalfAwayFromZero:
		return nil
	default:
		return validatorErrorf("ValidateRounding", fmt.Errorf("%s: %w", m, ErrConfiguration))
	}
}

// ValidateWidth rejects WidthInvalid and out-of-range tags.
func ValidateWidth(w Width) error {
	if w < Int8 || w > Uint64 {
		return validatorErrorf("ValidateWidth", fmt.Errorf("%s: %w", w, ErrConfiguration))
	}

	return nil
}

// isNonFinite reports NaN or ±Inf.
func isNonFinite(x float64) bool {
	return math.IsNaN(x) || math.IsInf(x, 0)
}
