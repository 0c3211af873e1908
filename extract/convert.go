// SPDX-License-Identifier: MIT

// Package extract - element conversion.
//
// Purpose:
//   - One routine maps (raw double, missing?) to a value of width T; every
//     builder goes through it, whatever T is.
//
// Rounding & narrowing:
//   - RoundHalfUp (default): ties toward +∞ (2.5 → 3, -0.5 → 0, -1.49 → -1).
//   - RoundHalfAwayFromZero: math.Round (2.5 → 3, -0.5 → -1).
//   - NaN rounds to 0 (wrap/saturate), like the host's round function.
//   - Wrap: a rounded value that fits T converts exactly; otherwise it is first
//     saturated to the int64 range and then truncated to T's width.
//     Example: int8, 200 → -56; +Inf → MaxInt64 → -1.
//   - Saturate: clamp to [min T, max T].
//   - Error: ErrOverflow for anything outside T (NaN and ±Inf included).
package extract

import (
	"fmt"
	"math"
)

// Convert is the pure element converter with the default rounding mode and the
// wrap overflow policy.
//
// Behavior highlights:
//   - missing ⇒ sentinel; the raw value is ignored entirely.
//   - otherwise round (ties toward +∞), then narrow with wrap semantics.
//
// Complexity: O(1), no allocation.
func Convert[T Integer](raw float64, missing bool, sentinel T) T {
	if missing {
		return sentinel
	}
	lo, hiExcl := floatBounds[T]()

	return wrap[T](roundHalfUp(raw), lo, hiExcl)
}

// Converter bundles the sentinel, rounding mode and overflow policy of one
// build. The zero value converts with sentinel 0, RoundHalfUp and OverflowWrap.
type Converter[T Integer] struct {
	sentinel T
	policy   OverflowPolicy
	rounding RoundingMode
	lo       float64 // inclusive lower bound of T as float64
	hiExcl   float64 // exclusive upper bound of T as float64
	min, max T
}

// NewConverter validates opts for width T and returns a ready converter.
//
// Errors:
//   - ErrConfiguration when the sentinel does not fit T, or the policy or
//     rounding mode is unknown.
func NewConverter[T Integer](opts ...Option) (Converter[T], error) {
	return newConverter[T](gatherOptions(opts...))
}

func newConverter[T Integer](o Options) (Converter[T], error) {
	if err := ValidateSentinel[T](o.sentinel); err != nil {
		return Converter[T]{}, err
	}
	if err := ValidateOverflow(o.overflow); err != nil {
		return Converter[T]{}, err
	}
	if err := ValidateRounding(o.rounding); err != nil {
		return Converter[T]{}, err
	}
	lo, hiExcl := floatBounds[T]()
	mn, mx := limits[T]()

	return Converter[T]{
		sentinel: T(o.sentinel), // validated above: exact
		policy:   o.overflow,
		rounding: o.rounding,
		lo:       lo,
		hiExcl:   hiExcl,
		min:      mn,
		max:      mx,
	}, nil
}

// Sentinel returns the value written for missing cells.
func (c Converter[T]) Sentinel() T { return c.sentinel }

// Policy returns the overflow policy.
func (c Converter[T]) Policy() OverflowPolicy { return c.policy }

// Rounding returns the rounding mode.
func (c Converter[T]) Rounding() RoundingMode { return c.rounding }

// Convert maps one cell. The error is non-nil only under OverflowError.
func (c Converter[T]) Convert(raw float64, missing bool) (T, error) {
	if missing {
		return c.sentinel, nil
	}
	if c.hiExcl == 0 { // zero Converter
		c.lo, c.hiExcl = floatBounds[T]()
		c.min, c.max = limits[T]()
	}
	r := c.round(raw)

	switch c.policy {
	case OverflowSaturate:
		switch {
		case math.IsNaN(r):
			return 0, nil
		case r < c.lo:
			return c.min, nil
		case r >= c.hiExcl:
			return c.max, nil
		default:
			return T(r), nil
		}
	case OverflowError:
		if isNonFinite(r) || r < c.lo || r >= c.hiExcl {
			return 0, fmt.Errorf("%g as %s: %w", raw, WidthOf[T](), ErrOverflow)
		}

		return T(r), nil
	default:
		return wrap[T](r, c.lo, c.hiExcl), nil
	}
}

func (c Converter[T]) round(x float64) float64 {
	if c.rounding == RoundHalfAwayFromZero {
		return math.Round(x)
	}

	return roundHalfUp(x)
}

// roundHalfUp is floor(x + 0.5) computed without the addition, so values just
// below .5 (0.49999999999999994) are not pushed over the tie.
func roundHalfUp(x float64) float64 {
	f := math.Floor(x)
	if x-f >= 0.5 {
		return f + 1
	}

	return f // NaN and ±Inf pass through
}

// wrap narrows an already rounded value.
func wrap[T Integer](r, lo, hiExcl float64) T {
	if r >= lo && r < hiExcl {
		return T(r) // exact: r is integral and in range
	}

	return T(clampInt64(r))
}

// clampInt64 saturates r into the int64 range; NaN maps to 0.
func clampInt64(r float64) int64 {
	switch {
	case math.IsNaN(r):
		return 0
	case r >= 1<<63:
		return math.MaxInt64
	case r < -(1 << 63):
		return math.MinInt64
	default:
		return int64(r)
	}
}
