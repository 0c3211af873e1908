// SPDX-License-Identifier: MIT

// Package extract: numeric width types and the overflow policy.
package extract

import (
	"fmt"
	"strings"
	"unsafe"
)

// Integer is the set of destination widths a cell can be narrowed to.
type Integer interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Width is the runtime tag of an Integer type, used where the width comes
// from configuration instead of a type parameter.
type Width int

const (
	// WidthInvalid is the zero value and never valid.
	WidthInvalid Width = iota
	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
)

var widthNames = [...]string{
	WidthInvalid: "invalid",
	Int8:         "int8",
	Int16:        "int16",
	Int32:        "int32",
	Int64:        "int64",
	Uint8:        "uint8",
	Uint16:       "uint16",
	Uint32:       "uint32",
	Uint64:       "uint64",
}

// String returns the Go type name of the width ("int8", "uint32", ...).
func (w Width) String() string {
	if w < 0 || int(w) >= len(widthNames) {
		return fmt.Sprintf("Width(%d)", int(w))
	}

	return widthNames[w]
}

// Bits returns the storage size in bits, or 0 for an invalid width.
func (w Width) Bits() int {
	switch w {
	case Int8, Uint8:
		return 8
	case Int16, Uint16:
		return 16
	case Int32, Uint32:
		return 32
	case Int64, Uint64:
		return 64
	default:
		return 0
	}
}

// Signed reports whether the width holds negative values.
func (w Width) Signed() bool { return w >= Int8 && w <= Int64 }

// ParseWidth maps a type name to its Width. "byte" and "int" are accepted as
// the historical names of int8 and int32.
func ParseWidth(s string) (Width, error) {
	switch name := strings.ToLower(strings.TrimSpace(s)); name {
	case "byte":
		return Int8, nil
	case "int":
		return Int32, nil
	default:
		for w := Int8; w <= Uint64; w++ {
			if widthNames[w] == name {
				return w, nil
			}
		}
	}

	return WidthInvalid, fmt.Errorf("ParseWidth(%q): %w", s, ErrConfiguration)
}

// WidthOf returns the Width tag of T.
func WidthOf[T Integer]() Width {
	var zero T
	signed := ^zero < zero // all-ones is negative only for signed types
	switch unsafe.Sizeof(zero) {
	case 1:
		return pick(signed, Int8, Uint8)
	case 2:
		return pick(signed, Int16, Uint16)
	case 4:
		return pick(signed, Int32, Uint32)
	default:
		return pick(signed, Int64, Uint64)
	}
}

func pick(signed bool, s, u Width) Width {
	if signed {
		return s
	}

	return u
}

// limits returns the smallest and largest T.
func limits[T Integer]() (lo, hi T) {
	var zero T
	hi = ^zero
	if hi < zero {
		bits := WidthOf[T]().Bits()
		hi = T(int64(1)<<(bits-1) - 1) // wraps to MaxInt64 for 64 bits
		lo = -hi - 1
	}

	return lo, hi
}

// floatBounds returns T's range as float64 bounds [lo, hiExcl). Both bounds are
// powers of two and therefore exact in float64, for every width.
func floatBounds[T Integer]() (lo, hiExcl float64) {
	w := WidthOf[T]()
	bits := w.Bits()
	if w.Signed() {
		half := float64(uint64(1) << (bits - 1))
		return -half, half
	}
	if bits == 64 {
		return 0, 1 << 64
	}

	return 0, float64(uint64(1) << bits)
}

// RoundingMode decides how ties (x.5) are rounded before narrowing.
type RoundingMode int

const (
	// RoundHalfUp sends ties toward +∞: floor(x + 0.5) without the precision
	// loss of the addition. 2.5 → 3, -0.5 → 0, -2.5 → -2. This is the host's
	// round function and the default.
	RoundHalfUp RoundingMode = iota
	// RoundHalfAwayFromZero sends ties away from zero: 2.5 → 3, -2.5 → -3.
	RoundHalfAwayFromZero
)

// String implements fmt.Stringer.
func (m RoundingMode) String() string {
	switch m {
	case RoundHalfUp:
		return "half-up"
	case RoundHalfAwayFromZero:
		return "half-away"
	default:
		return fmt.Sprintf("RoundingMode(%d)", int(m))
	}
}

// ParseRoundingMode maps "half-up" or "half-away" to a mode.
func ParseRoundingMode(s string) (RoundingMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "half-up", "":
		return RoundHalfUp, nil
	case "half-away":
		return RoundHalfAwayFromZero, nil
	default:
		return RoundHalfUp, fmt.Errorf("ParseRoundingMode(%q): %w", s, ErrConfiguration)
	}
}

// OverflowPolicy decides what happens when a rounded value does not fit T.
type OverflowPolicy int

const (
	// OverflowWrap truncates to T's width (two's complement). Default.
	OverflowWrap OverflowPolicy = iota
	// OverflowSaturate clamps to T's minimum or maximum.
	OverflowSaturate
	// OverflowError fails the build with ErrOverflow.
	OverflowError
)

// String implements fmt.Stringer.
func (p OverflowPolicy) String() string {
	switch p {
	case OverflowWrap:
		return "wrap"
	case OverflowSaturate:
		return "saturate"
	case OverflowError:
		return "error"
	default:
		return fmt.Sprintf("OverflowPolicy(%d)", int(p))
	}
}

// ParseOverflowPolicy maps "wrap", "saturate" or "error" to a policy.
func ParseOverflowPolicy(s string) (OverflowPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "wrap", "":
		return OverflowWrap, nil
	case "saturate":
		return OverflowSaturate, nil
	case "error":
		return OverflowError, nil
	default:
		return OverflowWrap, fmt.Errorf("ParseOverflowPolicy(%q): %w", s, ErrConfiguration)
	}
}
