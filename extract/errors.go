// SPDX-License-Identifier: MIT
// Package extract: sentinel error set.
// All builders return these sentinels (possibly wrapped with call-site context);
// tests check them via errors.Is. No builder panics on data or configuration
// problems. Panics are reserved for nonsensical Option arguments.

package extract

import (
	"errors"
	"fmt"
)

// NOTE ON WRAPPING
// ----------------
// Index errors are wrapped as "Dataset.At(i,j): extract: index out of range".
// Accessor failures are wrapped in *AccessorError, which matches both
// ErrAccessor and the accessor's own error.

var (
	// ErrOutOfRange is the IndexError: a rank outside an already built
	// Record or Dataset.
	ErrOutOfRange = errors.New("extract: index out of range")

	// ErrConfiguration signals an invalid width/sentinel/policy combination.
	// It is always returned before the accessor is touched.
	ErrConfiguration = errors.New("extract: invalid configuration")

	// ErrAccessor matches every *AccessorError.
	ErrAccessor = errors.New("extract: accessor failed")

	// ErrOverflow is returned under OverflowError when a rounded value does
	// not fit the destination width.
	ErrOverflow = errors.New("extract: value overflows destination width")

	// ErrNilAccessor indicates a nil NumericAccessor was passed to a builder.
	ErrNilAccessor = errors.New("extract: nil accessor")

	// ErrInvalidIndex indicates a negative observation index or an index
	// provider that produced negative indices.
	ErrInvalidIndex = errors.New("extract: invalid index")
)

// ErrIndexOutOfBounds is kept as an alias so errors.Is matches either name.
var ErrIndexOutOfBounds = ErrOutOfRange

// AccessorError reports the cell whose read failed. The build that produced
// it returned nothing else.
type AccessorError struct {
	Var int   // variable index passed to the accessor
	Obs int   // observation index passed to the accessor
	Err error // error returned by the accessor, unchanged
}

func (e *AccessorError) Error() string {
	return fmt.Sprintf("extract: accessor failed at (var=%d, obs=%d): %v", e.Var, e.Obs, e.Err)
}

// Unwrap exposes the accessor's own error.
func (e *AccessorError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrAccessor) true for every AccessorError.
func (e *AccessorError) Is(target error) bool { return target == ErrAccessor }

// rankErrorf wraps err with a uniform "<Type>.<method>(args): " prefix.
func rankErrorf(typ, method string, err error, ranks ...int) error {
	switch len(ranks) {
	case 1:
		return fmt.Errorf("%s.%s(%d): %w", typ, method, ranks[0], err)
	case 2:
		return fmt.Errorf("%s.%s(%d,%d): %w", typ, method, ranks[0], ranks[1], err)
	default:
		return fmt.Errorf("%s.%s: %w", typ, method, err)
	}
}
