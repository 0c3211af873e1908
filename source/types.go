// SPDX-License-Identifier: MIT

// Package source: boundary contracts consumed by the extract builders.
package source

// IndexProvider resolves which part of the host dataset is "active".
//
// Both methods return indices in the order the host considers authoritative;
// builders preserve that order in every output. Implementations must return the
// same lists for the duration of one build.
type IndexProvider interface {
	// VariableIndices returns the ordered column indices in scope.
	VariableIndices() []int

	// ObservationIndices returns the ordered row indices in scope.
	ObservationIndices() []int
}

// NumericAccessor reads cells from the host source.
//
// Value returns the raw double stored at (variable v, observation o). Any error
// is terminal for the build that requested the cell.
// IsMissing classifies a raw double as "no data" for this source.
type NumericAccessor interface {
	Value(v, o int) (float64, error)
	IsMissing(x float64) bool
}

// Reentrant is implemented by accessors that tolerate concurrent Value calls.
// Builders only skip serialization when Reentrant returns true.
type Reentrant interface {
	Reentrant() bool
}

// IsReentrant reports whether acc documents itself as safe for concurrent reads.
func IsReentrant(acc NumericAccessor) bool {
	r, ok := acc.(Reentrant)

	return ok && r.Reentrant()
}
