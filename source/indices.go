// SPDX-License-Identifier: MIT

// Package source - immutable index snapshot.
//
// Purpose:
//   - Model the host's metadata (which variables/observations are active) as an
//     already-resolved value instead of a shared mutable object.
//   - Copy on the way in and on the way out so no caller can alter a snapshot.
package source

import "fmt"

// Indices is an immutable, validated IndexProvider.
// The zero value is a valid empty selection (0 variables, 0 observations).
type Indices struct {
	vars []int // variable indices in provider order
	obs  []int // observation indices in provider order
}

// Compile-time assertion.
var _ IndexProvider = Indices{}

// NewIndices validates and copies the two ordered index lists.
//
// Behavior highlights:
//   - Order is kept exactly as given; duplicates are legal (the host decides).
//   - Negative values are rejected with ErrNegativeIndex.
//
// Complexity: O(len(vars)+len(obs)).
func NewIndices(vars, obs []int) (Indices, error) {
	if err := checkNonNegative("variable", vars); err != nil {
		return Indices{}, err
	}
	if err := checkNonNegative("observation", obs); err != nil {
		return Indices{}, err
	}

	return Indices{vars: cloneInts(vars), obs: cloneInts(obs)}, nil
}

// Range returns the contiguous selection 0..nVars-1 × 0..nObs-1.
// Negative counts are treated as zero.
func Range(nVars, nObs int) Indices {
	return Indices{vars: seq(nVars), obs: seq(nObs)}
}

// Snapshot resolves p once and returns a private, validated copy.
// Builders call it at the start of every build so a provider that changes
// later cannot affect a build in flight.
func Snapshot(p IndexProvider) (Indices, error) {
	if p == nil {
		return Indices{}, fmt.Errorf("Snapshot: %w", ErrNilSource)
	}
	if ix, ok := p.(Indices); ok {
		return ix, nil // already immutable
	}

	return NewIndices(p.VariableIndices(), p.ObservationIndices())
}

// VariableIndices returns a copy of the variable order.
func (ix Indices) VariableIndices() []int { return cloneInts(ix.vars) }

// ObservationIndices returns a copy of the observation order.
func (ix Indices) ObservationIndices() []int { return cloneInts(ix.obs) }

// NumVariables is len(VariableIndices()) without the copy.
func (ix Indices) NumVariables() int { return len(ix.vars) }

// NumObservations is len(ObservationIndices()) without the copy.
func (ix Indices) NumObservations() int { return len(ix.obs) }

// Variable returns the variable index at rank r. r must be in range.
func (ix Indices) Variable(r int) int { return ix.vars[r] }

// Observation returns the observation index at rank r. r must be in range.
func (ix Indices) Observation(r int) int { return ix.obs[r] }

func checkNonNegative(kind string, idx []int) error {
	for rank, v := range idx {
		if v < 0 {
			return fmt.Errorf("NewIndices: %s rank %d = %d: %w", kind, rank, v, ErrNegativeIndex)
		}
	}

	return nil
}

func cloneInts(in []int) []int {
	out := make([]int, len(in))
	copy(out, in)

	return out
}

func seq(n int) []int {
	if n < 0 {
		n = 0
	}
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}

	return out
}
