// SPDX-License-Identifier: MIT

package source

import "sync"

// serialized guards a non-reentrant accessor with a mutex.
type serialized struct {
	mu  sync.Mutex
	acc NumericAccessor
}

// Serialize returns an accessor whose Value calls never overlap.
// IsMissing is also guarded: host predicates may share state with Value.
// Serializing an already serialized accessor returns it unchanged.
func Serialize(acc NumericAccessor) NumericAccessor {
	if s, ok := acc.(*serialized); ok {
		return s
	}

	return &serialized{acc: acc}
}

func (s *serialized) Value(v, o int) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.acc.Value(v, o)
}

func (s *serialized) IsMissing(x float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.acc.IsMissing(x)
}

// Reentrant is true: the mutex makes concurrent callers safe.
func (s *serialized) Reentrant() bool { return true }
