// SPDX-License-Identifier: MIT

package extract

// ToSlice copies a Record into a plain slice, in variable order.
func ToSlice[T Integer](r Record[T]) []T {
	out := make([]T, len(r.vals))
	copy(out, r.vals)

	return out
}

// ToSlices copies a Dataset into one slice per observation, in row order.
// The rows are independent slices; mutating them does not affect d.
func ToSlices[T Integer](d *Dataset[T]) [][]T {
	if d == nil {
		return nil
	}
	out := make([][]T, d.r)
	for i := range out {
		out[i] = make([]T, d.c)
		copy(out[i], d.data[i*d.c:(i+1)*d.c])
	}

	return out
}

// Values is ToSlice as a method.
func (r Record[T]) Values() []T { return ToSlice(r) }

// Values is ToSlices as a method.
func (d *Dataset[T]) Values() [][]T { return ToSlices(d) }
