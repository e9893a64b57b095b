package binvec

import "iter"

// DenseVector stores one value per position in a contiguous array.
type DenseVector[V Integer] struct {
	values []V
}

// Size returns the logical length of the vector.
func (d *DenseVector[V]) Size() int {
	return len(d.values)
}

// At returns the value at position i.
func (d *DenseVector[V]) At(i int) V {
	if i < 0 || i >= len(d.values) {
		panic(&ErrOutOfBounds{Index: i, Size: len(d.values)})
	}
	return d.values[i]
}

// Slice returns a fresh dense vector holding the values at the given
// strictly increasing positions, in that order.
func (d *DenseVector[V]) Slice(sorted []int) BinVector[V] {
	out := make([]V, len(sorted))
	for r, i := range sorted {
		out[r] = d.At(i)
	}
	return &DenseVector[V]{values: out}
}

// Total iterates every (position, value) pair in order.
func (d *DenseVector[V]) Total() iter.Seq2[int, V] {
	return func(yield func(int, V) bool) {
		for i, v := range d.values {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Active iterates the (position, value) pairs with non-zero values.
func (d *DenseVector[V]) Active() iter.Seq2[int, V] {
	return func(yield func(int, V) bool) {
		var zero V
		for i, v := range d.values {
			if v == zero {
				continue
			}
			if !yield(i, v) {
				return
			}
		}
	}
}
