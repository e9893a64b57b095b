package binvec

import "iter"

// SparseVector stores only the non-zero positions of a vector as co-indexed
// arrays: indices is strictly increasing and values[i] is the value at
// logical position indices[i]. Every unlisted position reads as zero.
//
// K is the index width and is chosen independently of the value type V by the
// Sparse factory, so a vector of 100k positions with byte-sized values still
// pays only for int32 indices, and a short vector with wide values pays only
// for int8 indices.
type SparseVector[K, V Integer] struct {
	size    int
	indices []K
	values  []V
}

// Size returns the logical length of the vector.
func (s *SparseVector[K, V]) Size() int {
	return s.size
}

// At returns the value at position i, or zero if i is not a stored position.
// Lookup is a binary search over the stored indices, O(log k).
func (s *SparseVector[K, V]) At(i int) V {
	var zero V
	if i < 0 || i >= s.size {
		panic(&ErrOutOfBounds{Index: i, Size: s.size})
	}
	// Positions past the last stored index cannot be representable in K when
	// the width was chosen from the largest index, so bail out before
	// converting i.
	if n := len(s.indices); n == 0 || i > int(s.indices[n-1]) {
		return zero
	}
	if p := searchSorted(s.indices, K(i)); p >= 0 {
		return s.values[p]
	}
	return zero
}

// Slice projects the vector onto the given strictly increasing positions.
//
// It merges the requested positions with the stored indices in one pass:
// a requested position that is stored keeps its value, a requested position
// that is absent contributes an implicit zero and is not stored in the
// result. Kept entries are renumbered to their rank within sorted, and the
// result's index width is re-selected for the new geometry. O(k + m).
func (s *SparseVector[K, V]) Slice(sorted []int) BinVector[V] {
	var (
		ranks  []int
		values []V
	)

	i, j := 0, 0
	for i < len(sorted) && j < len(s.indices) {
		stored := int(s.indices[j])
		switch {
		case sorted[i] == stored:
			ranks = append(ranks, i)
			values = append(values, s.values[j])
			i++
			j++
		case stored < sorted[i]:
			j++
		default:
			i++
		}
	}

	out, err := Sparse(len(sorted), ranks, values)
	if err != nil {
		// Ranks are strictly increasing and < len(sorted) by construction.
		panic(err)
	}
	return out
}

// Total iterates every (position, value) pair in order, advancing a single
// cursor through the stored entries as positions match. O(size).
func (s *SparseVector[K, V]) Total() iter.Seq2[int, V] {
	return func(yield func(int, V) bool) {
		j := 0
		for i := 0; i < s.size; i++ {
			var v V
			if j < len(s.indices) && int(s.indices[j]) == i {
				v = s.values[j]
				j++
			}
			if !yield(i, v) {
				return
			}
		}
	}
}

// Active iterates the stored (position, value) pairs in order. Stored entries
// are non-zero by convention, but zero values are still skipped. O(k).
func (s *SparseVector[K, V]) Active() iter.Seq2[int, V] {
	return func(yield func(int, V) bool) {
		var zero V
		for j, idx := range s.indices {
			if s.values[j] == zero {
				continue
			}
			if !yield(int(idx), s.values[j]) {
				return
			}
		}
	}
}
