package binvec

import (
	"fmt"
	"iter"
	"math"
)

// BinVector is a fixed-length, immutable vector of bin values.
//
// Implementations never expose mutation: once constructed, a vector and
// everything reachable from it is read-only, so instances are safe for
// concurrent use. Slice always allocates fresh backing storage; it never
// aliases the receiver.
type BinVector[V Integer] interface {
	// Size returns the logical length of the vector.
	Size() int

	// At returns the value at position i.
	// It panics with *ErrOutOfBounds if i is outside [0, Size).
	At(i int) V

	// Slice projects the vector onto the given strictly increasing positions,
	// all < Size. The result has length len(sorted); position r of the result
	// holds the value at sorted[r] of the receiver.
	Slice(sorted []int) BinVector[V]

	// Total iterates (position, value) for every position 0..Size-1.
	// Each call returns a fresh, restartable sequence.
	Total() iter.Seq2[int, V]

	// Active iterates (position, value) restricted to non-zero values,
	// in increasing position order. Each call returns a fresh sequence.
	Active() iter.Seq2[int, V]
}

// Dense wraps values directly as a densely stored vector. The slice is taken
// over by the vector and must not be mutated by the caller afterwards.
func Dense[V Integer](values []V) BinVector[V] {
	return &DenseVector[V]{values: values}
}

// Sparse builds a sparse vector of the given size from parallel arrays of
// strictly increasing positions and their values; every unlisted position is
// zero. The position array is stored at the narrowest width that fits the
// largest position: int8 up to 127, int16 up to 32767, int32 beyond.
//
// It returns *ErrInvalidVector when the arrays differ in length, size is
// negative, positions are not strictly increasing, or the largest position
// is not < size.
func Sparse[V Integer](size int, indices []int, values []V) (BinVector[V], error) {
	if err := validateSparse(size, indices, len(values)); err != nil {
		return nil, err
	}

	// Indices are sorted, so the last one is the largest and alone decides
	// the stored width.
	maxIdx := 0
	if len(indices) > 0 {
		maxIdx = indices[len(indices)-1]
	}

	switch {
	case maxIdx <= math.MaxInt8:
		return &SparseVector[int8, V]{size: size, indices: narrow[int8](indices), values: values}, nil
	case maxIdx <= math.MaxInt16:
		return &SparseVector[int16, V]{size: size, indices: narrow[int16](indices), values: values}, nil
	default:
		return &SparseVector[int32, V]{size: size, indices: narrow[int32](indices), values: values}, nil
	}
}

func validateSparse(size int, indices []int, numValues int) error {
	if size < 0 {
		return &ErrInvalidVector{Reason: fmt.Sprintf("negative size %d", size)}
	}
	if len(indices) != numValues {
		return &ErrInvalidVector{Reason: fmt.Sprintf("%d indices but %d values", len(indices), numValues)}
	}
	for i, idx := range indices {
		if i > 0 && idx <= indices[i-1] {
			return &ErrInvalidVector{Reason: fmt.Sprintf("indices not strictly increasing at position %d", i)}
		}
		if idx < 0 || idx >= size {
			return &ErrInvalidVector{Reason: fmt.Sprintf("index %d out of range [0, %d)", idx, size)}
		}
	}
	return nil
}
