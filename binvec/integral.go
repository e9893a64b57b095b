package binvec

// Integer is the constraint satisfied by bin value types and by the internal
// index types of sparse vectors. Conversions, ordering and the zero value all
// come from the underlying integer kind, so every algorithm in this package
// is monomorphized per width by the compiler; nothing is boxed at runtime.
//
// Implementations rely on the usual integral contract: converting a value to
// int and back through a type wide enough to hold it is the identity, and <
// agrees with the underlying integer ordering.
type Integer interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~int | ~uint8 | ~uint16 | ~uint32
}

// narrow converts sorted, validated positions to the index type K.
// The caller guarantees every element round-trips through K.
func narrow[K Integer](indices []int) []K {
	out := make([]K, len(indices))
	for i, idx := range indices {
		out[i] = K(idx)
	}
	return out
}
