// Package binvec provides width-adaptive vectors of feature bin indices.
//
// A bin vector is a fixed-length, immutable vector of small non-negative
// integers, one per training example (or per feature), produced upstream by
// feature discretization. The package stores a vector either densely (one
// value per position) or sparsely (sorted position/value pairs with implicit
// zeros), and for sparse vectors it narrows the position array to the
// smallest integer width that fits, independently of the value type.
//
// Both layouts sit behind the BinVector interface, so callers never need to
// know which physical representation they hold:
//
//	v, _ := binvec.Sparse[uint8](5, []int{1, 3}, []uint8{2, 5})
//	v.At(3)                       // 5
//	for i, b := range v.Total() { // (0,0) (1,2) (2,0) (3,5) (4,0)
//		...
//	}
//
// Vectors are immutable after construction and safe to share across
// goroutines without synchronization.
package binvec
