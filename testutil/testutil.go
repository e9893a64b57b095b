// Package testutil provides deterministic random bin data for tests and
// benchmarks.
package testutil

import (
	"math/rand"
	"sort"

	"github.com/RoyMachineLearning/SparkGBM/binvec"
)

// RNG encapsulates a seeded random number generator.
type RNG struct {
	rand *rand.Rand
	seed int64
}

// NewRNG creates a new RNG with the given seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0, n).
func (r *RNG) Intn(n int) int {
	return r.rand.Intn(n)
}

// SortedIndices samples n distinct positions from [0, size) in strictly
// increasing order, suitable as sparse indices or slice requests.
func (r *RNG) SortedIndices(n, size int) []int {
	if n > size {
		n = size
	}
	seen := make(map[int]struct{}, n)
	for len(seen) < n {
		seen[r.rand.Intn(size)] = struct{}{}
	}
	out := make([]int, 0, n)
	for idx := range seen {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}

// Bins generates n non-zero bin values in [1, maxBin].
func Bins[V binvec.Integer](r *RNG, n, maxBin int) []V {
	out := make([]V, n)
	for i := range out {
		out[i] = V(1 + r.rand.Intn(maxBin))
	}
	return out
}

// SparseBins generates a random sparse vector of the given size with nnz
// non-zero entries drawn from [1, maxBin].
func SparseBins[V binvec.Integer](r *RNG, size, nnz, maxBin int) binvec.BinVector[V] {
	indices := r.SortedIndices(nnz, size)
	v, err := binvec.Sparse(size, indices, Bins[V](r, len(indices), maxBin))
	if err != nil {
		panic(err)
	}
	return v
}

// DenseBins generates a random dense vector of the given size with values in
// [0, maxBin]; roughly half the positions are zero.
func DenseBins[V binvec.Integer](r *RNG, size, maxBin int) binvec.BinVector[V] {
	values := make([]V, size)
	for i := range values {
		if r.rand.Intn(2) == 0 {
			values[i] = V(1 + r.rand.Intn(maxBin))
		}
	}
	return binvec.Dense(values)
}
