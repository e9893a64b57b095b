package binvec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSparse_Scenario(t *testing.T) {
	v, err := Sparse[uint8](5, []int{1, 3}, []uint8{2, 5})
	require.NoError(t, err)

	require.Equal(t, 5, v.Size())
	require.Equal(t, uint8(0), v.At(0))
	require.Equal(t, uint8(2), v.At(1))
	require.Equal(t, uint8(0), v.At(2))
	require.Equal(t, uint8(5), v.At(3))
	require.Equal(t, uint8(0), v.At(4))

	positions, values := collect(v.Total())
	require.Equal(t, []int{0, 1, 2, 3, 4}, positions)
	require.Equal(t, []uint8{0, 2, 0, 5, 0}, values)
}

func TestSparse_AtOutOfBounds(t *testing.T) {
	v, err := Sparse[uint8](5, []int{1, 3}, []uint8{2, 5})
	require.NoError(t, err)

	requireOutOfBounds(t, func() { v.At(-1) })
	requireOutOfBounds(t, func() { v.At(5) })
}

func TestSparse_TotalMatchesAt(t *testing.T) {
	v, err := Sparse[uint16](9, []int{0, 4, 8}, []uint16{7, 1, 300})
	require.NoError(t, err)

	positions, values := collect(v.Total())
	require.Len(t, positions, v.Size())
	for i := range positions {
		require.Equal(t, v.At(i), values[i])
	}
}

func TestSparse_ActiveRoundTrip(t *testing.T) {
	indices := []int{2, 5, 11, 40}
	values := []uint8{9, 1, 4, 200}

	v, err := Sparse(50, indices, values)
	require.NoError(t, err)

	gotIdx, gotVal := collect(v.Active())
	require.Equal(t, indices, gotIdx)
	require.Equal(t, values, gotVal)
}

func TestSparse_ActiveSkipsStoredZeros(t *testing.T) {
	// Stored entries should be non-zero by convention, but a zero that
	// slips in is still filtered.
	v, err := Sparse[uint8](4, []int{0, 2}, []uint8{0, 3})
	require.NoError(t, err)

	positions, values := collect(v.Active())
	require.Equal(t, []int{2}, positions)
	require.Equal(t, []uint8{3}, values)
}

func TestSparse_Slice(t *testing.T) {
	v, err := Sparse[uint8](5, []int{1, 3}, []uint8{2, 5})
	require.NoError(t, err)

	s := v.Slice([]int{1, 2, 3})
	require.Equal(t, 3, s.Size())

	// Kept entries are renumbered to their rank within the requested
	// positions: logically the slice equals dense [2, 0, 5].
	require.Equal(t, uint8(2), s.At(0))
	require.Equal(t, uint8(0), s.At(1))
	require.Equal(t, uint8(5), s.At(2))
}

func TestSparse_SliceSkipsUnrequestedEntries(t *testing.T) {
	v, err := Sparse[uint8](10, []int{1, 4, 7}, []uint8{10, 20, 30})
	require.NoError(t, err)

	s := v.Slice([]int{4, 9})
	require.Equal(t, 2, s.Size())
	require.Equal(t, uint8(20), s.At(0))
	require.Equal(t, uint8(0), s.At(1))
}

func TestSparse_SliceIdempotence(t *testing.T) {
	v, err := Sparse[uint8](8, []int{0, 3, 6}, []uint8{1, 2, 3})
	require.NoError(t, err)

	s := v.Slice([]int{0, 2, 3, 6})
	identity := []int{0, 1, 2, 3}
	s2 := s.Slice(identity)

	require.Equal(t, s.Size(), s2.Size())
	for i := 0; i < s.Size(); i++ {
		require.Equal(t, s.At(i), s2.At(i))
	}
}

func TestSparse_SliceEmptyRequest(t *testing.T) {
	v, err := Sparse[uint8](5, []int{1, 3}, []uint8{2, 5})
	require.NoError(t, err)

	s := v.Slice(nil)
	require.Equal(t, 0, s.Size())
	positions, _ := collect(s.Total())
	require.Empty(t, positions)
}

func TestSparse_EmptyVector(t *testing.T) {
	v, err := Sparse[uint8](0, nil, nil)
	require.NoError(t, err)

	require.Equal(t, 0, v.Size())
	positions, _ := collect(v.Total())
	require.Empty(t, positions)
	positions, _ = collect(v.Active())
	require.Empty(t, positions)
}

func TestSparse_AllZeroImplicit(t *testing.T) {
	// No stored entries, every position reads as zero.
	v, err := Sparse[uint8](100, nil, nil)
	require.NoError(t, err)

	require.Equal(t, uint8(0), v.At(0))
	require.Equal(t, uint8(0), v.At(99))
}

func TestSparse_TotalEarlyBreak(t *testing.T) {
	v, err := Sparse[uint8](1000, []int{500}, []uint8{1})
	require.NoError(t, err)

	n := 0
	for range v.Total() {
		n++
		if n == 3 {
			break
		}
	}
	require.Equal(t, 3, n)

	// A fresh call restarts from the beginning.
	positions, _ := collect(v.Total())
	require.Len(t, positions, 1000)
	require.Equal(t, 0, positions[0])
}
