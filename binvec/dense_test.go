package binvec

import (
	"iter"
	"testing"

	"github.com/stretchr/testify/require"
)

// collect drains a (position, value) sequence into parallel slices.
func collect[V Integer](seq iter.Seq2[int, V]) ([]int, []V) {
	var (
		positions []int
		values    []V
	)
	for i, v := range seq {
		positions = append(positions, i)
		values = append(values, v)
	}
	return positions, values
}

// requireOutOfBounds asserts that fn panics with *ErrOutOfBounds.
func requireOutOfBounds(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected out-of-bounds panic")
		err, ok := r.(error)
		require.True(t, ok, "panic value should be an error, got %T", r)
		var oob *ErrOutOfBounds
		require.ErrorAs(t, err, &oob)
	}()
	fn()
}

func TestDense_At(t *testing.T) {
	v := Dense([]uint8{0, 2, 0, 5, 0})

	require.Equal(t, 5, v.Size())
	require.Equal(t, uint8(0), v.At(0))
	require.Equal(t, uint8(2), v.At(1))
	require.Equal(t, uint8(5), v.At(3))

	requireOutOfBounds(t, func() { v.At(-1) })
	requireOutOfBounds(t, func() { v.At(5) })
}

func TestDense_TotalMatchesAt(t *testing.T) {
	v := Dense([]int32{4, 0, 9, 1})

	positions, values := collect(v.Total())
	require.Len(t, positions, v.Size())
	for i := range positions {
		require.Equal(t, i, positions[i])
		require.Equal(t, v.At(i), values[i])
	}
}

func TestDense_Active(t *testing.T) {
	v := Dense([]uint8{0, 2, 0, 5, 0})

	positions, values := collect(v.Active())
	require.Equal(t, []int{1, 3}, positions)
	require.Equal(t, []uint8{2, 5}, values)
}

func TestDense_Slice(t *testing.T) {
	v := Dense([]uint16{10, 11, 12, 13, 14})

	s := v.Slice([]int{0, 2, 4})
	require.Equal(t, 3, s.Size())
	require.Equal(t, uint16(10), s.At(0))
	require.Equal(t, uint16(12), s.At(1))
	require.Equal(t, uint16(14), s.At(2))
}

func TestDense_SliceDoesNotAliasOriginal(t *testing.T) {
	backing := []uint8{1, 2, 3}
	v := Dense(backing)
	s := v.Slice([]int{0, 1, 2})

	backing[0] = 99
	require.Equal(t, uint8(99), v.At(0)) // Dense wraps, by contract
	require.Equal(t, uint8(1), s.At(0))  // slice owns fresh storage
}

func TestDense_TotalIsRestartable(t *testing.T) {
	v := Dense([]uint8{7, 0, 3})

	for range 2 {
		_, values := collect(v.Total())
		require.Equal(t, []uint8{7, 0, 3}, values)
	}
}

func TestDense_Empty(t *testing.T) {
	v := Dense([]uint8{})

	require.Equal(t, 0, v.Size())
	positions, _ := collect(v.Total())
	require.Empty(t, positions)
	positions, _ = collect(v.Active())
	require.Empty(t, positions)
}
