package binvec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestActiveBitmap_Dense(t *testing.T) {
	v := Dense([]uint8{0, 2, 0, 5, 0})

	rb := ActiveBitmap(v)
	require.Equal(t, uint64(2), rb.GetCardinality())
	require.True(t, rb.Contains(1))
	require.True(t, rb.Contains(3))
	require.False(t, rb.Contains(0))
}

func TestActiveBitmap_Sparse(t *testing.T) {
	v, err := Sparse[uint16](100000, []int{7, 50000, 99999}, []uint16{1, 2, 3})
	require.NoError(t, err)

	rb := ActiveBitmap(v)
	require.Equal(t, []uint32{7, 50000, 99999}, rb.ToArray())
}

func TestActiveBitmap_Empty(t *testing.T) {
	v, err := Sparse[uint8](0, nil, nil)
	require.NoError(t, err)

	require.True(t, ActiveBitmap(v).IsEmpty())
}
