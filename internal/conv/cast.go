// Package conv provides checked integer conversions for values decoded from
// untrusted bytes, such as column-file headers.
package conv

import (
	"fmt"
	"math"
)

// Uint64ToInt converts v to int, rejecting values that do not fit.
func Uint64ToInt(v uint64) (int, error) {
	if v > uint64(math.MaxInt) {
		return 0, fmt.Errorf("conv: %d overflows int", v)
	}
	return int(v), nil
}

// Uint32ToInt converts v to int, rejecting values that do not fit.
func Uint32ToInt(v uint32) (int, error) {
	if uint64(v) > uint64(math.MaxInt) {
		return 0, fmt.Errorf("conv: %d overflows int", v)
	}
	return int(v), nil
}

// IntToUint32 converts v to uint32, rejecting negative or oversized values.
func IntToUint32(v int) (uint32, error) {
	if v < 0 {
		return 0, fmt.Errorf("conv: %d is negative", v)
	}
	if uint64(v) > math.MaxUint32 {
		return 0, fmt.Errorf("conv: %d overflows uint32", v)
	}
	return uint32(v), nil
}

// IntToUint64 converts v to uint64, rejecting negative values.
func IntToUint64(v int) (uint64, error) {
	if v < 0 {
		return 0, fmt.Errorf("conv: %d is negative", v)
	}
	return uint64(v), nil
}
