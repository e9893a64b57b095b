package binvec

import "fmt"

// ErrInvalidVector indicates sparse construction inputs that violate the
// vector invariants (length mismatch, negative size, unsorted or
// out-of-range indices). Construction fails fast; no partially built vector
// is ever observable.
type ErrInvalidVector struct {
	Reason string
}

func (e *ErrInvalidVector) Error() string {
	return "binvec: invalid vector: " + e.Reason
}

// ErrOutOfBounds indicates access to a position outside [0, Size).
//
// It is delivered via panic from At, mirroring Go slice indexing: bounds
// violations are programmer errors, not recoverable conditions.
type ErrOutOfBounds struct {
	Index int
	Size  int
}

func (e *ErrOutOfBounds) Error() string {
	return fmt.Sprintf("binvec: index %d out of range [0, %d)", e.Index, e.Size)
}
