package sparkgbm

import (
	"errors"
	"fmt"
)

// ErrRowOutOfRange is returned when a sampled or requested row does not
// exist in the dataset.
var ErrRowOutOfRange = errors.New("sparkgbm: row out of range")

// ErrColumnSize indicates a column whose size disagrees with the rest of the
// dataset.
type ErrColumnSize struct {
	Column int
	Want   int
	Got    int
}

func (e *ErrColumnSize) Error() string {
	return fmt.Sprintf("sparkgbm: column %d has size %d, want %d", e.Column, e.Got, e.Want)
}
