package grid

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds indicates a row or column index outside the grid dimensions.
var ErrOutOfBounds = errors.New("index out of bounds")

// ErrInvalidCount indicates a negative row or column count.
var ErrInvalidCount = errors.New("count must not be negative")

// BoundsError records the coordinates that failed a bounds check.
type BoundsError struct {
	Row  int
	Col  int
	Rows int
	Cols int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("cell (%d, %d) outside %dx%d grid: %v", e.Row, e.Col, e.Rows, e.Cols, ErrOutOfBounds)
}

func (e *BoundsError) Unwrap() error {
	return ErrOutOfBounds
}
