package gridedit

import (
	"errors"
	"fmt"

	"github.com/ukaji3/gridedit-go/pkg/gridedit/clipboard"
	"github.com/ukaji3/gridedit-go/pkg/gridedit/grid"
	"github.com/ukaji3/gridedit-go/pkg/gridedit/history"
	"github.com/ukaji3/gridedit-go/pkg/gridedit/selection"
)

// ErrOutOfBounds indicates an index outside the current grid dimensions.
var ErrOutOfBounds = grid.ErrOutOfBounds

// ErrEmptySelection indicates an operation that needs a selection found none.
var ErrEmptySelection = selection.ErrEmptySelection

// ErrAtBoundary indicates an undo or redo past the ends of the history.
var ErrAtBoundary = history.ErrAtBoundary

// ErrClipboardUnavailable indicates the clipboard could not be read or written.
var ErrClipboardUnavailable = clipboard.ErrUnavailable

// ErrAborted indicates the user declined a confirmation.
var ErrAborted = errors.New("operation aborted")

// ErrStaleClipboard indicates a clipboard response arrived after the
// controller state had moved on.
var ErrStaleClipboard = errors.New("stale clipboard response")

// OperationError represents a failed controller operation. The grid and the
// history are unchanged when it is returned.
type OperationError struct {
	Op  string // "edit", "paste", "copy", "undo", "redo", "resize", "clear", "delete", "select"
	Err error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// NewOperationError creates a new OperationError.
func NewOperationError(op string, err error) *OperationError {
	return &OperationError{
		Op:  op,
		Err: err,
	}
}

// IsUserError reports whether err is a recoverable condition worth showing
// to the user (empty selection, clipboard failure, declined confirmation).
func IsUserError(err error) bool {
	return errors.Is(err, ErrEmptySelection) ||
		errors.Is(err, ErrClipboardUnavailable) ||
		errors.Is(err, ErrAborted)
}
