// Package gridedit provides the grid editing controller: cell edits,
// selections, clipboard copy and paste, search filtering, and undo/redo
// history over immutable grid snapshots.
package gridedit

import (
	"io"
	"log/slog"

	"github.com/ukaji3/gridedit-go/pkg/gridedit/clipboard"
	"github.com/ukaji3/gridedit-go/pkg/gridedit/codec"
	"github.com/ukaji3/gridedit-go/pkg/gridedit/grid"
)

// Confirmer gates destructive operations.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

// Confirm calls f(prompt).
func (f ConfirmFunc) Confirm(prompt string) bool {
	return f(prompt)
}

// Options configures a Controller.
type Options struct {
	// Rows and Cols give the dimensions of a fresh grid.
	Rows int
	Cols int
	// AddRowsStep is the row count added by AddRows.
	AddRowsStep int
	// AddColumnsStep is the column count added by AddColumns.
	AddColumnsStep int
	// HistoryLimit caps the number of snapshots kept. 0 keeps all.
	HistoryLimit int
	// ExportFileName is the suggested name of a CSV export.
	ExportFileName string
	// Clipboard is the clipboard collaborator.
	// If nil, the system clipboard with an in-process fallback is used.
	Clipboard clipboard.Clipboard
	// Confirm gates Clear and DeleteSelection.
	// If nil, confirmation is treated as already granted.
	Confirm Confirmer
	// Logger receives operation logs. If nil, logs are discarded.
	Logger *slog.Logger
}

// DefaultOptions returns the default controller options.
func DefaultOptions() Options {
	return Options{
		Rows:           grid.DefaultRows,
		Cols:           grid.DefaultCols,
		AddRowsStep:    10,
		AddColumnsStep: 5,
		ExportFileName: codec.ExportFileName,
	}
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (o Options) clipboard(logger *slog.Logger) clipboard.Clipboard {
	if o.Clipboard != nil {
		return o.Clipboard
	}
	return clipboard.Default(logger)
}

func (o Options) confirm(prompt string) bool {
	if o.Confirm == nil {
		return true
	}
	return o.Confirm.Confirm(prompt)
}

func (o Options) exportFileName() string {
	if o.ExportFileName != "" {
		return o.ExportFileName
	}
	return codec.ExportFileName
}
