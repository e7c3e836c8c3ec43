package gridedit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/ukaji3/gridedit-go/pkg/gridedit/clipboard"
	"github.com/ukaji3/gridedit-go/pkg/gridedit/codec"
	"github.com/ukaji3/gridedit-go/pkg/gridedit/grid"
	"github.com/ukaji3/gridedit-go/pkg/gridedit/history"
	"github.com/ukaji3/gridedit-go/pkg/gridedit/models"
	"github.com/ukaji3/gridedit-go/pkg/gridedit/search"
	"github.com/ukaji3/gridedit-go/pkg/gridedit/selection"
)

// Controller owns the current grid, its history, the selection, and the
// search filter. Every operation runs to completion and either commits a new
// grid or leaves all state unchanged.
//
// A Controller is not safe for concurrent use; rendering surfaces call it
// from their event loop.
type Controller struct {
	opts      Options
	logger    *slog.Logger
	clipboard clipboard.Clipboard

	current *grid.Grid
	history *history.Log

	// sel is kept in grid coordinates.
	sel       selection.Selection
	lastClick selection.Context
	search    search.Result

	lastCopy   string
	generation uint64
}

// New creates a controller holding a fresh grid.
// Zero dimensions or steps in opts fall back to DefaultOptions.
func New(opts Options) *Controller {
	def := DefaultOptions()
	if opts.Rows == 0 && opts.Cols == 0 {
		opts.Rows, opts.Cols = def.Rows, def.Cols
	}
	if opts.AddRowsStep <= 0 {
		opts.AddRowsStep = def.AddRowsStep
	}
	if opts.AddColumnsStep <= 0 {
		opts.AddColumnsStep = def.AddColumnsStep
	}

	logger := opts.logger()
	initial := grid.New(opts.Rows, opts.Cols)
	return &Controller{
		opts:      opts,
		logger:    logger,
		clipboard: opts.clipboard(logger),
		current:   initial,
		history:   history.NewWithLimit(initial, opts.HistoryLimit),
	}
}

// Grid returns the current grid snapshot.
func (c *Controller) Grid() *grid.Grid {
	return c.current
}

// Generation returns a counter that increases with every change of grid or
// selection.
func (c *Controller) Generation() uint64 {
	return c.generation
}

// CanUndo returns true if undo is available.
func (c *Controller) CanUndo() bool {
	return c.history.CanUndo()
}

// CanRedo returns true if redo is available.
func (c *Controller) CanRedo() bool {
	return c.history.CanRedo()
}

// LastCopy returns the text of the most recent successful copy.
func (c *Controller) LastCopy() string {
	return c.lastCopy
}

// ExportFileName returns the suggested file name of a CSV export.
func (c *Controller) ExportFileName() string {
	return c.opts.exportFileName()
}

// commit pushes next to the history and makes it current. It reports false
// when next equals the current grid.
func (c *Controller) commit(next *grid.Grid) bool {
	if !c.history.Push(next) {
		return false
	}
	c.replace(next)
	return true
}

// replace swaps the current grid and keeps the derived state consistent
// with it.
func (c *Controller) replace(next *grid.Grid) {
	c.current = next
	c.generation++
	if c.search.Active() {
		c.search = search.Scan(next, c.search.Term)
	}
	if !c.sel.IsEmpty() {
		rows, cols := next.Dimensions()
		if _, err := c.sel.Region(rows, cols); err != nil {
			c.sel = selection.Empty()
		}
	}
}

// EditCell sets the value at grid coordinates (row, col). An edit that does
// not change the value records no history.
func (c *Controller) EditCell(row, col int, value string) error {
	next, err := c.current.SetCell(row, col, value)
	if err != nil {
		return NewOperationError("edit", err)
	}
	if c.commit(next) {
		c.logger.Debug("cell edited", "cell", grid.PositionLabel(row, col))
	}
	return nil
}

// Resize appends addRows rows and addCols columns.
func (c *Controller) Resize(addRows, addCols int) error {
	next, err := c.current.Resize(addRows, addCols)
	if err != nil {
		return NewOperationError("resize", err)
	}
	if c.commit(next) {
		rows, cols := next.Dimensions()
		c.logger.Info("grid resized", "rows", rows, "cols", cols)
	}
	return nil
}

// AddRows appends the configured number of rows.
func (c *Controller) AddRows() error {
	return c.Resize(c.opts.AddRowsStep, 0)
}

// AddColumns appends the configured number of columns.
func (c *Controller) AddColumns() error {
	return c.Resize(0, c.opts.AddColumnsStep)
}

// Clear replaces the grid with a fresh default-sized grid after the
// confirmer agrees.
func (c *Controller) Clear() error {
	if !c.opts.confirm("Are you sure you want to clear all data?") {
		return NewOperationError("clear", ErrAborted)
	}
	if c.commit(grid.New(c.opts.Rows, c.opts.Cols)) {
		c.logger.Info("grid cleared")
	}
	return nil
}

// Undo restores the previous snapshot. At the oldest snapshot it returns
// ErrAtBoundary and changes nothing.
func (c *Controller) Undo() error {
	prev, err := c.history.Undo()
	if err != nil {
		return NewOperationError("undo", err)
	}
	c.replace(prev)
	return nil
}

// Redo restores the next snapshot. At the newest snapshot it returns
// ErrAtBoundary and changes nothing.
func (c *Controller) Redo() error {
	next, err := c.history.Redo()
	if err != nil {
		return NewOperationError("redo", err)
	}
	c.replace(next)
	return nil
}

// PasteRegion decodes text and writes it into the grid starting at anchor
// (grid coordinates). Cells beyond the grid are dropped.
func (c *Controller) PasteRegion(text string, anchor selection.Point) error {
	cells := codec.Decode(text)
	if len(cells) == 0 {
		return nil
	}
	next, written, err := c.current.Paste(anchor.Row, anchor.Col, cells)
	if err != nil {
		return NewOperationError("paste", err)
	}
	if c.commit(next) {
		c.logger.Info("data pasted", "anchor", grid.PositionLabel(anchor.Row, anchor.Col), "cells", written)
	}
	return nil
}

// Paste writes text at the top-left cell of the selection, or at A1 when
// nothing is selected.
func (c *Controller) Paste(text string) error {
	return c.PasteRegion(text, c.pasteAnchor())
}

func (c *Controller) pasteAnchor() selection.Point {
	region, err := c.SelectedRegion()
	if err != nil {
		return selection.Point{}
	}
	return selection.Point{Row: region.R1, Col: region.C1}
}

// CopyRegion resolves a descriptor with the given click context and returns
// the clipboard text of the region. Descriptor rows are view rows and are
// rebased onto grid rows while a search filter is active. It changes no
// state.
func (c *Controller) CopyRegion(d selection.Descriptor, ctx selection.Context) (string, error) {
	region, err := c.resolve(d, ctx)
	if err != nil {
		return "", NewOperationError("copy", err)
	}
	text, err := codec.Encode(c.current, region)
	if err != nil {
		return "", NewOperationError("copy", err)
	}
	return text, nil
}

// Copy writes the selected region to the clipboard and returns the text.
func (c *Controller) Copy(ctx context.Context) (string, error) {
	region, err := c.SelectedRegion()
	if err != nil {
		return "", NewOperationError("copy", err)
	}
	text, err := codec.Encode(c.current, region)
	if err != nil {
		return "", NewOperationError("copy", err)
	}
	return c.writeClipboard(ctx, text, region)
}

// CopyAll writes the whole grid to the clipboard and returns the text.
func (c *Controller) CopyAll(ctx context.Context) (string, error) {
	region, ok := c.current.Full()
	if !ok {
		return "", NewOperationError("copy", ErrEmptySelection)
	}
	text, err := codec.Encode(c.current, region)
	if err != nil {
		return "", NewOperationError("copy", err)
	}
	return c.writeClipboard(ctx, text, region)
}

func (c *Controller) writeClipboard(ctx context.Context, text string, region models.Region) (string, error) {
	if err := c.clipboard.WriteText(ctx, text); err != nil {
		if !errors.Is(err, ErrClipboardUnavailable) {
			err = fmt.Errorf("%w: %v", ErrClipboardUnavailable, err)
		}
		c.logger.Error("failed to copy data", "error", err)
		return "", NewOperationError("copy", err)
	}
	c.lastCopy = text
	c.logger.Info("data copied to clipboard", "range", grid.RangeLabel(region))
	return text, nil
}

// PasteFromClipboard reads the clipboard and pastes its content at the
// selection anchor.
func (c *Controller) PasteFromClipboard(ctx context.Context) error {
	ticket := c.BeginPaste()
	text, err := c.clipboard.ReadText(ctx)
	return c.FinishPaste(ticket, text, err)
}

// PasteTicket ties an asynchronous clipboard read to the controller state
// it was started from.
type PasteTicket struct {
	generation uint64
	anchor     selection.Point
}

// BeginPaste records the current state for a clipboard read that completes
// later.
func (c *Controller) BeginPaste() PasteTicket {
	return PasteTicket{generation: c.generation, anchor: c.pasteAnchor()}
}

// FinishPaste applies the result of a clipboard read started with
// BeginPaste. A failed read or a ticket from an older generation leaves the
// state unchanged.
func (c *Controller) FinishPaste(t PasteTicket, text string, readErr error) error {
	if readErr != nil {
		if !errors.Is(readErr, ErrClipboardUnavailable) && !errors.Is(readErr, context.Canceled) {
			readErr = fmt.Errorf("%w: %v", ErrClipboardUnavailable, readErr)
		}
		c.logger.Error("error pasting data", "error", readErr)
		return NewOperationError("paste", readErr)
	}
	if t.generation != c.generation {
		c.logger.Debug("discarding stale clipboard response", "ticket", t.generation, "current", c.generation)
		return NewOperationError("paste", ErrStaleClipboard)
	}
	return c.PasteRegion(text, t.anchor)
}

// DeleteSelection clears every cell of the selected region after the
// confirmer agrees.
func (c *Controller) DeleteSelection() error {
	region, err := c.SelectedRegion()
	if err != nil {
		return NewOperationError("delete", err)
	}
	if !c.opts.confirm(fmt.Sprintf("Delete the contents of %s?", grid.RangeLabel(region))) {
		return NewOperationError("delete", ErrAborted)
	}
	next, err := c.current.ClearRegion(region)
	if err != nil {
		return NewOperationError("delete", err)
	}
	if c.commit(next) {
		c.logger.Info("selection deleted", "range", grid.RangeLabel(region))
	}
	return nil
}

// ExportCSV writes the whole grid as CSV.
func (c *Controller) ExportCSV(w io.Writer) error {
	return codec.WriteCSV(w, c.current)
}
