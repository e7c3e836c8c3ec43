// Package models defines data structures shared by the grid engine and its
// rendering surfaces.
package models

// Cell is a single string-valued unit of a grid.
// Cells are replaced, never mutated, so grid snapshots stay independent.
type Cell struct {
	// Value is the cell text.
	Value string `json:"value"`
}

// NewCell returns a cell holding value.
func NewCell(value string) Cell {
	return Cell{Value: value}
}

// IsEmpty reports whether the cell holds the empty string.
func (c Cell) IsEmpty() bool {
	return c.Value == ""
}

// CellRow represents a single row of non-empty cells.
type CellRow struct {
	// R is the row index (1-based).
	R int `json:"r"`
	// C maps column label (A, B, ...) to cell value.
	C map[string]string `json:"c"`
}
