package models

// ViewRow is one row presented to a rendering surface.
type ViewRow struct {
	// Index is the underlying grid row (0-based), independent of filtering.
	Index int `json:"index"`
	// Label is the 1-based row number shown in the row header.
	Label int `json:"label"`
	// Cells holds the row values in column order.
	Cells []string `json:"cells"`
}

// View is the state a rendering surface needs after each operation.
type View struct {
	// Rows is the grid row count.
	Rows int `json:"rows"`
	// Cols is the grid column count.
	Cols int `json:"cols"`
	// ColumnLabels holds the header label for every column.
	ColumnLabels []string `json:"column_labels"`
	// Visible contains the presented rows; only matching rows while a
	// search filter is active.
	Visible []ViewRow `json:"visible"`
	// Selection is the canonical selected region, nil when nothing resolves.
	Selection *Region `json:"selection,omitempty"`
	// SearchTerm is the active search term.
	SearchTerm string `json:"search_term,omitempty"`
	// Matches lists search results in row-major order.
	Matches []SearchResult `json:"matches,omitempty"`
	// Filtered reports whether the row filter is active.
	Filtered bool `json:"filtered"`
	// CanUndo reports whether an undo step is available.
	CanUndo bool `json:"can_undo"`
	// CanRedo reports whether a redo step is available.
	CanRedo bool `json:"can_redo"`
	// Generation is the controller state counter.
	Generation uint64 `json:"generation"`
}

// SheetData represents the sparse content of a grid.
type SheetData struct {
	// Rows is the grid row count.
	Rows int `json:"rows"`
	// Cols is the grid column count.
	Cols int `json:"cols"`
	// UsedRange is the A1 range bounding all non-empty cells.
	UsedRange string `json:"used_range,omitempty"`
	// Data contains rows with at least one non-empty cell.
	Data []CellRow `json:"data,omitempty"`
}

// Document is the top-level JSON output of the CLI.
type Document struct {
	// Sheet is the grid content.
	Sheet SheetData `json:"sheet"`
	// View is the presentation state.
	View View `json:"view"`
	// Clipboard holds the text of the last copy, if any.
	Clipboard string `json:"clipboard,omitempty"`
}
