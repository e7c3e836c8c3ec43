package models

// SearchResult describes one cell matching a search term.
type SearchResult struct {
	// Row is the underlying grid row (0-based).
	Row int `json:"row"`
	// Col is the underlying grid column (0-based).
	Col int `json:"col"`
	// Value is the full cell value.
	Value string `json:"value"`
	// PositionLabel is the A1 reference of the cell (e.g. "B2").
	PositionLabel string `json:"position"`
	// RowLabel is the 1-based row number.
	RowLabel int `json:"row_label"`
	// ColLabel is the column letters.
	ColLabel string `json:"col_label"`
}
