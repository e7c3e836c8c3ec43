package models

// Region represents inclusive cell coordinate bounds.
type Region struct {
	// R1 is the start row (0-based).
	R1 int `json:"r1"`
	// C1 is the start column (0-based).
	C1 int `json:"c1"`
	// R2 is the end row (0-based, inclusive).
	R2 int `json:"r2"`
	// C2 is the end column (0-based, inclusive).
	C2 int `json:"c2"`
}

// Rows returns the number of rows spanned by the region.
func (r Region) Rows() int {
	return r.R2 - r.R1 + 1
}

// Cols returns the number of columns spanned by the region.
func (r Region) Cols() int {
	return r.C2 - r.C1 + 1
}

// Contains reports whether (row, col) lies inside the region.
func (r Region) Contains(row, col int) bool {
	return row >= r.R1 && row <= r.R2 && col >= r.C1 && col <= r.C2
}

// RegionView represents the text content of a region as an A1 range.
type RegionView struct {
	// Range is the A1 reference of the region (e.g. "A1:C3").
	Range string `json:"range"`
	// Area is the region bounds.
	Area Region `json:"area"`
	// Text is the clipboard serialization of the region.
	Text string `json:"text"`
}
