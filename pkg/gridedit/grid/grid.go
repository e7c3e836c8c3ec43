// Package grid implements the immutable rectangular cell grid.
//
// Every mutating operation returns a new *Grid and leaves the receiver
// untouched. Rows that an operation does not modify are shared between the
// old and the new value, so keeping many snapshots is cheap.
package grid

import (
	"fmt"

	"github.com/ukaji3/gridedit-go/pkg/gridedit/models"
)

// Default dimensions of a fresh grid.
const (
	DefaultRows = 25
	DefaultCols = 15
)

// Grid is a rectangular, ordered collection of cells.
type Grid struct {
	rows [][]models.Cell
	cols int
}

// New returns a rows x cols grid of empty cells.
func New(rows, cols int) *Grid {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	g := &Grid{rows: make([][]models.Cell, rows), cols: cols}
	for i := range g.rows {
		g.rows[i] = make([]models.Cell, cols)
	}
	return g
}

// Default returns the initial 25x15 grid.
func Default() *Grid {
	return New(DefaultRows, DefaultCols)
}

// FromValues builds a grid from row-major values. Short rows are padded with
// empty cells up to the widest row.
func FromValues(values [][]string) *Grid {
	cols := 0
	for _, row := range values {
		if len(row) > cols {
			cols = len(row)
		}
	}
	g := New(len(values), cols)
	for r, row := range values {
		for c, v := range row {
			g.rows[r][c] = models.NewCell(v)
		}
	}
	return g
}

// Dimensions returns the row and column counts.
func (g *Grid) Dimensions() (rows, cols int) {
	return len(g.rows), g.cols
}

// Rows returns the row count.
func (g *Grid) Rows() int {
	return len(g.rows)
}

// Cols returns the column count.
func (g *Grid) Cols() int {
	return g.cols
}

// InBounds reports whether (row, col) addresses a cell of the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < len(g.rows) && col >= 0 && col < g.cols
}

func (g *Grid) check(row, col int) error {
	if !g.InBounds(row, col) {
		return &BoundsError{Row: row, Col: col, Rows: len(g.rows), Cols: g.cols}
	}
	return nil
}

// CheckRegion verifies that every corner of r lies inside the grid and that
// the bounds are ordered.
func (g *Grid) CheckRegion(r models.Region) error {
	if r.R1 > r.R2 || r.C1 > r.C2 {
		return fmt.Errorf("region %+v is not ordered: %w", r, ErrOutOfBounds)
	}
	if err := g.check(r.R1, r.C1); err != nil {
		return err
	}
	return g.check(r.R2, r.C2)
}

// Get returns the cell at (row, col).
func (g *Grid) Get(row, col int) (models.Cell, error) {
	if err := g.check(row, col); err != nil {
		return models.Cell{}, err
	}
	return g.rows[row][col], nil
}

// Value returns the value at (row, col), or "" outside the grid.
func (g *Grid) Value(row, col int) string {
	if !g.InBounds(row, col) {
		return ""
	}
	return g.rows[row][col].Value
}

// Row returns a copy of the values in row r.
func (g *Grid) Row(r int) []string {
	if r < 0 || r >= len(g.rows) {
		return nil
	}
	out := make([]string, g.cols)
	for c, cell := range g.rows[r] {
		out[c] = cell.Value
	}
	return out
}

// Values returns a row-major copy of every value.
func (g *Grid) Values() [][]string {
	out := make([][]string, len(g.rows))
	for r := range g.rows {
		out[r] = g.Row(r)
	}
	return out
}

// SetCell returns a new grid with the cell at (row, col) replaced.
func (g *Grid) SetCell(row, col int, value string) (*Grid, error) {
	if err := g.check(row, col); err != nil {
		return nil, err
	}
	next := g.shallowCopy()
	next.rows[row] = cloneRow(g.rows[row])
	next.rows[row][col] = models.NewCell(value)
	return next, nil
}

// AppendRows returns a new grid with count empty rows appended. The rows
// match the existing column count; fillWidth is used only when the grid has
// no columns yet.
func (g *Grid) AppendRows(count, fillWidth int) (*Grid, error) {
	if count < 0 {
		return nil, fmt.Errorf("append %d rows: %w", count, ErrInvalidCount)
	}
	width := g.cols
	if width == 0 && len(g.rows) == 0 {
		width = fillWidth
	}
	next := &Grid{rows: make([][]models.Cell, len(g.rows), len(g.rows)+count), cols: width}
	copy(next.rows, g.rows)
	for i := 0; i < count; i++ {
		next.rows = append(next.rows, make([]models.Cell, width))
	}
	return next, nil
}

// AppendColumns returns a new grid with count empty columns appended to
// every row.
func (g *Grid) AppendColumns(count int) (*Grid, error) {
	if count < 0 {
		return nil, fmt.Errorf("append %d columns: %w", count, ErrInvalidCount)
	}
	next := &Grid{rows: make([][]models.Cell, len(g.rows)), cols: g.cols + count}
	for r, row := range g.rows {
		wide := make([]models.Cell, next.cols)
		copy(wide, row)
		next.rows[r] = wide
	}
	return next, nil
}

// Resize returns a new grid grown by addRows rows and addCols columns.
func (g *Grid) Resize(addRows, addCols int) (*Grid, error) {
	next, err := g.AppendColumns(addCols)
	if err != nil {
		return nil, err
	}
	return next.AppendRows(addRows, next.cols)
}

// Paste writes cells into the grid starting at (row, col). Cells that would
// land outside the grid are dropped. Source rows may differ in length.
// It returns the new grid and the number of cells written.
func (g *Grid) Paste(row, col int, cells [][]models.Cell) (*Grid, int, error) {
	if err := g.check(row, col); err != nil {
		return nil, 0, err
	}
	next := g.shallowCopy()
	written := 0
	for i, src := range cells {
		target := row + i
		if target >= len(g.rows) {
			break
		}
		var dst []models.Cell
		for j, cell := range src {
			tc := col + j
			if tc >= g.cols {
				break
			}
			if dst == nil {
				dst = cloneRow(g.rows[target])
			}
			dst[tc] = cell
			written++
		}
		if dst != nil {
			next.rows[target] = dst
		}
	}
	return next, written, nil
}

// ClearRegion returns a new grid with every cell of r set to empty.
func (g *Grid) ClearRegion(r models.Region) (*Grid, error) {
	if err := g.CheckRegion(r); err != nil {
		return nil, err
	}
	next := g.shallowCopy()
	for row := r.R1; row <= r.R2; row++ {
		dst := cloneRow(g.rows[row])
		for col := r.C1; col <= r.C2; col++ {
			dst[col] = models.Cell{}
		}
		next.rows[row] = dst
	}
	return next, nil
}

// Equal reports whether both grids have the same dimensions and values.
func (g *Grid) Equal(o *Grid) bool {
	if g == o {
		return true
	}
	if g == nil || o == nil {
		return false
	}
	if len(g.rows) != len(o.rows) || g.cols != o.cols {
		return false
	}
	for r := range g.rows {
		a, b := g.rows[r], o.rows[r]
		if len(a) > 0 && len(b) > 0 && &a[0] == &b[0] {
			continue // shared row
		}
		for c := range a {
			if a[c] != b[c] {
				return false
			}
		}
	}
	return true
}

func (g *Grid) shallowCopy() *Grid {
	rows := make([][]models.Cell, len(g.rows))
	copy(rows, g.rows)
	return &Grid{rows: rows, cols: g.cols}
}

func cloneRow(row []models.Cell) []models.Cell {
	out := make([]models.Cell, len(row))
	copy(out, row)
	return out
}
