// Package selection resolves selection descriptors reported by a rendering
// surface into canonical grid regions.
//
// A descriptor coming from the surface is ambiguous: a dragged row range and
// a clicked column header both arrive as a (start, end) span. The resolver
// classifies the span with the context of the last header or cell the user
// clicked.
package selection

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ukaji3/gridedit-go/pkg/gridedit/grid"
	"github.com/ukaji3/gridedit-go/pkg/gridedit/models"
)

// ErrEmptySelection indicates nothing is selected.
var ErrEmptySelection = errors.New("empty selection")

// Point is a 0-based (row, col) cell coordinate.
type Point struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Kind identifies the active Selection variant.
type Kind int

const (
	KindEmpty Kind = iota
	KindCellSet
	KindRowRange
	KindColumn
)

func (k Kind) String() string {
	switch k {
	case KindCellSet:
		return "cells"
	case KindRowRange:
		return "rows"
	case KindColumn:
		return "column"
	default:
		return "empty"
	}
}

// Selection is a canonical selection: empty, an explicit cell set, an
// inclusive row range spanning all columns, or a single column spanning all
// rows. Exactly one variant is active.
type Selection struct {
	kind  Kind
	cells []Point
	start int
	end   int
	col   int
}

// Empty returns the empty selection.
func Empty() Selection {
	return Selection{}
}

// CellSet returns a selection of the given cells. Duplicates are removed and
// the cells are kept in row-major order. No cells yields the empty selection.
func CellSet(points ...Point) Selection {
	if len(points) == 0 {
		return Empty()
	}
	cells := make([]Point, len(points))
	copy(cells, points)
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Row != cells[j].Row {
			return cells[i].Row < cells[j].Row
		}
		return cells[i].Col < cells[j].Col
	})
	uniq := cells[:1]
	for _, p := range cells[1:] {
		if p != uniq[len(uniq)-1] {
			uniq = append(uniq, p)
		}
	}
	return Selection{kind: KindCellSet, cells: uniq}
}

// RowRange returns the inclusive row range between start and end.
func RowRange(start, end int) Selection {
	if start > end {
		start, end = end, start
	}
	return Selection{kind: KindRowRange, start: start, end: end}
}

// Column returns the selection of a whole column.
func Column(col int) Selection {
	return Selection{kind: KindColumn, col: col}
}

// Kind returns the active variant.
func (s Selection) Kind() Kind {
	return s.kind
}

// IsEmpty reports whether nothing is selected.
func (s Selection) IsEmpty() bool {
	return s.kind == KindEmpty
}

// Cells returns the cells of a cell-set selection in row-major order.
func (s Selection) Cells() []Point {
	out := make([]Point, len(s.cells))
	copy(out, s.cells)
	return out
}

// Span returns the bounds of a row-range selection.
func (s Selection) Span() (start, end int) {
	return s.start, s.end
}

// ColumnIndex returns the column of a column selection.
func (s Selection) ColumnIndex() int {
	return s.col
}

func (s Selection) String() string {
	switch s.kind {
	case KindCellSet:
		return fmt.Sprintf("cells(%d)", len(s.cells))
	case KindRowRange:
		return fmt.Sprintf("rows(%d..%d)", s.start, s.end)
	case KindColumn:
		return fmt.Sprintf("column(%s)", grid.ColumnLabel(s.col))
	default:
		return "empty"
	}
}

// Region returns the canonical rectangular region of the selection in a grid
// with the given dimensions. A cell set maps to its bounding rectangle.
func (s Selection) Region(rows, cols int) (models.Region, error) {
	var r models.Region
	switch s.kind {
	case KindCellSet:
		r = models.Region{R1: s.cells[0].Row, C1: s.cells[0].Col, R2: s.cells[0].Row, C2: s.cells[0].Col}
		for _, p := range s.cells[1:] {
			r.R1 = min(r.R1, p.Row)
			r.R2 = max(r.R2, p.Row)
			r.C1 = min(r.C1, p.Col)
			r.C2 = max(r.C2, p.Col)
		}
	case KindRowRange:
		r = models.Region{R1: s.start, C1: 0, R2: s.end, C2: cols - 1}
	case KindColumn:
		r = models.Region{R1: 0, C1: s.col, R2: rows - 1, C2: s.col}
	default:
		return models.Region{}, ErrEmptySelection
	}

	if err := checkBounds(r, rows, cols); err != nil {
		return models.Region{}, err
	}
	return r, nil
}

func checkBounds(r models.Region, rows, cols int) error {
	for _, p := range []Point{{r.R1, r.C1}, {r.R2, r.C2}} {
		if p.Row < 0 || p.Row >= rows || p.Col < 0 || p.Col >= cols {
			return &grid.BoundsError{Row: p.Row, Col: p.Col, Rows: rows, Cols: cols}
		}
	}
	return nil
}

// Rebase translates row indices of a filtered view into underlying grid
// rows. rowMap[i] is the grid row shown at view row i; a nil rowMap leaves
// the selection unchanged. Column selections always span every grid row.
func (s Selection) Rebase(rowMap []int) (Selection, error) {
	if rowMap == nil {
		return s, nil
	}
	mapRow := func(viewRow int) (int, error) {
		if viewRow < 0 || viewRow >= len(rowMap) {
			return 0, fmt.Errorf("view row %d of %d: %w", viewRow, len(rowMap), grid.ErrOutOfBounds)
		}
		return rowMap[viewRow], nil
	}

	switch s.kind {
	case KindCellSet:
		points := make([]Point, len(s.cells))
		for i, p := range s.cells {
			row, err := mapRow(p.Row)
			if err != nil {
				return Selection{}, err
			}
			points[i] = Point{Row: row, Col: p.Col}
		}
		return CellSet(points...), nil
	case KindRowRange:
		start, err := mapRow(s.start)
		if err != nil {
			return Selection{}, err
		}
		end, err := mapRow(s.end)
		if err != nil {
			return Selection{}, err
		}
		return RowRange(start, end), nil
	default:
		return s, nil
	}
}
