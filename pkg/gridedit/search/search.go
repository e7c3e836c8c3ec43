// Package search scans a grid for cells containing a term and derives the
// row filter shown while a search is active.
package search

import (
	"strings"

	"github.com/ukaji3/gridedit-go/pkg/gridedit/grid"
	"github.com/ukaji3/gridedit-go/pkg/gridedit/models"
)

// Result holds the matches of one scan.
type Result struct {
	// Term is the searched term; empty when no search is active.
	Term string
	// Matches lists matching cells in row-major order.
	Matches []models.SearchResult
	// Rows lists the distinct matching grid rows in ascending order.
	Rows []int
}

// Active reports whether the result filters rows. An empty term resets the
// filter; a term without matches filters every row out.
func (r Result) Active() bool {
	return r.Term != ""
}

// Scan performs a case-insensitive substring search of term over every cell
// of g. A blank term returns an inactive Result.
func Scan(g *grid.Grid, term string) Result {
	if strings.TrimSpace(term) == "" {
		return Result{}
	}

	res := Result{Term: term, Matches: []models.SearchResult{}, Rows: []int{}}
	needle := strings.ToLower(term)
	rows, cols := g.Dimensions()
	for r := 0; r < rows; r++ {
		matched := false
		for c := 0; c < cols; c++ {
			value := g.Value(r, c)
			if !strings.Contains(strings.ToLower(value), needle) {
				continue
			}
			matched = true
			res.Matches = append(res.Matches, models.SearchResult{
				Row:           r,
				Col:           c,
				Value:         value,
				PositionLabel: grid.PositionLabel(r, c),
				RowLabel:      r + 1,
				ColLabel:      grid.ColumnLabel(c),
			})
		}
		if matched {
			res.Rows = append(res.Rows, r)
		}
	}
	return res
}

// RowMap returns the grid row shown at each view position, or nil when the
// filter is inactive and view rows equal grid rows.
func (r Result) RowMap() []int {
	if !r.Active() {
		return nil
	}
	out := make([]int, len(r.Rows))
	copy(out, r.Rows)
	return out
}
