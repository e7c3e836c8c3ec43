package gridedit

import (
	"github.com/ukaji3/gridedit-go/pkg/gridedit/grid"
	"github.com/ukaji3/gridedit-go/pkg/gridedit/models"
	"github.com/ukaji3/gridedit-go/pkg/gridedit/search"
	"github.com/ukaji3/gridedit-go/pkg/gridedit/selection"
)

// Click records the header or cell the user interacted with last. It
// decides how the next bare span descriptor is classified.
func (c *Controller) Click(ctx selection.Context) {
	c.lastClick = ctx
}

// LastClick returns the recorded interaction context.
func (c *Controller) LastClick() selection.Context {
	return c.lastClick
}

// Select resolves a descriptor reported by the rendering surface with the
// last click context and makes it the current selection. An empty
// descriptor clears the selection.
func (c *Controller) Select(d selection.Descriptor) error {
	if d.IsEmpty() {
		c.ClearSelection()
		return nil
	}
	sel, err := c.resolveSelection(d, c.lastClick)
	if err != nil {
		return NewOperationError("select", err)
	}
	c.setSelection(sel)
	return nil
}

// SelectRegion selects the cells of r, given in grid coordinates.
func (c *Controller) SelectRegion(r models.Region) error {
	sel := selection.CellSet(selection.RegionPoints(r)...)
	rows, cols := c.current.Dimensions()
	if _, err := sel.Region(rows, cols); err != nil {
		return NewOperationError("select", err)
	}
	c.setSelection(sel)
	return nil
}

// SelectAll selects every row.
func (c *Controller) SelectAll() {
	rows := c.current.Rows()
	if rows == 0 {
		c.ClearSelection()
		return
	}
	c.setSelection(selection.RowRange(0, rows-1))
}

// ClearSelection selects nothing.
func (c *Controller) ClearSelection() {
	c.setSelection(selection.Empty())
}

func (c *Controller) setSelection(sel selection.Selection) {
	c.sel = sel
	c.generation++
}

// Selection returns the current selection in grid coordinates.
func (c *Controller) Selection() selection.Selection {
	return c.sel
}

// SelectedRegion returns the canonical region of the current selection.
func (c *Controller) SelectedRegion() (models.Region, error) {
	rows, cols := c.current.Dimensions()
	return c.sel.Region(rows, cols)
}

func (c *Controller) resolveSelection(d selection.Descriptor, ctx selection.Context) (selection.Selection, error) {
	sel, err := selection.Resolve(d, ctx, grid.ColumnLabels(c.current.Cols()))
	if err != nil {
		return selection.Selection{}, err
	}
	sel, err = sel.Rebase(c.search.RowMap())
	if err != nil {
		return selection.Selection{}, err
	}
	rows, cols := c.current.Dimensions()
	if _, err := sel.Region(rows, cols); err != nil {
		return selection.Selection{}, err
	}
	return sel, nil
}

func (c *Controller) resolve(d selection.Descriptor, ctx selection.Context) (models.Region, error) {
	sel, err := c.resolveSelection(d, ctx)
	if err != nil {
		return models.Region{}, err
	}
	rows, cols := c.current.Dimensions()
	return sel.Region(rows, cols)
}

// ViewToGrid returns the grid row presented at view row viewRow.
func (c *Controller) ViewToGrid(viewRow int) (int, error) {
	sel, err := selection.RowRange(viewRow, viewRow).Rebase(c.search.RowMap())
	if err != nil {
		return 0, err
	}
	row, _ := sel.Span()
	if row < 0 || row >= c.current.Rows() {
		return 0, &grid.BoundsError{Row: row, Rows: c.current.Rows(), Cols: c.current.Cols()}
	}
	return row, nil
}

// Search scans the grid for term and activates the row filter. A blank
// term clears the results and the filter. Searching records no history.
func (c *Controller) Search(term string) search.Result {
	c.search = search.Scan(c.current, term)
	if c.search.Active() {
		c.logger.Debug("search finished", "term", term, "matches", len(c.search.Matches), "rows", len(c.search.Rows))
	}
	return c.search
}

// ClearSearch drops the search results and the row filter.
func (c *Controller) ClearSearch() {
	c.search = search.Result{}
}

// SearchResult returns the active search result.
func (c *Controller) SearchResult() search.Result {
	return c.search
}
