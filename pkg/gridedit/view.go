package gridedit

import (
	"github.com/ukaji3/gridedit-go/pkg/gridedit/grid"
	"github.com/ukaji3/gridedit-go/pkg/gridedit/models"
)

// View returns the state a rendering surface presents. While a search
// filter is active only matching rows are visible; each keeps its grid row
// number as label.
func (c *Controller) View() models.View {
	rows, cols := c.current.Dimensions()
	v := models.View{
		Rows:         rows,
		Cols:         cols,
		ColumnLabels: grid.ColumnLabels(cols),
		Visible:      []models.ViewRow{},
		SearchTerm:   c.search.Term,
		Matches:      c.search.Matches,
		Filtered:     c.search.Active(),
		CanUndo:      c.history.CanUndo(),
		CanRedo:      c.history.CanRedo(),
		Generation:   c.generation,
	}

	if region, err := c.SelectedRegion(); err == nil {
		v.Selection = &region
	}

	if rowMap := c.search.RowMap(); rowMap != nil {
		for _, r := range rowMap {
			v.Visible = append(v.Visible, c.viewRow(r))
		}
		return v
	}
	for r := 0; r < rows; r++ {
		v.Visible = append(v.Visible, c.viewRow(r))
	}
	return v
}

func (c *Controller) viewRow(r int) models.ViewRow {
	return models.ViewRow{Index: r, Label: r + 1, Cells: c.current.Row(r)}
}
