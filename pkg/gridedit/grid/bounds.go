package grid

import "github.com/ukaji3/gridedit-go/pkg/gridedit/models"

// UsedRegion returns the bounding box of non-empty cells. The second result
// is false when every cell is empty.
func (g *Grid) UsedRegion() (models.Region, bool) {
	minRow, maxRow := -1, -1
	minCol, maxCol := -1, -1

	for rowIdx, row := range g.rows {
		for colIdx, cell := range row {
			if cell.IsEmpty() {
				continue
			}
			if minRow < 0 || rowIdx < minRow {
				minRow = rowIdx
			}
			if rowIdx > maxRow {
				maxRow = rowIdx
			}
			if minCol < 0 || colIdx < minCol {
				minCol = colIdx
			}
			if colIdx > maxCol {
				maxCol = colIdx
			}
		}
	}

	if minRow < 0 {
		return models.Region{}, false
	}
	return models.Region{R1: minRow, C1: minCol, R2: maxRow, C2: maxCol}, true
}

// Full returns the region covering the whole grid. The second result is false
// for a grid without cells.
func (g *Grid) Full() (models.Region, bool) {
	if len(g.rows) == 0 || g.cols == 0 {
		return models.Region{}, false
	}
	return models.Region{R1: 0, C1: 0, R2: len(g.rows) - 1, C2: g.cols - 1}, true
}

// CountNonEmpty counts non-empty cells within r.
func (g *Grid) CountNonEmpty(r models.Region) int {
	count := 0
	for rowIdx := r.R1; rowIdx <= r.R2 && rowIdx < len(g.rows); rowIdx++ {
		row := g.rows[rowIdx]
		for colIdx := r.C1; colIdx <= r.C2 && colIdx < len(row); colIdx++ {
			if !row[colIdx].IsEmpty() {
				count++
			}
		}
	}
	return count
}
