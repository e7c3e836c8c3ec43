// Package output serializes grid content and view state to JSON.
package output

import (
	"encoding/json"

	"github.com/ukaji3/gridedit-go/pkg/gridedit/grid"
	"github.com/ukaji3/gridedit-go/pkg/gridedit/models"
)

// Rows returns the non-empty rows of g keyed by column label.
func Rows(g *grid.Grid) []models.CellRow {
	var result []models.CellRow
	rows, cols := g.Dimensions()
	for rowIdx := 0; rowIdx < rows; rowIdx++ {
		cellMap := make(map[string]string)
		for colIdx := 0; colIdx < cols; colIdx++ {
			value := g.Value(rowIdx, colIdx)
			if value == "" {
				continue
			}
			cellMap[grid.ColumnLabel(colIdx)] = value
		}

		if len(cellMap) > 0 {
			result = append(result, models.CellRow{
				R: rowIdx + 1, // 1-based row index
				C: cellMap,
			})
		}
	}
	return result
}

// Sheet returns the sparse content of g.
func Sheet(g *grid.Grid) models.SheetData {
	rows, cols := g.Dimensions()
	sheet := models.SheetData{
		Rows: rows,
		Cols: cols,
		Data: Rows(g),
	}
	if used, ok := g.UsedRegion(); ok {
		sheet.UsedRange = grid.RangeLabel(used)
	}
	return sheet
}

// ToJSON serializes a document.
func ToJSON(doc *models.Document, pretty bool) ([]byte, error) {
	return marshal(doc, pretty)
}

// SheetToJSON serializes sheet content.
func SheetToJSON(sheet *models.SheetData, pretty bool) ([]byte, error) {
	return marshal(sheet, pretty)
}

// ViewToJSON serializes view state.
func ViewToJSON(view *models.View, pretty bool) ([]byte, error) {
	return marshal(view, pretty)
}

func marshal(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
