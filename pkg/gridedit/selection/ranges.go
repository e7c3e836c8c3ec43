package selection

import (
	"fmt"
	"strings"

	"github.com/ukaji3/gridedit-go/pkg/gridedit/models"
	"github.com/xuri/excelize/v2"
)

// ParseRange parses an A1 reference such as "B2", "A1:D10" or "$A$1:$D$10"
// into a 0-based region. Corners may be given in any order.
func ParseRange(ref string) (models.Region, error) {
	// Remove $ signs
	ref = strings.ReplaceAll(strings.TrimSpace(ref), "$", "")

	parts := strings.Split(ref, ":")
	if len(parts) > 2 || parts[0] == "" {
		return models.Region{}, fmt.Errorf("invalid range %q", ref)
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return models.Region{}, fmt.Errorf("invalid range %q: %w", ref, err)
	}
	endCol, endRow := startCol, startRow
	if len(parts) == 2 {
		endCol, endRow, err = excelize.CellNameToCoordinates(parts[1])
		if err != nil {
			return models.Region{}, fmt.Errorf("invalid range %q: %w", ref, err)
		}
	}

	return models.Region{
		R1: min(startRow, endRow) - 1,
		C1: min(startCol, endCol) - 1,
		R2: max(startRow, endRow) - 1,
		C2: max(startCol, endCol) - 1,
	}, nil
}

// RegionPoints lists every cell of r in row-major order.
func RegionPoints(r models.Region) []Point {
	if r.R2 < r.R1 || r.C2 < r.C1 {
		return nil
	}
	points := make([]Point, 0, r.Rows()*r.Cols())
	for row := r.R1; row <= r.R2; row++ {
		for col := r.C1; col <= r.C2; col++ {
			points = append(points, Point{Row: row, Col: col})
		}
	}
	return points
}
