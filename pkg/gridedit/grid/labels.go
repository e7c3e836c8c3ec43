package grid

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ukaji3/gridedit-go/pkg/gridedit/models"
	"github.com/xuri/excelize/v2"
)

// ColumnLabel returns the letters for the 0-based column index: A..Z, then
// AA, AB, and so on.
func ColumnLabel(col int) string {
	if col < 0 {
		return ""
	}
	if name, err := excelize.ColumnNumberToName(col + 1); err == nil {
		return name
	}
	// excelize stops at XFD; wider grids continue the same scheme.
	var b []byte
	for n := col + 1; n > 0; n = (n - 1) / 26 {
		b = append(b, byte('A'+(n-1)%26))
	}
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

// ColumnIndex parses column letters (case-insensitive) into a 0-based index.
func ColumnIndex(label string) (int, error) {
	label = strings.TrimSpace(label)
	if n, err := excelize.ColumnNameToNumber(label); err == nil {
		return n - 1, nil
	}
	if label == "" {
		return 0, fmt.Errorf("empty column label")
	}
	n := 0
	for _, r := range strings.ToUpper(label) {
		if r < 'A' || r > 'Z' {
			return 0, fmt.Errorf("invalid column label %q", label)
		}
		n = n*26 + int(r-'A'+1)
	}
	return n - 1, nil
}

// ColumnLabels returns the label table for the first n columns.
func ColumnLabels(n int) []string {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = ColumnLabel(i)
	}
	return labels
}

// PositionLabel returns the A1 reference of the 0-based (row, col).
func PositionLabel(row, col int) string {
	if name, err := excelize.CoordinatesToCellName(col+1, row+1); err == nil {
		return name
	}
	return ColumnLabel(col) + strconv.Itoa(row+1)
}

// RangeLabel returns the A1 range reference of r (e.g. "A1:D10").
func RangeLabel(r models.Region) string {
	return fmt.Sprintf("%s:%s", PositionLabel(r.R1, r.C1), PositionLabel(r.R2, r.C2))
}
