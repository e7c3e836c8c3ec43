package codec

import (
	"bufio"
	"io"
	"strings"

	"github.com/ukaji3/gridedit-go/pkg/gridedit/grid"
)

// ExportFileName is the default name of a CSV export.
const ExportFileName = "spreadsheet-data.csv"

// CSV serializes the whole grid as comma-delimited text. Only values that
// contain a comma are quoted.
func CSV(g *grid.Grid) string {
	var b strings.Builder
	_ = WriteCSV(&b, g)
	return b.String()
}

// WriteCSV writes the CSV export of g to w.
func WriteCSV(w io.Writer, g *grid.Grid) error {
	bw := bufio.NewWriter(w)
	rows, cols := g.Dimensions()
	for r := 0; r < rows; r++ {
		if r > 0 {
			if err := bw.WriteByte('\n'); err != nil {
				return err
			}
		}
		for c := 0; c < cols; c++ {
			if c > 0 {
				if err := bw.WriteByte(','); err != nil {
					return err
				}
			}
			if _, err := bw.WriteString(csvField(g.Value(r, c))); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

func csvField(v string) string {
	if strings.Contains(v, ",") {
		return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
	}
	return v
}
