// Package codec converts grid regions to and from spreadsheet interchange
// text.
//
// Encoded text joins cells with a tab and rows with "\n". A value containing
// a comma or a double quote is wrapped in quotes with inner quotes doubled.
// Decoding accepts tab- or comma-delimited lines and strips one layer of
// surrounding quotes; doubled inner quotes are left as they are.
package codec

import (
	"regexp"
	"strings"

	"github.com/ukaji3/gridedit-go/pkg/gridedit/grid"
	"github.com/ukaji3/gridedit-go/pkg/gridedit/models"
)

var lineBreak = regexp.MustCompile(`\r?\n`)

// Encode serializes region r of g. The region must lie inside the grid.
func Encode(g *grid.Grid, r models.Region) (string, error) {
	if err := g.CheckRegion(r); err != nil {
		return "", err
	}

	lines := make([]string, 0, r.Rows())
	fields := make([]string, r.Cols())
	for row := r.R1; row <= r.R2; row++ {
		for col := r.C1; col <= r.C2; col++ {
			fields[col-r.C1] = escapeField(g.Value(row, col))
		}
		lines = append(lines, strings.Join(fields, "\t"))
	}
	return strings.Join(lines, "\n"), nil
}

// EncodeAll serializes the whole grid. A grid without cells encodes to "".
func EncodeAll(g *grid.Grid) string {
	full, ok := g.Full()
	if !ok {
		return ""
	}
	text, _ := Encode(g, full)
	return text
}

func escapeField(v string) string {
	if strings.ContainsAny(v, `,"`) {
		return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
	}
	return v
}

// Decode parses clipboard text into rows of cells. Trailing empty lines are
// dropped; rows keep the field count of their source line.
func Decode(text string) [][]models.Cell {
	lines := lineBreak.Split(text, -1)
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	out := make([][]models.Cell, 0, len(lines))
	for _, line := range lines {
		var fields []string
		if strings.Contains(line, "\t") {
			fields = strings.Split(line, "\t")
		} else {
			fields = strings.Split(line, ",")
		}
		cells := make([]models.Cell, len(fields))
		for i, f := range fields {
			cells[i] = models.NewCell(unquoteField(f))
		}
		out = append(out, cells)
	}
	return out
}

// DecodeValues is Decode returning plain strings.
func DecodeValues(text string) [][]string {
	rows := Decode(text)
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = make([]string, len(row))
		for j, cell := range row {
			out[i][j] = cell.Value
		}
	}
	return out
}

func unquoteField(f string) string {
	if len(f) >= 2 && strings.HasPrefix(f, `"`) && strings.HasSuffix(f, `"`) {
		f = f[1 : len(f)-1]
	}
	return strings.TrimSpace(f)
}
