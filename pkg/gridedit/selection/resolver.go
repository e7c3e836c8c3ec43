package selection

import (
	"fmt"
	"strings"

	"github.com/ukaji3/gridedit-go/pkg/gridedit/grid"
	"github.com/ukaji3/gridedit-go/pkg/gridedit/models"
)

// ContextKind is the kind of element the user clicked last.
type ContextKind int

const (
	ContextUnknown ContextKind = iota
	ContextRowHeader
	ContextColumnHeader
	ContextCell
)

func (k ContextKind) String() string {
	switch k {
	case ContextRowHeader:
		return "row-header"
	case ContextColumnHeader:
		return "column-header"
	case ContextCell:
		return "cell"
	default:
		return "unknown"
	}
}

// Context is the interaction event reported by the rendering surface.
type Context struct {
	Kind ContextKind
	// Label is the header text that was clicked; column letters for a
	// column header.
	Label string
}

// Span is an inclusive (start, end) pair without explicit cells.
type Span struct {
	Start int
	End   int
}

// Descriptor is the raw selection reported by the rendering surface.
type Descriptor struct {
	// Cells lists explicitly selected cells.
	Cells []Point
	// Span is set when the surface reports a bare range.
	Span *Span
}

// CellsDescriptor returns a descriptor of explicit cells.
func CellsDescriptor(points ...Point) Descriptor {
	return Descriptor{Cells: points}
}

// SpanDescriptor returns a descriptor of a bare (start, end) span.
func SpanDescriptor(start, end int) Descriptor {
	return Descriptor{Span: &Span{Start: start, End: end}}
}

// IsEmpty reports whether the descriptor selects nothing.
func (d Descriptor) IsEmpty() bool {
	return len(d.Cells) == 0 && d.Span == nil
}

// Resolve classifies a descriptor. Explicit cells win; a bare span is a
// column when the last click was on a column header and a row range
// otherwise. labels is the column label table used to look up a clicked
// column header.
func Resolve(d Descriptor, ctx Context, labels []string) (Selection, error) {
	switch {
	case len(d.Cells) > 0:
		return CellSet(d.Cells...), nil
	case d.Span != nil:
		if ctx.Kind == ContextColumnHeader {
			col, err := lookupColumn(ctx.Label, d.Span.Start, labels)
			if err != nil {
				return Selection{}, err
			}
			return Column(col), nil
		}
		return RowRange(d.Span.Start, d.Span.End), nil
	default:
		return Selection{}, ErrEmptySelection
	}
}

// ResolveRegion resolves d and returns its canonical region in a grid of
// the given dimensions.
func ResolveRegion(d Descriptor, ctx Context, rows, cols int) (models.Region, error) {
	sel, err := Resolve(d, ctx, grid.ColumnLabels(cols))
	if err != nil {
		return models.Region{}, err
	}
	return sel.Region(rows, cols)
}

func lookupColumn(label string, fallback int, labels []string) (int, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return fallback, nil
	}
	for i, l := range labels {
		if strings.EqualFold(l, label) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("column %q not in %d-column table: %w", label, len(labels), grid.ErrOutOfBounds)
}
