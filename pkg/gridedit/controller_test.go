package gridedit

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/ukaji3/gridedit-go/pkg/gridedit/clipboard"
	"github.com/ukaji3/gridedit-go/pkg/gridedit/grid"
	"github.com/ukaji3/gridedit-go/pkg/gridedit/models"
	"github.com/ukaji3/gridedit-go/pkg/gridedit/selection"
)

type failingClipboard struct{}

func (failingClipboard) ReadText(context.Context) (string, error) {
	return "", errors.New("clipboard denied")
}

func (failingClipboard) WriteText(context.Context, string) error {
	return errors.New("clipboard denied")
}

func newTestController(rows, cols int) (*Controller, *clipboard.Buffer) {
	buf := &clipboard.Buffer{}
	opts := DefaultOptions()
	opts.Rows, opts.Cols = rows, cols
	opts.Clipboard = buf
	return New(opts), buf
}

func mustEdit(t *testing.T, c *Controller, row, col int, v string) {
	t.Helper()
	if err := c.EditCell(row, col, v); err != nil {
		t.Fatalf("EditCell(%d, %d) failed: %v", row, col, err)
	}
}

func TestNewDefaults(t *testing.T) {
	c := New(Options{Clipboard: &clipboard.Buffer{}})
	if rows, cols := c.Grid().Dimensions(); rows != 25 || cols != 15 {
		t.Errorf("dimensions = %dx%d, expected 25x15", rows, cols)
	}
	if c.CanUndo() || c.CanRedo() {
		t.Error("expected a fresh controller without history steps")
	}
	if c.ExportFileName() != "spreadsheet-data.csv" {
		t.Errorf("ExportFileName() = %q", c.ExportFileName())
	}
}

func TestEditUndoRedoScenario(t *testing.T) {
	c, _ := newTestController(2, 2)
	mustEdit(t, c, 0, 0, "X")
	mustEdit(t, c, 0, 1, "Y")

	if err := c.Undo(); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if c.Grid().Value(0, 1) != "" || c.Grid().Value(0, 0) != "X" {
		t.Errorf("after one undo: %v", c.Grid().Values())
	}

	if err := c.Undo(); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if c.Grid().Value(0, 0) != "" || c.Grid().Value(0, 1) != "" {
		t.Errorf("after two undos: %v", c.Grid().Values())
	}
	if err := c.Undo(); !errors.Is(err, ErrAtBoundary) {
		t.Errorf("third undo error = %v, expected ErrAtBoundary", err)
	}

	for i := 0; i < 2; i++ {
		if err := c.Redo(); err != nil {
			t.Fatalf("Redo failed: %v", err)
		}
	}
	if c.Grid().Value(0, 0) != "X" || c.Grid().Value(0, 1) != "Y" {
		t.Errorf("after two redos: %v", c.Grid().Values())
	}
	if err := c.Redo(); !errors.Is(err, ErrAtBoundary) {
		t.Errorf("third redo error = %v, expected ErrAtBoundary", err)
	}
}

func TestEditNoOpRecordsNoHistory(t *testing.T) {
	c, _ := newTestController(2, 2)
	mustEdit(t, c, 0, 0, "")
	if c.CanUndo() {
		t.Error("expected an unchanged edit to record no history")
	}

	mustEdit(t, c, 0, 0, "a")
	gen := c.Generation()
	mustEdit(t, c, 0, 0, "a")
	if c.history.Len() != 2 {
		t.Errorf("history length = %d, expected 2", c.history.Len())
	}
	if c.Generation() != gen {
		t.Error("expected an unchanged edit to keep the generation")
	}
}

func TestEditOutOfBounds(t *testing.T) {
	c, _ := newTestController(2, 2)
	err := c.EditCell(2, 0, "x")
	if !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("error = %v, expected ErrOutOfBounds", err)
	}
	var opErr *OperationError
	if !errors.As(err, &opErr) || opErr.Op != "edit" {
		t.Errorf("expected an edit OperationError, got %v", err)
	}
	if c.CanUndo() {
		t.Error("expected a failed edit to record no history")
	}
}

func TestPasteScenario(t *testing.T) {
	c, _ := newTestController(3, 3)
	if err := c.Paste("X\tY\nZ\tW"); err != nil {
		t.Fatalf("Paste failed: %v", err)
	}

	expected := [][]string{
		{"X", "Y", ""},
		{"Z", "W", ""},
		{"", "", ""},
	}
	if got := c.Grid().Values(); !reflect.DeepEqual(got, expected) {
		t.Errorf("grid = %q, expected %q", got, expected)
	}
	if c.history.Len() != 2 {
		t.Errorf("history length = %d, expected 2", c.history.Len())
	}
}

func TestPasteAtSelectionClips(t *testing.T) {
	c, _ := newTestController(3, 3)
	if err := c.SelectRegion(models.Region{R1: 1, C1: 2, R2: 2, C2: 2}); err != nil {
		t.Fatalf("SelectRegion failed: %v", err)
	}
	if err := c.Paste("a,b\nc,d\ne,f"); err != nil {
		t.Fatalf("Paste failed: %v", err)
	}

	expected := [][]string{
		{"", "", ""},
		{"", "", "a"},
		{"", "", "c"},
	}
	if got := c.Grid().Values(); !reflect.DeepEqual(got, expected) {
		t.Errorf("grid = %q, expected %q", got, expected)
	}
	if rows, cols := c.Grid().Dimensions(); rows != 3 || cols != 3 {
		t.Errorf("paste grew the grid to %dx%d", rows, cols)
	}
}

func TestCopyRegion(t *testing.T) {
	c, _ := newTestController(3, 3)
	mustEdit(t, c, 0, 0, "a,b")
	mustEdit(t, c, 1, 1, `He said "hi"`)

	text, err := c.CopyRegion(selection.CellsDescriptor(
		selection.Point{Row: 0, Col: 0},
		selection.Point{Row: 1, Col: 1},
	), selection.Context{Kind: selection.ContextCell})
	if err != nil {
		t.Fatalf("CopyRegion failed: %v", err)
	}
	expected := "\"a,b\"\t\n\t\"He said \"\"hi\"\"\""
	if text != expected {
		t.Errorf("CopyRegion() = %q, expected %q", text, expected)
	}

	if _, err := c.CopyRegion(selection.Descriptor{}, selection.Context{}); !errors.Is(err, ErrEmptySelection) {
		t.Errorf("empty copy error = %v, expected ErrEmptySelection", err)
	}
}

func TestCopyWithoutSelection(t *testing.T) {
	c, buf := newTestController(2, 2)
	_, err := c.Copy(context.Background())
	if !errors.Is(err, ErrEmptySelection) {
		t.Fatalf("error = %v, expected ErrEmptySelection", err)
	}
	if !IsUserError(err) {
		t.Error("expected an empty selection to be a user error")
	}
	if _, err := buf.ReadText(context.Background()); err == nil {
		t.Error("expected nothing written to the clipboard")
	}
}

func TestCopyColumnByHeaderClick(t *testing.T) {
	c, buf := newTestController(3, 3)
	mustEdit(t, c, 0, 2, "c1")
	mustEdit(t, c, 2, 2, "c3")

	c.Click(selection.Context{Kind: selection.ContextColumnHeader, Label: "C"})
	if err := c.Select(selection.SpanDescriptor(2, 2)); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	text, err := c.Copy(context.Background())
	if err != nil {
		t.Fatalf("Copy failed: %v", err)
	}
	if text != "c1\n\nc3" {
		t.Errorf("Copy() = %q", text)
	}
	if got, _ := buf.ReadText(context.Background()); got != text {
		t.Errorf("clipboard = %q, expected %q", got, text)
	}
	if c.LastCopy() != text {
		t.Errorf("LastCopy() = %q", c.LastCopy())
	}

	c.Click(selection.Context{Kind: selection.ContextRowHeader, Label: "3"})
	if err := c.Select(selection.SpanDescriptor(2, 2)); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	text, err = c.Copy(context.Background())
	if err != nil {
		t.Fatalf("Copy failed: %v", err)
	}
	if text != "\t\tc3" {
		t.Errorf("row copy = %q", text)
	}
}

func TestCopyAll(t *testing.T) {
	c, _ := newTestController(2, 2)
	mustEdit(t, c, 1, 1, "z")
	text, err := c.CopyAll(context.Background())
	if err != nil {
		t.Fatalf("CopyAll failed: %v", err)
	}
	if text != "\t\n\tz" {
		t.Errorf("CopyAll() = %q", text)
	}
}

func TestCopyClipboardFailure(t *testing.T) {
	opts := DefaultOptions()
	opts.Clipboard = failingClipboard{}
	c := New(opts)
	c.SelectAll()

	_, err := c.Copy(context.Background())
	if !errors.Is(err, ErrClipboardUnavailable) {
		t.Fatalf("error = %v, expected ErrClipboardUnavailable", err)
	}
	if c.LastCopy() != "" {
		t.Error("expected no recorded copy after a failure")
	}
}

func TestPasteFromClipboard(t *testing.T) {
	c, buf := newTestController(3, 3)
	buf.WriteText(context.Background(), "1\t2")

	if err := c.PasteFromClipboard(context.Background()); err != nil {
		t.Fatalf("PasteFromClipboard failed: %v", err)
	}
	if c.Grid().Value(0, 0) != "1" || c.Grid().Value(0, 1) != "2" {
		t.Errorf("grid = %v", c.Grid().Values())
	}
}

func TestPasteClipboardFailureLeavesState(t *testing.T) {
	opts := DefaultOptions()
	opts.Rows, opts.Cols = 2, 2
	opts.Clipboard = failingClipboard{}
	c := New(opts)
	before := c.Grid()

	err := c.PasteFromClipboard(context.Background())
	if !errors.Is(err, ErrClipboardUnavailable) {
		t.Fatalf("error = %v, expected ErrClipboardUnavailable", err)
	}
	if c.Grid() != before || c.CanUndo() {
		t.Error("expected grid and history unchanged")
	}
}

func TestStalePasteIsDiscarded(t *testing.T) {
	c, _ := newTestController(3, 3)
	ticket := c.BeginPaste()
	mustEdit(t, c, 2, 2, "newer")

	err := c.FinishPaste(ticket, "old", nil)
	if !errors.Is(err, ErrStaleClipboard) {
		t.Fatalf("error = %v, expected ErrStaleClipboard", err)
	}
	if c.Grid().Value(0, 0) != "" {
		t.Error("expected stale paste not to be applied")
	}

	ticket = c.BeginPaste()
	if err := c.FinishPaste(ticket, "fresh", nil); err != nil {
		t.Fatalf("FinishPaste failed: %v", err)
	}
	if c.Grid().Value(0, 0) != "fresh" {
		t.Errorf("Value(0, 0) = %q, expected fresh", c.Grid().Value(0, 0))
	}
}

func TestResize(t *testing.T) {
	c, _ := newTestController(2, 2)
	if err := c.AddRows(); err != nil {
		t.Fatalf("AddRows failed: %v", err)
	}
	if err := c.AddColumns(); err != nil {
		t.Fatalf("AddColumns failed: %v", err)
	}
	if rows, cols := c.Grid().Dimensions(); rows != 12 || cols != 7 {
		t.Errorf("dimensions = %dx%d, expected 12x7", rows, cols)
	}

	if err := c.Resize(-1, 0); !errors.Is(err, grid.ErrInvalidCount) {
		t.Errorf("negative resize error = %v, expected ErrInvalidCount", err)
	}
	if rows, _ := c.Grid().Dimensions(); rows != 12 {
		t.Error("failed resize changed the grid")
	}
}

func TestUndoResizeDropsStaleSelection(t *testing.T) {
	c, _ := newTestController(2, 2)
	if err := c.Resize(2, 0); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	if err := c.SelectRegion(models.Region{R1: 3, C1: 0, R2: 3, C2: 1}); err != nil {
		t.Fatalf("SelectRegion failed: %v", err)
	}
	if err := c.Undo(); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if !c.Selection().IsEmpty() {
		t.Errorf("expected selection outside the restored grid to be dropped, got %v", c.Selection())
	}
}

func TestClear(t *testing.T) {
	asked := 0
	answer := false
	opts := DefaultOptions()
	opts.Clipboard = &clipboard.Buffer{}
	opts.Confirm = ConfirmFunc(func(string) bool {
		asked++
		return answer
	})
	c := New(opts)
	mustEdit(t, c, 0, 0, "keep")
	if err := c.Resize(5, 5); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}

	if err := c.Clear(); !errors.Is(err, ErrAborted) {
		t.Fatalf("declined clear error = %v, expected ErrAborted", err)
	}
	if c.Grid().Value(0, 0) != "keep" {
		t.Error("declined clear changed the grid")
	}

	answer = true
	if err := c.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if asked != 2 {
		t.Errorf("confirmer asked %d times, expected 2", asked)
	}
	if rows, cols := c.Grid().Dimensions(); rows != 25 || cols != 15 || c.Grid().Value(0, 0) != "" {
		t.Errorf("cleared grid = %dx%d, A1 = %q", rows, cols, c.Grid().Value(0, 0))
	}

	if err := c.Undo(); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if c.Grid().Value(0, 0) != "keep" {
		t.Error("expected clear to be undoable")
	}
}

func TestDeleteSelection(t *testing.T) {
	c, _ := newTestController(3, 3)
	if err := c.Paste("a\tb\tc\nd\te\tf"); err != nil {
		t.Fatalf("Paste failed: %v", err)
	}

	if err := c.DeleteSelection(); !errors.Is(err, ErrEmptySelection) {
		t.Errorf("delete without selection error = %v, expected ErrEmptySelection", err)
	}

	c.Click(selection.Context{Kind: selection.ContextRowHeader, Label: "1"})
	if err := c.Select(selection.SpanDescriptor(0, 0)); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if err := c.Execute(context.Background(), CmdDelete); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	expected := [][]string{
		{"", "", ""},
		{"d", "e", "f"},
		{"", "", ""},
	}
	if got := c.Grid().Values(); !reflect.DeepEqual(got, expected) {
		t.Errorf("grid = %q, expected %q", got, expected)
	}
}

func TestSearchFilterRebasesSelection(t *testing.T) {
	c, _ := newTestController(5, 2)
	mustEdit(t, c, 1, 0, "Jane Smith")
	mustEdit(t, c, 3, 1, "John Smith")
	mustEdit(t, c, 3, 0, "row4")
	history := c.history.Len()

	res := c.Search("smith")
	if len(res.Matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(res.Matches))
	}
	if c.history.Len() != history {
		t.Error("search recorded history")
	}

	v := c.View()
	if !v.Filtered || len(v.Visible) != 2 {
		t.Fatalf("view = %+v, expected 2 filtered rows", v)
	}
	if v.Visible[0].Label != 2 || v.Visible[1].Label != 4 || v.Visible[1].Index != 3 {
		t.Errorf("visible rows = %+v", v.Visible)
	}

	// View row 1 is grid row 3.
	c.Click(selection.Context{Kind: selection.ContextRowHeader, Label: "4"})
	if err := c.Select(selection.SpanDescriptor(1, 1)); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	region, err := c.SelectedRegion()
	if err != nil {
		t.Fatalf("SelectedRegion failed: %v", err)
	}
	if region != (models.Region{R1: 3, C1: 0, R2: 3, C2: 1}) {
		t.Errorf("region = %+v, expected grid row 3", region)
	}

	if err := c.Paste("pasted"); err != nil {
		t.Fatalf("Paste failed: %v", err)
	}
	if c.Grid().Value(3, 0) != "pasted" || c.Grid().Value(1, 0) != "Jane Smith" {
		t.Errorf("paste used view coordinates: %v", c.Grid().Values())
	}

	if row, err := c.ViewToGrid(0); err != nil || row != 1 {
		t.Errorf("ViewToGrid(0) = %d, %v; expected 1", row, err)
	}
	if _, err := c.ViewToGrid(2); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("ViewToGrid(2) error = %v, expected ErrOutOfBounds", err)
	}

	c.Search("  ")
	v = c.View()
	if v.Filtered || len(v.Visible) != 5 || len(v.Matches) != 0 {
		t.Errorf("blank search did not reset the filter: %+v", v)
	}
}

func TestSearchFollowsUndo(t *testing.T) {
	c, _ := newTestController(3, 3)
	mustEdit(t, c, 0, 0, "apple")
	mustEdit(t, c, 2, 2, "pineapple")
	c.Search("apple")
	if len(c.SearchResult().Matches) != 2 {
		t.Fatalf("expected 2 matches")
	}

	if err := c.Undo(); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if got := c.SearchResult().Rows; !reflect.DeepEqual(got, []int{0}) {
		t.Errorf("rows after undo = %v, expected [0]", got)
	}

	c.ClearSearch()
	if c.View().Filtered {
		t.Error("expected ClearSearch to drop the filter")
	}
}

func TestExecute(t *testing.T) {
	c, buf := newTestController(2, 2)
	ctx := context.Background()
	mustEdit(t, c, 0, 0, "a")

	if err := c.Execute(ctx, CmdSelectAll); err != nil {
		t.Fatalf("select-all failed: %v", err)
	}
	if err := c.Execute(ctx, CmdCopy); err != nil {
		t.Fatalf("copy failed: %v", err)
	}
	if text, _ := buf.ReadText(ctx); text != "a\t\n\t" {
		t.Errorf("clipboard = %q", text)
	}
	if err := c.Execute(ctx, CmdEscape); err != nil || !c.Selection().IsEmpty() {
		t.Errorf("escape = %v, selection %v", err, c.Selection())
	}
	if err := c.Execute(ctx, CmdUndo); err != nil || c.Grid().Value(0, 0) != "" {
		t.Errorf("undo = %v, A1 = %q", err, c.Grid().Value(0, 0))
	}
	if err := c.Execute(ctx, CmdRedo); err != nil || c.Grid().Value(0, 0) != "a" {
		t.Errorf("redo = %v, A1 = %q", err, c.Grid().Value(0, 0))
	}
	if err := c.Execute(ctx, Command(99)); err == nil {
		t.Error("expected unknown command to fail")
	}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name     string
		expected Command
	}{
		{"undo", CmdUndo},
		{"Redo", CmdRedo},
		{" copy ", CmdCopy},
		{"select-all", CmdSelectAll},
		{"delete", CmdDelete},
		{"escape", CmdEscape},
	}
	for _, tt := range tests {
		cmd, err := ParseCommand(tt.name)
		if err != nil || cmd != tt.expected {
			t.Errorf("ParseCommand(%q) = %v, %v; expected %v", tt.name, cmd, err, tt.expected)
		}
	}
	if _, err := ParseCommand("explode"); err == nil {
		t.Error("expected unknown name to fail")
	}
}

func TestExportCSV(t *testing.T) {
	c, _ := newTestController(2, 2)
	mustEdit(t, c, 0, 0, "a,b")
	mustEdit(t, c, 1, 1, "x")

	var buf bytes.Buffer
	if err := c.ExportCSV(&buf); err != nil {
		t.Fatalf("ExportCSV failed: %v", err)
	}
	if buf.String() != "\"a,b\",\n,x" {
		t.Errorf("ExportCSV() = %q", buf.String())
	}
}

func TestViewSelectionAndHistoryFlags(t *testing.T) {
	c, _ := newTestController(2, 3)
	mustEdit(t, c, 0, 0, "a")
	c.SelectAll()

	v := c.View()
	if v.Selection == nil || *v.Selection != (models.Region{R1: 0, C1: 0, R2: 1, C2: 2}) {
		t.Errorf("Selection = %+v", v.Selection)
	}
	if !v.CanUndo || v.CanRedo {
		t.Errorf("CanUndo = %v, CanRedo = %v", v.CanUndo, v.CanRedo)
	}
	if !reflect.DeepEqual(v.ColumnLabels, []string{"A", "B", "C"}) {
		t.Errorf("ColumnLabels = %v", v.ColumnLabels)
	}
	if len(v.Visible) != 2 || v.Visible[0].Cells[0] != "a" {
		t.Errorf("Visible = %+v", v.Visible)
	}
}
