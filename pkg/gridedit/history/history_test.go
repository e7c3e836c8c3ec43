package history

import (
	"errors"
	"testing"

	"github.com/ukaji3/gridedit-go/pkg/gridedit/grid"
)

func edit(t *testing.T, g *grid.Grid, row, col int, v string) *grid.Grid {
	t.Helper()
	next, err := g.SetCell(row, col, v)
	if err != nil {
		t.Fatalf("SetCell(%d, %d) failed: %v", row, col, err)
	}
	return next
}

func TestInitialState(t *testing.T) {
	initial := grid.New(2, 2)
	l := New(initial)

	if l.Len() != 1 || l.Index() != 0 {
		t.Errorf("Len() = %d, Index() = %d, expected 1, 0", l.Len(), l.Index())
	}
	if l.Current() != initial {
		t.Error("expected Current() to be the seed grid")
	}
	if l.CanUndo() || l.CanRedo() {
		t.Error("expected no undo or redo on a fresh log")
	}
}

func TestUndoRedoLaws(t *testing.T) {
	initial := grid.New(3, 3)
	l := New(initial)

	snapshots := []*grid.Grid{initial}
	g := initial
	for i := 0; i < 5; i++ {
		g = edit(t, g, i%3, i%3, string(rune('a'+i)))
		if !l.Push(g) {
			t.Fatalf("Push %d was ignored", i)
		}
		snapshots = append(snapshots, g)
	}

	for i := 4; i >= 0; i-- {
		got, err := l.Undo()
		if err != nil {
			t.Fatalf("Undo failed: %v", err)
		}
		if got != snapshots[i] {
			t.Errorf("Undo() returned snapshot %p, expected %p (index %d)", got, snapshots[i], i)
		}
	}
	if l.Current() != initial {
		t.Error("expected N undos to return to the initial snapshot")
	}

	if got, err := l.Undo(); !errors.Is(err, ErrAtBoundary) || got != initial {
		t.Errorf("Undo at index 0 = %p, %v; expected initial, ErrAtBoundary", got, err)
	}

	for i := 1; i <= 5; i++ {
		got, err := l.Redo()
		if err != nil {
			t.Fatalf("Redo failed: %v", err)
		}
		if got != snapshots[i] {
			t.Errorf("Redo() returned wrong snapshot at step %d", i)
		}
	}
	if got, err := l.Redo(); !errors.Is(err, ErrAtBoundary) || got != snapshots[5] {
		t.Errorf("Redo at end = %p, %v; expected last, ErrAtBoundary", got, err)
	}
}

func TestPushTruncatesRedo(t *testing.T) {
	g0 := grid.New(2, 2)
	l := New(g0)
	g1 := edit(t, g0, 0, 0, "a")
	g2 := edit(t, g1, 0, 1, "b")
	l.Push(g1)
	l.Push(g2)

	if _, err := l.Undo(); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	branch := edit(t, g1, 1, 1, "c")
	if !l.Push(branch) {
		t.Fatal("Push was ignored")
	}

	if l.Len() != 3 || l.Index() != 2 {
		t.Errorf("Len() = %d, Index() = %d, expected 3, 2", l.Len(), l.Index())
	}
	if l.CanRedo() {
		t.Error("expected redo entries to be discarded")
	}
	if l.Current() != branch {
		t.Error("expected the branch snapshot to be current")
	}
}

func TestPushIgnoresEqualSnapshot(t *testing.T) {
	g0 := grid.New(2, 2)
	l := New(g0)

	if l.Push(grid.New(2, 2)) {
		t.Error("expected an equal snapshot to be ignored")
	}
	if l.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", l.Len())
	}
}

func TestLimit(t *testing.T) {
	g := grid.New(1, 1)
	l := NewWithLimit(g, 3)
	for i := 0; i < 5; i++ {
		g = edit(t, g, 0, 0, string(rune('a'+i)))
		l.Push(g)
	}

	if l.Len() != 3 {
		t.Errorf("Len() = %d, expected 3", l.Len())
	}
	if l.Index() != 2 || l.Current() != g {
		t.Errorf("Index() = %d, expected 2 at the newest snapshot", l.Index())
	}
	l.Undo()
	l.Undo()
	if _, err := l.Undo(); !errors.Is(err, ErrAtBoundary) {
		t.Errorf("expected boundary after the oldest kept snapshot, got %v", err)
	}
	if v := l.Current().Value(0, 0); v != "c" {
		t.Errorf("oldest kept snapshot value = %q, expected %q", v, "c")
	}
}
