// Package history provides the linear undo/redo log over grid snapshots.
//
// The log always holds at least one snapshot. Pushing a snapshot while the
// index is behind the end discards the redo entries first, so history forms
// a single branch.
package history

import (
	"errors"

	"github.com/ukaji3/gridedit-go/pkg/gridedit/grid"
)

// ErrAtBoundary indicates an undo at the first entry or a redo at the last.
var ErrAtBoundary = errors.New("history boundary reached")

// Log is an append-only-with-truncation stack of grid snapshots.
type Log struct {
	snapshots []*grid.Grid
	index     int

	// maxEntries caps the log length; 0 means unbounded.
	maxEntries int
}

// New returns a log seeded with initial.
func New(initial *grid.Grid) *Log {
	return NewWithLimit(initial, 0)
}

// NewWithLimit returns a log seeded with initial that keeps at most
// maxEntries snapshots, dropping the oldest first. maxEntries <= 0 disables
// the cap.
func NewWithLimit(initial *grid.Grid, maxEntries int) *Log {
	if maxEntries < 0 {
		maxEntries = 0
	}
	return &Log{
		snapshots:  []*grid.Grid{initial},
		maxEntries: maxEntries,
	}
}

// Current returns the snapshot at the current index.
func (l *Log) Current() *grid.Grid {
	return l.snapshots[l.index]
}

// Push records snapshot as the newest entry. It reports false and leaves the
// log unchanged when snapshot equals the current entry.
func (l *Log) Push(snapshot *grid.Grid) bool {
	if snapshot.Equal(l.Current()) {
		return false
	}

	// Drop redo entries
	l.snapshots = append(l.snapshots[:l.index+1:l.index+1], snapshot)
	l.index = len(l.snapshots) - 1

	if l.maxEntries > 0 && len(l.snapshots) > l.maxEntries {
		excess := len(l.snapshots) - l.maxEntries
		l.snapshots = append([]*grid.Grid(nil), l.snapshots[excess:]...)
		l.index -= excess
	}
	return true
}

// Undo steps back one entry and returns it. At the first entry it returns
// the current snapshot and ErrAtBoundary.
func (l *Log) Undo() (*grid.Grid, error) {
	if l.index == 0 {
		return l.Current(), ErrAtBoundary
	}
	l.index--
	return l.Current(), nil
}

// Redo steps forward one entry and returns it. At the last entry it returns
// the current snapshot and ErrAtBoundary.
func (l *Log) Redo() (*grid.Grid, error) {
	if l.index == len(l.snapshots)-1 {
		return l.Current(), ErrAtBoundary
	}
	l.index++
	return l.Current(), nil
}

// CanUndo returns true if undo is available.
func (l *Log) CanUndo() bool {
	return l.index > 0
}

// CanRedo returns true if redo is available.
func (l *Log) CanRedo() bool {
	return l.index < len(l.snapshots)-1
}

// Len returns the number of snapshots.
func (l *Log) Len() int {
	return len(l.snapshots)
}

// Index returns the current position.
func (l *Log) Index() int {
	return l.index
}
