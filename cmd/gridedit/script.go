package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ukaji3/gridedit-go/pkg/gridedit"
	"github.com/ukaji3/gridedit-go/pkg/gridedit/grid"
	"github.com/ukaji3/gridedit-go/pkg/gridedit/selection"
)

// script runs line-oriented edit commands against a controller.
//
// Cell references in select commands address visible rows, so they follow
// the search filter. edit and paste-at address grid rows directly.
type script struct {
	ctrl    *gridedit.Controller
	logger  *slog.Logger
	baseDir string
}

// ScriptError reports the script line a command failed on.
type ScriptError struct {
	Line    int
	Command string
	Err     error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("line %d (%s): %v", e.Line, e.Command, e.Err)
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}

// Run executes every command read from r. Recoverable failures such as an
// undo at the start of the history are logged and skipped.
func (s *script) Run(ctx context.Context, r io.Reader) error {
	if ctx == nil {
		ctx = context.Background()
	}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		args, err := splitArgs(line)
		if err != nil {
			return &ScriptError{Line: lineNo, Command: line, Err: err}
		}
		err = s.exec(ctx, args[0], args[1:])
		if err == nil {
			continue
		}
		if recoverable(err) {
			s.logger.Warn("command skipped", "line", lineNo, "command", args[0], "error", err)
			continue
		}
		return &ScriptError{Line: lineNo, Command: args[0], Err: err}
	}
	return scanner.Err()
}

func recoverable(err error) bool {
	return gridedit.IsUserError(err) ||
		errors.Is(err, gridedit.ErrAtBoundary) ||
		errors.Is(err, gridedit.ErrStaleClipboard)
}

func (s *script) exec(ctx context.Context, name string, args []string) error {
	c := s.ctrl
	switch name {
	case "edit":
		if err := wantArgs(args, 2); err != nil {
			return err
		}
		region, err := selection.ParseRange(args[0])
		if err != nil {
			return err
		}
		return c.EditCell(region.R1, region.C1, args[1])

	case "paste":
		if err := wantArgs(args, 1); err != nil {
			return err
		}
		return c.Paste(args[0])

	case "paste-at":
		if err := wantArgs(args, 2); err != nil {
			return err
		}
		region, err := selection.ParseRange(args[0])
		if err != nil {
			return err
		}
		return c.PasteRegion(args[1], selection.Point{Row: region.R1, Col: region.C1})

	case "paste-clipboard":
		return c.PasteFromClipboard(ctx)

	case "select":
		if err := wantArgs(args, 1); err != nil {
			return err
		}
		region, err := selection.ParseRange(args[0])
		if err != nil {
			return err
		}
		c.Click(selection.Context{Kind: selection.ContextCell})
		return c.Select(selection.CellsDescriptor(selection.RegionPoints(region)...))

	case "select-rows":
		if err := wantArgs(args, 2); err != nil {
			return err
		}
		start, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid row %q", args[0])
		}
		end, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid row %q", args[1])
		}
		c.Click(selection.Context{Kind: selection.ContextRowHeader, Label: args[0]})
		return c.Select(selection.SpanDescriptor(start-1, end-1))

	case "select-col":
		if err := wantArgs(args, 1); err != nil {
			return err
		}
		col, err := grid.ColumnIndex(args[0])
		if err != nil {
			return err
		}
		c.Click(selection.Context{Kind: selection.ContextColumnHeader, Label: strings.ToUpper(args[0])})
		return c.Select(selection.SpanDescriptor(col, col))

	case "copy-all":
		_, err := c.CopyAll(ctx)
		return err

	case "resize":
		if err := wantArgs(args, 2); err != nil {
			return err
		}
		addRows, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid row count %q", args[0])
		}
		addCols, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid column count %q", args[1])
		}
		return c.Resize(addRows, addCols)

	case "add-rows":
		return c.AddRows()

	case "add-columns":
		return c.AddColumns()

	case "clear":
		return c.Clear()

	case "search":
		if err := wantArgs(args, 1); err != nil {
			return err
		}
		res := c.Search(args[0])
		s.logger.Info("search", "term", res.Term, "matches", len(res.Matches), "rows", len(res.Rows))
		return nil

	case "clear-search":
		c.ClearSearch()
		return nil

	case "export":
		path := c.ExportFileName()
		if len(args) > 0 {
			path = args[0]
		}
		if !filepath.IsAbs(path) {
			path = filepath.Join(s.baseDir, path)
		}
		return s.export(path)
	}

	cmd, err := gridedit.ParseCommand(name)
	if err != nil {
		return err
	}
	return c.Execute(ctx, cmd)
}

func (s *script) export(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export: %w", err)
	}
	if err := s.ctrl.ExportCSV(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	s.logger.Info("grid exported", "path", path)
	return nil
}

func wantArgs(args []string, n int) error {
	if len(args) != n {
		return fmt.Errorf("expected %d argument(s), got %d", n, len(args))
	}
	return nil
}

// splitArgs splits a line on whitespace. Double-quoted arguments use Go
// string syntax, so "a\tb" carries a tab.
func splitArgs(line string) ([]string, error) {
	var args []string
	for {
		line = strings.TrimLeft(line, " \t")
		if line == "" {
			break
		}
		if line[0] == '"' || line[0] == '`' {
			quoted, err := strconv.QuotedPrefix(line)
			if err != nil {
				return nil, fmt.Errorf("unterminated string: %s", line)
			}
			value, err := strconv.Unquote(quoted)
			if err != nil {
				return nil, err
			}
			args = append(args, value)
			line = line[len(quoted):]
			continue
		}
		end := strings.IndexAny(line, " \t")
		if end < 0 {
			end = len(line)
		}
		args = append(args, line[:end])
		line = line[end:]
	}
	return args, nil
}
