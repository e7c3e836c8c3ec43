// Package tui is a terminal rendering surface for the grid controller.
//
// The surface owns only cursor, scrolling, and prompt state. Every edit,
// selection, clipboard, and search intent is forwarded to the controller,
// and the screen is drawn from the controller's View.
package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/ukaji3/gridedit-go/pkg/gridedit"
	"github.com/ukaji3/gridedit-go/pkg/gridedit/clipboard"
	"github.com/ukaji3/gridedit-go/pkg/gridedit/grid"
	"github.com/ukaji3/gridedit-go/pkg/gridedit/models"
	"github.com/ukaji3/gridedit-go/pkg/gridedit/selection"
)

// styles
var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("8"))
	cursorStyle   = lipgloss.NewStyle().Background(lipgloss.Color("4")).Foreground(lipgloss.Color("15"))
	selectedStyle = lipgloss.NewStyle().Background(lipgloss.Color("17")).Foreground(lipgloss.Color("15"))
	matchStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

const (
	cellWidth   = 12
	gutterWidth = 5
	chromeLines = 5 // title + header + status + prompt + help
)

type mode int

const (
	modeNormal mode = iota
	modeEdit
	modeSearch
	modeConfirm
)

// pasteMsg carries the result of an asynchronous clipboard read.
type pasteMsg struct {
	ticket gridedit.PasteTicket
	text   string
	err    error
}

// Model is the bubbletea model of the grid surface.
type Model struct {
	ctrl      *gridedit.Controller
	clipboard clipboard.Clipboard
	exportDir string

	width  int
	height int

	// cx is the grid column, cy the view row of the cursor.
	cx, cy  int
	scrollX int
	scrollY int
	anchor  *selection.Point

	mode    mode
	input   textinput.Model
	pending func() error
	prompt  string

	status string
	err    error
}

// New returns a model driving ctrl. Clipboard reads for paste go through
// clip; exports are written into exportDir.
func New(ctrl *gridedit.Controller, clip clipboard.Clipboard, exportDir string) Model {
	ti := textinput.New()
	ti.CharLimit = 0
	return Model{
		ctrl:      ctrl,
		clipboard: clip,
		exportDir: exportDir,
		input:     ti,
		width:     80,
		height:    24,
	}
}

// Run starts the terminal program.
func Run(ctrl *gridedit.Controller, clip clipboard.Clipboard, exportDir string) error {
	p := tea.NewProgram(New(ctrl, clip, exportDir), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case pasteMsg:
		m.report(m.ctrl.FinishPaste(msg.ticket, msg.text, msg.err), "pasted")
		return m, nil
	case tea.KeyMsg:
		switch m.mode {
		case modeEdit, modeSearch:
			return m.updatePrompt(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		}
		return m.updateNormal(msg)
	}
	return m, nil
}

// --- Normal mode ---

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	m.err = nil
	m.status = ""

	switch msg.String() {
	case "q", "ctrl+q":
		return m, tea.Quit
	case "left", "h":
		m.move(0, -1, false)
	case "right", "l":
		m.move(0, 1, false)
	case "up", "k":
		m.move(-1, 0, false)
	case "down", "j":
		m.move(1, 0, false)
	case "shift+left":
		m.move(0, -1, true)
	case "shift+right":
		m.move(0, 1, true)
	case "shift+up":
		m.move(-1, 0, true)
	case "shift+down":
		m.move(1, 0, true)
	case "R":
		m.selectRow()
	case "C":
		m.selectColumn()
	case "enter":
		if row, err := m.ctrl.ViewToGrid(m.cy); err == nil {
			m.mode = modeEdit
			m.input.Prompt = grid.PositionLabel(row, m.cx) + ": "
			m.input.SetValue(m.ctrl.Grid().Value(row, m.cx))
			m.input.CursorEnd()
			m.input.Focus()
		}
	case "/":
		m.mode = modeSearch
		m.input.Prompt = "search: "
		m.input.SetValue(m.ctrl.SearchResult().Term)
		m.input.CursorEnd()
		m.input.Focus()
	case "ctrl+z":
		m.execute(ctx, gridedit.CmdUndo, "undone")
	case "ctrl+y":
		m.execute(ctx, gridedit.CmdRedo, "redone")
	case "ctrl+c":
		m.execute(ctx, gridedit.CmdCopy, "copied selection")
	case "ctrl+a":
		m.execute(ctx, gridedit.CmdSelectAll, "")
	case "esc":
		m.anchor = nil
		m.execute(ctx, gridedit.CmdEscape, "")
	case "ctrl+v":
		ticket := m.ctrl.BeginPaste()
		clip := m.clipboard
		return m, func() tea.Msg {
			text, err := clip.ReadText(context.Background())
			return pasteMsg{ticket: ticket, text: text, err: err}
		}
	case "delete", "backspace":
		region, err := m.ctrl.SelectedRegion()
		if err != nil {
			m.report(err, "")
			break
		}
		m.ask(fmt.Sprintf("Delete the contents of %s?", grid.RangeLabel(region)), func() error {
			return m.ctrl.Execute(context.Background(), gridedit.CmdDelete)
		})
	case "ctrl+k":
		m.ask("Clear all data?", m.ctrl.Clear)
	case "+":
		m.report(m.ctrl.AddRows(), "rows added")
	case ">":
		m.report(m.ctrl.AddColumns(), "columns added")
	case "ctrl+e":
		m.report(m.export(), "exported "+m.ctrl.ExportFileName())
	case "ctrl+f":
		m.ctrl.ClearSearch()
		m.cy = 0
	}
	m.clampCursor()
	return m, nil
}

func (m *Model) execute(ctx context.Context, cmd gridedit.Command, done string) {
	m.report(m.ctrl.Execute(ctx, cmd), done)
}

func (m *Model) report(err error, done string) {
	if err != nil {
		m.err = err
		return
	}
	m.status = done
}

func (m *Model) ask(prompt string, action func() error) {
	m.mode = modeConfirm
	m.prompt = prompt
	m.pending = action
}

// move shifts the cursor and selects the cell under it. With extend, the
// selection grows from the anchor to the cursor.
func (m *Model) move(dRow, dCol int, extend bool) {
	if extend && m.anchor == nil {
		m.anchor = &selection.Point{Row: m.cy, Col: m.cx}
	}
	if !extend {
		m.anchor = nil
	}
	m.cy += dRow
	m.cx += dCol
	m.clampCursor()

	from := selection.Point{Row: m.cy, Col: m.cx}
	if m.anchor != nil {
		from = *m.anchor
	}
	points := selection.RegionPoints(models.Region{
		R1: min(from.Row, m.cy), C1: min(from.Col, m.cx),
		R2: max(from.Row, m.cy), C2: max(from.Col, m.cx),
	})
	m.ctrl.Click(selection.Context{Kind: selection.ContextCell})
	if err := m.ctrl.Select(selection.CellsDescriptor(points...)); err != nil {
		m.err = err
	}
}

func (m *Model) selectRow() {
	row, err := m.ctrl.ViewToGrid(m.cy)
	if err != nil {
		m.err = err
		return
	}
	m.anchor = nil
	m.ctrl.Click(selection.Context{Kind: selection.ContextRowHeader, Label: fmt.Sprint(row + 1)})
	m.report(m.ctrl.Select(selection.SpanDescriptor(m.cy, m.cy)), "")
}

func (m *Model) selectColumn() {
	m.anchor = nil
	m.ctrl.Click(selection.Context{Kind: selection.ContextColumnHeader, Label: grid.ColumnLabel(m.cx)})
	m.report(m.ctrl.Select(selection.SpanDescriptor(m.cx, m.cx)), "")
}

func (m Model) export() error {
	path := filepath.Join(m.exportDir, m.ctrl.ExportFileName())
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return m.ctrl.ExportCSV(f)
}

func (m *Model) clampCursor() {
	v := m.ctrl.View()
	m.cy = max(0, min(m.cy, len(v.Visible)-1))
	m.cx = max(0, min(m.cx, v.Cols-1))
}

// --- Prompt modes ---

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeNormal
		m.input.Blur()
		return m, nil
	case "enter":
		value := m.input.Value()
		m.input.Blur()
		if m.mode == modeSearch {
			res := m.ctrl.Search(value)
			m.cy = 0
			if res.Active() {
				m.status = fmt.Sprintf("%d matches in %d rows", len(res.Matches), len(res.Rows))
			}
		} else if row, err := m.ctrl.ViewToGrid(m.cy); err == nil {
			m.report(m.ctrl.EditCell(row, m.cx, value), "")
			if m.cy < len(m.ctrl.View().Visible)-1 {
				m.cy++
			}
		}
		m.mode = modeNormal
		m.clampCursor()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.report(m.pending(), "done")
	default:
		m.status = "cancelled"
	}
	m.mode = modeNormal
	m.pending = nil
	m.prompt = ""
	m.clampCursor()
	return m, nil
}

// --- View ---

func (m Model) View() string {
	v := m.ctrl.View()
	var b strings.Builder

	title := " gridedit"
	if v.Filtered {
		title += fmt.Sprintf("  [filter %q: %d rows]", v.SearchTerm, len(v.Visible))
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	visCols := max(1, (m.width-gutterWidth)/(cellWidth+1))
	visRows := max(1, m.height-chromeLines)
	m.scrollTo(visRows, visCols)

	colEnd := min(v.Cols, m.scrollX+visCols)
	rowEnd := min(len(v.Visible), m.scrollY+visRows)

	// header
	b.WriteString(headerStyle.Render(pad("", gutterWidth)))
	for c := m.scrollX; c < colEnd; c++ {
		b.WriteString(headerStyle.Render(" " + pad(v.ColumnLabels[c], cellWidth)))
	}
	b.WriteString("\n")

	matches := make(map[selection.Point]bool, len(v.Matches))
	for _, r := range v.Matches {
		matches[selection.Point{Row: r.Row, Col: r.Col}] = true
	}

	for vr := m.scrollY; vr < rowEnd; vr++ {
		row := v.Visible[vr]
		b.WriteString(headerStyle.Render(pad(fmt.Sprint(row.Label), gutterWidth)))
		for c := m.scrollX; c < colEnd; c++ {
			cell := " " + pad(row.Cells[c], cellWidth)
			switch {
			case vr == m.cy && c == m.cx:
				cell = cursorStyle.Render(cell)
			case v.Selection != nil && v.Selection.Contains(row.Index, c):
				cell = selectedStyle.Render(cell)
			case matches[selection.Point{Row: row.Index, Col: c}]:
				cell = matchStyle.Render(cell)
			}
			b.WriteString(cell)
		}
		b.WriteString("\n")
	}

	b.WriteString(m.statusLine(v))
	b.WriteString("\n")

	switch m.mode {
	case modeEdit, modeSearch:
		b.WriteString(m.input.View())
	case modeConfirm:
		b.WriteString(errorStyle.Render(m.prompt + " (y/n)"))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(" enter edit  / search  R row  C col  ^A all  ^C copy  ^V paste  ^Z undo  ^Y redo  del delete  + rows  > cols  ^E export  ^K clear  q quit"))
	return b.String()
}

func (m Model) statusLine(v models.View) string {
	if m.err != nil {
		return errorStyle.Render(" error: " + m.err.Error())
	}
	parts := []string{fmt.Sprintf(" %dx%d", v.Rows, v.Cols)}
	if row, err := m.ctrl.ViewToGrid(m.cy); err == nil {
		parts = append(parts, grid.PositionLabel(row, m.cx))
	}
	if v.Selection != nil {
		parts = append(parts, "sel "+grid.RangeLabel(*v.Selection))
	}
	if v.CanUndo {
		parts = append(parts, "undo")
	}
	if v.CanRedo {
		parts = append(parts, "redo")
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	return statusStyle.Render(strings.Join(parts, "  "))
}

func (m *Model) scrollTo(visRows, visCols int) {
	if m.cy < m.scrollY {
		m.scrollY = m.cy
	}
	if m.cy >= m.scrollY+visRows {
		m.scrollY = m.cy - visRows + 1
	}
	if m.cx < m.scrollX {
		m.scrollX = m.cx
	}
	if m.cx >= m.scrollX+visCols {
		m.scrollX = m.cx - visCols + 1
	}
}

// pad truncates or pads s to exactly w display cells.
func pad(s string, w int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return runewidth.FillRight(runewidth.Truncate(s, w, "…"), w)
}
