// Package tui implements an interactive Bubble Tea session for building a
// StagingPlan by hand: browse hunks, cycle each between None/All/Partial,
// and for Partial hunks toggle individual addition/removal lines.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/nbonventre/pickaxe/internal/diffparse"
	"github.com/nbonventre/pickaxe/internal/model"
	"github.com/nbonventre/pickaxe/internal/planmodel"
)

// Model is the top-level Bubble Tea model for the plan builder.
type Model struct {
	diff  *diffparse.ParsedDiff
	hunks []*diffparse.Hunk
	sel   map[string]planmodel.HunkSelection

	commitMessage string

	width, height int

	cursorHunk int
	cursorLine int

	showHelp bool
	saved    bool
	quit     bool
}

// New builds a plan-builder model over d, with every hunk starting at
// SelectionMode None.
func New(d *diffparse.ParsedDiff, commitMessage string) Model {
	hunks := d.GetAllHunks()
	sel := make(map[string]planmodel.HunkSelection, len(hunks))
	for _, h := range hunks {
		sel[h.ID] = planmodel.HunkSelection{HunkID: h.ID, Mode: model.None}
	}
	return Model{diff: d, hunks: hunks, sel: sel, commitMessage: commitMessage}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quit = true
			return m, tea.Quit

		case key.Matches(msg, keys.Save):
			m.saved = true
			return m, tea.Quit

		case key.Matches(msg, keys.Help):
			m.showHelp = !m.showHelp

		case key.Matches(msg, keys.Down):
			m.moveCursor(1)

		case key.Matches(msg, keys.Up):
			m.moveCursor(-1)

		case key.Matches(msg, keys.NextHunk):
			m.setHunk(m.cursorHunk + 1)

		case key.Matches(msg, keys.PrevHunk):
			m.setHunk(m.cursorHunk - 1)

		case key.Matches(msg, keys.CycleMode):
			m.cycleMode()

		case key.Matches(msg, keys.ToggleLine):
			m.toggleCurrentLine()
		}
	}

	return m, nil
}

func (m *Model) currentHunk() *diffparse.Hunk {
	if len(m.hunks) == 0 {
		return nil
	}
	return m.hunks[m.cursorHunk]
}

func (m *Model) setHunk(i int) {
	if i < 0 || i >= len(m.hunks) {
		return
	}
	m.cursorHunk = i
	m.cursorLine = 0
}

func (m *Model) moveCursor(delta int) {
	h := m.currentHunk()
	if h == nil {
		return
	}
	next := m.cursorLine + delta
	if next < 0 || next >= len(h.Lines) {
		return
	}
	m.cursorLine = next
}

func (m *Model) cycleMode() {
	h := m.currentHunk()
	if h == nil {
		return
	}
	cur := m.sel[h.ID]
	switch cur.Mode {
	case model.None:
		cur.Mode = model.All
		cur.IncludeAdditions = nil
		cur.IncludeRemovals = nil
	case model.All:
		cur.Mode = model.Partial
		cur.IncludeAdditions = map[int]bool{}
		cur.IncludeRemovals = map[int]bool{}
	default:
		cur.Mode = model.None
		cur.IncludeAdditions = nil
		cur.IncludeRemovals = nil
	}
	m.sel[h.ID] = cur
}

func (m *Model) toggleCurrentLine() {
	h := m.currentHunk()
	if h == nil || m.cursorLine >= len(h.Lines) {
		return
	}
	cur := m.sel[h.ID]
	if cur.Mode != model.Partial {
		return
	}
	l := h.Lines[m.cursorLine]
	switch l.Kind {
	case model.Add:
		cur.IncludeAdditions[m.cursorLine] = !cur.IncludeAdditions[m.cursorLine]
	case model.Remove:
		cur.IncludeRemovals[m.cursorLine] = !cur.IncludeRemovals[m.cursorLine]
	}
	m.sel[h.ID] = cur
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if len(m.hunks) == 0 {
		return "No changes."
	}

	listWidth := m.width / 3
	if listWidth < 24 {
		listWidth = 24
	}
	bodyWidth := m.width - listWidth - 1

	list := renderHunkList(m.hunks, m.sel, m.cursorHunk, listWidth, m.height-2)
	body := renderHunkBody(m.currentHunk(), m.sel[m.currentHunk().ID], m.cursorLine, bodyWidth, m.height-2)

	main := lipgloss.JoinHorizontal(lipgloss.Top, list, " ", body)
	return lipgloss.JoinVertical(lipgloss.Left, main, m.renderStatusBar())
}

func (m Model) renderStatusBar() string {
	left := m.commitMessage
	right := "space: cycle mode  enter: toggle line  s: save  q: quit  ?: help"
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return statusBarStyle.Width(m.width).Render(left + padding(gap) + right)
}

func padding(n int) string {
	if n <= 0 {
		return " "
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}

func (m Model) renderHelp() string {
	items := []struct{ key, desc string }{
		{"↑/k ↓/j", "move line cursor"},
		{"n/tab N/S-tab", "next/previous hunk"},
		{"space", "cycle hunk: none → all → partial → none"},
		{"enter", "toggle current line (partial mode only)"},
		{"s", "save plan and quit"},
		{"q", "quit without saving"},
		{"?", "toggle this help"},
	}
	var out string
	out += fileHeaderStyle.Render("pickaxe — keyboard shortcuts") + "\n\n"
	for _, it := range items {
		out += "  " + helpKeyStyle.Width(16).Render(it.key) + "  " + it.desc + "\n"
	}
	out += "\n" + helpBarStyle.Render("Press ? to close help")
	return out
}

// Plan converts the current selections into a StagingPlan.
func (m Model) Plan() *planmodel.StagingPlan {
	plan := &planmodel.StagingPlan{CommitMessage: m.commitMessage}
	for _, h := range m.hunks {
		plan.Selections = append(plan.Selections, m.sel[h.ID])
	}
	return plan
}

// Saved reports whether the session ended via the save key rather than quit.
func (m Model) Saved() bool { return m.saved }

// Run starts the plan-builder TUI and returns the resulting plan. If the
// user quit without saving, ok is false.
func Run(d *diffparse.ParsedDiff, commitMessage string) (plan *planmodel.StagingPlan, ok bool, err error) {
	m := New(d, commitMessage)
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return nil, false, err
	}
	fm := final.(Model)
	return fm.Plan(), fm.Saved(), nil
}
