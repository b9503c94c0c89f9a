package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nbonventre/pickaxe/internal/diffhighlight"
	"github.com/nbonventre/pickaxe/internal/diffparse"
	"github.com/nbonventre/pickaxe/internal/model"
	"github.com/nbonventre/pickaxe/internal/planmodel"
)

// renderHunkList renders the left-hand pane: one line per hunk, annotated
// with its file, id, and current selection mode.
func renderHunkList(hunks []*diffparse.Hunk, sel map[string]planmodel.HunkSelection, cursor, width, height int) string {
	var b strings.Builder
	for i, h := range hunks {
		mode := sel[h.ID].Mode
		label := fmt.Sprintf("%-*s", width-10, truncate(h.ID, width-10))
		modeStr := modeLabel(mode)

		line := label + " " + modeStr

		style := hunkItemStyle
		if i == cursor {
			style = hunkItemSelectedStyle
		}
		b.WriteString(style.Width(width - 4).Render(line))
		if i < len(hunks)-1 {
			b.WriteByte('\n')
		}
	}
	return hunkListStyle.Width(width).Height(height - 2).Render(b.String())
}

func modeLabel(mode model.SelectionMode) string {
	switch mode {
	case model.All:
		return modeAllStyle.Render("[all]")
	case model.Partial:
		return modePartialStyle.Render("[partial]")
	default:
		return modeNoneStyle.Render("[none]")
	}
}

// renderHunkBody renders the right-hand pane: the selected hunk's indexed
// lines with inclusion marks. Line text is the plain text of the
// diffhighlight tokens; token colors are not applied, and each line is
// colored by its kind instead.
func renderHunkBody(h *diffparse.Hunk, sel planmodel.HunkSelection, cursorLine, width, height int) string {
	header := fileHeaderStyle.Render(h.File + " — " + h.ID)

	var b strings.Builder
	b.WriteString(header)
	b.WriteByte('\n')
	b.WriteString(hunkHeaderStyle.Render(h.Header))
	b.WriteByte('\n')

	highlighted := diffhighlight.HighlightHunk(h)
	for i, l := range h.Lines {
		mark := lineInclusionMark(l, sel, i)
		prefix := string(l.Kind.Prefix())

		var style lipgloss.Style
		switch l.Kind {
		case model.Add:
			style = addedLineStyle
		case model.Remove:
			style = deletedLineStyle
		default:
			style = contextLineStyle
		}

		content := l.Content
		if i < len(highlighted) {
			content = highlighted[i].Plain()
		}

		text := fmt.Sprintf("[%02d] %s%s %s", i, mark, prefix, content)
		if i == cursorLine {
			text = cursorLineStyle.Render(text)
		} else {
			text = style.Render(text)
		}
		b.WriteString(text)
		if i < len(h.Lines)-1 {
			b.WriteByte('\n')
		}
	}

	return diffViewStyle.Width(width).Height(height - 2).Render(b.String())
}

// lineInclusionMark renders the inclusion indicator for one line: blank for
// context, a mark reflecting Mode/IncludeAdditions/IncludeRemovals for
// add/remove lines.
func lineInclusionMark(l diffparse.Line, sel planmodel.HunkSelection, idx int) string {
	if l.Kind == model.Context {
		return "  "
	}

	included := sel.Mode == model.All
	if sel.Mode == model.Partial {
		switch l.Kind {
		case model.Add:
			included = sel.IncludeAdditions[idx]
		case model.Remove:
			included = sel.IncludeRemovals[idx]
		}
	}
	if included {
		return includedMarkStyle.Render("✓ ")
	}
	return excludedMarkStyle.Render("· ")
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) > max {
		return s[:max-1] + "…"
	}
	return s
}
