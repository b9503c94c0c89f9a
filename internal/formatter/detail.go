package formatter

import (
	"fmt"
	"strings"

	"github.com/nbonventre/pickaxe/internal/diffparse"
	"github.com/nbonventre/pickaxe/internal/model"
)

// DetailedBlock renders one hunk as a heading, summary, optional
// splittability note, and a fenced block of indexed, dual-numbered lines.
func DetailedBlock(h *diffparse.Hunk) string {
	var b strings.Builder
	fmt.Fprintf(&b, "### Hunk: %s\n", h.ID)
	if h.Context != "" {
		fmt.Fprintf(&b, "Context: %s\n", h.Context)
	}
	fmt.Fprintf(&b, "Summary: %s\n", summaryLine(h))

	if n := splitCount(h); n > 1 {
		fmt.Fprintf(&b, "Splittable: Can be split into %d sub-hunks\n", n)
	}

	b.WriteString("```\n")
	oldNo, newNo := h.OldStart, h.NewStart
	for i, l := range h.Lines {
		oldCol, newCol := "   ", "   "
		switch l.Kind {
		case model.Context:
			oldCol = fmt.Sprintf("%3d", oldNo)
			newCol = fmt.Sprintf("%3d", newNo)
			oldNo++
			newNo++
		case model.Add:
			newCol = fmt.Sprintf("%3d", newNo)
			newNo++
		case model.Remove:
			oldCol = fmt.Sprintf("%3d", oldNo)
			oldNo++
		}
		fmt.Fprintf(&b, "[%02d] %s:%s %c %s\n", i, oldCol, newCol, l.Kind.Prefix(), l.Content)
	}
	b.WriteString("```\n")
	return b.String()
}

// DetailedReport renders every hunk in d as a sequence of detailed blocks.
func DetailedReport(d *diffparse.ParsedDiff) string {
	var b strings.Builder
	for _, h := range d.GetAllHunks() {
		b.WriteString(DetailedBlock(h))
		b.WriteString("\n")
	}
	return b.String()
}
