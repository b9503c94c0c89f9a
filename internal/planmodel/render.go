package planmodel

import (
	"fmt"
	"strings"

	"github.com/nbonventre/pickaxe/internal/diffparse"
	"github.com/nbonventre/pickaxe/internal/model"
)

// RenderDocument renders a StagingPlan back into the checkbox document form
// described in spec §4.3, resolving each selection against the hunk it
// names in d. Hunks with no corresponding selection are rendered as None.
func RenderDocument(plan *StagingPlan, d *diffparse.ParsedDiff) string {
	byID := map[string]HunkSelection{}
	for _, s := range plan.Selections {
		byID[s.HunkID] = s
	}

	var b strings.Builder
	msg := plan.CommitMessage
	if msg == "" {
		msg = defaultCommitMessage
	}
	fmt.Fprintf(&b, "Commit message: %s\n\n", msg)

	for _, h := range d.GetAllHunks() {
		sel, ok := byID[h.ID]
		if !ok {
			sel = HunkSelection{HunkID: h.ID, Mode: model.None}
		}
		renderHunkSection(&b, h, sel)
	}

	for _, c := range plan.Compensations {
		renderCompensation(&b, c)
	}

	return b.String()
}

func renderHunkSection(b *strings.Builder, h *diffparse.Hunk, sel HunkSelection) {
	fmt.Fprintf(b, "### %s\n", h.ID)
	checked := " "
	if sel.Mode == model.All {
		checked = "x"
	}
	fmt.Fprintf(b, "[%s] Include entire hunk\n", checked)
	b.WriteString("```\n")
	for i, l := range h.Lines {
		idx := fmt.Sprintf("[%02d]", i)
		switch l.Kind {
		case model.Context:
			fmt.Fprintf(b, "   %s %s\n", idx, l.Content)
		case model.Add:
			mark := "[ ]"
			if sel.Mode == model.All {
				mark = "[x]"
			} else if sel.Mode == model.Partial && sel.IncludeAdditions[i] {
				mark = "[x]"
			}
			fmt.Fprintf(b, "%s%s+%s\n", mark, idx, l.Content)
		case model.Remove:
			mark := "[ ]"
			if sel.Mode == model.All {
				mark = "[x]"
			} else if sel.Mode == model.Partial && sel.IncludeRemovals[i] {
				mark = "[x]"
			}
			fmt.Fprintf(b, "%s%s-%s\n", mark, idx, l.Content)
		}
	}
	b.WriteString("```\n")
	for idx, content := range sel.LineEdits {
		fmt.Fprintf(b, "EDIT [%d]: %s\n", idx, content)
	}
	b.WriteString("\n")
}

func renderCompensation(b *strings.Builder, c Compensation) {
	switch c.Anchor.Kind {
	case model.AnchorLineNumber:
		fmt.Fprintf(b, "COMPENSATE %s AFTER LINE %d:\n", c.File, c.Anchor.LineNumber)
	case model.AnchorAfterPattern:
		fmt.Fprintf(b, "COMPENSATE %s AFTER %q:\n", c.File, c.Anchor.AfterPattern)
	case model.AnchorBeforePattern:
		fmt.Fprintf(b, "COMPENSATE %s BEFORE %q:\n", c.File, c.Anchor.BeforePattern)
	}
	for _, line := range strings.Split(c.Content, "\n") {
		fmt.Fprintf(b, "  %s\n", line)
	}
	if c.Reason != "" {
		fmt.Fprintf(b, "REASON: %s\n", c.Reason)
	}
	if c.RemovedBy != "" {
		fmt.Fprintf(b, "REMOVED_BY: %s\n", c.RemovedBy)
	}
	b.WriteString("\n")
}
