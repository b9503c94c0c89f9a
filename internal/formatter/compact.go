// Package formatter renders a parsed diff into the three LLM-facing shapes
// described in spec §4.5: a compact table, detailed per-hunk blocks, and a
// plan-document scaffold, plus advisory category tags, a complexity hint,
// and a simple/splittable/complex bucketization.
package formatter

import (
	"fmt"
	"strings"

	"github.com/nbonventre/pickaxe/internal/diffparse"
	"github.com/nbonventre/pickaxe/internal/hunkops"
)

// CompactTable renders one markdown row per hunk: id, file, line range, and
// a one-line summary of the change.
func CompactTable(d *diffparse.ParsedDiff) string {
	var b strings.Builder
	b.WriteString("| id | file | lines | summary |\n")
	b.WriteString("|---|---|---|---|\n")
	for _, h := range d.GetAllHunks() {
		fmt.Fprintf(&b, "| %s | %s | %d-%d | %s |\n", h.ID, h.File, h.NewStart, h.NewStart+h.NewCount-1, summaryLine(h))
	}
	return b.String()
}

// summaryLine is the "+N lines, -M lines" (or "no changes") summary shared
// by the compact table and the detailed block.
func summaryLine(h *diffparse.Hunk) string {
	add, rem := h.AddCount(), h.RemoveCount()
	if add == 0 && rem == 0 {
		return "no changes"
	}
	return fmt.Sprintf("+%d lines, -%d lines", add, rem)
}

const minContextGap = 1

// splitCount returns the number of sub-hunks IsSplittable's hunk would
// split into, using the default minimum context gap.
func splitCount(h *diffparse.Hunk) int {
	if !hunkops.IsSplittable(h, minContextGap) {
		return 0
	}
	return len(hunkops.SplitHunk(h, minContextGap))
}
