// Package hunkops implements the hunk manipulator: splitting hunks at
// context gaps, editing hunks to drop additions or demote removals, id-based
// selection, and unified-diff regeneration.
package hunkops

import (
	"fmt"

	"github.com/nbonventre/pickaxe/internal/diffparse"
	"github.com/nbonventre/pickaxe/internal/model"
)

// IsSplittable reports whether h can be split under the given minimum
// context gap: there must be change lines (Add or Remove) on both sides of
// at least one run of >= minContextGap consecutive Context lines.
func IsSplittable(h *diffparse.Hunk, minContextGap int) bool {
	if minContextGap < 1 {
		minContextGap = 1
	}
	gaps := findGaps(h.Lines, minContextGap)
	if len(gaps) == 0 {
		return false
	}
	for _, g := range gaps {
		if hasChangeBefore(h.Lines, g.start) && hasChangeAfter(h.Lines, g.end) {
			return true
		}
	}
	return false
}

type gap struct {
	start, end int // [start, end) indices into Lines, all Context
}

// findGaps locates maximal runs of Context lines of length >= minLen.
func findGaps(lines []diffparse.Line, minLen int) []gap {
	var gaps []gap
	i := 0
	for i < len(lines) {
		if lines[i].Kind != model.Context {
			i++
			continue
		}
		start := i
		for i < len(lines) && lines[i].Kind == model.Context {
			i++
		}
		if i-start >= minLen {
			gaps = append(gaps, gap{start: start, end: i})
		}
	}
	return gaps
}

func hasChangeBefore(lines []diffparse.Line, idx int) bool {
	for i := 0; i < idx; i++ {
		if lines[i].Kind != model.Context {
			return true
		}
	}
	return false
}

func hasChangeAfter(lines []diffparse.Line, idx int) bool {
	for i := idx; i < len(lines); i++ {
		if lines[i].Kind != model.Context {
			return true
		}
	}
	return false
}

// SplitHunk divides h into an ordered sequence of sub-hunks at gaps of at
// least minContextGap consecutive Context lines that separate changes on
// both sides. The first minContextGap lines of a gap become trailing
// context of the preceding sub-hunk; any surplus becomes leading context of
// the following sub-hunk. A non-splittable hunk returns []*Hunk{h}.
func SplitHunk(h *diffparse.Hunk, minContextGap int) []*diffparse.Hunk {
	if !IsSplittable(h, minContextGap) {
		return []*diffparse.Hunk{h}
	}

	gaps := splitPoints(h.Lines, minContextGap)

	var subs []*diffparse.Hunk
	start := 0
	oldLine, newLine := h.OldStart, h.NewStart
	subIndex := 0
	for _, sp := range gaps {
		segment := h.Lines[start:sp.boundary]
		subs = append(subs, buildSubHunk(h, segment, oldLine, newLine, subIndex))
		oldLine += countAdvance(segment, true)
		newLine += countAdvance(segment, false)
		start = sp.boundary
		subIndex++
	}
	// final segment
	segment := h.Lines[start:]
	subs = append(subs, buildSubHunk(h, segment, oldLine, newLine, subIndex))

	return subs
}

type splitPoint struct {
	boundary int // index into h.Lines where the preceding sub-hunk ends
}

// splitPoints finds, among the qualifying gaps (change on both sides), the
// boundary index where the preceding sub-hunk's trailing context ends.
func splitPoints(lines []diffparse.Line, minContextGap int) []splitPoint {
	var points []splitPoint
	for _, g := range findGaps(lines, minContextGap) {
		if hasChangeBefore(lines, g.start) && hasChangeAfter(lines, g.end) {
			points = append(points, splitPoint{boundary: g.start + minContextGap})
		}
	}
	return points
}

func buildSubHunk(parent *diffparse.Hunk, segment []diffparse.Line, oldStart, newStart, subIndex int) *diffparse.Hunk {
	oldCount, newCount := countOldNew(segment)
	sub := &diffparse.Hunk{
		File:     parent.File,
		Index:    parent.Index,
		ID:       fmt.Sprintf("%s:%d.%d", parent.File, parent.Index, subIndex),
		OldStart: oldStart,
		OldCount: oldCount,
		NewStart: newStart,
		NewCount: newCount,
		Context:  parent.Context,
		Lines:    append([]diffparse.Line(nil), segment...),
	}
	sub.Header = formatHeader(sub.OldStart, sub.OldCount, sub.NewStart, sub.NewCount, sub.Context)
	return sub
}

func countOldNew(lines []diffparse.Line) (oldCount, newCount int) {
	for _, l := range lines {
		if l.Kind != model.Add {
			oldCount++
		}
		if l.Kind != model.Remove {
			newCount++
		}
	}
	return
}

// countAdvance returns how far a position advances through the old (if
// old is true) or new file content by consuming the given lines.
func countAdvance(lines []diffparse.Line, old bool) int {
	n := 0
	for _, l := range lines {
		switch l.Kind {
		case model.Context:
			n++
		case model.Remove:
			if old {
				n++
			}
		case model.Add:
			if !old {
				n++
			}
		}
	}
	return n
}

func formatHeader(oldStart, oldCount, newStart, newCount int, context string) string {
	h := fmt.Sprintf("@@ -%d,%d +%d,%d @@", oldStart, oldCount, newStart, newCount)
	if context != "" {
		h += " " + context
	}
	return h
}
