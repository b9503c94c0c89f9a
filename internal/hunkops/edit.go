package hunkops

import (
	"fmt"

	"github.com/nbonventre/pickaxe/internal/diffparse"
	"github.com/nbonventre/pickaxe/internal/model"
)

// EditOptions selects, by position in the hunk's original Lines sequence
// (never by per-type counter), which Add lines to drop and which Remove
// lines to demote to Context.
type EditOptions struct {
	RemoveAdditions map[int]bool
	KeepRemovals    map[int]bool
}

// EditHunk produces a freshly constructed hunk by walking h.Lines in order:
// an Add line whose index is in RemoveAdditions is dropped; a Remove line
// whose index is in KeepRemovals is rewritten to Context; every other line
// is retained as-is. OldCount, NewCount, and Header are recomputed; the
// original hunk is never mutated.
func EditHunk(h *diffparse.Hunk, opts EditOptions) *diffparse.Hunk {
	out := &diffparse.Hunk{
		File:     h.File,
		Index:    h.Index,
		ID:       h.ID,
		OldStart: h.OldStart,
		NewStart: h.NewStart,
		Context:  h.Context,
	}

	for i, l := range h.Lines {
		switch l.Kind {
		case model.Add:
			if opts.RemoveAdditions[i] {
				continue
			}
			out.Lines = append(out.Lines, l)
		case model.Remove:
			if opts.KeepRemovals[i] {
				out.Lines = append(out.Lines, diffparse.Line{Kind: model.Context, Content: l.Content})
				continue
			}
			out.Lines = append(out.Lines, l)
		default:
			out.Lines = append(out.Lines, l)
		}
	}

	out.OldCount, out.NewCount = countOldNew(out.Lines)
	out.Header = formatHeader(out.OldStart, out.OldCount, out.NewStart, out.NewCount, out.Context)
	return out
}

// ApplyLineEdits rewrites the content of specific lines (by index into
// Lines) before any add/remove selection is applied, producing a new hunk
// whose counts are unchanged (content-only edits never change line kind).
func ApplyLineEdits(h *diffparse.Hunk, edits map[int]string) *diffparse.Hunk {
	if len(edits) == 0 {
		return h
	}
	out := &diffparse.Hunk{
		File:     h.File,
		Index:    h.Index,
		ID:       h.ID,
		OldStart: h.OldStart,
		OldCount: h.OldCount,
		NewStart: h.NewStart,
		NewCount: h.NewCount,
		Context:  h.Context,
		Header:   h.Header,
	}
	out.Lines = make([]diffparse.Line, len(h.Lines))
	for i, l := range h.Lines {
		if content, ok := edits[i]; ok {
			l.Content = content
		}
		out.Lines[i] = l
	}
	return out
}

// SelectLines builds an EditOptions that keeps only the Add lines at the
// given indices within a single hunk's Lines sequence, dropping every other
// Add line. Removals are untouched (not line-selectable through this path).
func SelectLines(h *diffparse.Hunk, includeAdditions map[int]bool) EditOptions {
	remove := map[int]bool{}
	for i, l := range h.Lines {
		if l.Kind == model.Add && !includeAdditions[i] {
			remove[i] = true
		}
	}
	return EditOptions{RemoveAdditions: remove}
}

// HunkID formats the canonical whole-hunk id "<file>:<index>".
func HunkID(file string, index int) string {
	return fmt.Sprintf("%s:%d", file, index)
}

// LineID formats the single-line id "<file>:<hunkIndex>:<lineIndex>".
func LineID(file string, hunkIndex, lineIndex int) string {
	return fmt.Sprintf("%s:%d:%d", file, hunkIndex, lineIndex)
}
