package diffparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/nbonventre/pickaxe/internal/model"
)

var (
	fileHeaderRe = regexp.MustCompile(`^diff --git a/(.+) b/(.+)$`)
	hunkHeaderRe = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@[ \t]*(.*)$`)
	renameFromRe = regexp.MustCompile(`^rename from (.+)$`)
	renameToRe   = regexp.MustCompile(`^rename to (.+)$`)
)

// metadataPrefixes lists the file-header metadata lines consumed silently
// between a "diff --git" line and the first hunk or --- /+++ pair.
var metadataPrefixes = []string{
	"index ",
	"old mode ",
	"new mode ",
	"similarity index ",
	"Binary files ",
}

// Parse parses unified-diff text into a ParsedDiff. The parser is total: it
// never returns an error for malformed input, skipping whatever it cannot
// recognize and recovering the structure it can.
func Parse(text string) *ParsedDiff {
	lines := strings.Split(text, "\n")
	result := &ParsedDiff{}

	var cur *FileDiff
	var curHunk *Hunk
	hunkIndex := 0

	flushHunk := func() {
		if curHunk != nil && cur != nil {
			curHunk.File = cur.Path()
			curHunk.Index = hunkIndex
			curHunk.ID = hunkID(cur.Path(), hunkIndex)
			cur.Hunks = append(cur.Hunks, curHunk)
			hunkIndex++
		}
		curHunk = nil
	}
	flushFile := func() {
		flushHunk()
		if cur != nil {
			result.Files = append(result.Files, cur)
		}
		cur = nil
		hunkIndex = 0
	}

	i := 0
	for i < len(lines) {
		line := lines[i]

		if m := fileHeaderRe.FindStringSubmatch(line); m != nil {
			flushFile()
			cur = &FileDiff{OldPath: m[1], NewPath: m[2]}
			cur.IsRenamed = cur.OldPath != cur.NewPath
			i++
			i = consumeFileMetadata(lines, i, cur)
			continue
		}

		if cur == nil {
			// Ignore anything before the first file header.
			i++
			continue
		}

		if m := hunkHeaderRe.FindStringSubmatch(line); m != nil {
			flushHunk()
			curHunk = newHunkFromHeader(m)
			i++
			continue
		}

		if curHunk != nil {
			if len(line) > 0 {
				switch line[0] {
				case ' ':
					curHunk.Lines = append(curHunk.Lines, Line{Kind: model.Context, Content: line[1:]})
				case '+':
					curHunk.Lines = append(curHunk.Lines, Line{Kind: model.Add, Content: line[1:]})
				case '-':
					curHunk.Lines = append(curHunk.Lines, Line{Kind: model.Remove, Content: line[1:]})
				}
				// Any other leading character (including '\') is skipped.
			}
			// A truly blank line terminates nothing; just skip it.
		}
		i++
	}
	flushFile()

	return result
}

// consumeFileMetadata advances past metadata lines ("new file mode",
// "deleted file mode", "index ...", "--- ...", "+++ ...", etc.) following a
// file header, setting IsNew/IsDeleted/IsRenamed where applicable.
func consumeFileMetadata(lines []string, i int, f *FileDiff) int {
	for i < len(lines) {
		line := lines[i]

		switch {
		case strings.HasPrefix(line, "new file mode"):
			f.IsNew = true
		case strings.HasPrefix(line, "deleted file mode"):
			f.IsDeleted = true
		case strings.HasPrefix(line, "rename from "):
			if m := renameFromRe.FindStringSubmatch(line); m != nil {
				f.OldPath = m[1]
			}
			f.IsRenamed = true
		case strings.HasPrefix(line, "rename to "):
			if m := renameToRe.FindStringSubmatch(line); m != nil {
				f.NewPath = m[1]
			}
			f.IsRenamed = true
		case strings.HasPrefix(line, "--- "):
			// consumed, old path already known from the file header
		case strings.HasPrefix(line, "+++ "):
			// consumed, new path already known from the file header
		case hasAnyPrefix(line, metadataPrefixes):
			// consumed silently
		default:
			return i
		}
		i++
	}
	return i
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func newHunkFromHeader(m []string) *Hunk {
	oldStart, _ := strconv.Atoi(m[1])
	oldCount := 1
	if m[2] != "" {
		oldCount, _ = strconv.Atoi(m[2])
	}
	newStart, _ := strconv.Atoi(m[3])
	newCount := 1
	if m[4] != "" {
		newCount, _ = strconv.Atoi(m[4])
	}
	ctx := strings.TrimSpace(m[5])

	return &Hunk{
		OldStart: oldStart,
		OldCount: oldCount,
		NewStart: newStart,
		NewCount: newCount,
		Context:  ctx,
		Header:   formatHeader(oldStart, oldCount, newStart, newCount, ctx),
	}
}

// ParseHunkHeader parses a single "@@ -s[,c] +s[,c] @@ context" line,
// returning nil if it doesn't match.
func ParseHunkHeader(line string) *Hunk {
	m := hunkHeaderRe.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	return newHunkFromHeader(m)
}

func formatHeader(oldStart, oldCount, newStart, newCount int, context string) string {
	h := fmt.Sprintf("@@ -%d,%d +%d,%d @@", oldStart, oldCount, newStart, newCount)
	if context != "" {
		h += " " + context
	}
	return h
}

// ValidateHunk checks the count invariants of spec §3: oldCount must equal
// the number of non-Add lines, and newCount the number of non-Remove lines.
// It reports the first violation found, or "" if the hunk is consistent.
func ValidateHunk(h *Hunk) string {
	nonAdd, nonRemove := 0, 0
	for _, l := range h.Lines {
		if l.Kind != model.Add {
			nonAdd++
		}
		if l.Kind != model.Remove {
			nonRemove++
		}
	}
	if h.OldCount != nonAdd {
		return fmt.Sprintf("Old count mismatch: header says %d, body has %d", h.OldCount, nonAdd)
	}
	if h.NewCount != nonRemove {
		return fmt.Sprintf("New count mismatch: header says %d, body has %d", h.NewCount, nonRemove)
	}
	return ""
}
