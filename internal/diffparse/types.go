// Package diffparse recovers a faithful, line-indexed structural model of a
// unified diff: Line, Hunk, FileDiff, and the top-level ParsedDiff.
package diffparse

import (
	"fmt"

	"github.com/nbonventre/pickaxe/internal/model"
)

// Line is a single tagged line of a hunk body. Content never includes the
// one-character unified-diff prefix.
type Line struct {
	Kind    model.LineKind
	Content string
}

// Hunk is a contiguous block of lines from one file.
type Hunk struct {
	File     string // the FileDiff's NewPath (or OldPath for deletions)
	Index    int    // zero-based position within the file's hunk list
	ID       string // "<file>:<index>", globally unique within a ParsedDiff
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	Context  string // the function-name fragment after the @@ header, if any
	Header   string // "@@ -oldStart,oldCount +newStart,newCount @@ context"
	Lines    []Line
}

// AddCount returns the number of Add lines in the hunk.
func (h *Hunk) AddCount() int {
	n := 0
	for _, l := range h.Lines {
		if l.Kind == model.Add {
			n++
		}
	}
	return n
}

// RemoveCount returns the number of Remove lines in the hunk.
func (h *Hunk) RemoveCount() int {
	n := 0
	for _, l := range h.Lines {
		if l.Kind == model.Remove {
			n++
		}
	}
	return n
}

// FileDiff groups the hunks belonging to one file.
type FileDiff struct {
	OldPath    string
	NewPath    string
	IsNew      bool
	IsDeleted  bool
	IsRenamed  bool
	Hunks      []*Hunk
}

// Path returns the display path for the file: the new path, falling back
// to the old path for deletions.
func (f *FileDiff) Path() string {
	if f.NewPath != "" {
		return f.NewPath
	}
	return f.OldPath
}

// ParsedDiff is the ordered sequence of FileDiff produced by Parse, with
// lookup helpers over the flattened hunk set.
type ParsedDiff struct {
	Files []*FileDiff
}

// GetAllHunks flattens every hunk across every file, in file/hunk order.
func (d *ParsedDiff) GetAllHunks() []*Hunk {
	var hunks []*Hunk
	for _, f := range d.Files {
		hunks = append(hunks, f.Hunks...)
	}
	return hunks
}

// GetHunk returns the hunk with the given id, or nil if none matches.
func (d *ParsedDiff) GetHunk(id string) *Hunk {
	for _, h := range d.GetAllHunks() {
		if h.ID == id {
			return h
		}
	}
	return nil
}

// GetFileHunks returns the hunks of the file whose new or old path matches.
func (d *ParsedDiff) GetFileHunks(path string) []*Hunk {
	for _, f := range d.Files {
		if f.NewPath == path || f.OldPath == path {
			return f.Hunks
		}
	}
	return nil
}

// GetFileDiff returns the FileDiff whose new or old path matches, or nil if
// none matches.
func (d *ParsedDiff) GetFileDiff(path string) *FileDiff {
	for _, f := range d.Files {
		if f.NewPath == path || f.OldPath == path {
			return f
		}
	}
	return nil
}

// hunkID builds the canonical "<file>:<index>" id.
func hunkID(file string, index int) string {
	return fmt.Sprintf("%s:%d", file, index)
}
