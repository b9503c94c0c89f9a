// Package planmodel represents staging selections at file, hunk, line, and
// line-edit granularity, and translates between that model and the
// human/agent-editable plan document described in spec §4.3.
package planmodel

import "github.com/nbonventre/pickaxe/internal/model"

// HunkSelection names one hunk's inclusion in a staging plan.
type HunkSelection struct {
	HunkID           string
	Mode             model.SelectionMode
	IncludeAdditions map[int]bool      // valid when Mode == Partial
	IncludeRemovals  map[int]bool      // valid when Mode == Partial
	LineEdits        map[int]string    // lineIndex -> replacement content
	Note             string
}

// Compensation is a temporary insertion into a working-tree file, applied
// by the executor to keep a partial commit compilable or runnable.
type Compensation struct {
	File      string
	Type      model.CompensationType
	Anchor    model.Anchor
	Content   string
	Reason    string
	RemovedBy string
}

// StagingPlan is the top-level document: a commit message, an ordered list
// of hunk selections, and optional compensations.
type StagingPlan struct {
	CommitMessage string
	Selections    []HunkSelection
	Compensations []Compensation
}

const defaultCommitMessage = "untitled commit"
