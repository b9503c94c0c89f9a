package planmodel

import "github.com/nbonventre/pickaxe/internal/model"

// Worksheet is the structured alternative to the plan document (spec
// §4.3.3): identical selection semantics, expressed as nested Go values
// instead of checkbox text. The executor accepts either representation.
type Worksheet struct {
	CommitMessage string
	Files         []WorksheetFile
	Compensations []Compensation
}

// WorksheetFile groups one file's hunks; it carries no file-level default.
type WorksheetFile struct {
	Path  string
	Hunks []WorksheetHunk
}

// WorksheetHunk mirrors one HunkSelection.
type WorksheetHunk struct {
	HunkID string
	Mode   model.SelectionMode
	Lines  []WorksheetLine
}

// WorksheetLine carries one line's inclusion state and, for addition
// lines marked for edit, replacement content.
type WorksheetLine struct {
	Index      int
	Kind       model.LineKind
	Content    string
	Include    bool
	EditedText string // non-empty when this line's content should be replaced
}

// ToStagingPlan converts a Worksheet into the equivalent StagingPlan.
func (w *Worksheet) ToStagingPlan() *StagingPlan {
	plan := &StagingPlan{CommitMessage: w.CommitMessage}
	if plan.CommitMessage == "" {
		plan.CommitMessage = defaultCommitMessage
	}
	plan.Compensations = w.Compensations

	for _, f := range w.Files {
		for _, h := range f.Hunks {
			sel := HunkSelection{HunkID: h.HunkID, Mode: h.Mode}
			if h.Mode == model.Partial {
				sel.IncludeAdditions = map[int]bool{}
				sel.IncludeRemovals = map[int]bool{}
				sel.LineEdits = map[int]string{}
				for _, l := range h.Lines {
					if !l.Include {
						continue
					}
					switch l.Kind {
					case model.Add:
						sel.IncludeAdditions[l.Index] = true
						if l.EditedText != "" {
							sel.LineEdits[l.Index] = l.EditedText
						}
					case model.Remove:
						sel.IncludeRemovals[l.Index] = true
					}
				}
			}
			plan.Selections = append(plan.Selections, sel)
		}
	}
	return plan
}
