package planmodel

import (
	"bufio"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/nbonventre/pickaxe/internal/model"
)

var (
	commitMessageRe = regexp.MustCompile(`^Commit message:\s*(.*)$`)
	fileCheckboxRe  = regexp.MustCompile(`^\[([ xX~])\]\s+(\S.*)$`)
	hunkSectionRe   = regexp.MustCompile(`^### (.+):(\d+(?:\.\d+)?)\s*$`)
	entireHunkRe    = regexp.MustCompile(`(?i)^\[x\]\s*Include entire hunk\s*$`)
	lineEntryRe     = regexp.MustCompile(`^(\[[ xXeE]\]|   )\[\s*(\d+)\]([ +\-])(.*)$`)
	editDirectiveRe = regexp.MustCompile(`^EDIT\s*\[\s*(\d+)\]:\s*(.*)$`)
	fenceRe         = regexp.MustCompile("^```")
)

// ParseDocument parses a plan document (spec §4.3.1) into a StagingPlan.
// It never errors: unrecognized lines are skipped, mirroring the Diff
// Parser's total-parsing policy.
func ParseDocument(text string) *StagingPlan {
	plan := &StagingPlan{CommitMessage: defaultCommitMessage}

	fileMode := map[string]model.SelectionMode{} // "all-or-none" defaults; Partial marks "deferred"

	var cur *hunkState
	var hunks []*hunkState

	finishHunk := func() {
		if cur != nil {
			hunks = append(hunks, cur)
		}
		cur = nil
	}

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		line := scanner.Text()

		if m := commitMessageRe.FindStringSubmatch(line); m != nil {
			msg := strings.TrimSpace(m[1])
			if msg != "" {
				plan.CommitMessage = msg
			}
			continue
		}

		if m := hunkSectionRe.FindStringSubmatch(line); m != nil {
			finishHunk()
			cur = &hunkState{
				hunkID:     fmt.Sprintf("%s:%s", m[1], m[2]),
				filePath:   m[1],
				includeAdd: map[int]bool{},
				includeRem: map[int]bool{},
				edits:      map[int]string{},
			}
			continue
		}

		if cur == nil {
			// File-level checkbox, only meaningful outside a hunk section.
			if m := fileCheckboxRe.FindStringSubmatch(line); m != nil {
				path := strings.TrimSpace(m[2])
				switch strings.ToLower(m[1]) {
				case "x":
					fileMode[path] = model.All
				case "~":
					fileMode[path] = model.Partial // "deferred" sentinel
				default:
					fileMode[path] = model.None
				}
			}
			continue
		}

		if fenceRe.MatchString(line) {
			cur.inFence = !cur.inFence
			continue
		}

		if entireHunkRe.MatchString(line) {
			cur.entireHunk = true
			cur.sawAnyMarker = true
			continue
		}

		if m := editDirectiveRe.FindStringSubmatch(line); m != nil {
			idx, err := strconv.Atoi(strings.TrimSpace(m[1]))
			if err == nil {
				cur.edits[idx] = m[2]
				cur.sawAnyMarker = true
			}
			continue
		}

		if cur.inFence {
			if m := lineEntryRe.FindStringSubmatch(line); m != nil {
				checkbox := m[1]
				idx, err := strconv.Atoi(strings.TrimSpace(m[2]))
				if err != nil {
					continue
				}
				prefix := m[3]
				mark := ""
				if checkbox != "   " {
					mark = strings.ToLower(strings.Trim(checkbox, "[]"))
				}
				switch prefix {
				case "+":
					if mark == "x" || mark == "e" {
						cur.includeAdd[idx] = true
						cur.sawAnyMarker = true
					}
				case "-":
					if mark == "x" {
						cur.includeRem[idx] = true
						cur.sawAnyMarker = true
					}
				}
			}
		}
	}
	finishHunk()

	for _, hs := range hunks {
		sel := resolveSelection(hs, fileMode)
		plan.Selections = append(plan.Selections, sel)
	}

	plan.Compensations = ParseCompensations(text)

	return plan
}

// hunkState accumulates the markers seen within one "### <file>:<index>"
// section while scanning the document line by line.
type hunkState struct {
	hunkID       string
	filePath     string
	inFence      bool
	entireHunk   bool
	includeAdd   map[int]bool
	includeRem   map[int]bool
	edits        map[int]string
	sawAnyMarker bool
}

func resolveSelection(hs *hunkState, fileMode map[string]model.SelectionMode) HunkSelection {
	sel := HunkSelection{HunkID: hs.hunkID}
	if len(hs.edits) > 0 {
		sel.LineEdits = hs.edits
	}

	if hs.entireHunk {
		sel.Mode = model.All
		if len(sel.LineEdits) == 0 {
			return sel
		}
		return sel
	}

	if hs.sawAnyMarker {
		sel.Mode = model.Partial
		sel.IncludeAdditions = hs.includeAdd
		sel.IncludeRemovals = hs.includeRem
		return sel
	}

	// Nothing explicit in the hunk section itself: fall back to the
	// file-level default, if any.
	if def, ok := fileMode[hs.filePath]; ok {
		switch def {
		case model.All:
			sel.Mode = model.All
			return sel
		case model.None:
			sel.Mode = model.None
			return sel
		}
	}

	sel.Mode = model.None
	return sel
}
