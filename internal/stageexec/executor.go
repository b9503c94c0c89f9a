// Package stageexec executes a StagingPlan against a parsed diff by driving
// a vcs.Collaborator, and applies compensations to the working tree.
package stageexec

import (
	"context"
	"fmt"

	"github.com/nbonventre/pickaxe/internal/diffparse"
	"github.com/nbonventre/pickaxe/internal/hunkops"
	"github.com/nbonventre/pickaxe/internal/model"
	"github.com/nbonventre/pickaxe/internal/planmodel"
	"github.com/nbonventre/pickaxe/internal/vcs"
)

// Result is the outcome of running a plan: either every selection staged
// cleanly, or execution halted at the first failure with the hunks staged
// so far preserved in the index and reported here.
type Result struct {
	Success     bool
	StagedHunks []string
	Error       string
}

// Run applies plan's selections, in order, against d, staging each via vc.
// Execution halts at the first failure; everything staged before that point
// remains in the index.
func Run(ctx context.Context, vc vcs.Collaborator, plan *planmodel.StagingPlan, d *diffparse.ParsedDiff) Result {
	var staged []string

	for _, sel := range plan.Selections {
		if sel.Mode == model.None {
			continue
		}

		h := d.GetHunk(sel.HunkID)
		if h == nil {
			return Result{Success: false, StagedHunks: staged, Error: fmt.Sprintf("Hunk not found: %s", sel.HunkID)}
		}

		fd := d.GetFileDiff(h.File)
		newOrDeleted := fd != nil && (fd.IsNew || fd.IsDeleted)

		edited := resolveEditedHunk(h, sel)

		var patch string
		if newOrDeleted {
			patch = hunkops.GenerateFilePatch(fd, []*diffparse.Hunk{edited})
		} else {
			patch = hunkops.GeneratePatch([]*diffparse.Hunk{edited})
		}

		check := vc.CheckPatch(ctx, patch)
		if !check.Applies {
			return Result{Success: false, StagedHunks: staged, Error: fmt.Sprintf("Patch for %s won't apply: %s", sel.HunkID, check.Error)}
		}

		var apply vcs.PatchResult
		if newOrDeleted {
			apply = vc.ApplyPatchWithRecount(ctx, patch)
		} else {
			apply = vc.ApplyPatchToIndex(ctx, patch)
		}
		if !apply.Success {
			return Result{Success: false, StagedHunks: staged, Error: fmt.Sprintf("Failed to stage %s: %s", sel.HunkID, apply.Error)}
		}

		staged = append(staged, sel.HunkID)
	}

	return Result{Success: true, StagedHunks: staged}
}

// resolveEditedHunk computes the step-3 "edited hunk" per selection: the
// hunk as-is for a clean All selection, otherwise the result of editHunk
// over the selection's include-sets. Line edits are applied first, while
// their indices still match the original Lines sequence.
func resolveEditedHunk(h *diffparse.Hunk, sel planmodel.HunkSelection) *diffparse.Hunk {
	if sel.Mode == model.All && len(sel.LineEdits) == 0 {
		return h
	}

	src := hunkops.ApplyLineEdits(h, sel.LineEdits)

	opts := hunkops.EditOptions{
		RemoveAdditions: map[int]bool{},
		KeepRemovals:    map[int]bool{},
	}
	if sel.Mode == model.Partial {
		for i, l := range h.Lines {
			if l.Kind == model.Add && !sel.IncludeAdditions[i] {
				opts.RemoveAdditions[i] = true
			}
			if l.Kind == model.Remove && !sel.IncludeRemovals[i] {
				opts.KeepRemovals[i] = true
			}
		}
	}

	return hunkops.EditHunk(src, opts)
}
