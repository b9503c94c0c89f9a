package stageexec

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nbonventre/pickaxe/internal/model"
	"github.com/nbonventre/pickaxe/internal/planmodel"
	"github.com/nbonventre/pickaxe/internal/vcs"
)

// CompensationError reports a compensation failure along with the files
// already modified by prior compensations in the same batch, so the caller
// can decide whether to revert them.
type CompensationError struct {
	Compensation planmodel.Compensation
	Reason       string
	FilesChanged []string
}

func (e *CompensationError) Error() string {
	return fmt.Sprintf("compensation for %s failed: %s", e.Compensation.File, e.Reason)
}

// commentMarkers maps a file extension to the (open, close) comment tokens
// used to bracket compensation content. Extensions not listed default to
// "//"; single-token styles leave close empty.
func commentMarkers(path string) (open, close string) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".py", ".rb", ".sh":
		return "#", ""
	case ".html":
		return "<!--", "-->"
	case ".css":
		return "/*", "*/"
	default:
		return "//", ""
	}
}

func markerLine(path, label string) string {
	open, close := commentMarkers(path)
	if close == "" {
		return open + " " + label
	}
	return open + " " + label + " " + close
}

// ApplyCompensations applies each compensation in order: locate the
// insertion anchor, splice marker-bracketed content into the file, write it
// back, then stage the file wholesale. It stops at the first failure.
func ApplyCompensations(ctx context.Context, vc vcs.Collaborator, root string, comps []planmodel.Compensation) ([]string, error) {
	var changed []string

	for _, c := range comps {
		fullPath := filepath.Join(root, c.File)
		raw, err := os.ReadFile(fullPath)
		if err != nil {
			return changed, &CompensationError{Compensation: c, Reason: fmt.Sprintf("could not read %s: %v", c.File, err), FilesChanged: changed}
		}

		lines := strings.Split(string(raw), "\n")
		insertAt, err := locateInsertionPoint(lines, c.Anchor)
		if err != nil {
			return changed, &CompensationError{Compensation: c, Reason: err.Error(), FilesChanged: changed}
		}

		block := []string{
			markerLine(c.File, "compensation begin"),
		}
		block = append(block, strings.Split(c.Content, "\n")...)
		block = append(block, markerLine(c.File, "compensation end"))

		newLines := make([]string, 0, len(lines)+len(block))
		newLines = append(newLines, lines[:insertAt]...)
		newLines = append(newLines, block...)
		newLines = append(newLines, lines[insertAt:]...)

		if err := os.WriteFile(fullPath, []byte(strings.Join(newLines, "\n")), 0o644); err != nil {
			return changed, &CompensationError{Compensation: c, Reason: fmt.Sprintf("could not write %s: %v", c.File, err), FilesChanged: changed}
		}
		changed = append(changed, c.File)

		if _, _, err := stageFile(ctx, vc, c.File); err != nil {
			return changed, &CompensationError{Compensation: c, Reason: err.Error(), FilesChanged: changed}
		}
	}

	return changed, nil
}

// locateInsertionPoint resolves an Anchor to a zero-based line index within
// lines, the position at which new content should be inserted.
func locateInsertionPoint(lines []string, a model.Anchor) (int, error) {
	switch a.Kind {
	case model.AnchorLineNumber:
		if a.LineNumber < 0 || a.LineNumber > len(lines) {
			return 0, fmt.Errorf("insertion anchor line %d out of range", a.LineNumber)
		}
		return a.LineNumber, nil
	case model.AnchorAfterPattern:
		for i, l := range lines {
			if strings.Contains(l, a.AfterPattern) {
				return i + 1, nil
			}
		}
		return 0, fmt.Errorf("insertion anchor pattern %q not found", a.AfterPattern)
	case model.AnchorBeforePattern:
		for i, l := range lines {
			if strings.Contains(l, a.BeforePattern) {
				return i, nil
			}
		}
		return 0, fmt.Errorf("insertion anchor pattern %q not found", a.BeforePattern)
	default:
		return 0, fmt.Errorf("unrecognized anchor kind")
	}
}

// stageFile stages a single file wholesale: it takes path's fragment of the
// collaborator's unstaged diff and applies it to the index with
// ApplyPatchWithRecount, so the interface never grows a "git add" primitive
// it doesn't otherwise need. A file with no unstaged changes is reported as
// staged without any apply call.
func stageFile(ctx context.Context, vc vcs.Collaborator, path string) (bool, string, error) {
	diff, err := vc.GetUnstagedDiff(ctx)
	if err != nil {
		return false, "", fmt.Errorf("could not read unstaged diff for %s: %w", path, err)
	}
	fragment := extractFileFragment(diff, path)
	if fragment == "" {
		return true, "", nil
	}
	result := vc.ApplyPatchWithRecount(ctx, fragment)
	if !result.Success {
		return false, result.Error, fmt.Errorf("could not stage %s: %s", path, result.Error)
	}
	return true, "", nil
}

// extractFileFragment returns the portion of a multi-file unified diff
// belonging to path, or "" if path has no changes in diff.
func extractFileFragment(diff, path string) string {
	marker := "diff --git a/" + path + " b/" + path
	idx := strings.Index(diff, marker)
	if idx < 0 {
		return ""
	}
	rest := diff[idx:]
	next := strings.Index(rest[1:], "\ndiff --git ")
	if next < 0 {
		return rest
	}
	return rest[:next+1]
}
