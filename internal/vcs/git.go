package vcs

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Git is the git-backed Collaborator implementation. Patch text is always
// piped over stdin, never passed as an argument, so it tolerates arbitrarily
// large patches without hitting OS argument-length limits.
type Git struct {
	RepoDir string
}

// New returns a Collaborator rooted at repoDir.
func New(repoDir string) *Git {
	return &Git{RepoDir: repoDir}
}

func (g *Git) run(ctx context.Context, stdin string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.RepoDir
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), strings.TrimSpace(stderr.String()), err
}

func (g *Git) GetUnstagedDiff(ctx context.Context) (string, error) {
	out, stderr, err := g.run(ctx, "", "diff")
	if err != nil {
		return "", fmt.Errorf("git diff: %w: %s", err, stderr)
	}
	return out, nil
}

func (g *Git) GetStagedDiff(ctx context.Context) (string, error) {
	out, stderr, err := g.run(ctx, "", "diff", "--cached")
	if err != nil {
		return "", fmt.Errorf("git diff --cached: %w: %s", err, stderr)
	}
	return out, nil
}

func (g *Git) GetDiffWithContext(ctx context.Context, n int) (string, error) {
	out, stderr, err := g.run(ctx, "", "diff", fmt.Sprintf("-U%d", n))
	if err != nil {
		return "", fmt.Errorf("git diff -U%d: %w: %s", n, err, stderr)
	}
	return out, nil
}

func (g *Git) CheckPatch(ctx context.Context, patchText string) CheckResult {
	_, stderr, err := g.run(ctx, patchText, "apply", "--check", "--cached")
	if err != nil {
		return CheckResult{Applies: false, Error: stderr}
	}
	return CheckResult{Applies: true}
}

func (g *Git) ApplyPatchToIndex(ctx context.Context, patchText string) PatchResult {
	_, stderr, err := g.run(ctx, patchText, "apply", "--cached")
	if err != nil {
		return PatchResult{Success: false, Error: stderr}
	}
	return PatchResult{Success: true}
}

func (g *Git) ApplyPatchWithRecount(ctx context.Context, patchText string) PatchResult {
	_, stderr, err := g.run(ctx, patchText, "apply", "--cached", "--recount")
	if err != nil {
		return PatchResult{Success: false, Error: stderr}
	}
	return PatchResult{Success: true}
}

func (g *Git) ReversePatch(ctx context.Context, patchText string) PatchResult {
	_, stderr, err := g.run(ctx, patchText, "apply", "--cached", "--reverse")
	if err != nil {
		return PatchResult{Success: false, Error: stderr}
	}
	return PatchResult{Success: true}
}

func (g *Git) ResetStaging(ctx context.Context) error {
	_, stderr, err := g.run(ctx, "", "reset")
	if err != nil {
		return fmt.Errorf("git reset: %w: %s", err, stderr)
	}
	return nil
}

func (g *Git) GetStagedFiles(ctx context.Context) ([]string, error) {
	out, stderr, err := g.run(ctx, "", "diff", "--cached", "--name-only")
	if err != nil {
		return nil, fmt.Errorf("git diff --cached --name-only: %w: %s", err, stderr)
	}
	var files []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			files = append(files, line)
		}
	}
	return files, nil
}

func (g *Git) Commit(ctx context.Context, message string) CommitResult {
	if strings.TrimSpace(message) == "" {
		return CommitResult{Success: false, Error: "empty commit message"}
	}
	_, stderr, err := g.run(ctx, "", "commit", "-m", message)
	if err != nil {
		return CommitResult{Success: false, Error: stderr}
	}
	hash, _, hashErr := g.run(ctx, "", "rev-parse", "HEAD")
	result := CommitResult{Success: true}
	if hashErr == nil {
		result.Hash = strings.TrimSpace(hash)
	}
	return result
}

func (g *Git) GetStatus(ctx context.Context) (string, error) {
	out, stderr, err := g.run(ctx, "", "status", "--porcelain=v1")
	if err != nil {
		return "", fmt.Errorf("git status: %w: %s", err, stderr)
	}
	return out, nil
}
