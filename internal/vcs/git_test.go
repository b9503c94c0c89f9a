package vcs

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func mustRun(t *testing.T, dir, name string, args ...string) {
	t.Helper()
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("%s %v: %v\n%s", name, args, err, out)
	}
}

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	mustRun(t, dir, "git", "init", "-q")
	mustRun(t, dir, "git", "config", "user.email", "test@example.com")
	mustRun(t, dir, "git", "config", "user.name", "Test User")
	write(t, filepath.Join(dir, "f.txt"), "one\ntwo\nthree\n")
	mustRun(t, dir, "git", "add", ".")
	mustRun(t, dir, "git", "commit", "-q", "-m", "init")
	return dir
}

func TestGit_UnstagedAndStagedDiff(t *testing.T) {
	dir := newRepo(t)
	write(t, filepath.Join(dir, "f.txt"), "one\ntwo changed\nthree\n")

	g := New(dir)
	ctx := context.Background()

	unstaged, err := g.GetUnstagedDiff(ctx)
	if err != nil {
		t.Fatalf("GetUnstagedDiff: %v", err)
	}
	if !strings.Contains(unstaged, "-two") || !strings.Contains(unstaged, "+two changed") {
		t.Fatalf("unexpected unstaged diff: %s", unstaged)
	}

	staged, err := g.GetStagedDiff(ctx)
	if err != nil {
		t.Fatalf("GetStagedDiff: %v", err)
	}
	if staged != "" {
		t.Fatalf("expected empty staged diff before add, got %q", staged)
	}

	mustRun(t, dir, "git", "add", "f.txt")
	staged, err = g.GetStagedDiff(ctx)
	if err != nil {
		t.Fatalf("GetStagedDiff after add: %v", err)
	}
	if !strings.Contains(staged, "+two changed") {
		t.Fatalf("expected staged diff to show the change, got %s", staged)
	}
}

func TestGit_CheckAndApplyPatchToIndex(t *testing.T) {
	dir := newRepo(t)
	write(t, filepath.Join(dir, "f.txt"), "one\ntwo changed\nthree\n")

	g := New(dir)
	ctx := context.Background()

	patch, err := g.GetUnstagedDiff(ctx)
	if err != nil {
		t.Fatalf("GetUnstagedDiff: %v", err)
	}

	check := g.CheckPatch(ctx, patch)
	if !check.Applies {
		t.Fatalf("expected patch to check out, got error %q", check.Error)
	}

	apply := g.ApplyPatchToIndex(ctx, patch)
	if !apply.Success {
		t.Fatalf("expected apply to succeed, got error %q", apply.Error)
	}

	files, err := g.GetStagedFiles(ctx)
	if err != nil {
		t.Fatalf("GetStagedFiles: %v", err)
	}
	if len(files) != 1 || files[0] != "f.txt" {
		t.Fatalf("GetStagedFiles = %v, want [f.txt]", files)
	}
}

func TestGit_CheckPatchRejectsGarbage(t *testing.T) {
	dir := newRepo(t)
	g := New(dir)
	check := g.CheckPatch(context.Background(), "not a patch\n")
	if check.Applies {
		t.Fatalf("expected garbage patch to be rejected")
	}
	if check.Error == "" {
		t.Fatalf("expected a non-empty error for a rejected patch")
	}
}

func TestGit_CommitAndStatus(t *testing.T) {
	dir := newRepo(t)
	write(t, filepath.Join(dir, "f.txt"), "one\ntwo changed\nthree\n")
	mustRun(t, dir, "git", "add", "f.txt")

	g := New(dir)
	ctx := context.Background()

	result := g.Commit(ctx, "update f")
	if !result.Success {
		t.Fatalf("expected commit to succeed, got error %q", result.Error)
	}
	if result.Hash == "" {
		t.Fatalf("expected a commit hash")
	}

	status, err := g.GetStatus(ctx)
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if strings.TrimSpace(status) != "" {
		t.Fatalf("expected clean status after commit, got %q", status)
	}
}

func TestGit_CommitEmptyMessageRejected(t *testing.T) {
	dir := newRepo(t)
	g := New(dir)
	result := g.Commit(context.Background(), "   ")
	if result.Success {
		t.Fatalf("expected empty commit message to be rejected")
	}
}

func TestGit_ResetStaging(t *testing.T) {
	dir := newRepo(t)
	write(t, filepath.Join(dir, "f.txt"), "one\ntwo changed\nthree\n")
	mustRun(t, dir, "git", "add", "f.txt")

	g := New(dir)
	ctx := context.Background()
	if err := g.ResetStaging(ctx); err != nil {
		t.Fatalf("ResetStaging: %v", err)
	}
	files, err := g.GetStagedFiles(ctx)
	if err != nil {
		t.Fatalf("GetStagedFiles: %v", err)
	}
	if len(files) != 0 {
		t.Fatalf("expected no staged files after reset, got %v", files)
	}
}
