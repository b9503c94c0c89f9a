// Package vcs wraps the version-control operations the plan executor needs
// behind a small "collaborator" interface (spec §6), implemented by
// shelling out to the git binary the way gitx.go and diff.go do.
package vcs

import "context"

// PatchResult is the structured outcome of an operation that either
// succeeds or fails with the underlying tool's diagnostic text attached.
type PatchResult struct {
	Success bool
	Error   string
}

// CheckResult is the outcome of a dry-run patch check.
type CheckResult struct {
	Applies bool
	Error   string
}

// CommitResult is the outcome of a commit attempt.
type CommitResult struct {
	Success bool
	Hash    string
	Error   string
}

// Collaborator is the VCS-facing interface the executor and CLI depend on.
// Every method blocks until its subprocess invocations finish (Commit runs
// two: the commit and a hash lookup); none retries or pools.
type Collaborator interface {
	GetUnstagedDiff(ctx context.Context) (string, error)
	GetStagedDiff(ctx context.Context) (string, error)
	GetDiffWithContext(ctx context.Context, n int) (string, error)
	CheckPatch(ctx context.Context, patchText string) CheckResult
	ApplyPatchToIndex(ctx context.Context, patchText string) PatchResult
	ApplyPatchWithRecount(ctx context.Context, patchText string) PatchResult
	ReversePatch(ctx context.Context, patchText string) PatchResult
	ResetStaging(ctx context.Context) error
	GetStagedFiles(ctx context.Context) ([]string, error)
	Commit(ctx context.Context, message string) CommitResult
	GetStatus(ctx context.Context) (string, error)
}
