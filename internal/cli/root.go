// Package cli implements the pickaxe command tree: parse a diff into a
// plan scaffold, apply a filled-in plan to the staging index, render a
// formatted report, run the interactive TUI, or serve the HTTP API.
package cli

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nbonventre/pickaxe/internal/diffparse"
)

var rootCmd = &cobra.Command{
	Use:   "pickaxe",
	Short: "Decompose a working tree's changes into small, atomic commits",
	Long: `pickaxe turns a set of uncommitted changes into a sequence of small,
logically atomic commits. Parse the current diff into a plan scaffold,
mark which hunks and lines belong to which commit, then apply each
selection to the staging index.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(versionCmd)
}

// getDiff resolves the diff text to operate on: stdin when args is ["-"],
// the named commit range when one is given, or the working tree's unstaged
// diff (against the index) with contextLines of surrounding context otherwise.
func getDiff(args []string, contextLines int) (string, error) {
	if len(args) == 1 && args[0] == "-" {
		data, err := os.ReadFile("/dev/stdin")
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	repoDir, err := gitRepoRoot()
	if err != nil {
		return "", fmt.Errorf("not in a git repository (or git not installed): %w", err)
	}

	if len(args) == 1 {
		return gitDiffRange(repoDir, args[0], contextLines)
	}

	return gitDiffWorkingTree(repoDir, contextLines)
}

func gitRepoRoot() (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

func gitDiffWorkingTree(repoDir string, contextLines int) (string, error) {
	cmd := exec.Command("git", "diff", fmt.Sprintf("-U%d", contextLines))
	cmd.Dir = repoDir
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git diff: %w", err)
	}
	return string(out), nil
}

func gitDiffRange(repoDir, rng string, contextLines int) (string, error) {
	cmd := exec.Command("git", "diff", fmt.Sprintf("-U%d", contextLines), rng)
	cmd.Dir = repoDir
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git diff %s: %w", rng, err)
	}
	return string(out), nil
}

// parseNonEmpty parses raw diff text and reports whether any files changed.
func parseNonEmpty(raw string) (*diffparse.ParsedDiff, bool) {
	if strings.TrimSpace(raw) == "" {
		return nil, false
	}
	d := diffparse.Parse(raw)
	if len(d.Files) == 0 {
		return nil, false
	}
	return d, true
}
