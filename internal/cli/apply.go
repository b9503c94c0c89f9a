package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nbonventre/pickaxe/internal/planmodel"
	"github.com/nbonventre/pickaxe/internal/stageexec"
	"github.com/nbonventre/pickaxe/internal/vcs"
)

var applyCmd = &cobra.Command{
	Use:   "apply <plan-file> [commit-range]",
	Short: "Apply a filled-in plan document to the staging index",
	Long: `Parse a plan document, resolve each selection against the current
diff, and stage each one in order via git apply --cached. Execution halts
at the first selection that fails to apply or stage; everything staged
before that point remains in the index.

Exit codes:
  0 — every selection staged (and, with --commit, the commit succeeded)
  1 — execution halted partway through, or the --commit commit failed
  2 — compensations failed after a successful staging pass`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runApply,
}

func init() {
	applyCmd.Flags().IntP("context", "C", 3, "lines of context around changes")
	applyCmd.Flags().Bool("commit", false, "commit with the plan's commit message after staging")
	applyCmd.Flags().Bool("compensate", false, "apply the plan's COMPENSATE blocks to the working tree")
}

func runApply(cmd *cobra.Command, args []string) error {
	planPath := args[0]
	diffArgs := args[1:]

	contextLines, _ := cmd.Flags().GetInt("context")

	planText, err := os.ReadFile(planPath)
	if err != nil {
		return fmt.Errorf("reading plan %s: %w", planPath, err)
	}
	plan := planmodel.ParseDocument(string(planText))

	raw, err := getDiff(diffArgs, contextLines)
	if err != nil {
		return err
	}
	d, ok := parseNonEmpty(raw)
	if !ok {
		fmt.Println("No changes to apply.")
		return nil
	}

	repoDir, err := gitRepoRoot()
	if err != nil {
		return err
	}
	vc := vcs.New(repoDir)

	ctx := context.Background()
	result := stageexec.Run(ctx, vc, plan, d)

	for _, id := range result.StagedHunks {
		fmt.Printf("staged %s\n", id)
	}

	if !result.Success {
		fmt.Fprintf(os.Stderr, "%s\n", result.Error)
		os.Exit(1)
	}

	compensate, _ := cmd.Flags().GetBool("compensate")
	if compensate && len(plan.Compensations) > 0 {
		changed, compErr := stageexec.ApplyCompensations(ctx, vc, repoDir, plan.Compensations)
		for _, f := range changed {
			fmt.Printf("compensated %s\n", f)
		}
		if compErr != nil {
			fmt.Fprintf(os.Stderr, "%s\n", compErr)
			os.Exit(2)
		}
	}

	commit, _ := cmd.Flags().GetBool("commit")
	if commit {
		cr := vc.Commit(ctx, plan.CommitMessage)
		if !cr.Success {
			fmt.Fprintf(os.Stderr, "commit failed: %s\n", cr.Error)
			os.Exit(1)
		}
		fmt.Printf("committed %s\n", cr.Hash)
	}

	return nil
}
