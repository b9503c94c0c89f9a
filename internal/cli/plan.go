package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nbonventre/pickaxe/internal/formatter"
)

var planCmd = &cobra.Command{
	Use:   "plan [commit-range]",
	Short: "Print a plan-document scaffold for the current diff",
	Long: `Parse the unstaged (or ranged) diff and print a plan-document
scaffold: one section per hunk with a pre-checked "Include entire hunk"
box and a fenced block of per-line checkboxes, ready to edit down into a
refined selection.

Examples:
  pickaxe plan                  # unstaged changes (working tree vs index)
  pickaxe plan HEAD~1..HEAD      # last commit
  git diff | pickaxe plan -      # pipe any diff`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlan,
}

func init() {
	planCmd.Flags().IntP("context", "C", 3, "lines of context around changes")
	planCmd.Flags().StringP("output", "o", "", "write the scaffold to a file instead of stdout")
}

func runPlan(cmd *cobra.Command, args []string) error {
	contextLines, _ := cmd.Flags().GetInt("context")

	raw, err := getDiff(args, contextLines)
	if err != nil {
		return err
	}

	d, ok := parseNonEmpty(raw)
	if !ok {
		fmt.Println("No changes to plan.")
		return nil
	}

	scaffold := formatter.PlanScaffold(d)

	outPath, _ := cmd.Flags().GetString("output")
	if outPath == "" {
		fmt.Print(scaffold)
		return nil
	}
	if err := os.WriteFile(outPath, []byte(scaffold), 0o644); err != nil {
		return fmt.Errorf("writing plan: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Plan scaffold written to %s\n", outPath)
	return nil
}
