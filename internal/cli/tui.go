package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nbonventre/pickaxe/internal/planmodel"
	"github.com/nbonventre/pickaxe/internal/stageexec"
	"github.com/nbonventre/pickaxe/internal/tui"
	"github.com/nbonventre/pickaxe/internal/vcs"
)

var tuiCmd = &cobra.Command{
	Use:   "tui [commit-range]",
	Short: "Open an interactive session to build a staging plan",
	Long: `Open an interactive Bubble Tea session over the current diff: browse
hunks, cycle each between none/all/partial, and for partial hunks toggle
individual addition/removal lines. Saving prints the resulting plan
document to stdout, writes it to the file named by -o, or, with
--execute, applies it immediately.

Examples:
  pickaxe tui                      # unstaged changes (working tree vs index)
  pickaxe tui HEAD~1..HEAD          # last commit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().IntP("context", "C", 3, "lines of context around changes")
	tuiCmd.Flags().StringP("output", "o", "", "write the plan document to a file")
	tuiCmd.Flags().Bool("execute", false, "apply the resulting plan to the staging index immediately")
	tuiCmd.Flags().String("message", "untitled commit", "initial commit message for the plan")
}

func runTUI(cmd *cobra.Command, args []string) error {
	contextLines, _ := cmd.Flags().GetInt("context")

	raw, err := getDiff(args, contextLines)
	if err != nil {
		return err
	}

	d, ok := parseNonEmpty(raw)
	if !ok {
		fmt.Println("No changes to review.")
		return nil
	}

	msg, _ := cmd.Flags().GetString("message")

	plan, saved, err := tui.Run(d, msg)
	if err != nil {
		return err
	}
	if !saved || plan == nil {
		return nil
	}

	execute, _ := cmd.Flags().GetBool("execute")
	if execute {
		repoDir, err := gitRepoRoot()
		if err != nil {
			return err
		}
		vc := vcs.New(repoDir)
		result := stageexec.Run(context.Background(), vc, plan, d)
		for _, id := range result.StagedHunks {
			fmt.Printf("staged %s\n", id)
		}
		if !result.Success {
			fmt.Fprintf(os.Stderr, "%s\n", result.Error)
			os.Exit(1)
		}
		return nil
	}

	doc := planmodel.RenderDocument(plan, d)
	outPath, _ := cmd.Flags().GetString("output")
	if outPath == "" {
		fmt.Print(doc)
		return nil
	}
	if err := os.WriteFile(outPath, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("writing plan: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Plan written to %s\n", outPath)
	return nil
}
