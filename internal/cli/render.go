package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nbonventre/pickaxe/internal/diffparse"
	"github.com/nbonventre/pickaxe/internal/formatter"
	"github.com/nbonventre/pickaxe/internal/hunkops"
)

var renderCmd = &cobra.Command{
	Use:   "render [commit-range]",
	Short: "Print a compact hunk table and detailed per-hunk blocks",
	Long: `Parse the diff and print the Formatter's compact table and detailed
per-hunk report. Unlike "plan", this is read-only — there is no checkbox
scaffold to edit, just a human-readable (or machine-readable, with
--format json) rendering.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().IntP("context", "C", 3, "lines of context around changes")
	renderCmd.Flags().StringP("format", "f", "text", "output format: text, markdown, json")
}

func runRender(cmd *cobra.Command, args []string) error {
	contextLines, _ := cmd.Flags().GetInt("context")

	raw, err := getDiff(args, contextLines)
	if err != nil {
		return err
	}

	d, ok := parseNonEmpty(raw)
	if !ok {
		fmt.Println("No changes to render.")
		return nil
	}

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "json":
		return renderJSON(d)
	case "markdown", "text":
		fmt.Println(formatter.CompactTable(d))
		fmt.Println(formatter.DetailedReport(d))
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

type jsonHunk struct {
	ID         string   `json:"id"`
	File       string   `json:"file"`
	OldStart   int      `json:"old_start"`
	OldCount   int      `json:"old_count"`
	NewStart   int      `json:"new_start"`
	NewCount   int      `json:"new_count"`
	Complexity int      `json:"complexity"`
	Categories []string `json:"categories,omitempty"`
	Splittable bool     `json:"splittable"`
}

type jsonReport struct {
	Hunks          []jsonHunk `json:"hunks"`
	SimpleHunks    int        `json:"simple_hunks"`
	SplittableHunks int       `json:"splittable_hunks"`
	ComplexHunks   int        `json:"complex_hunks"`
}

func renderJSON(d *diffparse.ParsedDiff) error {
	analysis := formatter.Analyze(d)
	report := jsonReport{
		SimpleHunks:     len(analysis.SimpleHunks),
		SplittableHunks: len(analysis.SplittableHunks),
		ComplexHunks:    len(analysis.ComplexHunks),
	}
	for _, h := range d.GetAllHunks() {
		report.Hunks = append(report.Hunks, jsonHunk{
			ID:         h.ID,
			File:       h.File,
			OldStart:   h.OldStart,
			OldCount:   h.OldCount,
			NewStart:   h.NewStart,
			NewCount:   h.NewCount,
			Complexity: formatter.ComplexityHint(h),
			Categories: formatter.CategoryTags(h),
			Splittable: hunkops.IsSplittable(h, 1),
		})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
