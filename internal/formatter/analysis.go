package formatter

import (
	"github.com/nbonventre/pickaxe/internal/diffparse"
	"github.com/nbonventre/pickaxe/internal/hunkops"
)

// ComplexityHint scores a hunk: 1 by default, 4 if it has more than one
// addition or more than one removal, capped to 3 if it's splittable.
func ComplexityHint(h *diffparse.Hunk) int {
	hint := 1
	if h.AddCount() > 1 || h.RemoveCount() > 1 {
		hint = 4
	}
	if hint > 3 && hunkops.IsSplittable(h, minContextGap) {
		hint = 3
	}
	return hint
}

// Analysis buckets a diff's hunks by complexity hint.
type Analysis struct {
	SimpleHunks     []string
	SplittableHunks []string
	ComplexHunks    []string
}

// Analyze builds the simpleHunks/splittableHunks/complexHunks buckets
// described in spec §4.5, classifying each hunk by its ComplexityHint and
// splittability.
func Analyze(d *diffparse.ParsedDiff) Analysis {
	var a Analysis
	for _, h := range d.GetAllHunks() {
		hint := ComplexityHint(h)
		switch {
		case hint == 1:
			a.SimpleHunks = append(a.SimpleHunks, h.ID)
		case hint == 3:
			a.SplittableHunks = append(a.SplittableHunks, h.ID)
		default:
			a.ComplexHunks = append(a.ComplexHunks, h.ID)
		}
	}
	return a
}
