package formatter

import (
	"github.com/nbonventre/pickaxe/internal/diffparse"
	"github.com/nbonventre/pickaxe/internal/model"
	"github.com/nbonventre/pickaxe/internal/planmodel"
)

// PlanScaffold renders a plan document with every hunk pre-checked for
// whole inclusion, ready for an agent to edit down into a refined
// selection.
func PlanScaffold(d *diffparse.ParsedDiff) string {
	plan := &planmodel.StagingPlan{CommitMessage: "describe this commit"}
	for _, h := range d.GetAllHunks() {
		plan.Selections = append(plan.Selections, planmodel.HunkSelection{HunkID: h.ID, Mode: model.All})
	}
	return planmodel.RenderDocument(plan, d)
}
