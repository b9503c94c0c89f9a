package planmodel

import (
	"strings"
	"testing"

	"github.com/nbonventre/pickaxe/internal/diffparse"
	"github.com/nbonventre/pickaxe/internal/model"
)

const twoHunkDiff = `diff --git a/a.go b/a.go
index 111..222 100644
--- a/a.go
+++ b/a.go
@@ -1,3 +1,4 @@
 package a
+// added
 func f() {}
 func g() {}
@@ -10,3 +11,4 @@ func h() {
 	x := 1
+	y := 2
-	z := 3
+	z := 4
 	return x
`

func parsedTwoHunks(t *testing.T) *diffparse.ParsedDiff {
	t.Helper()
	d := diffparse.Parse(twoHunkDiff)
	if len(d.GetAllHunks()) != 2 {
		t.Fatalf("expected 2 hunks, got %d", len(d.GetAllHunks()))
	}
	return d
}

// TestRenderParseRoundTrip_EntireHunkAndPartial covers scenario S5: build a
// plan marking one hunk entirely included and a second hunk partially
// included by addition index, render it to document form, then parse that
// text back and check the reconstructed plan agrees.
func TestRenderParseRoundTrip_EntireHunkAndPartial(t *testing.T) {
	d := parsedTwoHunks(t)
	hunks := d.GetAllHunks()
	first, second := hunks[0], hunks[1]

	plan := &StagingPlan{
		CommitMessage: "split changes",
		Selections: []HunkSelection{
			{HunkID: first.ID, Mode: model.All},
			{
				HunkID:           second.ID,
				Mode:             model.Partial,
				IncludeAdditions: map[int]bool{1: true},
				IncludeRemovals:  map[int]bool{},
			},
		},
	}

	doc := RenderDocument(plan, d)

	if !strings.Contains(doc, "Commit message: split changes") {
		t.Fatalf("rendered doc missing commit message:\n%s", doc)
	}
	if !strings.Contains(doc, "### "+first.ID) {
		t.Fatalf("rendered doc missing section for %s:\n%s", first.ID, doc)
	}
	if !strings.Contains(doc, "[x] Include entire hunk") {
		t.Fatalf("rendered doc missing entire-hunk checkbox:\n%s", doc)
	}

	got := ParseDocument(doc)
	if got.CommitMessage != "split changes" {
		t.Errorf("CommitMessage = %q, want %q", got.CommitMessage, "split changes")
	}

	byID := map[string]HunkSelection{}
	for _, s := range got.Selections {
		byID[s.HunkID] = s
	}

	s1, ok := byID[first.ID]
	if !ok {
		t.Fatalf("missing selection for %s", first.ID)
	}
	if s1.Mode != model.All {
		t.Errorf("first hunk mode = %v, want All", s1.Mode)
	}

	s2, ok := byID[second.ID]
	if !ok {
		t.Fatalf("missing selection for %s", second.ID)
	}
	if s2.Mode != model.Partial {
		t.Errorf("second hunk mode = %v, want Partial", s2.Mode)
	}
	if !s2.IncludeAdditions[1] {
		t.Errorf("second hunk IncludeAdditions[1] = false, want true")
	}
	if len(s2.IncludeAdditions) != 1 {
		t.Errorf("second hunk IncludeAdditions = %v, want only index 1", s2.IncludeAdditions)
	}
}

func TestParseDocument_DefaultsToNoneWithoutMarkers(t *testing.T) {
	d := parsedTwoHunks(t)
	first := d.GetAllHunks()[0]

	doc := "Commit message: nothing selected\n\n### " + first.ID + "\n[ ] Include entire hunk\n```\n" +
		"   [00] package a\n" +
		"[ ][01]+// added\n" +
		"   [02] func f() {}\n" +
		"   [03] func g() {}\n```\n\n"

	plan := ParseDocument(doc)
	if len(plan.Selections) != 1 {
		t.Fatalf("expected 1 selection, got %d", len(plan.Selections))
	}
	if plan.Selections[0].Mode != model.None {
		t.Errorf("mode = %v, want None", plan.Selections[0].Mode)
	}
}

func TestParseDocument_EditDirective(t *testing.T) {
	d := parsedTwoHunks(t)
	second := d.GetAllHunks()[1]

	doc := "### " + second.ID + "\n[ ] Include entire hunk\n```\n" +
		"   [00] x := 1\n" +
		"[x][01]+y := 2\n" +
		"[ ][02]-z := 3\n" +
		"[ ][03]+z := 4\n" +
		"   [04] return x\n```\n" +
		"EDIT [3]: z := 5\n\n"

	plan := ParseDocument(doc)
	if len(plan.Selections) != 1 {
		t.Fatalf("expected 1 selection, got %d", len(plan.Selections))
	}
	sel := plan.Selections[0]
	if sel.Mode != model.Partial {
		t.Fatalf("mode = %v, want Partial", sel.Mode)
	}
	if !sel.IncludeAdditions[1] {
		t.Errorf("IncludeAdditions[1] = false, want true")
	}
	if sel.LineEdits[3] != "z := 5" {
		t.Errorf("LineEdits[3] = %q, want %q", sel.LineEdits[3], "z := 5")
	}
}

func TestParseCompensations_AfterLineWithReasonAndRemovedBy(t *testing.T) {
	doc := "COMPENSATE main.go AFTER LINE 10:\n" +
		"  import \"fmt\"\n" +
		"REASON: keep build green until the real import lands\n" +
		"REMOVED_BY: main.go:2\n\n"

	comps := ParseCompensations(doc)
	if len(comps) != 1 {
		t.Fatalf("expected 1 compensation, got %d", len(comps))
	}
	c := comps[0]
	if c.File != "main.go" {
		t.Errorf("File = %q, want main.go", c.File)
	}
	if c.Anchor.Kind != model.AnchorLineNumber || c.Anchor.LineNumber != 10 {
		t.Errorf("Anchor = %+v, want line 10", c.Anchor)
	}
	if c.Content != "import \"fmt\"" {
		t.Errorf("Content = %q", c.Content)
	}
	if c.RemovedBy != "main.go:2" {
		t.Errorf("RemovedBy = %q", c.RemovedBy)
	}
}

func TestParseCompensations_AfterAndBeforePattern(t *testing.T) {
	doc := `COMPENSATE util.go AFTER "func Helper(":
  // placeholder

COMPENSATE util.go BEFORE "func Main(":
  var _ = 1
`
	comps := ParseCompensations(doc)
	if len(comps) != 2 {
		t.Fatalf("expected 2 compensations, got %d", len(comps))
	}
	if comps[0].Anchor.Kind != model.AnchorAfterPattern || comps[0].Anchor.AfterPattern != "func Helper(" {
		t.Errorf("comps[0].Anchor = %+v", comps[0].Anchor)
	}
	if comps[1].Anchor.Kind != model.AnchorBeforePattern || comps[1].Anchor.BeforePattern != "func Main(" {
		t.Errorf("comps[1].Anchor = %+v", comps[1].Anchor)
	}
}

func TestRenderCompensation_RoundTrip(t *testing.T) {
	c := Compensation{
		File:   "x.go",
		Type:   model.AddAfterLine,
		Anchor: model.Anchor{Kind: model.AnchorLineNumber, LineNumber: 5},
		Content: "fmt.Println(\"x\")",
		Reason:  "keep x referenced",
	}
	plan := &StagingPlan{CommitMessage: "c", Compensations: []Compensation{c}}
	d := diffparse.Parse("")
	doc := RenderDocument(plan, d)

	got := ParseCompensations(doc)
	if len(got) != 1 {
		t.Fatalf("expected 1 compensation, got %d", len(got))
	}
	if got[0].File != c.File || got[0].Content != c.Content || got[0].Reason != c.Reason {
		t.Errorf("round trip mismatch: got %+v, want %+v", got[0], c)
	}
}

func TestWorksheetToStagingPlan(t *testing.T) {
	ws := &Worksheet{
		CommitMessage: "from worksheet",
		Files: []WorksheetFile{
			{
				Path: "a.go",
				Hunks: []WorksheetHunk{
					{
						HunkID: "a.go:0",
						Mode:   model.Partial,
						Lines: []WorksheetLine{
							{Index: 0, Kind: model.Context, Content: "ctx", Include: false},
							{Index: 1, Kind: model.Add, Content: "new", Include: true, EditedText: "new!"},
							{Index: 2, Kind: model.Remove, Content: "old", Include: false},
						},
					},
				},
			},
		},
	}

	plan := ws.ToStagingPlan()
	if plan.CommitMessage != "from worksheet" {
		t.Errorf("CommitMessage = %q", plan.CommitMessage)
	}
	if len(plan.Selections) != 1 {
		t.Fatalf("expected 1 selection, got %d", len(plan.Selections))
	}
	sel := plan.Selections[0]
	if sel.Mode != model.Partial {
		t.Fatalf("mode = %v, want Partial", sel.Mode)
	}
	if !sel.IncludeAdditions[1] {
		t.Errorf("IncludeAdditions[1] = false, want true")
	}
	if sel.IncludeRemovals[2] {
		t.Errorf("IncludeRemovals[2] = true, want false")
	}
	if sel.LineEdits[1] != "new!" {
		t.Errorf("LineEdits[1] = %q, want new!", sel.LineEdits[1])
	}
}

func TestParseDocument_FileLevelDefaultAppliesWithoutHunkMarkers(t *testing.T) {
	d := parsedTwoHunks(t)
	first := d.GetAllHunks()[0]

	doc := "[x] " + first.File + "\n\n### " + first.ID + "\n[ ] Include entire hunk\n```\n" +
		"   [00] package a\n```\n\n"

	plan := ParseDocument(doc)
	if len(plan.Selections) != 1 {
		t.Fatalf("expected 1 selection, got %d", len(plan.Selections))
	}
	if plan.Selections[0].Mode != model.All {
		t.Errorf("mode = %v, want All (from file-level default)", plan.Selections[0].Mode)
	}
}
