package diffparse

import (
	"testing"

	"github.com/nbonventre/pickaxe/internal/model"
)

const simpleInsertionDiff = `diff --git a/file.txt b/file.txt
index abc1234..def5678 100644
--- a/file.txt
+++ b/file.txt
@@ -1,3 +1,4 @@
 line 1
+added line
 line 2
 line 3
`

func TestParse_SimpleInsertion(t *testing.T) {
	d := Parse(simpleInsertionDiff)
	if len(d.Files) != 1 {
		t.Fatalf("len(Files) = %d, want 1", len(d.Files))
	}
	f := d.Files[0]
	if len(f.Hunks) != 1 {
		t.Fatalf("len(Hunks) = %d, want 1", len(f.Hunks))
	}
	h := f.Hunks[0]
	if h.ID != "file.txt:0" {
		t.Errorf("ID = %q, want file.txt:0", h.ID)
	}
	if h.OldCount != 3 || h.NewCount != 4 {
		t.Errorf("OldCount/NewCount = %d/%d, want 3/4", h.OldCount, h.NewCount)
	}
	wantKinds := []model.LineKind{model.Context, model.Add, model.Context, model.Context}
	if len(h.Lines) != len(wantKinds) {
		t.Fatalf("len(Lines) = %d, want %d", len(h.Lines), len(wantKinds))
	}
	for i, k := range wantKinds {
		if h.Lines[i].Kind != k {
			t.Errorf("Lines[%d].Kind = %v, want %v", i, h.Lines[i].Kind, k)
		}
	}
	if h.Lines[1].Content != "added line" {
		t.Errorf("Lines[1].Content = %q, want %q", h.Lines[1].Content, "added line")
	}
}

const multiFileDiff = `diff --git a/a.go b/a.go
index 111..222 100644
--- a/a.go
+++ b/a.go
@@ -1,2 +1,2 @@
-old
+new
 ctx
@@ -10,1 +10,2 @@
 ctx2
+added
diff --git a/b.go b/b.go
new file mode 100644
index 0000000..333
--- /dev/null
+++ b/b.go
@@ -0,0 +1,2 @@
+line one
+line two
`

func TestParse_MultiFileMultiHunk(t *testing.T) {
	d := Parse(multiFileDiff)
	if len(d.Files) != 2 {
		t.Fatalf("len(Files) = %d, want 2", len(d.Files))
	}
	a := d.Files[0]
	if len(a.Hunks) != 2 {
		t.Fatalf("len(a.Hunks) = %d, want 2", len(a.Hunks))
	}
	if a.Hunks[0].ID != "a.go:0" || a.Hunks[1].ID != "a.go:1" {
		t.Errorf("hunk ids = %q, %q", a.Hunks[0].ID, a.Hunks[1].ID)
	}
	b := d.Files[1]
	if !b.IsNew {
		t.Error("b.go should be marked IsNew")
	}
	if len(b.Hunks) != 1 || b.Hunks[0].ID != "b.go:0" {
		t.Errorf("b hunks = %+v", b.Hunks)
	}
}

func TestParse_IDUniqueness(t *testing.T) {
	d := Parse(multiFileDiff)
	seen := map[string]bool{}
	for _, h := range d.GetAllHunks() {
		if seen[h.ID] {
			t.Errorf("duplicate hunk id %q", h.ID)
		}
		seen[h.ID] = true
	}
}

func TestParse_MalformedInputIsTotal(t *testing.T) {
	garbage := "this is not a diff\nnor is this\n@@ nonsense @@\n"
	d := Parse(garbage)
	if len(d.Files) != 0 {
		t.Errorf("expected no files from garbage input, got %d", len(d.Files))
	}
}

func TestParse_SkipsUnrecognizedLinePrefix(t *testing.T) {
	diff := `diff --git a/f.txt b/f.txt
--- a/f.txt
+++ b/f.txt
@@ -1,1 +1,1 @@
\ No newline at end of file
-old
+new
`
	d := Parse(diff)
	h := d.GetHunk("f.txt:0")
	if h == nil {
		t.Fatal("hunk not found")
	}
	if len(h.Lines) != 2 {
		t.Fatalf("len(Lines) = %d, want 2 (backslash line skipped)", len(h.Lines))
	}
}

func TestParseHunkHeader(t *testing.T) {
	h := ParseHunkHeader("@@ -5,2 +5,3 @@ func main() {")
	if h == nil {
		t.Fatal("expected non-nil hunk")
	}
	if h.OldStart != 5 || h.OldCount != 2 || h.NewStart != 5 || h.NewCount != 3 {
		t.Errorf("got %+v", h)
	}
	if h.Context != "func main() {" {
		t.Errorf("Context = %q", h.Context)
	}

	if ParseHunkHeader("not a header") != nil {
		t.Error("expected nil for non-matching line")
	}
}

func TestParseHunkHeader_OmittedCountsDefaultToOne(t *testing.T) {
	h := ParseHunkHeader("@@ -5 +7 @@")
	if h == nil {
		t.Fatal("expected non-nil hunk")
	}
	if h.OldCount != 1 || h.NewCount != 1 {
		t.Errorf("OldCount/NewCount = %d/%d, want 1/1", h.OldCount, h.NewCount)
	}
}

func TestValidateHunk(t *testing.T) {
	h := &Hunk{
		OldCount: 2,
		NewCount: 2,
		Lines: []Line{
			{Kind: model.Context, Content: "a"},
			{Kind: model.Remove, Content: "b"},
			{Kind: model.Add, Content: "c"},
		},
	}
	// nonAdd = context + remove = 2 (matches OldCount)
	// nonRemove = context + add = 2 (matches NewCount)
	if msg := ValidateHunk(h); msg != "" {
		t.Errorf("ValidateHunk = %q, want \"\"", msg)
	}

	bad := &Hunk{OldCount: 5, NewCount: 2, Lines: h.Lines}
	if msg := ValidateHunk(bad); msg == "" {
		t.Error("expected an old count mismatch message")
	} else if !containsOldCountMismatch(msg) {
		t.Errorf("message = %q, want it to mention Old count mismatch", msg)
	}
}

func containsOldCountMismatch(s string) bool {
	return len(s) >= len("Old count mismatch") && s[:len("Old count mismatch")] == "Old count mismatch"
}
