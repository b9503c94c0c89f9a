package diffhighlight

import (
	"testing"

	"github.com/nbonventre/pickaxe/internal/diffparse"
)

func TestHighlightHunk_GoFilePicksALexer(t *testing.T) {
	d := diffparse.Parse(`diff --git a/main.go b/main.go
--- a/main.go
+++ b/main.go
@@ -1,2 +1,3 @@
 package main
+func main() {}
 var x = 1
`)
	h := d.GetAllHunks()[0]
	lines := HighlightHunk(h)
	if len(lines) != len(h.Lines) {
		t.Fatalf("got %d highlighted lines, want %d", len(lines), len(h.Lines))
	}
	for i, l := range lines {
		if l.Plain() != h.Lines[i].Content {
			t.Errorf("line %d: Plain() = %q, want %q", i, l.Plain(), h.Lines[i].Content)
		}
	}
}

func TestHighlightHunk_UnknownExtensionFallsBackToPlain(t *testing.T) {
	d := diffparse.Parse(`diff --git a/notes.zzz b/notes.zzz
--- a/notes.zzz
+++ b/notes.zzz
@@ -1,1 +1,2 @@
 hello
+world
`)
	h := d.GetAllHunks()[0]
	lines := HighlightHunk(h)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[1].Plain() != "world" {
		t.Errorf("Plain() = %q, want %q", lines[1].Plain(), "world")
	}
}
