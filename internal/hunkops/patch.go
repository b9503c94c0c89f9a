package hunkops

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nbonventre/pickaxe/internal/diffparse"
)

// GeneratePatch groups hunks by file, sorts each file's hunks by OldStart
// ascending, and emits a modification-style unified diff: a "diff --git"
// header, "---"/"+++" lines, and each hunk's header and body. It never
// emits new-file or deleted-file headers (spec §4.2's open question);
// callers staging hunks of a new or deleted file use GenerateFilePatch
// instead, which does emit them. An empty input yields an empty string.
func GeneratePatch(hunks []*diffparse.Hunk) string {
	if len(hunks) == 0 {
		return ""
	}

	byFile := map[string][]*diffparse.Hunk{}
	var files []string
	for _, h := range hunks {
		if _, ok := byFile[h.File]; !ok {
			files = append(files, h.File)
		}
		byFile[h.File] = append(byFile[h.File], h)
	}
	sort.Strings(files)

	var b strings.Builder
	for _, file := range files {
		fileHunks := sortedByOldStart(byFile[file])

		fmt.Fprintf(&b, "diff --git a/%s b/%s\n", file, file)
		fmt.Fprintf(&b, "--- a/%s\n", file)
		fmt.Fprintf(&b, "+++ b/%s\n", file)
		writeHunkBodies(&b, fileHunks)
	}

	return b.String()
}

// GenerateFilePatch emits one file's patch fragment, choosing its header
// from fd's new/deleted status: "new file mode"/"--- /dev/null" for a
// FileDiff marked IsNew, "deleted file mode"/"+++ /dev/null" for one marked
// IsDeleted, and the ordinary modification header otherwise (delegating to
// GeneratePatch). This is the "surrounding system" spec §9 leaves
// responsible for new/deleted-file handling: the core generator stays
// modification-only, and callers that know a hunk belongs to a new or
// deleted file route through here instead, so the emitted patch carries
// the file-mode and /dev/null lines git needs to recognize the file
// doesn't yet (or no longer) exist.
func GenerateFilePatch(fd *diffparse.FileDiff, hunks []*diffparse.Hunk) string {
	if len(hunks) == 0 {
		return ""
	}
	if fd == nil || (!fd.IsNew && !fd.IsDeleted) {
		return GeneratePatch(hunks)
	}

	file := fd.Path()
	fileHunks := sortedByOldStart(hunks)

	var b strings.Builder
	fmt.Fprintf(&b, "diff --git a/%s b/%s\n", file, file)
	switch {
	case fd.IsNew:
		b.WriteString("new file mode 100644\n")
		b.WriteString("--- /dev/null\n")
		fmt.Fprintf(&b, "+++ b/%s\n", file)
	case fd.IsDeleted:
		b.WriteString("deleted file mode 100644\n")
		fmt.Fprintf(&b, "--- a/%s\n", file)
		b.WriteString("+++ /dev/null\n")
	}
	writeHunkBodies(&b, fileHunks)

	return b.String()
}

// sortedByOldStart returns hunks sorted by OldStart ascending, leaving the
// input slice untouched.
func sortedByOldStart(hunks []*diffparse.Hunk) []*diffparse.Hunk {
	sorted := make([]*diffparse.Hunk, len(hunks))
	copy(sorted, hunks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OldStart < sorted[j].OldStart
	})
	return sorted
}

// writeHunkBodies writes each hunk's header line followed by its prefixed
// body lines, in order.
func writeHunkBodies(b *strings.Builder, hunks []*diffparse.Hunk) {
	for _, h := range hunks {
		b.WriteString(h.Header)
		b.WriteString("\n")
		for _, l := range h.Lines {
			b.WriteByte(l.Kind.Prefix())
			b.WriteString(l.Content)
			b.WriteString("\n")
		}
	}
}
