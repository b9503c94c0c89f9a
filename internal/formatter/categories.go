package formatter

import (
	"regexp"
	"strings"

	"github.com/nbonventre/pickaxe/internal/diffparse"
	"github.com/nbonventre/pickaxe/internal/model"
)

// categoryPatterns are simple regex probes over aggregated added/removed
// line content; matches are advisory tags, not a static-analysis verdict.
var categoryPatterns = map[string]*regexp.Regexp{
	"logging":            regexp.MustCompile(`(?i)\b(log|logger|println|printf|fmt\.Print)\b`),
	"imports":             regexp.MustCompile(`(?i)^\s*(import|from\s+\S+\s+import|require\s*\()`),
	"function-definition": regexp.MustCompile(`(?i)\b(func|def|function)\b\s*\w*\s*\(`),
	"error-handling":      regexp.MustCompile(`(?i)\b(err|error|exception|panic|recover|try|catch|rescue)\b`),
	"async":               regexp.MustCompile(`(?i)\b(go\s+\w+\(|async|await|goroutine|promise|channel)\b`),
	"conditional":         regexp.MustCompile(`(?i)\b(if|else|switch|case)\b`),
}

// CategoryTags returns the advisory category names whose pattern matches
// any changed line in h, sorted for stable output.
func CategoryTags(h *diffparse.Hunk) []string {
	var content []string
	for _, l := range h.Lines {
		if l.Kind == model.Add || l.Kind == model.Remove {
			content = append(content, l.Content)
		}
	}
	aggregated := strings.Join(content, "\n")

	var tags []string
	for _, name := range categoryOrder {
		if categoryPatterns[name].MatchString(aggregated) {
			tags = append(tags, name)
		}
	}
	return tags
}

var categoryOrder = []string{
	"logging", "imports", "function-definition", "error-handling", "async", "conditional",
}
