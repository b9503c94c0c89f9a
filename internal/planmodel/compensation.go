package planmodel

import (
	"bufio"
	"regexp"
	"strconv"
	"strings"

	"github.com/nbonventre/pickaxe/internal/model"
)

var (
	compensateAfterLineRe = regexp.MustCompile(`^COMPENSATE\s+(\S+)\s+AFTER LINE\s+(\d+):\s*$`)
	compensateAfterPatRe  = regexp.MustCompile(`^COMPENSATE\s+(\S+)\s+AFTER\s+"(.*)":\s*$`)
	compensateBeforePatRe = regexp.MustCompile(`^COMPENSATE\s+(\S+)\s+BEFORE\s+"(.*)":\s*$`)
	reasonRe              = regexp.MustCompile(`^REASON:\s*(.*)$`)
	removedByRe           = regexp.MustCompile(`^REMOVED_BY:\s*(.*)$`)
	hunkOrCompensateRe    = regexp.MustCompile(`^(###\s|COMPENSATE\s)`)
)

// ParseCompensations scans the document for COMPENSATE blocks (spec
// §4.3.2). Each block's content lines are its subsequent two-space-indented
// or blank lines, terminated by an unindented line, a REASON:/REMOVED_BY:
// metadata line, or the next COMPENSATE/hunk header.
func ParseCompensations(text string) []Compensation {
	var comps []Compensation
	var cur *Compensation
	var contentLines []string

	flush := func() {
		if cur != nil {
			cur.Content = strings.Join(trimTrailingBlank(contentLines), "\n")
			comps = append(comps, *cur)
		}
		cur = nil
		contentLines = nil
	}

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		line := scanner.Text()

		if m := compensateAfterLineRe.FindStringSubmatch(line); m != nil {
			flush()
			n, _ := strconv.Atoi(m[2])
			cur = &Compensation{
				File:   m[1],
				Type:   model.AddAfterLine,
				Anchor: model.Anchor{Kind: model.AnchorLineNumber, LineNumber: n},
			}
			continue
		}
		if m := compensateAfterPatRe.FindStringSubmatch(line); m != nil {
			flush()
			cur = &Compensation{
				File:   m[1],
				Type:   model.AddAfterLine,
				Anchor: model.Anchor{Kind: model.AnchorAfterPattern, AfterPattern: m[2]},
			}
			continue
		}
		if m := compensateBeforePatRe.FindStringSubmatch(line); m != nil {
			flush()
			cur = &Compensation{
				File:   m[1],
				Type:   model.AddBeforeLine,
				Anchor: model.Anchor{Kind: model.AnchorBeforePattern, BeforePattern: m[2]},
			}
			continue
		}

		if cur == nil {
			continue
		}

		if m := reasonRe.FindStringSubmatch(line); m != nil {
			cur.Reason = strings.TrimSpace(m[1])
			continue
		}
		if m := removedByRe.FindStringSubmatch(line); m != nil {
			cur.RemovedBy = strings.TrimSpace(m[1])
			continue
		}

		if hunkOrCompensateRe.MatchString(line) {
			flush()
			continue
		}

		if line == "" || strings.HasPrefix(line, "  ") {
			contentLines = append(contentLines, strings.TrimPrefix(line, "  "))
			continue
		}

		// Unindented, non-metadata line: terminates the block without
		// being consumed by it.
		flush()
	}
	flush()

	return comps
}

func trimTrailingBlank(lines []string) []string {
	end := len(lines)
	for end > 0 && lines[end-1] == "" {
		end--
	}
	return lines[:end]
}
