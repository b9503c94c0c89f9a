package hunkops

import (
	"strconv"
	"strings"

	"github.com/nbonventre/pickaxe/internal/diffparse"
)

// SelectByID resolves a list of hunk ids, accepted in either of the two
// shapes described in spec §4.2:
//
//	"<file>:<hunkIndex>"              — the whole hunk
//	"<file>:<hunkIndex>:<lineIndex>"  — a single addition line within it
//
// Multiple line-shaped ids for the same hunk accumulate into the set of
// included addition indices; every Add line not in that set is dropped via
// EditHunk. Mixed shapes across different hunks are allowed. Unknown ids
// contribute no hunks; this function never errors.
func SelectByID(d *diffparse.ParsedDiff, ids []string) []*diffparse.Hunk {
	wholeHunks := map[string]bool{}
	lineSelections := map[string]map[int]bool{} // hunkID -> set of line indices

	for _, id := range ids {
		file, hunkIdx, lineIdx, isLine := parseSelectionID(id)
		if file == "" {
			continue
		}
		hid := HunkID(file, hunkIdx)
		if isLine {
			if lineSelections[hid] == nil {
				lineSelections[hid] = map[int]bool{}
			}
			lineSelections[hid][lineIdx] = true
		} else {
			wholeHunks[hid] = true
		}
	}

	var out []*diffparse.Hunk
	seen := map[string]bool{}

	for hid := range wholeHunks {
		if seen[hid] {
			continue
		}
		h := d.GetHunk(hid)
		if h == nil {
			continue
		}
		seen[hid] = true
		if lines, ok := lineSelections[hid]; ok {
			out = append(out, EditHunk(h, SelectLines(h, lines)))
		} else {
			out = append(out, h)
		}
	}

	for hid, lines := range lineSelections {
		if seen[hid] {
			continue
		}
		h := d.GetHunk(hid)
		if h == nil {
			continue
		}
		seen[hid] = true
		out = append(out, EditHunk(h, SelectLines(h, lines)))
	}

	return out
}

// parseSelectionID splits a selection id into its file, hunk index, and
// (if present) line index.
func parseSelectionID(id string) (file string, hunkIdx, lineIdx int, isLine bool) {
	parts := strings.Split(id, ":")
	switch len(parts) {
	case 2:
		hi, err := strconv.Atoi(parts[1])
		if err != nil {
			return "", 0, 0, false
		}
		return parts[0], hi, 0, false
	case 3:
		hi, err1 := strconv.Atoi(parts[1])
		li, err2 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil {
			return "", 0, 0, false
		}
		return parts[0], hi, li, true
	default:
		// More than three segments means the file path itself contains
		// colons (e.g. "a:b.txt:0:2"): take the last one or two numeric
		// segments as indices and the rest as the path. A three-segment id
		// such as "a:b.txt:0" is handled by case 3 above and rejected.
		if len(parts) > 3 {
			n := len(parts)
			if li, err := strconv.Atoi(parts[n-1]); err == nil {
				if hi, err2 := strconv.Atoi(parts[n-2]); err2 == nil {
					return strings.Join(parts[:n-2], ":"), hi, li, true
				}
			}
			if hi, err := strconv.Atoi(parts[n-1]); err == nil {
				return strings.Join(parts[:n-1], ":"), hi, 0, false
			}
		}
		return "", 0, 0, false
	}
}
