// Package diff provides utilities over unified-diff text: mapping hunks to
// modified line ranges, counting changes, and size capping.
package diff

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// LineRange is an inclusive range of line numbers in the post-image of a diff.
type LineRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// hunkRE matches a unified-diff hunk header and captures the post-image start
// line and optional length, e.g. "@@ -3,7 +3,9 @@" or "@@ -1 +1 @@".
var hunkRE = regexp.MustCompile(`(?m)^@@\s+-\d+(?:,\d+)?\s+\+(\d+)(?:,(\d+))?\s+@@`)

// ModifiedLineRanges returns the post-image line ranges covered by the diff's
// hunks, in the order they appear. Hunks with a zero post-image length (pure
// deletions) contribute no range. The line-based formatter downstream takes
// these ranges as its work list.
func ModifiedLineRanges(diff string) []LineRange {
	var ranges []LineRange
	for _, m := range hunkRE.FindAllStringSubmatch(diff, -1) {
		start, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		length := 1
		if m[2] != "" {
			length, err = strconv.Atoi(m[2])
			if err != nil {
				continue
			}
		}
		if length == 0 {
			continue
		}
		ranges = append(ranges, LineRange{Start: start, End: start + length - 1})
	}
	return ranges
}

// Count counts added and deleted lines in a diff, ignoring file headers.
func Count(diff string) (additions, deletions int) {
	for _, line := range strings.Split(diff, "\n") {
		if len(line) == 0 {
			continue
		}
		switch line[0] {
		case '+':
			if !strings.HasPrefix(line, "+++") {
				additions++
			}
		case '-':
			if !strings.HasPrefix(line, "---") {
				deletions++
			}
		}
	}
	return
}

// Truncate caps a diff string to maxSizeKB and returns whether it was cut.
// If maxSizeKB <= 0, the diff is dropped and marked truncated.
func Truncate(diff string, maxSizeKB int) (string, bool) {
	if maxSizeKB <= 0 {
		if diff == "" {
			return "", false
		}
		return "", true
	}

	maxBytes := maxSizeKB * 1024
	if len(diff) <= maxBytes {
		return diff, false
	}

	truncated := []byte(diff)[:maxBytes]
	for len(truncated) > 0 && !utf8.Valid(truncated) {
		truncated = truncated[:len(truncated)-1]
	}

	return string(truncated), true
}
