// Package diff renders planned coverage writes as unified diffs.
package diff

import (
	"strings"

	difflib "github.com/pmezard/go-difflib/difflib"
)

// DefaultContext is the number of context lines around each hunk
const DefaultContext = 3

// devNull names the missing side of a created file
const devNull = "/dev/null"

// Unified returns the unified diff from old to updated. A nil old means the
// file does not exist yet. Identical inputs produce an empty string.
func Unified(name string, old *string, updated string, context int) (string, error) {
	if context <= 0 {
		context = DefaultContext
	}

	fromFile := "a/" + name
	var a []string
	if old == nil {
		fromFile = devNull
	} else {
		if *old == updated {
			return "", nil
		}
		a = splitLines(*old)
	}

	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        a,
		B:        splitLines(updated),
		FromFile: fromFile,
		ToFile:   "b/" + name,
		Context:  context,
	})
}

// splitLines keeps the newline on every line. A missing final newline is
// added so hunks stay one line per row.
func splitLines(s string) []string {
	if s == "" {
		return []string{}
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	} else {
		lines[len(lines)-1] += "\n"
	}
	return lines
}
