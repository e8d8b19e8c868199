package coverage

import (
	"regexp"
	"strings"
)

var blankRun = regexp.MustCompile(`\n{3,}`)

// MergeDelta applies a delta document to a main coverage document.
// A nil main means no coverage file exists yet and the delta seeds one.
// With a main document the sections apply in fixed order: ADDED, then
// REMOVED, then MODIFIED.
func MergeDelta(main *string, delta string) string {
	if main == nil {
		return SeedFromDelta(delta)
	}

	d := ParseDelta(delta)
	result := *main

	if d.Added != nil {
		if added := strings.TrimSpace(*d.Added); added != "" {
			result = appendBlock(result, added)
		}
	}

	for _, name := range d.Removed {
		result = RemoveBlock(result, name)
	}

	for _, b := range d.Modified {
		result = ReplaceBlock(result, b.Name, b.Content())
	}

	return result
}

// SeedFromDelta turns a delta into a fresh coverage document: the ADDED
// heading line is dropped and its body kept, MODIFIED and REMOVED sections
// are discarded since there is nothing for them to act on, and any other
// text is kept in place.
func SeedFromDelta(delta string) string {
	s := scan(delta)
	drop := make([]bool, len(s.lines))

	if start, end, ok := s.section(SectionAdded); ok {
		drop[start] = true
		for i := start + 1; i < end && strings.TrimSpace(s.lines[i].Text) == ""; i++ {
			drop[i] = true
		}
	}
	for _, title := range []string{SectionModified, SectionRemoved} {
		if start, end, ok := s.section(title); ok {
			for i := start; i < end; i++ {
				drop[i] = true
			}
		}
	}

	var sb strings.Builder
	for i := range s.lines {
		if !drop[i] {
			sb.WriteString(s.slice(i, i+1))
		}
	}
	return strings.TrimSpace(sb.String()) + "\n"
}

// RemoveBlock deletes every block named name, heading through boundary,
// then collapses runs of three or more newlines to two.
func RemoveBlock(content, name string) string {
	for {
		s := scan(content)
		b, ok := s.findBlock(name)
		if !ok {
			break
		}
		content = content[:s.offset(b.start)] + content[s.offset(b.end):]
	}
	return blankRun.ReplaceAllString(content, "\n\n")
}

// ReplaceBlock swaps the first block named name for replacement followed
// by a blank line. When no such block exists the replacement is appended
// as a new block.
func ReplaceBlock(content, name, replacement string) string {
	s := scan(content)
	b, ok := s.findBlock(name)
	if !ok {
		return appendBlock(content, strings.TrimSpace(replacement))
	}
	return content[:s.offset(b.start)] + replacement + "\n\n" + content[s.offset(b.end):]
}

func appendBlock(content, block string) string {
	existing := strings.TrimRight(content, " \t\r\n")
	if existing == "" {
		return block + "\n"
	}
	return existing + "\n\n" + block + "\n"
}
