package coverage

import "strings"

// TestHeadingPrefix introduces a named test block ("### Test: <name>")
const TestHeadingPrefix = "Test:"

// testBlockLevel is the heading level of a test block
const testBlockLevel = 3

// line is one scanned input line. Level is 0 for non-heading lines and
// for lines inside fenced code.
type line struct {
	Text    string
	Offset  int
	Level   int
	Heading string
}

// scanned holds a document split into lines with byte offsets, so that
// edits can splice the original text without reflowing untouched content.
type scanned struct {
	text  string
	lines []line
}

func scan(text string) *scanned {
	s := &scanned{text: text}
	inFence := false
	fence := ""
	offset := 0
	for _, raw := range strings.SplitAfter(text, "\n") {
		if raw == "" {
			break
		}
		content := strings.TrimRight(raw, "\r\n")
		l := line{Text: content, Offset: offset}
		offset += len(raw)

		trimmed := strings.TrimSpace(content)
		if marker := fenceMarker(trimmed); marker != "" {
			if !inFence {
				inFence, fence = true, marker
			} else if marker == fence {
				inFence, fence = false, ""
			}
			s.lines = append(s.lines, l)
			continue
		}
		if !inFence {
			l.Level, l.Heading = parseHeading(content)
		}
		s.lines = append(s.lines, l)
	}
	return s
}

func fenceMarker(trimmed string) string {
	switch {
	case strings.HasPrefix(trimmed, "```"):
		return "```"
	case strings.HasPrefix(trimmed, "~~~"):
		return "~~~"
	}
	return ""
}

// parseHeading recognises ATX headings starting in column 0
func parseHeading(content string) (int, string) {
	level := 0
	for level < len(content) && content[level] == '#' {
		level++
	}
	if level == 0 || level > 6 {
		return 0, ""
	}
	rest := content[level:]
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return 0, ""
	}
	return level, strings.TrimSpace(rest)
}

// offset returns the byte offset where line i starts; len(lines) maps to end of text
func (s *scanned) offset(i int) int {
	if i >= len(s.lines) {
		return len(s.text)
	}
	return s.lines[i].Offset
}

// slice returns the raw text of lines [from, to)
func (s *scanned) slice(from, to int) string {
	return s.text[s.offset(from):s.offset(to)]
}

// sectionEnd returns the index of the next level-2 heading after i, or
// len(lines). Headings of any other level stay inside the section.
func (s *scanned) sectionEnd(i int) int {
	for j := i + 1; j < len(s.lines); j++ {
		if s.lines[j].Level == 2 {
			return j
		}
	}
	return len(s.lines)
}

// blockEnd returns the index where the test block starting at i ends: the
// next "### Test:" heading or the next heading of level 1 or 2. Other
// headings, "### Notes" for example, belong to the block.
func (s *scanned) blockEnd(i int) int {
	for j := i + 1; j < len(s.lines); j++ {
		if l := s.lines[j].Level; l > 0 && l <= 2 {
			return j
		}
		if _, ok := s.testName(j); ok {
			return j
		}
	}
	return len(s.lines)
}

// testName returns the block name when line i is a "### Test:" heading
func (s *scanned) testName(i int) (string, bool) {
	l := s.lines[i]
	if l.Level != testBlockLevel || !strings.HasPrefix(l.Heading, TestHeadingPrefix) {
		return "", false
	}
	name := strings.TrimSpace(strings.TrimPrefix(l.Heading, TestHeadingPrefix))
	if name == "" {
		return "", false
	}
	return name, true
}

// section locates the first level-2 heading whose text equals title
func (s *scanned) section(title string) (start, end int, ok bool) {
	for i, l := range s.lines {
		if l.Level == 2 && l.Heading == title {
			return i, s.sectionEnd(i), true
		}
	}
	return 0, 0, false
}

// blocks returns the test blocks whose headings fall in lines [from, to)
func (s *scanned) blocks(from, to int) []TestBlock {
	var out []TestBlock
	for i := from; i < to; i++ {
		name, ok := s.testName(i)
		if !ok {
			continue
		}
		end := s.blockEnd(i)
		if end > to {
			end = to
		}
		out = append(out, TestBlock{
			Name:    name,
			Heading: s.lines[i].Text,
			Body:    s.slice(i+1, end),
			Raw:     s.slice(i, end),
			start:   i,
			end:     end,
		})
	}
	return out
}

// findBlock returns the first test block named name, compared literally
func (s *scanned) findBlock(name string) (TestBlock, bool) {
	for _, b := range s.blocks(0, len(s.lines)) {
		if b.Name == name {
			return b, true
		}
	}
	return TestBlock{}, false
}
