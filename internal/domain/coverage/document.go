package coverage

import "strings"

// TestBlock is a named "### Test:" block. Body is the raw text between the
// heading line and the block boundary; Raw includes the heading itself.
type TestBlock struct {
	Name    string `json:"name"`
	Heading string `json:"-"`
	Body    string `json:"body"`
	Raw     string `json:"-"`

	start int
	end   int
}

// Content returns the block text, heading included, with surrounding whitespace trimmed
func (b TestBlock) Content() string {
	return strings.TrimSpace(b.Raw)
}

// Document is a coverage document: free text before the first block, then
// the blocks in order.
type Document struct {
	Leading string
	Blocks  []TestBlock
}

// ParseDocument splits text into leading prose and test blocks
func ParseDocument(text string) *Document {
	s := scan(text)
	blocks := s.blocks(0, len(s.lines))
	if len(blocks) == 0 {
		return &Document{Leading: text}
	}
	return &Document{Leading: s.slice(0, blocks[0].start), Blocks: blocks}
}

// Names returns block names in document order
func (d *Document) Names() []string {
	names := make([]string, 0, len(d.Blocks))
	for _, b := range d.Blocks {
		names = append(names, b.Name)
	}
	return names
}

// Duplicates returns names that appear on more than one block, in order of
// their second appearance
func (d *Document) Duplicates() []string {
	seen := map[string]int{}
	var dups []string
	for _, b := range d.Blocks {
		seen[b.Name]++
		if seen[b.Name] == 2 {
			dups = append(dups, b.Name)
		}
	}
	return dups
}
