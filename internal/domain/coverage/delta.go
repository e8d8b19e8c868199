package coverage

// Section titles recognised in delta documents
const (
	SectionAdded    = "ADDED Tests"
	SectionModified = "MODIFIED Tests"
	SectionRemoved  = "REMOVED Tests"
)

// Delta is the parsed form of a delta coverage document. A section that is
// absent or malformed is simply nil; parsing never fails.
type Delta struct {
	// Added is the raw ADDED section body, nil when the section is absent
	Added *string
	// Modified holds full replacement blocks, nil when the section is absent
	Modified []TestBlock
	// Removed holds the names of blocks to delete, nil when the section is absent
	Removed []string
}

// IsEmpty reports whether the delta carries no sections at all
func (d Delta) IsEmpty() bool {
	return d.Added == nil && d.Modified == nil && d.Removed == nil
}

// ParseDelta extracts the ADDED, MODIFIED and REMOVED sections. When a
// section heading appears more than once only the first is used.
func ParseDelta(text string) Delta {
	s := scan(text)
	var d Delta

	if start, end, ok := s.section(SectionAdded); ok {
		body := s.slice(start+1, end)
		d.Added = &body
	}
	if start, end, ok := s.section(SectionModified); ok {
		d.Modified = append([]TestBlock{}, s.blocks(start+1, end)...)
	}
	if start, end, ok := s.section(SectionRemoved); ok {
		d.Removed = []string{}
		for _, b := range s.blocks(start+1, end) {
			d.Removed = append(d.Removed, b.Name)
		}
	}
	return d
}
