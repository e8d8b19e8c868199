package change

import "strings"

// TasksFile is the checklist document tracked for completion
const TasksFile = "tasks.md"

const (
	uncheckedMarker = "- [ ]"
	checkedMarker   = "- [x]"
)

// TaskProgress counts checklist items in a tasks document
type TaskProgress struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
}

// Incomplete returns the number of unchecked items
func (p TaskProgress) Incomplete() int {
	return p.Total - p.Completed
}

// CountIncomplete counts unchecked "- [ ]" markers anywhere in content
func CountIncomplete(content string) int {
	return strings.Count(content, uncheckedMarker)
}

// ParseTaskProgress counts checked and unchecked markers. It returns nil
// when the document has no checklist items.
func ParseTaskProgress(content string) *TaskProgress {
	open := strings.Count(content, uncheckedMarker)
	done := strings.Count(content, checkedMarker)
	if open+done == 0 {
		return nil
	}
	return &TaskProgress{Total: open + done, Completed: done}
}

// Phase describes how far through the red/green/refactor loop a change is,
// judged from its task completion ratio
func (p TaskProgress) Phase() string {
	switch {
	case p.Completed == 0:
		return "Not started"
	case p.Completed == p.Total:
		return "Complete"
	}
	ratio := float64(p.Completed) / float64(p.Total)
	switch {
	case ratio < 0.33:
		return "RED - Writing tests"
	case ratio < 0.66:
		return "GREEN - Implementing"
	default:
		return "REFACTOR - Cleaning up"
	}
}
