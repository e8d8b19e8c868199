package change

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTaskProgress(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    *TaskProgress
	}{
		{name: "no checklist", content: "# Tasks\nnothing yet\n", want: nil},
		{name: "mixed", content: "# Tasks\n- [x] 1.1 Done\n- [ ] 2.1 Todo\n", want: &TaskProgress{Total: 2, Completed: 1}},
		{name: "all done", content: "- [x] a\n- [x] b\n", want: &TaskProgress{Total: 2, Completed: 2}},
		{name: "nested items count", content: "- [ ] a\n  - [ ] b\n", want: &TaskProgress{Total: 2, Completed: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTaskProgress(tt.content))
		})
	}
}

func TestCountIncomplete(t *testing.T) {
	assert.Equal(t, 0, CountIncomplete("- [x] done\n"))
	assert.Equal(t, 2, CountIncomplete("- [ ] a\n- [x] b\n- [ ] c\n"))
}

func TestTaskProgress_Phase(t *testing.T) {
	assert.Equal(t, "Not started", TaskProgress{Total: 3}.Phase())
	assert.Equal(t, "RED - Writing tests", TaskProgress{Total: 10, Completed: 2}.Phase())
	assert.Equal(t, "GREEN - Implementing", TaskProgress{Total: 10, Completed: 5}.Phase())
	assert.Equal(t, "REFACTOR - Cleaning up", TaskProgress{Total: 10, Completed: 8}.Phase())
	assert.Equal(t, "Complete", TaskProgress{Total: 4, Completed: 4}.Phase())
}

func TestMeta(t *testing.T) {
	created := time.Date(2026, 3, 1, 9, 30, 0, 0, time.FixedZone("JST", 9*3600))
	m := NewMeta("add-login", "test-driven", created)

	require.NoError(t, m.Validate())
	assert.Equal(t, "2026-03-01T00:30:00Z", m.Created)
	assert.True(t, m.CreatedTime().Equal(created))

	m.Schema = ""
	assert.Error(t, m.Validate())

	bad := Meta{Name: "x", Schema: "s", Created: "yesterday"}
	assert.True(t, bad.CreatedTime().IsZero())
}
