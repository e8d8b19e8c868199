package presenter_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YoshitsuguKoike/tdd/internal/adapter/presenter"
	"github.com/YoshitsuguKoike/tdd/internal/application/dto"
	"github.com/YoshitsuguKoike/tdd/internal/domain/change"
	"github.com/YoshitsuguKoike/tdd/internal/domain/schema"
	"github.com/YoshitsuguKoike/tdd/internal/validator/common"
)

func present(t *testing.T, message string, data interface{}) string {
	t.Helper()
	buf := &bytes.Buffer{}
	require.NoError(t, presenter.NewCLIPresenter(buf).PresentSuccess(message, data))
	return buf.String()
}

func TestCLIPresenter_ArtifactStates(t *testing.T) {
	out := present(t, "Created change add-login", &dto.CreateChangeResponse{
		Name:   "add-login",
		Schema: "test-driven",
		Path:   "tdd/changes/add-login",
		States: []schema.ArtifactState{
			{Artifact: schema.Artifact{ID: "intent"}, Status: schema.StatusDone, BlockedBy: []string{}},
			{Artifact: schema.Artifact{ID: "test-plan"}, Status: schema.StatusReady, BlockedBy: []string{}},
			{Artifact: schema.Artifact{ID: "tasks"}, Status: schema.StatusBlocked, BlockedBy: []string{"test-plan", "design"}},
		},
	})

	assert.Contains(t, out, "✓ Created change add-login")
	assert.Contains(t, out, "Schema: test-driven")
	assert.Contains(t, out, "✓ intent")
	assert.Contains(t, out, "◆ test-plan (ready)")
	assert.Contains(t, out, "○ tasks (needs: test-plan, design)")
}

func TestCLIPresenter_ChangeList(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		out := present(t, "", &dto.ChangeListResponse{})
		assert.Contains(t, out, "No active changes.")
	})

	t.Run("with progress and artifacts", func(t *testing.T) {
		out := present(t, "", &dto.ChangeListResponse{Changes: []change.Info{
			{Name: "add-login", Artifacts: []string{"intent", "tasks"}, TaskProgress: &change.TaskProgress{Completed: 1, Total: 4}},
			{Name: "fix-typo"},
		}})
		assert.Contains(t, out, "add-login (1/4 tasks) [intent, tasks]")
		assert.Contains(t, out, "fix-typo")
		assert.NotContains(t, out, "fix-typo (")
	})
}

func TestCLIPresenter_Validation(t *testing.T) {
	tests := []struct {
		name     string
		issues   []common.ValidationIssue
		expected []string
	}{
		{
			name:     "no issues",
			issues:   nil,
			expected: []string{"No issues found.", "✓ Change is valid."},
		},
		{
			name: "mixed severities",
			issues: []common.ValidationIssue{
				{Severity: common.SeverityError, Message: "Missing .tdd.yaml metadata file"},
				{Severity: common.SeverityWarning, Message: `intent.md missing "## Why" section`, File: "intent.md"},
				{Severity: common.SeveritySuggestion, Message: "Consider adding a WHEN clause", File: "test-plan.md"},
			},
			expected: []string{
				"✗ Missing .tdd.yaml metadata file",
				`⚠ intent.md missing "## Why" section (intent.md)`,
				"ℹ Consider adding a WHEN clause (test-plan.md)",
				"✗ Change has errors.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := present(t, "", &dto.ValidationResponse{
				Name:   "add-login",
				Result: common.NewValidationResult(tt.issues),
			})
			for _, want := range tt.expected {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestCLIPresenter_Archive(t *testing.T) {
	out := present(t, "", &dto.ArchiveResponse{
		ArchivePath:    "tdd/changes/archive/2026-03-14-add-login",
		SyncedCoverage: []string{"tdd/coverage/auth/coverage.md"},
	})
	assert.Contains(t, out, "Synced coverage:")
	assert.Contains(t, out, "tdd/coverage/auth/coverage.md")
	assert.Contains(t, out, "Archived to tdd/changes/archive/2026-03-14-add-login")
}

func TestCLIPresenter_CoveragePreview(t *testing.T) {
	t.Run("nothing to sync", func(t *testing.T) {
		out := present(t, "", &dto.CoveragePreviewResponse{Name: "add-login"})
		assert.Contains(t, out, "No coverage changes.")
	})

	t.Run("diff lines", func(t *testing.T) {
		out := present(t, "", &dto.CoveragePreviewResponse{
			Name: "add-login",
			Files: []dto.CoverageFileDiff{
				{Destination: "tdd/coverage/auth/coverage.md", Created: true, Diff: "--- /dev/null\n+++ b/auth/coverage.md\n@@ -0,0 +1 @@\n+# Auth\n"},
				{Destination: "tdd/coverage/api/coverage.md"},
			},
		})
		assert.Contains(t, out, "create tdd/coverage/auth/coverage.md")
		assert.Contains(t, out, "+# Auth")
		assert.Contains(t, out, "update tdd/coverage/api/coverage.md")
		assert.Contains(t, out, "(unchanged)")
	})
}

func TestCLIPresenter_Schemas(t *testing.T) {
	out := present(t, "", &dto.SchemaListResponse{Schemas: []dto.SchemaSummary{
		{Name: "test-driven", Source: "built-in", Description: "Test-first workflow", Artifacts: []string{"intent", "test-plan"}},
		{Name: "broken", Source: "project", Error: "schema must declare at least one artifact"},
	}})
	assert.Contains(t, out, "test-driven (built-in)")
	assert.Contains(t, out, "Artifacts: intent → test-plan")
	assert.Contains(t, out, "broken (project)")
	assert.Contains(t, out, "✗ schema must declare at least one artifact")
}

func TestCLIPresenter_Dashboard(t *testing.T) {
	out := present(t, "", &dto.DashboardResponse{
		Schema:  "test-driven",
		Context: "Go service\nsecond line",
		Changes: []dto.DashboardChange{
			{Name: "add-login", ArtifactsDone: 2, ArtifactsTotal: 4, TasksDone: 1, TasksTotal: 4, HasTasks: true, Phase: "RED - Writing tests"},
			{Name: "fix-typo", ArtifactsDone: 0, ArtifactsTotal: 4},
		},
		Archived:      []dto.DashboardArchived{{Name: "2026-03-01-old", Created: "2026-03-01"}},
		ArchivedTotal: 6,
	})

	assert.Contains(t, out, "TDD Project Dashboard")
	assert.Contains(t, out, "Schema: test-driven")
	assert.Contains(t, out, "Context: Go service...")
	assert.Contains(t, out, "Active Changes (2)")
	assert.Contains(t, out, "2/4")
	assert.Contains(t, out, "Phase:     RED - Writing tests")
	assert.Contains(t, out, "Archived (6)")
	assert.Contains(t, out, "2026-03-01-old (2026-03-01)")
	assert.Contains(t, out, "... and 5 more")
}

func TestCLIPresenter_PresentError(t *testing.T) {
	buf := &bytes.Buffer{}
	testErr := errors.New(`Change "nope" not found`)

	err := presenter.NewCLIPresenter(buf).PresentError(testErr)
	assert.Equal(t, testErr, err)
	assert.Contains(t, buf.String(), `✗ Error: Change "nope" not found`)
}

func TestCLIPresenter_PresentWarnings(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, presenter.NewCLIPresenter(buf).PresentWarnings([]string{"2 task(s) incomplete in tasks.md"}))
	assert.Contains(t, buf.String(), "⚠ 2 task(s) incomplete in tasks.md")
}
