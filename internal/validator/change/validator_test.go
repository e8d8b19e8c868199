package change

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YoshitsuguKoike/tdd/internal/validator/common"
)

const changeDir = "/proj/tdd/changes/login"

const validMeta = "schema: test-driven\ncreated: \"2026-01-02T03:04:05Z\"\nname: login\n"

const goodIntent = "# Intent\n\n## Why\n\nUsers forget passwords.\n\n## What Changes\n\nAdd reset links.\n"

const goodPlan = `# Test Plan

### Test: reset link is emailed
- GIVEN a registered user
- WHEN they request a reset
- THEN an email is sent
`

const goodTasks = `# Tasks

## 1. RED
- [x] write failing test

## 2. GREEN
- [ ] implement

## 3. REFACTOR
- [ ] tidy
`

func setup(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(changeDir, 0o755))
	for name, content := range files {
		require.NoError(t, fs.MkdirAll(filepath.Dir(filepath.Join(changeDir, name)), 0o755))
		require.NoError(t, afero.WriteFile(fs, filepath.Join(changeDir, name), []byte(content), 0o644))
	}
	return fs
}

type issueKey struct {
	Severity common.Severity
	Message  string
}

func keys(issues []common.ValidationIssue) []issueKey {
	out := []issueKey{}
	for _, i := range issues {
		out = append(out, issueKey{i.Severity, i.Message})
	}
	return out
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		files     map[string]string
		want      []issueKey
		wantValid bool
	}{
		{
			name:      "complete change",
			files:     map[string]string{".tdd.yaml": validMeta, "intent.md": goodIntent, "test-plan.md": goodPlan, "tasks.md": goodTasks},
			want:      []issueKey{},
			wantValid: true,
		},
		{
			name:  "missing metadata",
			files: map[string]string{"intent.md": goodIntent, "test-plan.md": goodPlan},
			want: []issueKey{
				{common.SeverityError, "Missing .tdd.yaml metadata file"},
			},
		},
		{
			name:  "metadata without name",
			files: map[string]string{".tdd.yaml": "schema: test-driven\ncreated: x\n", "intent.md": goodIntent, "test-plan.md": goodPlan},
			want: []issueKey{
				{common.SeverityError, `Invalid .tdd.yaml: change meta: "name" is required`},
			},
		},
		{
			name:  "only metadata",
			files: map[string]string{".tdd.yaml": validMeta},
			want: []issueKey{
				{common.SeverityWarning, "Missing intent.md"},
				{common.SeverityWarning, "Missing test-plan.md"},
			},
			wantValid: true,
		},
		{
			name:  "intent without sections",
			files: map[string]string{".tdd.yaml": validMeta, "intent.md": "# Intent\n", "test-plan.md": goodPlan},
			want: []issueKey{
				{common.SeverityWarning, `intent.md missing "## Why" section`},
				{common.SeverityWarning, `intent.md missing "## What Changes" section`},
			},
			wantValid: true,
		},
		{
			name:  "test plan without tests",
			files: map[string]string{".tdd.yaml": validMeta, "intent.md": goodIntent, "test-plan.md": "# Plan\n\nTBD\n"},
			want: []issueKey{
				{common.SeverityWarning, "test-plan.md has no test scenarios (### Test: blocks)"},
			},
			wantValid: true,
		},
		{
			name: "test plan missing clauses",
			files: map[string]string{
				".tdd.yaml":    validMeta,
				"intent.md":    goodIntent,
				"test-plan.md": "### Test: one\n- GIVEN a\n- WHEN b\n- THEN c\n\n### Test: two\n- THEN d\n",
			},
			want: []issueKey{
				{common.SeveritySuggestion, "Some test scenarios may be missing GIVEN clauses"},
				{common.SeveritySuggestion, "Some test scenarios may be missing WHEN clauses"},
			},
			wantValid: true,
		},
		{
			name: "test plan missing THEN",
			files: map[string]string{
				".tdd.yaml":    validMeta,
				"intent.md":    goodIntent,
				"test-plan.md": "### Test: one\n- GIVEN a\n- WHEN b\n",
			},
			want: []issueKey{
				{common.SeverityWarning, "Some test scenarios are missing THEN clauses"},
			},
			wantValid: true,
		},
		{
			name: "tasks without phases or checkboxes",
			files: map[string]string{
				".tdd.yaml":    validMeta,
				"intent.md":    goodIntent,
				"test-plan.md": goodPlan,
				"tasks.md":     "# Tasks\n\nTODO\n",
			},
			want: []issueKey{
				{common.SeverityWarning, "tasks.md missing RED phase section"},
				{common.SeverityWarning, "tasks.md missing GREEN phase section"},
				{common.SeveritySuggestion, "tasks.md missing REFACTOR phase section"},
				{common.SeverityWarning, "tasks.md has no checkbox tasks (- [ ] or - [x])"},
			},
			wantValid: true,
		},
		{
			name: "phase headings are case-insensitive",
			files: map[string]string{
				".tdd.yaml":    validMeta,
				"intent.md":    goodIntent,
				"test-plan.md": goodPlan,
				"tasks.md":     "## 1. red\n- [ ] a\n## 2.Green\n- [ ] b\n## 10. Refactor\n- [ ] c\n",
			},
			want:      []issueKey{},
			wantValid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := setup(t, tt.files)

			res, err := NewValidator(fs).Validate(changeDir, "login")
			require.NoError(t, err)
			assert.Equal(t, tt.want, keys(res.Issues))
			assert.Equal(t, tt.wantValid, res.Valid)
		})
	}
}

func TestValidate_MissingChange(t *testing.T) {
	fs := afero.NewMemMapFs()

	res, err := NewValidator(fs).Validate("/proj/tdd/changes/ghost", "ghost")
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, []issueKey{{common.SeverityError, `Change "ghost" not found`}}, keys(res.Issues))
	assert.Equal(t, 1, res.Summary.Error)
}

func TestValidate_IssuesCarryFile(t *testing.T) {
	fs := setup(t, map[string]string{".tdd.yaml": validMeta})

	res, err := NewValidator(fs).Validate(changeDir, "login")
	require.NoError(t, err)
	require.Len(t, res.Issues, 2)
	assert.Equal(t, filepath.Join(changeDir, "intent.md"), res.Issues[0].File)
	assert.Equal(t, 2, res.Summary.Warning)
}

func TestValidate_Coverage(t *testing.T) {
	base := map[string]string{
		".tdd.yaml":    validMeta,
		"intent.md":    goodIntent,
		"test-plan.md": goodPlan,
		"tasks.md":     goodTasks,
	}

	tests := []struct {
		name  string
		files map[string]string
		want  []issueKey
	}{
		{
			name:  "well formed delta",
			files: map[string]string{"coverage/auth.md": "## ADDED Tests\n### Test: A\n- a\n\n## REMOVED Tests\n### Test: B\n"},
			want:  []issueKey{},
		},
		{
			name:  "delta without sections",
			files: map[string]string{"coverage/auth.md": "### Test: A\n- a\n"},
			want:  []issueKey{{common.SeverityWarning, `Delta has no "ADDED Tests", "MODIFIED Tests" or "REMOVED Tests" section`}},
		},
		{
			name:  "duplicate added test",
			files: map[string]string{"coverage/nested/auth.md": "## ADDED Tests\n### Test: A\n- 1\n### Test: A\n- 2\n"},
			want:  []issueKey{{common.SeverityWarning, `Test "A" is added more than once`}},
		},
		{
			name:  "non markdown files are ignored",
			files: map[string]string{"coverage/notes.txt": "scratch"},
			want:  []issueKey{},
		},
		{
			name:  "duplicate scenario in test plan",
			files: map[string]string{"test-plan.md": goodPlan + "\n" + goodPlan},
			want:  []issueKey{{common.SeverityWarning, `test-plan.md has duplicate test scenario "reset link is emailed"`}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := map[string]string{}
			for k, v := range base {
				files[k] = v
			}
			for k, v := range tt.files {
				files[k] = v
			}

			res, err := NewValidator(setup(t, files)).Validate(changeDir, "login")
			require.NoError(t, err)
			assert.Equal(t, tt.want, keys(res.Issues))
			assert.True(t, res.Valid)
		})
	}
}
