package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YoshitsuguKoike/tdd/internal/domain"
	"github.com/YoshitsuguKoike/tdd/internal/domain/schema"
)

func TestArtifactStatusService_Pipeline(t *testing.T) {
	fs, paths := newMemProject(t)
	def := builtinSchema(t, fs, paths)
	svc := NewArtifactStatusService(fs, paths)
	changeDir := paths.Change("login")
	require.NoError(t, fs.MkdirAll(changeDir, 0o755))

	states, err := svc.States(context.Background(), "login", def)
	require.NoError(t, err)
	counts := schema.CountByStatus(states)
	assert.Equal(t, 1, counts[schema.StatusReady])
	assert.Equal(t, 3, counts[schema.StatusBlocked])
	first, ok := schema.FirstReady(states)
	require.True(t, ok)
	assert.Equal(t, "intent", first.ID)

	writeFile(t, fs, filepath.Join(changeDir, "intent.md"), "# Intent\n")

	states, err = svc.States(context.Background(), "login", def)
	require.NoError(t, err)
	counts = schema.CountByStatus(states)
	assert.Equal(t, 1, counts[schema.StatusDone])
	assert.Equal(t, 2, counts[schema.StatusReady])
	assert.Equal(t, 1, counts[schema.StatusBlocked])
	assert.Equal(t, []string{"test-plan", "design"}, states[3].BlockedBy)
}

func TestArtifactStatusService_Wildcard(t *testing.T) {
	fs, paths := newMemProject(t)
	svc := NewArtifactStatusService(fs, paths)
	changeDir := paths.Change("specs")

	def := schema.Definition{
		Name: "wild",
		Artifacts: []schema.Artifact{
			{ID: "specs", Generates: "specs/*.md", Requires: []string{}},
			{ID: "deep", Generates: "coverage/**/*.md", Requires: []string{"specs"}},
		},
	}

	require.NoError(t, fs.MkdirAll(changeDir, 0o755))
	existing, err := svc.Existing(changeDir, def)
	require.NoError(t, err)
	assert.Empty(t, existing)

	// An empty directory is enough
	require.NoError(t, fs.MkdirAll(filepath.Join(changeDir, "specs"), 0o755))
	require.NoError(t, fs.MkdirAll(filepath.Join(changeDir, "coverage"), 0o755))
	existing, err = svc.Existing(changeDir, def)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"specs": true, "deep": true}, existing)
}

func TestArtifactStatusService_MissingChange(t *testing.T) {
	fs, paths := newMemProject(t)
	svc := NewArtifactStatusService(fs, paths)

	_, err := svc.States(context.Background(), "ghost", builtinSchema(t, fs, paths))
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestGeneratedPath(t *testing.T) {
	dir := filepath.FromSlash("/c")
	tests := []struct {
		generates string
		want      string
	}{
		{"intent.md", filepath.Join(dir, "intent.md")},
		{"specs/*.md", filepath.Join(dir, "specs")},
		{"coverage/**/*.md", filepath.Join(dir, "coverage")},
		{"*.md", dir},
	}
	for _, tt := range tests {
		t.Run(tt.generates, func(t *testing.T) {
			assert.Equal(t, tt.want, generatedPath(dir, schema.Artifact{Generates: tt.generates}))
		})
	}
}
