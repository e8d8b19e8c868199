package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YoshitsuguKoike/tdd/internal/domain"
	"github.com/YoshitsuguKoike/tdd/internal/domain/change"
	"github.com/YoshitsuguKoike/tdd/internal/infra/schemastore"
)

func newChangeService(t *testing.T) (*ChangeService, func() []string) {
	t.Helper()
	fs, paths := newMemProject(t)
	svc := NewChangeService(fs, paths, schemastore.New(fs, paths))
	names := func() []string {
		infos, err := svc.List(context.Background())
		require.NoError(t, err)
		out := []string{}
		for _, i := range infos {
			out = append(out, i.Name)
		}
		return out
	}
	return svc, names
}

func TestChangeService_Create(t *testing.T) {
	svc, _ := newChangeService(t)
	created := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.WithClock(func() time.Time { return created })

	res, err := svc.Create(context.Background(), "Add Login Flow", "test-driven")
	require.NoError(t, err)

	assert.Equal(t, "add-login-flow", res.Meta.Name)
	assert.Equal(t, "test-driven", res.Meta.Schema)
	assert.Equal(t, "2026-05-01T12:00:00Z", res.Meta.Created)
	assert.Equal(t, svc.paths.Change("add-login-flow"), res.Path)
	assert.Equal(t, "test-driven", res.Definition.Name)

	meta := readFile(t, svc.fs, filepath.Join(res.Path, change.MetaFile))
	assert.Contains(t, meta, "name: add-login-flow")
	assert.Contains(t, meta, "schema: test-driven")

	_, err = svc.Create(context.Background(), "add login flow", "test-driven")
	assert.True(t, errors.Is(err, domain.ErrAlreadyExists))
}

func TestChangeService_CreateRejects(t *testing.T) {
	svc, _ := newChangeService(t)

	_, err := svc.Create(context.Background(), "x", "no-such-schema")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = svc.Create(context.Background(), "   ", "test-driven")
	assert.Error(t, err)

	_, err = svc.Create(context.Background(), "archive", "test-driven")
	assert.Error(t, err)
}

func TestChangeService_ListSortedByCreated(t *testing.T) {
	svc, names := newChangeService(t)
	fs, paths := svc.fs, svc.paths

	writeMeta(t, fs, paths.Change("second"), "second", "2026-02-01T00:00:00Z")
	writeMeta(t, fs, paths.Change("first"), "first", "2026-01-01T00:00:00Z")
	writeMeta(t, fs, paths.Change("third"), "third", "2026-03-01T00:00:00.5Z")
	require.NoError(t, fs.MkdirAll(paths.Change("no-meta"), 0o755))
	writeFile(t, fs, filepath.Join(paths.Change("broken"), ".tdd.yaml"), "name: [unterminated\n")
	writeFile(t, fs, filepath.Join(paths.Change("partial"), ".tdd.yaml"), "name: partial\n")
	writeFile(t, fs, filepath.Join(paths.Changes, "stray.md"), "not a change")
	writeMeta(t, fs, filepath.Join(paths.Archive, "2026-01-01-old"), "old", "2025-12-01T00:00:00Z")

	assert.Equal(t, []string{"first", "second", "third"}, names())
}

func TestChangeService_ListDetectsArtifacts(t *testing.T) {
	svc, _ := newChangeService(t)
	fs, paths := svc.fs, svc.paths
	dir := paths.Change("login")
	writeMeta(t, fs, dir, "login", "2026-01-01T00:00:00Z")
	writeFile(t, fs, filepath.Join(dir, "intent.md"), "# Intent\n")
	writeFile(t, fs, filepath.Join(dir, "tasks.md"), "- [x] a\n- [ ] b\n- [ ] c\n")
	require.NoError(t, fs.MkdirAll(filepath.Join(dir, "coverage"), 0o755))

	infos, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, infos, 1)

	assert.Equal(t, []string{"intent.md", "tasks.md", "coverage/"}, infos[0].Artifacts)
	require.NotNil(t, infos[0].TaskProgress)
	assert.Equal(t, change.TaskProgress{Total: 3, Completed: 1}, *infos[0].TaskProgress)
	assert.Equal(t, dir, infos[0].Path)
}

func TestChangeService_ListEmpty(t *testing.T) {
	svc, names := newChangeService(t)
	assert.Empty(t, names())

	require.NoError(t, svc.fs.RemoveAll(svc.paths.Changes))
	assert.Empty(t, names())
}

func TestChangeService_ListArchived(t *testing.T) {
	svc, _ := newChangeService(t)
	fs, paths := svc.fs, svc.paths
	writeMeta(t, fs, filepath.Join(paths.Archive, "2026-02-01-b"), "b", "2026-01-20T00:00:00Z")
	writeMeta(t, fs, filepath.Join(paths.Archive, "2026-01-01-a"), "a", "2025-12-20T00:00:00Z")
	require.NoError(t, fs.MkdirAll(filepath.Join(paths.Archive, "2026-03-01-nometa"), 0o755))

	infos, err := svc.ListArchived(context.Background())
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "a", infos[0].Name)
	assert.Equal(t, "b", infos[1].Name)
}

func TestChangeService_Get(t *testing.T) {
	svc, _ := newChangeService(t)
	writeMeta(t, svc.fs, svc.paths.Change("login"), "login", "2026-01-01T00:00:00Z")

	info, err := svc.Get(context.Background(), "login")
	require.NoError(t, err)
	assert.Equal(t, "login", info.Name)
	assert.Nil(t, info.TaskProgress)

	for _, name := range []string{"ghost", "archive", "", "..", "x/../login"} {
		_, err = svc.Get(context.Background(), name)
		assert.True(t, errors.Is(err, domain.ErrNotFound), "name %q", name)
	}
}
