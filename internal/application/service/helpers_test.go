package service

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/YoshitsuguKoike/tdd/internal/app"
	"github.com/YoshitsuguKoike/tdd/internal/domain/schema"
	"github.com/YoshitsuguKoike/tdd/internal/infra/schemastore"
)

func newMemProject(t *testing.T) (afero.Fs, app.Paths) {
	t.Helper()
	fs := afero.NewMemMapFs()
	paths := app.ResolvePaths("/proj")
	require.NoError(t, fs.MkdirAll(paths.Changes, 0o755))
	require.NoError(t, fs.MkdirAll(paths.Coverage, 0o755))
	return fs, paths
}

func writeFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
}

func readFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	return string(data)
}

func writeMeta(t *testing.T, fs afero.Fs, dir, name, created string) {
	t.Helper()
	writeFile(t, fs, filepath.Join(dir, ".tdd.yaml"),
		"schema: test-driven\ncreated: \""+created+"\"\nname: "+name+"\n")
}

func builtinSchema(t *testing.T, fs afero.Fs, paths app.Paths) schema.Definition {
	t.Helper()
	def, _, err := schemastore.New(fs, paths).Load(schema.DefaultName)
	require.NoError(t, err)
	return *def
}
