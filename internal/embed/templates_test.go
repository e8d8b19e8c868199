package embed

import (
	"io/fs"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestBuiltinNames(t *testing.T) {
	assert.Equal(t, []string{"test-driven"}, BuiltinNames())
	assert.True(t, HasBuiltin("test-driven"))
	assert.False(t, HasBuiltin("nope"))
	assert.False(t, HasBuiltin("../schemas"))
}

func TestReadBuiltin(t *testing.T) {
	data, err := ReadBuiltin("test-driven", SchemaFile)
	require.NoError(t, err)

	var doc struct {
		Name      string `yaml:"name"`
		Artifacts []struct {
			ID string `yaml:"id"`
		} `yaml:"artifacts"`
	}
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.Equal(t, "test-driven", doc.Name)
	require.Len(t, doc.Artifacts, 4)
	assert.Equal(t, "intent", doc.Artifacts[0].ID)

	tmpl, err := ReadBuiltin("test-driven", "templates/tasks.md")
	require.NoError(t, err)
	assert.Contains(t, string(tmpl), "## 1. RED")

	_, err = ReadBuiltin("missing", SchemaFile)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestGetTemplates(t *testing.T) {
	templates, err := GetTemplates("test-driven")
	require.NoError(t, err)

	paths := map[string]bool{}
	for _, tmpl := range templates {
		paths[tmpl.Path] = true
	}
	for _, want := range []string{
		"schema.yaml",
		"templates/intent.md",
		"templates/test-plan.md",
		"templates/design.md",
		"templates/tasks.md",
	} {
		assert.True(t, paths[want], "missing %s", want)
	}
}

func TestWriteTemplate(t *testing.T) {
	fs := afero.NewMemMapFs()
	tmpl := Template{Path: "templates/intent.md", Content: []byte("# Intent\n"), Mode: 0o644}

	res, err := WriteTemplate(fs, "/proj/tdd/schemas/mine", tmpl, false)
	require.NoError(t, err)
	assert.Equal(t, "WROTE", res.Action)

	res, err = WriteTemplate(fs, "/proj/tdd/schemas/mine", tmpl, false)
	require.NoError(t, err)
	assert.Equal(t, "SKIP", res.Action)

	res, err = WriteTemplate(fs, "/proj/tdd/schemas/mine", tmpl, true)
	require.NoError(t, err)
	assert.Equal(t, "WROTE (force)", res.Action)

	got, err := afero.ReadFile(fs, "/proj/tdd/schemas/mine/templates/intent.md")
	require.NoError(t, err)
	assert.Equal(t, "# Intent\n", string(got))
}
