package embed

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/YoshitsuguKoike/tdd/internal/infra/persistence/file"
)

//go:embed schemas
var schemasFS embed.FS

const schemasRoot = "schemas"

// SchemaFile is the YAML definition every schema directory carries
const SchemaFile = "schema.yaml"

// Template represents a built-in schema file to be written
type Template struct {
	Path    string // relative to the schema directory
	Content []byte
	Mode    os.FileMode
}

// BuiltinNames lists the schemas shipped with the binary, sorted
func BuiltinNames() []string {
	entries, err := fs.ReadDir(schemasFS, schemasRoot)
	if err != nil {
		return nil
	}
	names := []string{}
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

// HasBuiltin reports whether a schema of that name is embedded
func HasBuiltin(name string) bool {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return false
	}
	_, err := fs.Stat(schemasFS, path.Join(schemasRoot, name, SchemaFile))
	return err == nil
}

// ReadBuiltin returns one file of a built-in schema, e.g. "schema.yaml"
// or "templates/intent.md".
func ReadBuiltin(name, rel string) ([]byte, error) {
	if !HasBuiltin(name) {
		return nil, fmt.Errorf("built-in schema %q: %w", name, fs.ErrNotExist)
	}
	return schemasFS.ReadFile(path.Join(schemasRoot, name, filepath.ToSlash(rel)))
}

// GetTemplates returns every file of a built-in schema, ready to be
// extracted into a project's schemas directory.
func GetTemplates(name string) ([]Template, error) {
	if !HasBuiltin(name) {
		return nil, fmt.Errorf("built-in schema %q: %w", name, fs.ErrNotExist)
	}

	root := path.Join(schemasRoot, name)
	var templates []Template
	err := fs.WalkDir(schemasFS, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		content, err := schemasFS.ReadFile(p)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", p, err)
		}
		templates = append(templates, Template{
			Path:    strings.TrimPrefix(p, root+"/"),
			Content: content,
			Mode:    file.DefaultPerm,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return templates, nil
}

// WriteTemplateResult represents the result of writing a template
type WriteTemplateResult struct {
	Path   string
	Action string // "WROTE", "SKIP", "WROTE (force)"
}

// WriteTemplate writes a template below baseDir and returns the action taken
func WriteTemplate(fs afero.Fs, baseDir string, tmpl Template, force bool) (*WriteTemplateResult, error) {
	fullPath := filepath.Join(baseDir, filepath.FromSlash(tmpl.Path))
	result := &WriteTemplateResult{Path: tmpl.Path}

	exists, err := afero.Exists(fs, fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", fullPath, err)
	}
	if exists && !force {
		result.Action = "SKIP"
		return result, nil
	}

	if err := file.WriteFileAtomic(fs, fullPath, tmpl.Content, tmpl.Mode); err != nil {
		return nil, err
	}

	if force && exists {
		result.Action = "WROTE (force)"
	} else {
		result.Action = "WROTE"
	}
	return result, nil
}
