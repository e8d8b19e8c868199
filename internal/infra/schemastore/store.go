package schemastore

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/YoshitsuguKoike/tdd/internal/app"
	"github.com/YoshitsuguKoike/tdd/internal/domain"
	"github.com/YoshitsuguKoike/tdd/internal/domain/schema"
	"github.com/YoshitsuguKoike/tdd/internal/embed"
	"github.com/YoshitsuguKoike/tdd/internal/infra/persistence/file"
)

// Source tells where a schema was resolved from
type Source string

const (
	SourceProject Source = "project"
	SourceBuiltin Source = "built-in"
)

const templatesDir = "templates"

// Store resolves schemas by name: tdd/schemas/<name>/schema.yaml first,
// then the schemas embedded in the binary.
type Store struct {
	fs     afero.Fs
	paths  app.Paths
	logger app.Logger
}

// New creates a Store for one project
func New(fs afero.Fs, paths app.Paths) *Store {
	return &Store{fs: fs, paths: paths, logger: app.GetLogger()}
}

// Entry is one row of List
type Entry struct {
	Name       string
	Source     Source
	Definition *schema.Definition
	Err        error
}

// Parse decodes a schema document, rejecting unknown fields
func Parse(data []byte) (*schema.Definition, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var def schema.Definition
	if err := dec.Decode(&def); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("schema: parse: empty document")
		}
		return nil, fmt.Errorf("schema: parse: %w", err)
	}
	def.Normalize()
	return &def, nil
}

// Resolve reports where the named schema lives without loading it
func (s *Store) Resolve(name string) (Source, error) {
	if !validName(name) {
		return "", domain.NewNotFound(domain.KindSchema, name)
	}
	if ok, _ := afero.Exists(s.fs, s.projectSchemaFile(name)); ok {
		return SourceProject, nil
	}
	if embed.HasBuiltin(name) {
		return SourceBuiltin, nil
	}
	return "", domain.NewNotFound(domain.KindSchema, name)
}

// Load resolves and parses the named schema
func (s *Store) Load(name string) (*schema.Definition, Source, error) {
	source, err := s.Resolve(name)
	if err != nil {
		return nil, "", err
	}

	var data []byte
	switch source {
	case SourceProject:
		data, err = afero.ReadFile(s.fs, s.projectSchemaFile(name))
	default:
		data, err = embed.ReadBuiltin(name, embed.SchemaFile)
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to read schema %q: %w", name, err)
	}

	def, err := Parse(data)
	if err != nil {
		return nil, "", fmt.Errorf("schema %q: %w", name, err)
	}
	s.logger.Debug("loaded schema %s from %s", name, source)
	return def, source, nil
}

// Template returns the content of a schema template, looking in the project
// schema directory first and then in the built-in copy.
func (s *Store) Template(name, templateName string) (string, bool, error) {
	if !validName(name) || templateName == "" {
		return "", false, nil
	}

	projectPath := filepath.Join(s.paths.Schema(name), templatesDir, templateName)
	data, err := afero.ReadFile(s.fs, projectPath)
	if err == nil {
		return string(data), true, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", false, fmt.Errorf("failed to read %s: %w", projectPath, err)
	}

	if embed.HasBuiltin(name) {
		data, err := embed.ReadBuiltin(name, templatesDir+"/"+templateName)
		if err == nil {
			return string(data), true, nil
		}
	}
	return "", false, nil
}

// List returns every resolvable schema, built-ins first. A project schema
// that shadows a built-in is reported once, as a project schema.
func (s *Store) List() ([]Entry, error) {
	names := map[string]bool{}
	for _, n := range embed.BuiltinNames() {
		names[n] = true
	}

	infos, err := afero.ReadDir(s.fs, s.paths.Schemas)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", s.paths.Schemas, err)
	}
	for _, info := range infos {
		if !info.IsDir() {
			continue
		}
		if ok, _ := afero.Exists(s.fs, s.projectSchemaFile(info.Name())); ok {
			names[info.Name()] = true
		}
	}

	sorted := make([]string, 0, len(names))
	for n := range names {
		sorted = append(sorted, n)
	}
	sort.Slice(sorted, func(i, j int) bool {
		bi, bj := embed.HasBuiltin(sorted[i]), embed.HasBuiltin(sorted[j])
		if bi != bj {
			return bi
		}
		return sorted[i] < sorted[j]
	})

	entries := make([]Entry, 0, len(sorted))
	for _, n := range sorted {
		def, source, err := s.Load(n)
		if source == "" {
			source, _ = s.Resolve(n)
		}
		entries = append(entries, Entry{Name: n, Source: source, Definition: def, Err: err})
	}
	return entries, nil
}

// DefaultInitArtifacts is the chain used by Init when none is given
var DefaultInitArtifacts = []string{"intent", "test-plan", "tasks"}

// Init creates tdd/schemas/<name> with a linear chain of artifacts, each
// requiring the previous one, plus a placeholder template per artifact.
func (s *Store) Init(name, description string, artifactIDs []string) (string, error) {
	if !validName(name) {
		return "", fmt.Errorf("invalid schema name %q", name)
	}
	dir := s.paths.Schema(name)
	if ok, _ := afero.Exists(s.fs, dir); ok {
		return "", domain.NewExists(domain.KindSchema, name)
	}

	ids := cleanIDs(artifactIDs)
	if len(ids) == 0 {
		ids = DefaultInitArtifacts
	}
	if description == "" {
		description = "Custom schema: " + name
	}

	def := schema.Definition{
		Name:        name,
		Version:     1,
		Description: description,
		Apply: &schema.ApplyConfig{
			Requires: []string{ids[len(ids)-1]},
			Tracks:   "tasks.md",
		},
	}
	for i, id := range ids {
		requires := []string{}
		if i > 0 {
			requires = []string{ids[i-1]}
		}
		def.Artifacts = append(def.Artifacts, schema.Artifact{
			ID:          id,
			Generates:   id + ".md",
			Description: id + " artifact",
			Template:    id + ".md",
			Requires:    requires,
		})
	}

	data, err := yaml.Marshal(&def)
	if err != nil {
		return "", fmt.Errorf("failed to encode schema: %w", err)
	}
	if err := file.WriteFileAtomic(s.fs, filepath.Join(dir, embed.SchemaFile), data, file.DefaultPerm); err != nil {
		return "", err
	}
	for _, id := range ids {
		content := fmt.Sprintf("# %s\n\n<!-- Template for %s artifact -->\n", id, id)
		if err := file.WriteFileAtomic(s.fs, filepath.Join(dir, templatesDir, id+".md"), []byte(content), file.DefaultPerm); err != nil {
			return "", err
		}
	}

	s.logger.Info("created schema %s at %s", name, dir)
	return dir, nil
}

// Fork copies an existing schema into tdd/schemas/<name> and renames it.
// A built-in source is extracted from the binary.
func (s *Store) Fork(source, name string) (string, error) {
	from, err := s.Resolve(source)
	if err != nil {
		return "", err
	}
	if !validName(name) {
		return "", fmt.Errorf("invalid schema name %q", name)
	}
	target := s.paths.Schema(name)
	if ok, _ := afero.Exists(s.fs, target); ok {
		return "", domain.NewExists(domain.KindSchema, name)
	}

	switch from {
	case SourceProject:
		if err := copyDir(s.fs, s.paths.Schema(source), target); err != nil {
			return "", fmt.Errorf("failed to copy schema %q: %w", source, err)
		}
	default:
		templates, err := embed.GetTemplates(source)
		if err != nil {
			return "", err
		}
		for _, tmpl := range templates {
			if _, err := embed.WriteTemplate(s.fs, target, tmpl, false); err != nil {
				return "", err
			}
		}
	}

	if err := renameSchema(s.fs, filepath.Join(target, embed.SchemaFile), name); err != nil {
		return "", err
	}

	s.logger.Info("forked schema %s to %s", source, target)
	return target, nil
}

func (s *Store) projectSchemaFile(name string) string {
	return filepath.Join(s.paths.Schema(name), embed.SchemaFile)
}

func validName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}

func cleanIDs(ids []string) []string {
	out := []string{}
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			out = append(out, id)
		}
	}
	return out
}

func copyDir(fs afero.Fs, src, dst string) error {
	return afero.Walk(fs, src, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, p)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if info.IsDir() {
			return fs.MkdirAll(target, 0o755)
		}
		data, err := afero.ReadFile(fs, p)
		if err != nil {
			return err
		}
		return file.WriteFileAtomic(fs, target, data, info.Mode().Perm())
	})
}

// renameSchema rewrites the top-level name key in place, keeping the rest
// of the document (comments included) as it was.
func renameSchema(fs afero.Fs, path, name string) error {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return fmt.Errorf("%s: top level must be a mapping", path)
	}

	root := doc.Content[0]
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == "name" {
			root.Content[i+1].Value = name
			root.Content[i+1].Style = 0
		}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return file.WriteFileAtomic(fs, path, buf.Bytes(), file.DefaultPerm)
}
