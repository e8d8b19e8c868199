package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/YoshitsuguKoike/tdd/internal/app"
	"github.com/YoshitsuguKoike/tdd/internal/domain"
	"github.com/YoshitsuguKoike/tdd/internal/domain/change"
	"github.com/YoshitsuguKoike/tdd/internal/domain/schema"
	"github.com/YoshitsuguKoike/tdd/internal/infra/persistence/file"
	"github.com/YoshitsuguKoike/tdd/internal/infra/schemastore"
	"github.com/YoshitsuguKoike/tdd/internal/pkg/changename"
)

// coverageArtifact marks a change that carries delta coverage
const coverageArtifact = "coverage/"

// knownArtifactFiles are reported by listings when present
var knownArtifactFiles = []string{"intent.md", "test-plan.md", "design.md", change.TasksFile}

// SchemaLoader resolves a schema definition by name
type SchemaLoader interface {
	Load(name string) (*schema.Definition, schemastore.Source, error)
}

// CreateChangeResult is the outcome of ChangeService.Create
type CreateChangeResult struct {
	Meta       *change.Meta
	Path       string
	Definition *schema.Definition
}

// ChangeService creates and lists changes
type ChangeService struct {
	fs      afero.Fs
	paths   app.Paths
	schemas SchemaLoader
	now     func() time.Time
	logger  app.Logger
}

// NewChangeService creates a new change service
func NewChangeService(fs afero.Fs, paths app.Paths, schemas SchemaLoader) *ChangeService {
	return &ChangeService{
		fs:      fs,
		paths:   paths,
		schemas: schemas,
		now:     time.Now,
		logger:  app.GetLogger(),
	}
}

// WithClock replaces the clock used to stamp new changes
func (s *ChangeService) WithClock(now func() time.Time) *ChangeService {
	s.now = now
	return s
}

// Create normalises name into a slug, checks the schema resolves and writes
// the change directory with its .tdd.yaml.
func (s *ChangeService) Create(ctx context.Context, name, schemaName string) (*CreateChangeResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	slug, err := changename.Normalize(name)
	if err != nil {
		return nil, err
	}

	def, _, err := s.schemas.Load(schemaName)
	if err != nil {
		return nil, err
	}

	changeDir := s.paths.Change(slug)
	if exists, _ := afero.Exists(s.fs, changeDir); exists {
		return nil, domain.NewExists(domain.KindChange, slug)
	}

	meta := change.NewMeta(slug, schemaName, s.now())
	data, err := yaml.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", change.MetaFile, err)
	}
	if err := s.fs.MkdirAll(changeDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", changeDir, err)
	}
	if err := file.WriteFileAtomic(s.fs, filepath.Join(changeDir, change.MetaFile), data, file.DefaultPerm); err != nil {
		return nil, err
	}

	if slug != name {
		s.logger.Info("change name %q normalised to %q", name, slug)
	}
	return &CreateChangeResult{Meta: meta, Path: changeDir, Definition: def}, nil
}

// Get loads one active change by directory name
func (s *ChangeService) Get(ctx context.Context, name string) (*change.Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !s.paths.IsChangeName(name) {
		return nil, domain.NewNotFound(domain.KindChange, name)
	}

	info, ok, err := s.load(s.paths.Change(name))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.NewNotFound(domain.KindChange, name)
	}
	return info, nil
}

// List returns active changes sorted by creation time. Entries that are not
// directories or lack readable metadata are skipped.
func (s *ChangeService) List(ctx context.Context) ([]change.Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	changes, err := s.scan(s.paths.Changes, filepath.Base(s.paths.Archive))
	if err != nil {
		return nil, err
	}
	sort.SliceStable(changes, func(i, j int) bool {
		return createdBefore(changes[i], changes[j])
	})
	return changes, nil
}

// ListArchived returns archived changes in directory order, which is
// chronological because of the date prefix.
func (s *ChangeService) ListArchived(ctx context.Context) ([]change.Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.scan(s.paths.Archive, "")
}

func (s *ChangeService) scan(dir, skip string) ([]change.Info, error) {
	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []change.Info{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	changes := []change.Info{}
	for _, entry := range entries {
		if !entry.IsDir() || entry.Name() == skip {
			continue
		}
		info, ok, err := s.load(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		if ok {
			changes = append(changes, *info)
		}
	}
	return changes, nil
}

// load reads one change directory. ok is false when the directory or its
// metadata is missing or unusable.
func (s *ChangeService) load(changeDir string) (*change.Info, bool, error) {
	metaPath := filepath.Join(changeDir, change.MetaFile)
	data, err := afero.ReadFile(s.fs, metaPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read %s: %w", metaPath, err)
	}

	var meta change.Meta
	if err := yaml.Unmarshal(data, &meta); err != nil {
		s.logger.Debug("skipping %s: %v", changeDir, err)
		return nil, false, nil
	}
	if err := meta.Validate(); err != nil {
		s.logger.Debug("skipping %s: %v", changeDir, err)
		return nil, false, nil
	}

	artifacts, err := s.detectArtifacts(changeDir)
	if err != nil {
		return nil, false, err
	}
	progress, err := s.taskProgress(changeDir)
	if err != nil {
		return nil, false, err
	}

	return &change.Info{
		Name:         meta.Name,
		Schema:       meta.Schema,
		Created:      meta.Created,
		Path:         changeDir,
		Artifacts:    artifacts,
		TaskProgress: progress,
	}, true, nil
}

func (s *ChangeService) detectArtifacts(changeDir string) ([]string, error) {
	artifacts := []string{}
	for _, name := range knownArtifactFiles {
		ok, err := afero.Exists(s.fs, filepath.Join(changeDir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to check %s: %w", name, err)
		}
		if ok {
			artifacts = append(artifacts, name)
		}
	}
	if ok, _ := afero.Exists(s.fs, filepath.Join(changeDir, "coverage")); ok {
		artifacts = append(artifacts, coverageArtifact)
	}
	return artifacts, nil
}

func (s *ChangeService) taskProgress(changeDir string) (*change.TaskProgress, error) {
	tasksPath := filepath.Join(changeDir, change.TasksFile)
	data, err := afero.ReadFile(s.fs, tasksPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", tasksPath, err)
	}
	return change.ParseTaskProgress(string(data)), nil
}

func createdBefore(a, b change.Info) bool {
	ta, tb := a.CreatedAt(), b.CreatedAt()
	if !ta.Equal(tb) {
		return ta.Before(tb)
	}
	return a.Name < b.Name
}
