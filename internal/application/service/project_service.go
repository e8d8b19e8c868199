package service

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	"github.com/YoshitsuguKoike/tdd/internal/app"
	"github.com/YoshitsuguKoike/tdd/internal/infra/config"
	"github.com/YoshitsuguKoike/tdd/internal/infra/persistence/file"
)

// InitResult reports what ProjectService.Init created
type InitResult struct {
	Created       []string
	AlreadyExists bool
}

// ProjectService prepares the tdd/ layout of a project
type ProjectService struct {
	fs     afero.Fs
	paths  app.Paths
	logger app.Logger
}

// NewProjectService creates a new project service
func NewProjectService(fs afero.Fs, paths app.Paths) *ProjectService {
	return &ProjectService{fs: fs, paths: paths, logger: app.GetLogger()}
}

// Init creates tdd/, tdd/changes and tdd/coverage, and writes config.yaml
// with schemaName as the default schema unless one is already present.
// Running it again only fills in what is missing.
func (s *ProjectService) Init(ctx context.Context, schemaName string) (*InitResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	existed, err := afero.DirExists(s.fs, s.paths.Home)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", s.paths.Home, err)
	}
	result := &InitResult{Created: []string{}, AlreadyExists: existed}

	for _, dir := range []string{s.paths.Home, s.paths.Changes, s.paths.Coverage} {
		ok, err := afero.DirExists(s.fs, dir)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", dir, err)
		}
		if ok {
			continue
		}
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}
		result.Created = append(result.Created, dir)
	}

	written, err := file.WriteFileIfAbsent(s.fs, s.paths.Config, config.CreateDefaultSettings(schemaName), file.DefaultPerm)
	if err != nil {
		return nil, err
	}
	if written {
		result.Created = append(result.Created, s.paths.Config)
	}

	s.logger.Debug("init: created %d path(s) under %s", len(result.Created), s.paths.Home)
	return result, nil
}
