package service

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/YoshitsuguKoike/tdd/internal/app"
	"github.com/YoshitsuguKoike/tdd/internal/domain"
	"github.com/YoshitsuguKoike/tdd/internal/domain/schema"
)

// ArtifactStatusService detects which artifacts of a change exist on disk
// and evaluates the dependency graph against them.
type ArtifactStatusService struct {
	fs    afero.Fs
	paths app.Paths
}

// NewArtifactStatusService creates a new artifact status service
func NewArtifactStatusService(fs afero.Fs, paths app.Paths) *ArtifactStatusService {
	return &ArtifactStatusService{fs: fs, paths: paths}
}

// Existing returns the ids of artifacts whose generated output is present in changeDir
func (s *ArtifactStatusService) Existing(changeDir string, def schema.Definition) (map[string]bool, error) {
	existing := make(map[string]bool, len(def.Artifacts))
	for _, a := range def.Artifacts {
		ok, err := afero.Exists(s.fs, generatedPath(changeDir, a))
		if err != nil {
			return nil, fmt.Errorf("failed to check artifact %s: %w", a.ID, err)
		}
		if ok {
			existing[a.ID] = true
		}
	}
	return existing, nil
}

// States evaluates every artifact of the named change. The states are
// recomputed from the filesystem on each call.
func (s *ArtifactStatusService) States(ctx context.Context, changeName string, def schema.Definition) ([]schema.ArtifactState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	changeDir := s.paths.Change(changeName)
	ok, err := afero.DirExists(s.fs, changeDir)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", changeDir, err)
	}
	if !ok {
		return nil, domain.NewNotFound(domain.KindChange, changeName)
	}

	existing, err := s.Existing(changeDir, def)
	if err != nil {
		return nil, err
	}
	return schema.Evaluate(existing, def), nil
}

// generatedPath maps an artifact to the path whose existence marks it done.
// For a wildcard pattern that is the directory part before the first "*".
func generatedPath(changeDir string, a schema.Artifact) string {
	generates := filepath.ToSlash(a.Generates)
	if !a.IsWildcard() {
		return filepath.Join(changeDir, filepath.FromSlash(generates))
	}
	prefix := strings.SplitN(path.Dir(generates), "*", 2)[0]
	return filepath.Join(changeDir, filepath.FromSlash(prefix))
}
