package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/YoshitsuguKoike/tdd/internal/app"
	"github.com/YoshitsuguKoike/tdd/internal/domain/coverage"
	"github.com/YoshitsuguKoike/tdd/internal/infra/persistence/file"
)

// PlannedWrite is one merged coverage document waiting to be written
type PlannedWrite struct {
	RelPath     string  // path below both roots
	Source      string  // delta document
	Destination string  // main document
	Existing    *string // current main content, nil when the main document is absent
	Merged      string
}

// Created reports whether the write creates a new main document
func (w PlannedWrite) Created() bool {
	return w.Existing == nil
}

// Changed reports whether the write alters the main document
func (w PlannedWrite) Changed() bool {
	return w.Existing == nil || *w.Existing != w.Merged
}

// CoverageSyncService merges a delta coverage tree into the main coverage tree.
// Planning only reads; Apply performs the writes.
type CoverageSyncService struct {
	fs     afero.Fs
	logger app.Logger
}

// NewCoverageSyncService creates a new coverage sync service
func NewCoverageSyncService(fs afero.Fs) *CoverageSyncService {
	return &CoverageSyncService{fs: fs, logger: app.GetLogger()}
}

// Plan walks deltaRoot and computes the merged content of every "*.md"
// document against the same relative path under mainRoot. A missing
// deltaRoot yields an empty plan.
func (s *CoverageSyncService) Plan(ctx context.Context, deltaRoot, mainRoot string) ([]PlannedWrite, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ok, err := afero.DirExists(s.fs, deltaRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", deltaRoot, err)
	}
	if !ok {
		return nil, nil
	}

	var plan []PlannedWrite
	err = afero.Walk(s.fs, deltaRoot, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() || !strings.HasSuffix(info.Name(), ".md") {
			return nil
		}

		rel, err := filepath.Rel(deltaRoot, p)
		if err != nil {
			return err
		}
		write, err := s.planOne(p, filepath.Join(mainRoot, rel), rel)
		if err != nil {
			return err
		}
		plan = append(plan, write)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to plan coverage sync: %w", err)
	}
	return plan, nil
}

func (s *CoverageSyncService) planOne(source, destination, rel string) (PlannedWrite, error) {
	delta, err := afero.ReadFile(s.fs, source)
	if err != nil {
		return PlannedWrite{}, fmt.Errorf("failed to read %s: %w", source, err)
	}

	var existing *string
	current, err := afero.ReadFile(s.fs, destination)
	switch {
	case err == nil:
		text := string(current)
		existing = &text
	case !errors.Is(err, os.ErrNotExist):
		return PlannedWrite{}, fmt.Errorf("failed to read %s: %w", destination, err)
	}

	return PlannedWrite{
		RelPath:     rel,
		Source:      source,
		Destination: destination,
		Existing:    existing,
		Merged:      coverage.MergeDelta(existing, string(delta)),
	}, nil
}

// Apply writes every planned document, creating directories on demand,
// and returns the destinations in plan order.
func (s *CoverageSyncService) Apply(ctx context.Context, plan []PlannedWrite) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	synced := make([]string, 0, len(plan))
	for _, w := range plan {
		if err := file.WriteFileAtomic(s.fs, w.Destination, []byte(w.Merged), file.DefaultPerm); err != nil {
			return synced, err
		}
		if w.Created() {
			s.logger.Debug("coverage: created %s", w.Destination)
		} else {
			s.logger.Debug("coverage: merged %s", w.Destination)
		}
		synced = append(synced, w.Destination)
	}
	return synced, nil
}

// Sync plans and applies in one step
func (s *CoverageSyncService) Sync(ctx context.Context, deltaRoot, mainRoot string) ([]string, error) {
	plan, err := s.Plan(ctx, deltaRoot, mainRoot)
	if err != nil {
		return nil, err
	}
	return s.Apply(ctx, plan)
}
