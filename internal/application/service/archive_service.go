package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/YoshitsuguKoike/tdd/internal/app"
	"github.com/YoshitsuguKoike/tdd/internal/domain"
	"github.com/YoshitsuguKoike/tdd/internal/domain/change"
)

// archiveDateLayout prefixes archived change directories
const archiveDateLayout = "2006-01-02"

// ArchiveResult reports what an archive run did
type ArchiveResult struct {
	ArchivePath    string
	SyncedCoverage []string
	Warnings       []string
}

// ArchiveService moves a finished change into the archive, merging its
// delta coverage into the main coverage tree first.
type ArchiveService struct {
	fs       afero.Fs
	paths    app.Paths
	coverage *CoverageSyncService
	now      func() time.Time
	logger   app.Logger
}

// NewArchiveService creates a new archive service
func NewArchiveService(fs afero.Fs, paths app.Paths, coverage *CoverageSyncService) *ArchiveService {
	return &ArchiveService{
		fs:       fs,
		paths:    paths,
		coverage: coverage,
		now:      time.Now,
		logger:   app.GetLogger(),
	}
}

// WithClock replaces the clock used for the archive date
func (s *ArchiveService) WithClock(now func() time.Time) *ArchiveService {
	s.now = now
	return s
}

// Archive archives the named change. A missing change fails with
// domain.ErrNotFound before anything is touched. Incomplete tasks only
// produce a warning. The destination must not exist yet.
func (s *ArchiveService) Archive(ctx context.Context, changeName string, syncCoverage bool) (*ArchiveResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	changeDir, err := s.requireChange(changeName)
	if err != nil {
		return nil, err
	}

	result := &ArchiveResult{SyncedCoverage: []string{}, Warnings: []string{}}

	warnings, err := s.Warnings(changeName)
	if err != nil {
		return nil, err
	}
	result.Warnings = append(result.Warnings, warnings...)

	if syncCoverage {
		synced, err := s.coverage.Sync(ctx, s.paths.ChangeCoverage(changeName), s.paths.Coverage)
		if err != nil {
			return nil, err
		}
		result.SyncedCoverage = append(result.SyncedCoverage, synced...)
	}

	if err := s.fs.MkdirAll(s.paths.Archive, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}

	archivePath := s.ArchivePath(changeName)
	// Rename onto an empty directory succeeds on some platforms
	if taken, _ := afero.Exists(s.fs, archivePath); taken {
		return nil, fmt.Errorf("failed to archive change %q: %s: %w", changeName, archivePath, os.ErrExist)
	}
	if err := s.fs.Rename(changeDir, archivePath); err != nil {
		return nil, fmt.Errorf("failed to archive change %q: %w", changeName, err)
	}
	result.ArchivePath = archivePath

	s.logger.Info("archived %s to %s", changeName, archivePath)
	return result, nil
}

// ArchivePreview is what Archive would do, computed without writing
type ArchivePreview struct {
	ArchivePath string
	Warnings    []string
	Plan        []PlannedWrite
}

// Preview reports the archive destination, the warnings and the coverage
// writes an Archive call would perform. Nothing is written.
func (s *ArchiveService) Preview(ctx context.Context, changeName string, syncCoverage bool) (*ArchivePreview, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := s.requireChange(changeName); err != nil {
		return nil, err
	}

	warnings, err := s.Warnings(changeName)
	if err != nil {
		return nil, err
	}
	preview := &ArchivePreview{
		ArchivePath: s.ArchivePath(changeName),
		Warnings:    append([]string{}, warnings...),
		Plan:        []PlannedWrite{},
	}
	if syncCoverage {
		plan, err := s.coverage.Plan(ctx, s.paths.ChangeCoverage(changeName), s.paths.Coverage)
		if err != nil {
			return nil, err
		}
		preview.Plan = append(preview.Plan, plan...)
	}
	return preview, nil
}

func (s *ArchiveService) requireChange(changeName string) (string, error) {
	if !s.paths.IsChangeName(changeName) {
		return "", domain.NewNotFound(domain.KindChange, changeName)
	}
	changeDir := s.paths.Change(changeName)
	ok, err := afero.DirExists(s.fs, changeDir)
	if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", changeDir, err)
	}
	if !ok {
		return "", domain.NewNotFound(domain.KindChange, changeName)
	}
	return changeDir, nil
}

// ArchivePath returns where the change would be archived today
func (s *ArchiveService) ArchivePath(changeName string) string {
	date := s.now().UTC().Format(archiveDateLayout)
	return filepath.Join(s.paths.Archive, date+"-"+changeName)
}

// Warnings returns the non-fatal findings reported before archiving
func (s *ArchiveService) Warnings(changeName string) ([]string, error) {
	tasksPath := filepath.Join(s.paths.Change(changeName), change.TasksFile)
	data, err := afero.ReadFile(s.fs, tasksPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", tasksPath, err)
	}

	var warnings []string
	if n := change.CountIncomplete(string(data)); n > 0 {
		warnings = append(warnings, fmt.Sprintf("%d task(s) incomplete in %s", n, change.TasksFile))
	}
	return warnings, nil
}
