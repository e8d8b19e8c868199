package dto

import (
	"github.com/YoshitsuguKoike/tdd/internal/domain/change"
	"github.com/YoshitsuguKoike/tdd/internal/domain/schema"
	"github.com/YoshitsuguKoike/tdd/internal/validator/common"
)

// CreateChangeResponse is returned by "change new"
type CreateChangeResponse struct {
	Name   string                 `json:"name"`
	Schema string                 `json:"schema"`
	Path   string                 `json:"path"`
	States []schema.ArtifactState `json:"artifacts"`
}

// ChangeListResponse lists active changes in creation order
type ChangeListResponse struct {
	Changes []change.Info `json:"changes"`
}

// ChangeDetailResponse is returned by "show"
type ChangeDetailResponse struct {
	Change change.Info            `json:"change"`
	States []schema.ArtifactState `json:"artifacts"`
	Next   *schema.Artifact       `json:"next,omitempty"`
	// NextTemplate is the template body for Next, filled by "show --template"
	NextTemplate string `json:"next_template,omitempty"`
}

// StatusResponse is the overall project status
type StatusResponse struct {
	Changes  []change.Info `json:"changes"`
	Archived int           `json:"archived"`
}

// ValidationResponse wraps a change validation result
type ValidationResponse struct {
	Name   string                   `json:"name"`
	Result *common.ValidationResult `json:"result"`
}

// ArchiveResponse reports an archive run
type ArchiveResponse struct {
	ArchivePath    string   `json:"archive_path"`
	SyncedCoverage []string `json:"synced_coverage"`
	Warnings       []string `json:"warnings"`
}

// CoverageFileDiff is one planned coverage write rendered as a diff
type CoverageFileDiff struct {
	Destination string `json:"destination"`
	Created     bool   `json:"created"`
	Diff        string `json:"diff"`
}

// CoveragePreviewResponse lists the writes an archive would perform
type CoveragePreviewResponse struct {
	Name     string             `json:"name"`
	Warnings []string           `json:"warnings,omitempty"`
	Files    []CoverageFileDiff `json:"files"`
}

// InitResponse reports what "init" created
type InitResponse struct {
	Created       []string `json:"created"`
	AlreadyExists bool     `json:"already_exists"`
}
