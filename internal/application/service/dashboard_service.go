package service

import (
	"context"

	"github.com/YoshitsuguKoike/tdd/internal/app/config"
	"github.com/YoshitsuguKoike/tdd/internal/application/dto"
	"github.com/YoshitsuguKoike/tdd/internal/domain/schema"
)

// recentArchived is how many archived changes the dashboard lists
const recentArchived = 5

// DashboardService assembles the project overview shown by "view"
type DashboardService struct {
	changes  *ChangeService
	statuses *ArtifactStatusService
	schemas  SchemaLoader
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(changes *ChangeService, statuses *ArtifactStatusService, schemas SchemaLoader) *DashboardService {
	return &DashboardService{changes: changes, statuses: statuses, schemas: schemas}
}

// Build collects artifact and task progress for every active change plus
// the most recent archived ones.
func (s *DashboardService) Build(ctx context.Context, cfg config.Config) (*dto.DashboardResponse, error) {
	active, err := s.changes.List(ctx)
	if err != nil {
		return nil, err
	}
	archived, err := s.changes.ListArchived(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardResponse{
		Schema:        cfg.Schema(),
		Context:       cfg.Context(),
		Changes:       []dto.DashboardChange{},
		Archived:      []dto.DashboardArchived{},
		ArchivedTotal: len(archived),
	}

	for _, c := range active {
		row := dto.DashboardChange{Name: c.Name}

		def, _, err := s.schemas.Load(c.Schema)
		if err == nil {
			existing, err := s.statuses.Existing(c.Path, *def)
			if err != nil {
				return nil, err
			}
			states := schema.Evaluate(existing, *def)
			row.ArtifactsDone = schema.CountByStatus(states)[schema.StatusDone]
			row.ArtifactsTotal = len(states)
		}

		if c.TaskProgress != nil {
			row.HasTasks = true
			row.TasksDone = c.TaskProgress.Completed
			row.TasksTotal = c.TaskProgress.Total
			row.Phase = c.TaskProgress.Phase()
		}
		resp.Changes = append(resp.Changes, row)
	}

	start := 0
	if len(archived) > recentArchived {
		start = len(archived) - recentArchived
	}
	for _, a := range archived[start:] {
		created := a.Created
		if t := a.CreatedAt(); !t.IsZero() {
			created = t.Format("2006-01-02")
		}
		resp.Archived = append(resp.Archived, dto.DashboardArchived{Name: a.Name, Created: created})
	}
	return resp, nil
}
