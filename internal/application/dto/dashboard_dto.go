package dto

// DashboardChange is one active change on the dashboard
type DashboardChange struct {
	Name           string `json:"name"`
	ArtifactsDone  int    `json:"artifacts_done"`
	ArtifactsTotal int    `json:"artifacts_total"`
	TasksDone      int    `json:"tasks_done"`
	TasksTotal     int    `json:"tasks_total"`
	HasTasks       bool   `json:"has_tasks"`
	Phase          string `json:"phase,omitempty"`
}

// DashboardArchived is one archived change on the dashboard
type DashboardArchived struct {
	Name    string `json:"name"`
	Created string `json:"created"`
}

// DashboardResponse is rendered by "view"
type DashboardResponse struct {
	Schema        string              `json:"schema"`
	Context       string              `json:"context,omitempty"`
	Changes       []DashboardChange   `json:"changes"`
	Archived      []DashboardArchived `json:"archived"`
	ArchivedTotal int                 `json:"archived_total"`
}
