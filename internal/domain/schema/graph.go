package schema

// Status is the derived state of an artifact within a change
type Status string

const (
	StatusDone    Status = "done"
	StatusReady   Status = "ready"
	StatusBlocked Status = "blocked"
)

// ArtifactState pairs an artifact with its computed status.
// BlockedBy lists unmet dependencies in the order given by Requires.
type ArtifactState struct {
	Artifact  Artifact `json:"artifact"`
	Status    Status   `json:"status"`
	BlockedBy []string `json:"blocked_by"`
}

// Evaluate computes one state per artifact, in schema order.
// existing holds the ids of artifacts whose generated output is present.
func Evaluate(existing map[string]bool, def Definition) []ArtifactState {
	done := make(map[string]bool, len(def.Artifacts))
	for _, a := range def.Artifacts {
		if existing[a.ID] {
			done[a.ID] = true
		}
	}

	states := make([]ArtifactState, 0, len(def.Artifacts))
	for _, a := range def.Artifacts {
		if done[a.ID] {
			states = append(states, ArtifactState{Artifact: a, Status: StatusDone, BlockedBy: []string{}})
			continue
		}

		blockedBy := []string{}
		for _, dep := range a.Requires {
			if !done[dep] {
				blockedBy = append(blockedBy, dep)
			}
		}
		if len(blockedBy) == 0 {
			states = append(states, ArtifactState{Artifact: a, Status: StatusReady, BlockedBy: blockedBy})
			continue
		}
		states = append(states, ArtifactState{Artifact: a, Status: StatusBlocked, BlockedBy: blockedBy})
	}
	return states
}

// FirstReady returns the first ready artifact in schema order
func FirstReady(states []ArtifactState) (Artifact, bool) {
	for _, s := range states {
		if s.Status == StatusReady {
			return s.Artifact, true
		}
	}
	return Artifact{}, false
}

// AllReady returns every ready artifact, preserving schema order
func AllReady(states []ArtifactState) []Artifact {
	ready := []Artifact{}
	for _, s := range states {
		if s.Status == StatusReady {
			ready = append(ready, s.Artifact)
		}
	}
	return ready
}

// AllDone reports whether every artifact is done
func AllDone(states []ArtifactState) bool {
	for _, s := range states {
		if s.Status != StatusDone {
			return false
		}
	}
	return true
}

// CountByStatus tallies states per status
func CountByStatus(states []ArtifactState) map[Status]int {
	counts := map[Status]int{}
	for _, s := range states {
		counts[s.Status]++
	}
	return counts
}
