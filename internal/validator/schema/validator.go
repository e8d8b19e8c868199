package schema

import (
	"fmt"
	"strings"

	domain "github.com/YoshitsuguKoike/tdd/internal/domain/schema"
	"github.com/YoshitsuguKoike/tdd/internal/validator/common"
)

const (
	unvisited = iota
	inProgress
	finished
)

// Validate checks structural soundness of a schema definition: declared
// ids are unique, every requires entry names a declared artifact, and
// the requires graph is acyclic.
func Validate(def domain.Definition) []common.ValidationIssue {
	issues := []common.ValidationIssue{}

	if strings.TrimSpace(def.Name) == "" {
		common.FieldErrorf(&issues, "name", `schema "name" is required`)
	}
	if len(def.Artifacts) == 0 {
		common.FieldErrorf(&issues, "artifacts", "schema must declare at least one artifact")
		return issues
	}

	declared := make(map[string]bool, len(def.Artifacts))
	for i, a := range def.Artifacts {
		field := fmt.Sprintf("artifacts[%d]", i)
		if strings.TrimSpace(a.ID) == "" {
			common.FieldErrorf(&issues, field, `artifact "id" is required`)
			continue
		}
		if declared[a.ID] {
			common.FieldErrorf(&issues, field, "duplicate artifact id %q", a.ID)
		}
		declared[a.ID] = true
		if strings.TrimSpace(a.Generates) == "" {
			common.FieldErrorf(&issues, field, "artifact %q has empty generates", a.ID)
		}
	}

	for i, a := range def.Artifacts {
		for _, dep := range a.Requires {
			if !declared[dep] {
				common.FieldErrorf(&issues, fmt.Sprintf("artifacts[%d].requires", i),
					"artifact %q requires unknown %q", a.ID, dep)
			}
		}
	}

	if def.Apply != nil {
		for _, dep := range def.Apply.Requires {
			if !declared[dep] {
				common.FieldErrorf(&issues, "apply.requires", "apply requires unknown %q", dep)
			}
		}
	}

	if cycle := FindCycle(def); len(cycle) > 0 {
		common.FieldErrorf(&issues, "artifacts", "schema has circular dependencies: %s", strings.Join(cycle, " -> "))
	}

	return issues
}

// FindCycle returns one cycle in the requires graph as a closed path
// (first id repeated at the end), or nil when the graph is acyclic.
// Every artifact is used as a DFS root so disconnected components are covered.
func FindCycle(def domain.Definition) []string {
	graph := make(map[string][]string, len(def.Artifacts))
	for _, a := range def.Artifacts {
		graph[a.ID] = a.Requires
	}

	state := make(map[string]int, len(graph))
	var stack []string
	var cycle []string

	var visit func(id string) bool
	visit = func(id string) bool {
		state[id] = inProgress
		stack = append(stack, id)
		for _, dep := range graph[id] {
			if _, known := graph[dep]; !known {
				continue
			}
			switch state[dep] {
			case inProgress:
				for i, onStack := range stack {
					if onStack == dep {
						cycle = append(append([]string{}, stack[i:]...), dep)
						break
					}
				}
				return true
			case unvisited:
				if visit(dep) {
					return true
				}
			}
		}
		stack = stack[:len(stack)-1]
		state[id] = finished
		return false
	}

	for _, a := range def.Artifacts {
		if state[a.ID] != unvisited {
			continue
		}
		if visit(a.ID) {
			return cycle
		}
	}
	return nil
}
