package change

import (
	"errors"
	"strings"
	"time"
)

// MetaFile is the per-change metadata file name
const MetaFile = ".tdd.yaml"

// Meta represents the metadata stored in a change directory
type Meta struct {
	Schema  string `yaml:"schema" json:"schema"`
	Created string `yaml:"created" json:"created"`
	Name    string `yaml:"name" json:"name"`
}

// NewMeta creates metadata stamped with createdAt in RFC3339 UTC
func NewMeta(name, schemaName string, createdAt time.Time) *Meta {
	return &Meta{
		Schema:  schemaName,
		Created: createdAt.UTC().Format(time.RFC3339Nano),
		Name:    name,
	}
}

// Validate checks that all required fields are present
func (m *Meta) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return errors.New(`change meta: "name" is required`)
	}
	if strings.TrimSpace(m.Schema) == "" {
		return errors.New(`change meta: "schema" is required`)
	}
	if strings.TrimSpace(m.Created) == "" {
		return errors.New(`change meta: "created" is required`)
	}
	return nil
}

// CreatedTime parses Created, returning the zero time when it is not a timestamp
func (m *Meta) CreatedTime() time.Time {
	t, err := time.Parse(time.RFC3339Nano, m.Created)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Info summarises a change directory for listings
type Info struct {
	Name         string        `json:"name"`
	Schema       string        `json:"schema"`
	Created      string        `json:"created"`
	Path         string        `json:"path"`
	Artifacts    []string      `json:"artifacts"`
	TaskProgress *TaskProgress `json:"task_progress,omitempty"`
}

// CreatedAt parses Created, returning the zero time when it is not a timestamp
func (i Info) CreatedAt() time.Time {
	m := Meta{Created: i.Created}
	return m.CreatedTime()
}
