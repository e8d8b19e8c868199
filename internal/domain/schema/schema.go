package schema

import "strings"

// DefaultName is the schema used when a project does not configure one
const DefaultName = "test-driven"

// Artifact is a single deliverable document in a change's pipeline
type Artifact struct {
	ID          string   `yaml:"id" json:"id"`
	Generates   string   `yaml:"generates" json:"generates"`
	Description string   `yaml:"description" json:"description"`
	Template    string   `yaml:"template,omitempty" json:"template,omitempty"`
	Instruction string   `yaml:"instruction,omitempty" json:"instruction,omitempty"`
	Requires    []string `yaml:"requires" json:"requires"`
}

// IsWildcard reports whether Generates names a directory pattern rather than a file
func (a Artifact) IsWildcard() bool {
	return strings.Contains(a.Generates, "*")
}

// ApplyConfig describes what must exist before implementation starts
type ApplyConfig struct {
	Requires    []string `yaml:"requires" json:"requires"`
	Tracks      string   `yaml:"tracks" json:"tracks"`
	Instruction string   `yaml:"instruction,omitempty" json:"instruction,omitempty"`
}

// Definition is a named, versioned pipeline of artifacts
type Definition struct {
	Name        string       `yaml:"name" json:"name"`
	Version     int          `yaml:"version" json:"version"`
	Description string       `yaml:"description,omitempty" json:"description,omitempty"`
	Artifacts   []Artifact   `yaml:"artifacts" json:"artifacts"`
	Apply       *ApplyConfig `yaml:"apply,omitempty" json:"apply,omitempty"`
}

// Normalize fills in defaults left empty by the YAML document
func (d *Definition) Normalize() {
	if d.Version == 0 {
		d.Version = 1
	}
	for i := range d.Artifacts {
		if d.Artifacts[i].Requires == nil {
			d.Artifacts[i].Requires = []string{}
		}
	}
}

// ArtifactIDs returns artifact ids in declaration order
func (d Definition) ArtifactIDs() []string {
	ids := make([]string, 0, len(d.Artifacts))
	for _, a := range d.Artifacts {
		ids = append(ids, a.ID)
	}
	return ids
}

// Lookup returns the artifact with the given id
func (d Definition) Lookup(id string) (Artifact, bool) {
	for _, a := range d.Artifacts {
		if a.ID == id {
			return a, true
		}
	}
	return Artifact{}, false
}
