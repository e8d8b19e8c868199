package app

import (
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// DirName is the project-level directory that holds all tdd state
const DirName = "tdd"

// Paths holds every resolved location of the tdd layout for one project
type Paths struct {
	Root     string // project root
	Home     string // tdd
	Changes  string // tdd/changes
	Archive  string // tdd/changes/archive
	Coverage string // tdd/coverage
	Schemas  string // tdd/schemas

	// Key files
	Config string // tdd/config.yaml
}

// ResolvePaths builds the layout rooted at projectRoot
func ResolvePaths(projectRoot string) Paths {
	home := filepath.Join(projectRoot, DirName)
	p := Paths{
		Root:     projectRoot,
		Home:     home,
		Changes:  filepath.Join(home, "changes"),
		Coverage: filepath.Join(home, "coverage"),
		Schemas:  filepath.Join(home, "schemas"),
		Config:   filepath.Join(home, "config.yaml"),
	}
	p.Archive = filepath.Join(p.Changes, "archive")
	return p
}

// IsChangeName reports whether name can address an active change: a single
// path element that is neither "." nor ".." nor the archive directory.
func (p Paths) IsChangeName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return false
	}
	return name != filepath.Base(p.Archive)
}

// Change returns the directory of an active change
func (p Paths) Change(name string) string {
	return filepath.Join(p.Changes, name)
}

// ChangeCoverage returns the delta coverage directory of an active change
func (p Paths) ChangeCoverage(name string) string {
	return filepath.Join(p.Changes, name, "coverage")
}

// Schema returns the directory of a project-local schema
func (p Paths) Schema(name string) string {
	return filepath.Join(p.Schemas, name)
}

// FindProjectRoot walks up from start until it finds a directory containing
// a tdd/ directory. When none is found, start itself is returned.
func FindProjectRoot(fs afero.Fs, start string) string {
	abs, err := filepath.Abs(start)
	if err != nil {
		return start
	}

	dir := abs
	for {
		if ok, _ := afero.DirExists(fs, filepath.Join(dir, DirName)); ok {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return abs
		}
		dir = parent
	}
}
