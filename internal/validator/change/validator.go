package change

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	domain "github.com/YoshitsuguKoike/tdd/internal/domain/change"
	"github.com/YoshitsuguKoike/tdd/internal/domain/coverage"
	"github.com/YoshitsuguKoike/tdd/internal/validator/common"
)

// Documents inspected by the validator
const (
	IntentFile   = "intent.md"
	TestPlanFile = "test-plan.md"
	CoverageDir  = "coverage"
)

var (
	testHeadingRe = regexp.MustCompile(`(?m)^### Test:`)
	redPhaseRe    = regexp.MustCompile(`(?i)## \d+\.\s*RED`)
	greenPhaseRe  = regexp.MustCompile(`(?i)## \d+\.\s*GREEN`)
	refactorRe    = regexp.MustCompile(`(?i)## \d+\.\s*REFACTOR`)
	checkboxRe    = regexp.MustCompile(`- \[[ x]\]`)
)

// Validator checks the documents of one change directory
type Validator struct {
	fs afero.Fs
}

// NewValidator creates a change validator reading through fs
func NewValidator(fs afero.Fs) *Validator {
	return &Validator{fs: fs}
}

// Validate inspects changeDir. Only a missing change or broken metadata is
// an error; document structure problems are warnings or suggestions.
func (v *Validator) Validate(changeDir, name string) (*common.ValidationResult, error) {
	issues := []common.ValidationIssue{}

	exists, err := afero.DirExists(v.fs, changeDir)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", changeDir, err)
	}
	if !exists {
		common.Errorf(&issues, "", "Change %q not found", name)
		return common.NewValidationResult(issues), nil
	}

	if err := v.validateMeta(changeDir, &issues); err != nil {
		return nil, err
	}
	if err := v.validateIntent(changeDir, &issues); err != nil {
		return nil, err
	}
	if err := v.validateTestPlan(changeDir, &issues); err != nil {
		return nil, err
	}
	if err := v.validateTasks(changeDir, &issues); err != nil {
		return nil, err
	}
	if err := v.validateCoverage(changeDir, &issues); err != nil {
		return nil, err
	}

	return common.NewValidationResult(issues), nil
}

func (v *Validator) validateMeta(changeDir string, issues *[]common.ValidationIssue) error {
	metaPath := filepath.Join(changeDir, domain.MetaFile)
	data, ok, err := v.read(metaPath)
	if err != nil {
		return err
	}
	if !ok {
		common.Errorf(issues, metaPath, "Missing %s metadata file", domain.MetaFile)
		return nil
	}

	var meta domain.Meta
	if err := yaml.Unmarshal([]byte(data), &meta); err != nil {
		common.Errorf(issues, metaPath, "Invalid %s: %v", domain.MetaFile, err)
		return nil
	}
	if err := meta.Validate(); err != nil {
		common.Errorf(issues, metaPath, "Invalid %s: %v", domain.MetaFile, err)
	}
	return nil
}

func (v *Validator) validateIntent(changeDir string, issues *[]common.ValidationIssue) error {
	intentPath := filepath.Join(changeDir, IntentFile)
	content, ok, err := v.read(intentPath)
	if err != nil {
		return err
	}
	if !ok {
		common.Warnf(issues, intentPath, "Missing %s", IntentFile)
		return nil
	}

	for _, section := range []string{"## Why", "## What Changes"} {
		if !strings.Contains(content, section) {
			common.Warnf(issues, intentPath, "%s missing %q section", IntentFile, section)
		}
	}
	return nil
}

func (v *Validator) validateTestPlan(changeDir string, issues *[]common.ValidationIssue) error {
	planPath := filepath.Join(changeDir, TestPlanFile)
	content, ok, err := v.read(planPath)
	if err != nil {
		return err
	}
	if !ok {
		common.Warnf(issues, planPath, "Missing %s", TestPlanFile)
		return nil
	}

	tests := len(testHeadingRe.FindAllStringIndex(content, -1))
	if tests == 0 {
		common.Warnf(issues, planPath, "%s has no test scenarios (### Test: blocks)", TestPlanFile)
		return nil
	}

	for _, name := range coverage.ParseDocument(content).Duplicates() {
		common.Warnf(issues, planPath, "%s has duplicate test scenario %q", TestPlanFile, name)
	}

	if strings.Count(content, "- GIVEN") < tests {
		common.Suggestf(issues, planPath, "Some test scenarios may be missing GIVEN clauses")
	}
	if strings.Count(content, "- WHEN") < tests {
		common.Suggestf(issues, planPath, "Some test scenarios may be missing WHEN clauses")
	}
	if strings.Count(content, "- THEN") < tests {
		common.Warnf(issues, planPath, "Some test scenarios are missing THEN clauses")
	}
	return nil
}

// validateTasks is skipped entirely when tasks.md has not been written yet
func (v *Validator) validateTasks(changeDir string, issues *[]common.ValidationIssue) error {
	tasksPath := filepath.Join(changeDir, domain.TasksFile)
	content, ok, err := v.read(tasksPath)
	if err != nil || !ok {
		return err
	}

	if !redPhaseRe.MatchString(content) {
		common.Warnf(issues, tasksPath, "%s missing RED phase section", domain.TasksFile)
	}
	if !greenPhaseRe.MatchString(content) {
		common.Warnf(issues, tasksPath, "%s missing GREEN phase section", domain.TasksFile)
	}
	if !refactorRe.MatchString(content) {
		common.Suggestf(issues, tasksPath, "%s missing REFACTOR phase section", domain.TasksFile)
	}
	if !checkboxRe.MatchString(content) {
		common.Warnf(issues, tasksPath, "%s has no checkbox tasks (- [ ] or - [x])", domain.TasksFile)
	}
	return nil
}

// validateCoverage warns about delta files with no recognised section and
// about test names added twice
func (v *Validator) validateCoverage(changeDir string, issues *[]common.ValidationIssue) error {
	root := filepath.Join(changeDir, CoverageDir)
	ok, err := afero.DirExists(v.fs, root)
	if err != nil || !ok {
		return err
	}

	return afero.Walk(v.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || filepath.Ext(path) != ".md" {
			return nil
		}
		content, _, err := v.read(path)
		if err != nil {
			return err
		}

		delta := coverage.ParseDelta(content)
		if delta.IsEmpty() {
			common.Warnf(issues, path, "Delta has no %q, %q or %q section",
				coverage.SectionAdded, coverage.SectionModified, coverage.SectionRemoved)
			return nil
		}
		if delta.Added != nil {
			for _, name := range coverage.ParseDocument(*delta.Added).Duplicates() {
				common.Warnf(issues, path, "Test %q is added more than once", name)
			}
		}
		return nil
	})
}

func (v *Validator) read(path string) (string, bool, error) {
	data, err := afero.ReadFile(v.fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), true, nil
}
