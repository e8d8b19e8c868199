package common

// Severity classifies a validation issue.
// Only errors make a result invalid; warnings and suggestions are advisory.
type Severity string

const (
	SeverityError      Severity = "error"
	SeverityWarning    Severity = "warning"
	SeveritySuggestion Severity = "suggestion"
)

// ValidationIssue represents a single validation issue
type ValidationIssue struct {
	Severity Severity `json:"severity"`
	Field    string   `json:"field,omitempty"`
	Message  string   `json:"message"`
	File     string   `json:"file,omitempty"`
}

// ValidationResult represents the outcome of validating one subject
type ValidationResult struct {
	Valid   bool              `json:"valid"`
	Issues  []ValidationIssue `json:"issues"`
	Summary Summary           `json:"summary"`
}

// Summary contains validation statistics
type Summary struct {
	Error      int `json:"error"`
	Warning    int `json:"warning"`
	Suggestion int `json:"suggestion"`
}

// NewValidationResult builds a result from issues, deriving validity and the summary
func NewValidationResult(issues []ValidationIssue) *ValidationResult {
	if issues == nil {
		issues = []ValidationIssue{}
	}
	vr := &ValidationResult{Issues: issues}
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityError:
			vr.Summary.Error++
		case SeverityWarning:
			vr.Summary.Warning++
		case SeveritySuggestion:
			vr.Summary.Suggestion++
		}
	}
	vr.Valid = vr.Summary.Error == 0
	return vr
}

// HasErrors reports whether any issue has error severity
func HasErrors(issues []ValidationIssue) bool {
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Filter returns the issues with the given severity
func Filter(issues []ValidationIssue, severity Severity) []ValidationIssue {
	var out []ValidationIssue
	for _, issue := range issues {
		if issue.Severity == severity {
			out = append(out, issue)
		}
	}
	return out
}
