package common

import "fmt"

// Errorf appends an error issue
func Errorf(issues *[]ValidationIssue, file, format string, args ...interface{}) {
	add(issues, SeverityError, file, format, args...)
}

// Warnf appends a warning issue
func Warnf(issues *[]ValidationIssue, file, format string, args ...interface{}) {
	add(issues, SeverityWarning, file, format, args...)
}

// Suggestf appends a suggestion issue
func Suggestf(issues *[]ValidationIssue, file, format string, args ...interface{}) {
	add(issues, SeveritySuggestion, file, format, args...)
}

// FieldErrorf appends an error issue tied to a document field
func FieldErrorf(issues *[]ValidationIssue, field, format string, args ...interface{}) {
	*issues = append(*issues, ValidationIssue{
		Severity: SeverityError,
		Field:    field,
		Message:  fmt.Sprintf(format, args...),
	})
}

func add(issues *[]ValidationIssue, severity Severity, file, format string, args ...interface{}) {
	*issues = append(*issues, ValidationIssue{
		Severity: severity,
		Message:  fmt.Sprintf(format, args...),
		File:     file,
	})
}
