package dto

import "github.com/YoshitsuguKoike/tdd/internal/validator/common"

// SchemaSummary is one row of "schema list"
type SchemaSummary struct {
	Name        string   `json:"name"`
	Source      string   `json:"source"`
	Description string   `json:"description,omitempty"`
	Artifacts   []string `json:"artifacts"`
	Error       string   `json:"error,omitempty"`
}

// SchemaListResponse is returned by "schema list"
type SchemaListResponse struct {
	Schemas []SchemaSummary `json:"schemas"`
}

// SchemaCreatedResponse is returned by "schema init" and "schema fork"
type SchemaCreatedResponse struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	Source string `json:"source,omitempty"`
}

// SchemaValidationResponse is returned by "schema validate"
type SchemaValidationResponse struct {
	Name      string                   `json:"name"`
	Artifacts []string                 `json:"artifacts"`
	Result    *common.ValidationResult `json:"result"`
}
