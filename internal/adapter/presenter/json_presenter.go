package presenter

import (
	"encoding/json"
	"io"

	"github.com/YoshitsuguKoike/tdd/internal/application/port/output"
)

// JSONPresenter implements output.Presenter for JSON output.
// Every call writes one JSON document per line.
type JSONPresenter struct {
	output io.Writer
}

// NewJSONPresenter creates a new JSON presenter
func NewJSONPresenter(output io.Writer) output.Presenter {
	return &JSONPresenter{output: output}
}

// PresentSuccess presents a successful result as JSON
func (p *JSONPresenter) PresentSuccess(message string, data interface{}) error {
	result := map[string]interface{}{
		"success": true,
		"message": message,
		"data":    data,
	}
	return p.encode(result)
}

// PresentWarnings presents warnings as JSON; an empty list writes nothing
func (p *JSONPresenter) PresentWarnings(warnings []string) error {
	if len(warnings) == 0 {
		return nil
	}
	result := map[string]interface{}{
		"type":     "warnings",
		"warnings": warnings,
	}
	return p.encode(result)
}

// PresentError presents an error as JSON
func (p *JSONPresenter) PresentError(err error) error {
	result := map[string]interface{}{
		"success": false,
		"error":   err.Error(),
	}
	return p.encode(result)
}

// PresentProgress presents progress information as JSON
func (p *JSONPresenter) PresentProgress(message string, progress int, total int) error {
	result := map[string]interface{}{
		"type":     "progress",
		"message":  message,
		"progress": progress,
		"total":    total,
		"percent":  ratio(progress, total) * 100,
	}
	return p.encode(result)
}

func (p *JSONPresenter) encode(v interface{}) error {
	enc := json.NewEncoder(p.output)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
