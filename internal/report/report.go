package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/grovetools/agentperms/internal/permission"
)

// Format selects how a document is written.
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
)

// ParseFormat validates a user-supplied format name. Empty means JSON.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatYAML, FormatTable:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown output format %q (expected json, yaml or table)", s)
}

// ErrReported signals that a failure was already written as an error
// document; the caller only needs to exit non-zero.
var ErrReported = errors.New("error report rendered")

// Report is the successful output document.
type Report struct {
	SessionFile      string                  `json:"session_file" yaml:"session_file"`
	Suggestions      *permission.Suggestions `json:"suggestions" yaml:"suggestions"`
	TotalUniqueRules int                     `json:"total_unique_rules" yaml:"total_unique_rules"`
}

// New builds a report for the suggestions derived from sessionFile.
func New(sessionFile string, suggestions *permission.Suggestions) Report {
	if suggestions == nil {
		suggestions = permission.NewSuggestions()
	}
	return Report{
		SessionFile:      displayPath(sessionFile),
		Suggestions:      suggestions,
		TotalUniqueRules: suggestions.Len(),
	}
}

// displayPath drops empty and "." segments from path but, unlike
// filepath.Clean, keeps ".." so the path reads as the user typed it.
func displayPath(path string) string {
	var kept []string
	for _, part := range strings.Split(path, "/") {
		if part != "" && part != "." {
			kept = append(kept, part)
		}
	}
	out := strings.Join(kept, "/")
	if strings.HasPrefix(path, "/") {
		return "/" + out
	}
	if out == "" {
		return "."
	}
	return out
}

// ErrorReport is written instead of a Report when no session resolves.
type ErrorReport struct {
	Error      string `json:"error" yaml:"error"`
	Suggestion string `json:"suggestion" yaml:"suggestion"`
}

// NotFound is the error document for an unresolvable session file.
func NotFound() ErrorReport {
	return ErrorReport{
		Error:      "Could not find session file",
		Suggestion: "Provide a session file path as argument",
	}
}

// Render writes doc (a Report or an ErrorReport) to w.
func Render(w io.Writer, doc any, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return enc.Close()
	case FormatTable:
		switch d := doc.(type) {
		case Report:
			return PrintSuggestionsTable(d, w)
		case ErrorReport:
			_, err := fmt.Fprintf(w, "Error: %s\n%s\n", d.Error, d.Suggestion)
			return err
		}
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if _, isErr := doc.(ErrorReport); !isErr {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to marshal report to JSON: %w", err)
	}
	return nil
}
