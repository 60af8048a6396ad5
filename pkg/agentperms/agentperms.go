// Package agentperms exposes permission-rule suggestion for use by other
// grove tools.
package agentperms

import (
	"github.com/grovetools/agentperms/internal/permission"
	"github.com/grovetools/agentperms/internal/report"
	"github.com/grovetools/agentperms/internal/session"
)

// Report is the suggestion document for one transcript.
type Report = report.Report

// Suggestion is the aggregate behind one rule.
type Suggestion = permission.Suggestion

// Options tunes aggregation.
type Options = permission.Options

// ErrNotFound is returned when no transcript can be resolved.
var ErrNotFound = session.ErrNotFound

// Generalize returns the Bash permission rule for a shell command. ok is
// false when the command needs no rule.
func Generalize(command string) (rule string, ok bool) {
	return permission.Generalize(command)
}

// AnalyzeFile builds the suggestion report for the transcript at path.
func AnalyzeFile(path string, opts Options) (Report, error) {
	uses, err := permission.ExtractFile(path)
	if err != nil {
		return Report{}, err
	}
	return report.New(path, permission.Aggregate(uses, opts)), nil
}

// LatestSession returns the newest transcript for the project rooted at cwd
// under projectsDir ("" for the default location).
func LatestSession(projectsDir, cwd string) (string, error) {
	locator, err := session.NewLocator(projectsDir)
	if err != nil {
		return "", err
	}
	return locator.Locate("", cwd)
}
