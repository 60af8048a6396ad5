package session

import (
	"fmt"
	"path/filepath"
	"strings"
)

func looksLikeSessionID(spec string) bool {
	return !strings.ContainsAny(spec, `/\*?[`) && !strings.HasSuffix(spec, LogExtension)
}

// ResolveSessionID finds the transcript named <id>.jsonl in any project
// directory. Matches are taken in lexical path order. Callers opt in to this
// lookup explicitly; Resolve never falls back to it.
func (l *Locator) ResolveSessionID(id string) (string, error) {
	if id == "" || !looksLikeSessionID(id) {
		return "", fmt.Errorf("invalid session ID: %q", id)
	}
	pattern := filepath.Join(l.ProjectsDir, "*", id+LogExtension)
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("transcript not found for session %s: %w", id, ErrNotFound)
	}
	return matches[0], nil
}
