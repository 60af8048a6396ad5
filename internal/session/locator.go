package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/grovetools/core/logging"
	"github.com/sirupsen/logrus"
)

// LogExtension is the file extension of session transcripts.
const LogExtension = ".jsonl"

// ErrNotFound is returned when no session log can be resolved.
var ErrNotFound = errors.New("session file not found")

// DefaultProjectsDir returns ~/.claude/projects.
func DefaultProjectsDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".claude", "projects"), nil
}

// ProjectID derives the project identifier from a working directory: every
// path separator becomes a hyphen and a single leading hyphen is dropped.
func ProjectID(cwd string) string {
	id := strings.ReplaceAll(filepath.ToSlash(cwd), "/", "-")
	return strings.TrimPrefix(id, "-")
}

// Locator resolves session transcripts under a projects directory.
type Locator struct {
	ProjectsDir string
	logger      *logrus.Entry
}

// NewLocator creates a locator rooted at projectsDir, or at the default
// location when projectsDir is empty.
func NewLocator(projectsDir string) (*Locator, error) {
	if projectsDir == "" {
		dir, err := DefaultProjectsDir()
		if err != nil {
			return nil, fmt.Errorf("failed to determine projects directory: %w", err)
		}
		projectsDir = dir
	}
	return &Locator{
		ProjectsDir: projectsDir,
		logger:      logging.NewLogger("agperms-locator"),
	}, nil
}

// ProjectDir finds the session directory for cwd. The conventional
// "-<id>" directory is preferred; otherwise the first directory, in name
// order, whose name contains the identifier is used.
func (l *Locator) ProjectDir(cwd string) (string, error) {
	id := ProjectID(cwd)

	exact := filepath.Join(l.ProjectsDir, "-"+id)
	if info, err := os.Stat(exact); err == nil && info.IsDir() {
		return exact, nil
	}

	entries, err := os.ReadDir(l.ProjectsDir)
	if err != nil {
		l.logger.WithError(err).WithField("dir", l.ProjectsDir).Debug("Failed to read projects directory")
		return "", ErrNotFound
	}
	for _, entry := range entries {
		if entry.IsDir() && strings.Contains(entry.Name(), id) {
			dir := filepath.Join(l.ProjectsDir, entry.Name())
			l.logger.WithField("dir", dir).Debug("Matched project directory by substring")
			return dir, nil
		}
	}
	return "", ErrNotFound
}

// Logs lists the transcripts in dir, newest first. Equal modification times
// are ordered by path.
func (l *Locator) Logs(dir string) ([]SessionLog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var logs []SessionLog
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), LogExtension) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		logs = append(logs, SessionLog{
			SessionID:   strings.TrimSuffix(entry.Name(), LogExtension),
			LogFilePath: filepath.Join(dir, entry.Name()),
			ModifiedAt:  info.ModTime(),
			Size:        info.Size(),
		})
	}

	sort.SliceStable(logs, func(i, j int) bool {
		if !logs[i].ModifiedAt.Equal(logs[j].ModifiedAt) {
			return logs[i].ModifiedAt.After(logs[j].ModifiedAt)
		}
		return logs[i].LogFilePath < logs[j].LogFilePath
	})
	return logs, nil
}

// List returns the transcripts of the project for cwd, newest first.
func (l *Locator) List(cwd string) ([]SessionLog, error) {
	dir, err := l.ProjectDir(cwd)
	if err != nil {
		return nil, err
	}
	return l.Logs(dir)
}

// Locate returns explicit untouched when given. Otherwise it returns the
// most recently modified transcript of the project for cwd.
func (l *Locator) Locate(explicit, cwd string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	logs, err := l.List(cwd)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to list session logs: %w", err)
	}
	if len(logs) == 0 {
		return "", ErrNotFound
	}

	l.logger.WithField("path", logs[0].LogFilePath).WithField("candidates", len(logs)).Debug("Selected newest session log")
	return logs[0].LogFilePath, nil
}

// Resolve locates a transcript and checks that it exists. An explicit path
// is never reinterpreted: if it cannot be stat'ed for any reason other than
// missing permission, it is reported as not found.
func (l *Locator) Resolve(explicit, cwd string) (string, error) {
	path, err := l.Locate(explicit, cwd)
	if err != nil {
		return "", err
	}

	_, err = os.Stat(path)
	if err == nil {
		return path, nil
	}
	if errors.Is(err, fs.ErrPermission) {
		return "", err
	}
	l.logger.WithError(err).WithField("path", path).Debug("Session file does not exist")
	return "", ErrNotFound
}
