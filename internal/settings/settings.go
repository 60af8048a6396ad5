// Package settings reads the permission rules already granted in the host's
// settings files.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// File mirrors the parts of a settings.json file this tool reads.
type File struct {
	Permissions struct {
		Allow []string `json:"allow"`
		Deny  []string `json:"deny"`
	} `json:"permissions"`
}

// Rules is the union of the permission rules across several settings files.
type Rules struct {
	Allow   []string
	Deny    []string
	Sources []string
}

// DefaultPaths returns the user-level and project-level settings files, in
// precedence order from broadest to narrowest.
func DefaultPaths(homeDir, cwd string) []string {
	var paths []string
	if homeDir != "" {
		paths = append(paths, filepath.Join(homeDir, ".claude", "settings.json"))
	}
	if cwd != "" {
		paths = append(paths,
			filepath.Join(cwd, ".claude", "settings.json"),
			filepath.Join(cwd, ".claude", "settings.local.json"),
		)
	}
	return paths
}

// Load merges the rules of every existing file in paths. Missing files are
// skipped; unreadable or malformed files are errors.
func Load(paths ...string) (*Rules, error) {
	rules := &Rules{}
	seenAllow := make(map[string]bool)
	seenDeny := make(map[string]bool)

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
		}

		var f File
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse settings file %s: %w", path, err)
		}

		for _, r := range f.Permissions.Allow {
			if !seenAllow[r] {
				seenAllow[r] = true
				rules.Allow = append(rules.Allow, r)
			}
		}
		for _, r := range f.Permissions.Deny {
			if !seenDeny[r] {
				seenDeny[r] = true
				rules.Deny = append(rules.Deny, r)
			}
		}
		rules.Sources = append(rules.Sources, path)
	}
	return rules, nil
}
