package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// FindProjectBinary locates the agperms binary under test. AGPERMS_BINARY
// takes precedence over ./bin/agperms in the working directory or its parents.
func FindProjectBinary() (string, error) {
	if bin := os.Getenv("AGPERMS_BINARY"); bin != "" {
		return bin, nil
	}

	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, "bin", "agperms")
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("agperms binary not found; build it with 'go build -o bin/agperms .' or set AGPERMS_BINARY")
		}
		dir = parent
	}
}
