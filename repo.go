package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// repoRoot returns the project root by walking up from dir looking for
// package.json.
func repoRoot(dir string) (string, error) {
	for {
		if _, err := os.Stat(filepath.Join(dir, "package.json")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find project root (no package.json found)")
		}
		dir = parent
	}
}

// projectPath resolves a configured path against the project root.
func projectPath(root, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(root, path)
}
