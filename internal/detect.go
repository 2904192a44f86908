package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DetectStorageDir resolves the directory holding the chat snapshot and transcripts.
// An empty custom path means the current working directory.
func DetectStorageDir(custom string) (string, error) {
	dir := strings.TrimSpace(custom)
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		return wd, nil
	}

	if dir == "~" || strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(home, strings.TrimPrefix(dir, "~"))
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve storage path %s: %w", dir, err)
	}

	if info, err := os.Stat(abs); err == nil && !info.IsDir() {
		return "", fmt.Errorf("storage path is not a directory: %s", abs)
	}

	return abs, nil
}

// ConfigSearchPaths returns the directories searched for config.yaml, in order
func ConfigSearchPaths() []string {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".web-term"))
	}
	if configDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(configDir, "web-term"))
	}
	return paths
}
