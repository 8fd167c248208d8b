package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// ResolveDestinationDir validates that destDir is usable as a
// destination directory for received files, creating it when its parent
// exists. An empty destDir means the current directory and is returned
// as is.
func ResolveDestinationDir(destDir string) (string, error) {
	if destDir == "" {
		return "", nil
	}
	if info, err := os.Stat(destDir); err == nil {
		if info.IsDir() {
			return destDir, nil
		}
		return "", fmt.Errorf("destination path '%s' exists but is not a directory", destDir)
	} else if os.IsNotExist(err) {
		dir := filepath.Dir(destDir)
		if info, dirErr := os.Stat(dir); dirErr == nil && info.IsDir() {
			if mkErr := os.MkdirAll(destDir, 0o755); mkErr != nil {
				return "", fmt.Errorf("cannot create destination directory: %w", mkErr)
			}
			return destDir, nil
		}
		return "", fmt.Errorf("parent directory does not exist: %s", dir)
	} else {
		return "", fmt.Errorf("cannot access destination path: %w", err)
	}
}
