// Package security provides path validation for generated files.
package security

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidateFilePath checks that filePath is a relative path that stays
// inside baseDir once joined to it.
func ValidateFilePath(filePath, baseDir string) error {
	if filePath == "" {
		return fmt.Errorf("empty file path")
	}

	if filepath.IsAbs(filePath) {
		return fmt.Errorf("absolute file path not allowed: %s", filePath)
	}

	for _, part := range strings.Split(filepath.ToSlash(filePath), "/") {
		if part == ".." {
			return fmt.Errorf("file path contains directory traversal (..): %s", filePath)
		}
	}

	cleanBase := filepath.Clean(baseDir)
	cleanFinal := filepath.Join(cleanBase, filePath)
	if cleanFinal == cleanBase {
		return fmt.Errorf("file path resolves to the base directory: %s", filePath)
	}
	if cleanBase != "." && !strings.HasPrefix(cleanFinal, cleanBase+string(filepath.Separator)) {
		return fmt.Errorf("file path would escape base directory: %s", filePath)
	}
	return nil
}
