package files

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/langtable/langtable/pkg/models"
)

// writeAtomic replaces path with content through a temp file in the same
// directory, so a failed write never leaves a truncated file behind.
func writeAtomic(path string, content []byte) error {
	const op = "write file"
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return models.IOError(op, fmt.Errorf("failed to create directory %s: %w", dir, err))
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return models.IOError(op, fmt.Errorf("failed to create temp file for %s: %w", path, err))
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return models.IOError(op, fmt.Errorf("failed to write %s: %w", path, err))
	}
	if err := tmp.Close(); err != nil {
		return models.IOError(op, fmt.Errorf("failed to write %s: %w", path, err))
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return models.IOError(op, fmt.Errorf("failed to set permissions on %s: %w", path, err))
	}
	if err := os.Rename(tmpName, path); err != nil {
		return models.IOError(op, fmt.Errorf("failed to replace %s: %w", path, err))
	}
	return nil
}
