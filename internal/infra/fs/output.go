package fs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// EnsureDir creates dir and its parents. An existing directory is not an error.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// WriteFileAtomic streams write into a temporary file next to path and renames
// it over path, so readers never see a half-written file. It fails when
// nothing was written. Returns the final file size.
func WriteFileAtomic(path string, write func(w io.Writer) error) (int64, error) {
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return 0, err
	}

	tempFilePath := path + ".tmp"
	file, err := os.OpenFile(tempFilePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return 0, fmt.Errorf("failed to create temporary file: %w", err)
	}

	if err := write(file); err != nil {
		file.Close()
		_ = os.Remove(tempFilePath)
		return 0, err
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(tempFilePath)
		return 0, fmt.Errorf("failed to close temporary file: %w", err)
	}

	info, err := os.Stat(tempFilePath)
	if err != nil {
		_ = os.Remove(tempFilePath)
		return 0, fmt.Errorf("failed to stat temporary file: %w", err)
	}
	if info.Size() == 0 {
		_ = os.Remove(tempFilePath)
		return 0, fmt.Errorf("%s: nothing was written", path)
	}

	if err := os.Rename(tempFilePath, path); err != nil {
		_ = os.Remove(tempFilePath)
		return 0, fmt.Errorf("failed to rename temporary file to %s: %w", path, err)
	}

	return info.Size(), nil
}
