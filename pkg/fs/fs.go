package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

type LocalFileSystem struct{}

func NewLocalFileSystem() *LocalFileSystem {
	return &LocalFileSystem{}
}

// Creates a directory, and any missing parents, if not present.
// Returns an error if the path exists but is not a directory.
func (lfs *LocalFileSystem) CreateDir(dirPath string, permission os.FileMode) error {
	stat, err := os.Stat(dirPath)
	if err == nil {
		if !stat.IsDir() {
			return fmt.Errorf("existing path %s isn't a directory", dirPath)
		}
		return nil
	}

	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("error in getting directory stat %s: %w", dirPath, err)
	}

	if err := os.MkdirAll(dirPath, permission); err != nil {
		return fmt.Errorf("error in creating all directories %s: %w", dirPath, err)
	}

	return nil
}

// Creates a uniquely named directory inside parent. The name starts with
// pattern; a random suffix guarantees no two calls collide.
func (lfs *LocalFileSystem) CreateTempDir(parent, pattern string) (string, error) {
	if parent != "" {
		if err := lfs.CreateDir(parent, 0o755); err != nil {
			return "", err
		}
	}
	return os.MkdirTemp(parent, pattern)
}

// Deletes a directory and everything below it.
func (lfs *LocalFileSystem) DeleteDir(path string) error {
	return os.RemoveAll(path)
}

// Creates or truncates a file.
func (lfs *LocalFileSystem) CreateFile(filePath string) (*os.File, error) {
	return os.OpenFile(filePath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
}

// Writes to a file.
func (lfs *LocalFileSystem) WriteFile(filePath string, permission os.FileMode, contents []byte) error {
	return os.WriteFile(filePath, contents, permission)
}

// Read file contents.
func (lfs *LocalFileSystem) ReadFile(filePath string) ([]byte, error) {
	return os.ReadFile(filePath)
}

// Checks if a file exists or not.
func (lfs *LocalFileSystem) Exists(file string) (bool, error) {
	_, err := os.Stat(file)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Join builds a path that stays inside dir, rejecting names that would
// escape it.
func (lfs *LocalFileSystem) Join(dir, name string) (string, error) {
	if name == "" || filepath.Base(name) != name || name == "." || name == ".." {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	return filepath.Join(dir, name), nil
}
