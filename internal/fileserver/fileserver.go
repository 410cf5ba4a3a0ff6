// Package fileserver contains utilities for interacting with the local file volume.
package fileserver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

const (
	directoryPerms = 0o755
	filePerms      = 0o644
)

// RecipesDir holds recipe images.
const RecipesDir = "recipes"

// topLevelDirectories lists the directories files may be written under.
// Empty parents are pruned on delete up to, but not including, these.
var topLevelDirectories = []string{RecipesDir}

var (
	ErrInvalidPath = errors.New("invalid path")
	ErrNotExist    = errors.New("file does not exist")
)

type FileServer struct {
	baseDir string
}

func New(baseDir string) *FileServer {
	return &FileServer{
		baseDir: baseDir,
	}
}

func (f *FileServer) BaseDirectory() string {
	if f == nil {
		return ""
	}
	return f.baseDir
}

// Write stores data at path relative to the base directory, creating
// parent directories as needed.
func (f *FileServer) Write(path string, data []byte) (n int, err error) {
	if f == nil {
		return 0, nil
	}

	fullpath, err := f.resolve(path)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(filepath.Dir(fullpath), directoryPerms); err != nil {
		return 0, fmt.Errorf("creating parent directories: %w", err)
	}

	file, err := os.OpenFile(fullpath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerms)
	if err != nil {
		return 0, fmt.Errorf("creating file: %w", err)
	}
	defer func() { _ = file.Close() }()

	n, err = file.Write(data)
	if err != nil {
		return n, fmt.Errorf("writing file: %w", err)
	}

	return n, nil
}

// Delete removes the file at path and prunes parent directories left
// empty, stopping at the top-level directory.
func (f *FileServer) Delete(path string) error {
	if f == nil {
		return nil
	}

	fullpath, err := f.resolve(path)
	if err != nil {
		return err
	}

	if err := os.Remove(fullpath); errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing %q: %w", path, ErrNotExist)
	} else if err != nil {
		return fmt.Errorf("removing %q: %w", path, err)
	}

	absBase, err := filepath.Abs(f.baseDir)
	if err != nil {
		return fmt.Errorf("resolving base directory: %w", err)
	}
	stop := filepath.Join(absBase, topLevelDirectory(path))
	for dir := filepath.Dir(fullpath); dir != stop && strings.HasPrefix(dir, stop); dir = filepath.Dir(dir) {
		empty, err := isEmptyDirectory(dir)
		if err != nil {
			return fmt.Errorf("checking directory %q: %w", dir, err)
		}
		if !empty {
			break
		}
		if err := os.Remove(dir); err != nil {
			return fmt.Errorf("pruning directory %q: %w", dir, err)
		}
	}

	return nil
}

func (f *FileServer) Exists(path string) (bool, error) {
	if f == nil {
		return false, nil
	}
	fullpath, err := cleanPath(f.baseDir, path)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(fullpath); errors.Is(err, os.ErrNotExist) {
		return false, nil
	} else if err != nil {
		return false, err
	}
	return true, nil
}

func (f *FileServer) resolve(path string) (string, error) {
	if !slices.Contains(topLevelDirectories, topLevelDirectory(path)) {
		return "", fmt.Errorf("top-level directory of %q: %w", path, ErrInvalidPath)
	}
	return cleanPath(f.baseDir, path)
}

// cleanPath joins path onto baseDir and rejects results that escape it.
func cleanPath(baseDir, path string) (string, error) {
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", fmt.Errorf("resolving base directory: %w", err)
	}
	if filepath.IsAbs(path) {
		return "", fmt.Errorf("absolute path %q: %w", path, ErrInvalidPath)
	}

	cleaned := filepath.Clean(path)
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes base: %w", path, ErrInvalidPath)
	}

	full := filepath.Join(absBase, cleaned)
	rel, err := filepath.Rel(absBase, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes base: %w", path, ErrInvalidPath)
	}
	return full, nil
}

func topLevelDirectory(path string) string {
	cleaned := strings.TrimPrefix(filepath.Clean(path), string(filepath.Separator))
	if i := strings.IndexRune(cleaned, filepath.Separator); i >= 0 {
		return cleaned[:i]
	}
	return cleaned
}

func isEmptyDirectory(dir string) (bool, error) {
	d, err := os.Open(dir)
	if err != nil {
		return false, err
	}
	defer func() { _ = d.Close() }()

	if _, err := d.Readdirnames(1); errors.Is(err, io.EOF) {
		return true, nil
	} else if err != nil {
		return false, err
	}
	return false, nil
}
