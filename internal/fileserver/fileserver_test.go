package fileserver

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func newTestFileServer(t *testing.T) (*FileServer, string) {
	t.Helper()
	base := t.TempDir()
	return New(base), base
}

func TestCleanPath_Valid(t *testing.T) {
	baseDir := filepath.Join("testdata", "base")

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{
			name:     "simple relative path",
			path:     "recipes/1/cover.png",
			expected: filepath.Join("recipes", "1", "cover.png"),
		},
		{
			name:     "path with dot segments",
			path:     "./recipes/./1/cover.png",
			expected: filepath.Join("recipes", "1", "cover.png"),
		},
		{
			name:     "inner dot-dot that stays inside",
			path:     "recipes/2/../1/cover.png",
			expected: filepath.Join("recipes", "1", "cover.png"),
		},
		{
			name:     "empty path resolves to base",
			path:     "",
			expected: ".",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := cleanPath(baseDir, tt.path)
			if err != nil {
				t.Fatalf("cleanPath() returned unexpected error: %v", err)
			}

			absBase, err := filepath.Abs(baseDir)
			if err != nil {
				t.Fatalf("failed to get abs base: %v", err)
			}
			want := filepath.Join(absBase, tt.expected)
			if got != want {
				t.Errorf("cleanPath() = %q, want %q", got, want)
			}
		})
	}
}

func TestCleanPath_Invalid(t *testing.T) {
	baseDir := filepath.Join("testdata", "base")

	tests := []struct {
		name string
		path string
	}{
		{name: "starts with dot-dot", path: "../secret.txt"},
		{name: "cleaned becomes dot-dot", path: "recipes/../../secret.txt"},
		{name: "absolute path", path: filepath.Join(string(filepath.Separator), "etc", "passwd")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := cleanPath(baseDir, tt.path)
			if err == nil {
				t.Fatalf("cleanPath(%q) = %q, expected error", tt.path, got)
			}
			if !errors.Is(err, ErrInvalidPath) {
				t.Errorf("cleanPath(%q) error = %v, want ErrInvalidPath", tt.path, err)
			}
		})
	}
}

func TestTopLevelDirectory(t *testing.T) {
	sep := string(filepath.Separator)

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{name: "simple path", path: "recipes/1/cover.png", expected: "recipes"},
		{name: "leading slash", path: sep + "recipes/1/cover.png", expected: "recipes"},
		{name: "dot segments", path: "./recipes/./1", expected: "recipes"},
		{name: "single directory", path: "recipes" + sep, expected: "recipes"},
		{name: "empty path", path: "", expected: "."},
		{name: "root only", path: sep, expected: ""},
		{name: "leading traversal", path: "../recipes", expected: ".."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := topLevelDirectory(tt.path); got != tt.expected {
				t.Errorf("topLevelDirectory(%q) = %q, want %q", tt.path, got, tt.expected)
			}
		})
	}
}

func TestIsEmptyDirectory(t *testing.T) {
	t.Run("empty directory", func(t *testing.T) {
		ok, err := isEmptyDirectory(t.TempDir())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			t.Errorf("expected empty dir, got not empty")
		}
	})

	t.Run("directory with one file", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "file.txt"), []byte("hello"), 0o644); err != nil {
			t.Fatalf("failed to write test file: %v", err)
		}

		ok, err := isEmptyDirectory(dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok {
			t.Errorf("expected non-empty dir, got empty")
		}
	})

	t.Run("path is a file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file.txt")
		if err := os.WriteFile(file, []byte("hello"), fs.ModePerm); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		if ok, err := isEmptyDirectory(file); err == nil {
			t.Errorf("expected error for file path, got ok=%v err=nil", ok)
		}
	})
}

func TestFileServerWrite(t *testing.T) {
	fsrv, base := newTestFileServer(t)
	data := []byte("image bytes")

	n, err := fsrv.Write(filepath.Join("recipes", "7", "cover.png"), data)
	if err != nil {
		t.Fatalf("Write() returned error: %v", err)
	}
	if n != len(data) {
		t.Errorf("expected %d bytes written, got %d", len(data), n)
	}

	got, err := os.ReadFile(filepath.Join(base, "recipes", "7", "cover.png"))
	if err != nil {
		t.Fatalf("failed to read written file: %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("expected file contents %q, got %q", data, got)
	}

	exists, err := fsrv.Exists(filepath.Join("recipes", "7", "cover.png"))
	if err != nil {
		t.Fatalf("Exists() returned error: %v", err)
	}
	if !exists {
		t.Error("expected written file to exist")
	}
}

func TestFileServerWrite_InvalidTopLevelDir(t *testing.T) {
	fsrv, _ := newTestFileServer(t)

	_, err := fsrv.Write(filepath.Join("other", "file.png"), []byte("x"))
	if !errors.Is(err, ErrInvalidPath) {
		t.Errorf("expected ErrInvalidPath, got %v", err)
	}
}

func TestFileServerDelete_SuccessAndPruneEmptyDirs(t *testing.T) {
	fsrv, base := newTestFileServer(t)

	relPath := filepath.Join("recipes", "12", "cover.png")
	if _, err := fsrv.Write(relPath, []byte("data")); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	if err := fsrv.Delete(relPath); err != nil {
		t.Fatalf("Delete() returned error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(base, relPath)); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected file to be removed, got err=%v", err)
	}
	if _, err := os.Stat(filepath.Join(base, "recipes", "12")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected recipe directory to be pruned, got err=%v", err)
	}
	if _, err := os.Stat(filepath.Join(base, "recipes")); err != nil {
		t.Errorf("expected recipes directory to remain, got err=%v", err)
	}
}

func TestFileServerDelete_KeepsNonEmptyDirs(t *testing.T) {
	fsrv, base := newTestFileServer(t)

	first := filepath.Join("recipes", "3", "old.png")
	second := filepath.Join("recipes", "3", "new.png")
	for _, p := range []string{first, second} {
		if _, err := fsrv.Write(p, []byte("data")); err != nil {
			t.Fatalf("failed to write %s: %v", p, err)
		}
	}

	if err := fsrv.Delete(first); err != nil {
		t.Fatalf("Delete() returned error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(base, second)); err != nil {
		t.Errorf("expected sibling file to remain, got err=%v", err)
	}
}

func TestFileServerDelete_FileDoesNotExist(t *testing.T) {
	fsrv, _ := newTestFileServer(t)

	err := fsrv.Delete(filepath.Join("recipes", "1", "missing.png"))
	if !errors.Is(err, ErrNotExist) {
		t.Errorf("expected ErrNotExist for missing file, got %v", err)
	}
}

func TestFileServerDelete_NilReceiverNoop(t *testing.T) {
	var fsrv *FileServer

	if err := fsrv.Delete("recipes/1/cover.png"); err != nil {
		t.Errorf("expected nil error on nil receiver, got %v", err)
	}
}
