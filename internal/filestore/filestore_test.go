package filestore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestLocal(t *testing.T) (*Local, string) {
	t.Helper()
	baseDir := t.TempDir()
	return NewLocal(baseDir, DefaultURLPrefix, "http://localhost:8080"), baseDir
}

func TestNewLocal(t *testing.T) {
	tests := []struct {
		name           string
		prefix         string
		host           string
		expectedPrefix string
		expectedHost   string
	}{
		{
			name:           "plain values",
			prefix:         "/media",
			host:           "http://localhost:8080",
			expectedPrefix: "/media",
			expectedHost:   "http://localhost:8080",
		},
		{
			name:           "trailing slashes trimmed",
			prefix:         "media/",
			host:           "http://localhost:8080/",
			expectedPrefix: "/media",
			expectedHost:   "http://localhost:8080",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewLocal(t.TempDir(), tt.prefix, tt.host)
			if store.urlPathPrefix != tt.expectedPrefix {
				t.Errorf("expected prefix %q, got %q", tt.expectedPrefix, store.urlPathPrefix)
			}
			if store.host != tt.expectedHost {
				t.Errorf("expected host %q, got %q", tt.expectedHost, store.host)
			}
		})
	}
}

func TestRecipeImageKey(t *testing.T) {
	key := RecipeImageKey(".png")

	if !strings.HasPrefix(key, "recipes/") {
		t.Errorf("expected key to start with %q, got %q", "recipes/", key)
	}
	if !strings.HasSuffix(key, ".png") {
		t.Errorf("expected key to end with %q, got %q", ".png", key)
	}
	if other := RecipeImageKey(".png"); other == key {
		t.Errorf("expected distinct keys, got %q twice", key)
	}
}

func TestLocalPutAndDelete(t *testing.T) {
	store, baseDir := newTestLocal(t)
	ctx := context.Background()
	key := RecipeImageKey(".jpg")
	data := []byte("jpeg bytes")

	if err := store.Put(ctx, key, data, "image/jpeg"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	content, err := os.ReadFile(filepath.Join(baseDir, filepath.FromSlash(key)))
	if err != nil {
		t.Fatalf("failed to read written file: %v", err)
	}
	if string(content) != string(data) {
		t.Errorf("expected file content %q, got %q", data, content)
	}

	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(baseDir, filepath.FromSlash(key))); !os.IsNotExist(err) {
		t.Errorf("expected file to be removed, got err=%v", err)
	}
}

func TestLocalDelete_MissingIsNotAnError(t *testing.T) {
	store, _ := newTestLocal(t)

	if err := store.Delete(context.Background(), "recipes/1/missing.png"); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
}

func TestLocalPut_RejectsEscapingKey(t *testing.T) {
	store, _ := newTestLocal(t)

	if err := store.Put(context.Background(), "../outside.png", []byte("x"), "image/png"); err == nil {
		t.Error("expected error for escaping key, got nil")
	}
}

func TestLocalURL(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		key      string
		expected string
	}{
		{
			name:     "simple key",
			host:     "http://localhost:8080",
			key:      "recipes/1/abc.jpg",
			expected: "http://localhost:8080/media/recipes/1/abc.jpg",
		},
		{
			name:     "key with leading slash",
			host:     "https://api.example.com/",
			key:      "/recipes/2/xyz.png",
			expected: "https://api.example.com/media/recipes/2/xyz.png",
		},
		{
			name:     "empty key",
			host:     "http://localhost:8080",
			key:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewLocal(t.TempDir(), DefaultURLPrefix, tt.host)
			if got := store.URL(tt.key); got != tt.expected {
				t.Errorf("expected URL %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestS3PublicURL(t *testing.T) {
	tests := []struct {
		name     string
		conf     S3Config
		expected string
	}{
		{
			name:     "derived from endpoint",
			conf:     S3Config{Endpoint: "minio:9000", Bucket: "foodgram"},
			expected: "http://minio:9000/foodgram",
		},
		{
			name:     "derived with ssl",
			conf:     S3Config{Endpoint: "s3.example.com", Bucket: "images", UseSSL: true},
			expected: "https://s3.example.com/images",
		},
		{
			name:     "explicit public url",
			conf:     S3Config{Endpoint: "minio:9000", Bucket: "foodgram", PublicURL: "https://cdn.example.com/"},
			expected: "https://cdn.example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s3PublicURL(tt.conf); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
