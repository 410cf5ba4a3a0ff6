// Package filestore stores recipe images either on a local volume or in an
// S3-compatible bucket behind a single interface.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/matt-dz/foodgram/internal/fileserver"
)

const (
	DefaultURLPrefix = "/media"
)

type FileStore interface {
	// Put stores data under key, replacing any existing object.
	Put(ctx context.Context, key string, data []byte, contentType string) error
	// Delete removes the object stored under key. Missing objects are not an error.
	Delete(ctx context.Context, key string) error
	// URL returns the public URL of key. An empty key yields an empty URL.
	URL(key string) string
}

// RecipeImageKey returns a fresh object key for a recipe image. Keys do
// not depend on the recipe id so images can be stored before the row
// exists.
func RecipeImageKey(suffix string) string {
	return path.Join(fileserver.RecipesDir, uuid.NewString()+suffix)
}

type Local struct {
	urlPathPrefix string
	host          string
	fs            *fileserver.FileServer
}

var _ FileStore = (*Local)(nil)

func NewLocal(baseDirectory, urlPathPrefix, host string) *Local {
	prefix := strings.Trim(urlPathPrefix, "/")
	if prefix != "" {
		prefix = "/" + prefix
	}
	return &Local{
		urlPathPrefix: prefix,
		host:          strings.TrimRight(host, "/"),
		fs:            fileserver.New(baseDirectory),
	}
}

func (l *Local) Put(_ context.Context, key string, data []byte, _ string) error {
	if _, err := l.fs.Write(key, data); err != nil {
		return fmt.Errorf("writing %q: %w", key, err)
	}
	return nil
}

func (l *Local) Delete(_ context.Context, key string) error {
	if err := l.fs.Delete(key); err != nil && !errors.Is(err, fileserver.ErrNotExist) {
		return fmt.Errorf("deleting %q: %w", key, err)
	}
	return nil
}

func (l *Local) URL(key string) string {
	if key == "" {
		return ""
	}
	return l.host + l.urlPathPrefix + "/" + strings.TrimLeft(key, "/")
}

// URLPathPrefix is the path the local volume is served under.
func (l *Local) URLPathPrefix() string {
	return l.urlPathPrefix
}

// BaseDirectory is the root of the local volume.
func (l *Local) BaseDirectory() string {
	return l.fs.BaseDirectory()
}
