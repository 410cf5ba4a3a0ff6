// Package routestest provides helpers for exercising route handlers
// against a mocked store.
package routestest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/matt-dz/foodgram/internal/api/token"
	"github.com/matt-dz/foodgram/internal/config"
	"github.com/matt-dz/foodgram/internal/database"
	"github.com/matt-dz/foodgram/internal/env"
	"github.com/matt-dz/foodgram/internal/filestore"
	"github.com/matt-dz/foodgram/internal/log"
)

const (
	AppSecret  = "test-secret-32-bytes-long-123456"
	HostOrigin = "http://testserver"
)

// NewEnv wires every service on top of a MockStore and a local file
// store rooted in a temporary directory.
func NewEnv(t *testing.T) (*env.Env, *database.MockStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	store := database.NewMockStore(ctrl)

	secret := config.AppSecretValue(AppSecret)
	conf := config.Config{
		AppSecret:  config.AppSecret{Value: &secret, Version: "1"},
		Pagination: config.Pagination{DefaultLimit: 6},
		HostOrigin: HostOrigin,
		Env:        config.EnvDev,
	}
	files := filestore.NewLocal(t.TempDir(), filestore.DefaultURLPrefix, HostOrigin)
	return env.New(log.NullLogger(), store, files, nil, nil, conf), store
}

// Request describes one call to a handler.
type Request struct {
	Method  string
	Pattern string
	Target  string
	Body    any
	// UserID authenticates the request when non-zero.
	UserID int64
}

// Serve routes req through a chi router so URL parameters resolve, with
// e in the context.
func Serve(t *testing.T, e *env.Env, req Request, handler http.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	switch b := req.Body.(type) {
	case nil:
	case string:
		body = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshalling request body: %v", err)
		}
		body = bytes.NewReader(data)
	}

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := env.WithCtx(r.Context(), e)
			if req.UserID != 0 {
				ctx = token.UserIDWithCtx(ctx, req.UserID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	})
	router.Method(req.Method, req.Pattern, handler)

	r := httptest.NewRequest(req.Method, req.Target, body)
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

// Decode unmarshals the recorded body into dst.
func Decode(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dst); err != nil {
		t.Fatalf("decoding response %q: %v", w.Body.String(), err)
	}
}
