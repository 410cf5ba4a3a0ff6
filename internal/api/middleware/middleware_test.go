package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apiError "github.com/matt-dz/foodgram/internal/api/error"
	"github.com/matt-dz/foodgram/internal/api/requestid"
	"github.com/matt-dz/foodgram/internal/api/token"
	"github.com/matt-dz/foodgram/internal/config"
	"github.com/matt-dz/foodgram/internal/env"
	"github.com/matt-dz/foodgram/internal/log"
)

const appSecret = "test-secret-32-bytes-long-123456"

func testEnv() *env.Env {
	secret := config.AppSecretValue(appSecret)
	return &env.Env{
		Logger: log.NullLogger(),
		Config: config.Config{
			AppSecret:  config.AppSecret{Value: &secret, Version: "1"},
			HostOrigin: "https://foodgram.example",
			Env:        config.EnvDev,
		},
	}
}

func accessToken(t *testing.T, e *env.Env, userID int64, now time.Time) string {
	t.Helper()
	raw, err := token.IssueAccessToken(e.Config, userID, now)
	if err != nil {
		t.Fatalf("failed to create access token: %v", err)
	}
	return raw
}

// viewerHandler echoes the authenticated user id, or 0 when anonymous.
func viewerHandler(w http.ResponseWriter, r *http.Request) {
	_ = json.NewEncoder(w).Encode(map[string]int64{"viewer": token.ViewerFromCtx(r.Context())})
}

func TestAuthenticate(t *testing.T) {
	e := testEnv()
	valid := accessToken(t, e, 123, time.Now())
	expired := accessToken(t, e, 123, time.Now().Add(-48*time.Hour))

	tests := []struct {
		name       string
		middleware func(http.Handler) http.Handler
		header     string
		wantStatus int
		wantCode   apiError.ErrorCode
		wantViewer int64
	}{
		{
			name:       "optional without header is anonymous",
			middleware: OptionalAuth,
			wantStatus: http.StatusOK,
		},
		{
			name:       "optional with token identifies caller",
			middleware: OptionalAuth,
			header:     "Token " + valid,
			wantStatus: http.StatusOK,
			wantViewer: 123,
		},
		{
			name:       "optional rejects garbage token",
			middleware: OptionalAuth,
			header:     "Token not-a-jwt",
			wantStatus: http.StatusUnauthorized,
			wantCode:   apiError.InvalidAccessToken,
		},
		{
			name:       "required without header",
			middleware: RequireAuth,
			wantStatus: http.StatusUnauthorized,
			wantCode:   apiError.NotAuthenticated,
		},
		{
			name:       "required with bearer token",
			middleware: RequireAuth,
			header:     "Bearer " + valid,
			wantStatus: http.StatusOK,
			wantViewer: 123,
		},
		{
			name:       "required with expired token",
			middleware: RequireAuth,
			header:     "Token " + expired,
			wantStatus: http.StatusUnauthorized,
			wantCode:   apiError.ExpiredAccessToken,
		},
		{
			name:       "required with malformed header",
			middleware: RequireAuth,
			header:     valid,
			wantStatus: http.StatusUnauthorized,
			wantCode:   apiError.InvalidAccessToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := InjectEnv(e)(tt.middleware(http.HandlerFunc(viewerHandler)))
			r := httptest.NewRequest(http.MethodGet, "/api/recipes/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if tt.wantCode != "" {
				var body apiError.Error
				if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
					t.Fatalf("decoding error body: %v", err)
				}
				if body.Code != tt.wantCode {
					t.Errorf("expected code %q, got %q", tt.wantCode, body.Code)
				}
				return
			}

			var body map[string]int64
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("decoding body: %v", err)
			}
			if body["viewer"] != tt.wantViewer {
				t.Errorf("expected viewer %d, got %d", tt.wantViewer, body["viewer"])
			}
		})
	}
}

func TestAddRequestID(t *testing.T) {
	var seen string
	handler := AddRequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestid.ExtractRequestID(r.Context())
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if seen == "" {
		t.Fatal("expected request id in context")
	}
	if got := w.Header().Get("X-Request-ID"); got != seen {
		t.Errorf("expected header %q, got %q", seen, got)
	}
}

func TestAddCors(t *testing.T) {
	tests := []struct {
		name       string
		envName    string
		origin     string
		method     string
		wantOrigin string
		wantStatus int
	}{
		{
			name:       "dev echoes origin",
			envName:    config.EnvDev,
			origin:     "http://localhost:3000",
			method:     http.MethodGet,
			wantOrigin: "http://localhost:3000",
			wantStatus: http.StatusOK,
		},
		{
			name:       "prod pins host origin",
			envName:    config.EnvProd,
			origin:     "http://evil.example",
			method:     http.MethodGet,
			wantOrigin: "https://foodgram.example",
			wantStatus: http.StatusOK,
		},
		{
			name:       "dev without origin falls back",
			envName:    config.EnvDev,
			method:     http.MethodGet,
			wantOrigin: "https://foodgram.example",
			wantStatus: http.StatusOK,
		},
		{
			name:       "preflight short circuits",
			envName:    config.EnvDev,
			origin:     "http://localhost:3000",
			method:     http.MethodOptions,
			wantOrigin: "http://localhost:3000",
			wantStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := testEnv()
			e.Config.Env = tt.envName
			handler := InjectEnv(e)(AddCors(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})))

			r := httptest.NewRequest(tt.method, "/api/tags/", nil)
			if tt.origin != "" {
				r.Header.Set("Origin", tt.origin)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("expected origin %q, got %q", tt.wantOrigin, got)
			}
		})
	}
}
