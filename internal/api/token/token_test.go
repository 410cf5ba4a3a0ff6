package token

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/matt-dz/foodgram/internal/config"
)

func testConfig() config.Config {
	secret := config.AppSecretValue("test-secret-32-bytes-long-123456")
	return config.Config{AppSecret: config.AppSecret{Value: &secret, Version: "1"}}
}

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{name: "token scheme", header: "Token abc.def", want: "abc.def"},
		{name: "bearer scheme", header: "Bearer abc.def", want: "abc.def"},
		{name: "lowercase scheme", header: "token abc.def", want: "abc.def"},
		{name: "missing", header: "", wantErr: ErrMissingToken},
		{name: "no scheme", header: "abc.def", wantErr: ErrMalformedToken},
		{name: "unknown scheme", header: "Basic dXNlcg==", wantErr: ErrMalformedToken},
		{name: "empty token", header: "Token  ", wantErr: ErrMalformedToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			got, err := FromRequest(r)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestIssueAndVerify(t *testing.T) {
	conf := testConfig()
	raw, err := IssueAccessToken(conf, 42, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := Verify(conf, raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 42 {
		t.Errorf("expected user 42, got %d", got)
	}
}

func TestIssueAccessToken_NoSecret(t *testing.T) {
	if _, err := IssueAccessToken(config.Config{}, 1, time.Now()); !errors.Is(err, ErrNoSecret) {
		t.Errorf("expected ErrNoSecret, got %v", err)
	}
}

func TestUserIDCtx(t *testing.T) {
	if _, err := UserIDFromCtx(context.Background()); !errors.Is(err, ErrNoUserID) {
		t.Errorf("expected ErrNoUserID, got %v", err)
	}
	if got := ViewerFromCtx(context.Background()); got != 0 {
		t.Errorf("expected anonymous viewer, got %d", got)
	}

	ctx := UserIDWithCtx(context.Background(), 7)
	if got := ViewerFromCtx(ctx); got != 7 {
		t.Errorf("expected 7, got %d", got)
	}
}
