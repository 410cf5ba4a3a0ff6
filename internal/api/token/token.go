// Package token contains utilities for http tokens.
package token

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/matt-dz/foodgram/internal/config"
	"github.com/matt-dz/foodgram/internal/jwt"
)

var (
	ErrMissingToken   = errors.New("missing access token")
	ErrMalformedToken = errors.New("malformed authorization header")
	ErrNoSecret       = errors.New("app secret not loaded")
	ErrNoUserID       = errors.New("no user id in context")
)

// Accepted prefixes of the Authorization header.
var schemes = []string{"Token", "Bearer"}

type userIDKeyType struct{}

var userIDKey userIDKeyType

// FromRequest returns the raw token of the Authorization header. Both
// "Token <jwt>" and "Bearer <jwt>" are accepted.
func FromRequest(r *http.Request) (string, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return "", ErrMissingToken
	}
	scheme, raw, ok := strings.Cut(header, " ")
	if !ok {
		return "", ErrMalformedToken
	}
	raw = strings.TrimSpace(raw)
	for _, s := range schemes {
		if strings.EqualFold(scheme, s) && raw != "" {
			return raw, nil
		}
	}
	return "", ErrMalformedToken
}

func secret(conf config.Config) ([]byte, string, error) {
	if conf.AppSecret.Value == nil || *conf.AppSecret.Value == "" {
		return nil, "", ErrNoSecret
	}
	version := conf.AppSecret.Version
	if version == "" {
		version = jwt.DefaultKID
	}
	return []byte(*conf.AppSecret.Value), version, nil
}

// IssueAccessToken signs an access token for userID with the app secret.
func IssueAccessToken(conf config.Config, userID int64, now time.Time) (string, error) {
	key, version, err := secret(conf)
	if err != nil {
		return "", err
	}
	token, err := jwt.GenerateJWT(userID, key, version, now)
	if err != nil {
		return "", fmt.Errorf("generating access token: %w", err)
	}
	return token, nil
}

// Verify validates raw and returns the user id it was issued for.
func Verify(conf config.Config, raw string) (int64, error) {
	key, version, err := secret(conf)
	if err != nil {
		return 0, err
	}
	return jwt.ValidateJWT(raw, version, key)
}

func UserIDWithCtx(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromCtx returns the authenticated user id, or ErrNoUserID for
// anonymous requests.
func UserIDFromCtx(ctx context.Context) (int64, error) {
	if v, ok := ctx.Value(userIDKey).(int64); ok {
		return v, nil
	}
	return 0, ErrNoUserID
}

// ViewerFromCtx returns the authenticated user id, or 0 for anonymous
// requests.
func ViewerFromCtx(ctx context.Context) int64 {
	id, _ := UserIDFromCtx(ctx)
	return id
}
