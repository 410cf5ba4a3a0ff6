// Package middleware contains middleware functions for the API
package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/httplog/v3"
	"github.com/golang-jwt/jwt/v5"

	apiError "github.com/matt-dz/foodgram/internal/api/error"
	"github.com/matt-dz/foodgram/internal/api/requestid"
	"github.com/matt-dz/foodgram/internal/api/token"
	"github.com/matt-dz/foodgram/internal/config"
	"github.com/matt-dz/foodgram/internal/env"
	"github.com/matt-dz/foodgram/internal/log"
)

// InjectEnv injects an environment struct into the request context.
func InjectEnv(environment *env.Env) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(env.WithCtx(r.Context(), environment)))
		})
	}
}

func LogRequest(logger *slog.Logger) func(http.Handler) http.Handler {
	return httplog.RequestLogger(logger, &httplog.Options{
		LogExtraAttrs: func(r *http.Request, reqBody string, respStatus int) []slog.Attr {
			if id := requestid.ExtractRequestID(r.Context()); id != "" {
				return []slog.Attr{slog.String("log_id", id)}
			}
			return []slog.Attr{slog.String("log_id", "N/A")}
		},
	})
}

// AddRequestID adds a request ID to the request context.
func AddRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := requestid.New()
		r = r.WithContext(log.AppendCtx(r.Context(), slog.String("log_id", requestID)))
		r = r.WithContext(requestid.InjectRequestID(r.Context(), requestID))
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r)
	})
}

// AddCors adds the necessary CORS headers to the response.
func AddCors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		e := env.EnvFromCtx(r.Context())
		origin := r.Header.Get("Origin")
		hostOrigin := e.Config.HostOrigin

		// Production only admits the configured origin
		var allowedOrigin string
		if e.Config.Env == config.EnvProd {
			allowedOrigin = hostOrigin
		} else if origin != "" {
			allowedOrigin = origin
		}
		if allowedOrigin == "" {
			allowedOrigin = hostOrigin
		}
		if allowedOrigin == "" {
			e.Logger.WarnContext(r.Context(),
				"host origin not set and no valid origin found; Access-Control-Allow-Origin will be empty")
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS, PATCH")
		w.Header().Set("Access-Control-Max-Age", "86400")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// OptionalAuth identifies the caller when an Authorization header is
// present. Requests without one continue anonymously; a present but
// invalid token is rejected.
func OptionalAuth(next http.Handler) http.Handler {
	return authenticate(next, false)
}

// RequireAuth rejects anonymous requests with 401.
func RequireAuth(next http.Handler) http.Handler {
	return authenticate(next, true)
}

func authenticate(next http.Handler, required bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		env := env.EnvFromCtx(ctx)
		requestID := requestid.ExtractRequestID(ctx)

		raw, err := token.FromRequest(r)
		if errors.Is(err, token.ErrMissingToken) && !required {
			next.ServeHTTP(w, r)
			return
		} else if errors.Is(err, token.ErrMissingToken) {
			env.Logger.DebugContext(ctx, "no access token provided")
			_ = apiError.EncodeError(w, apiError.NotAuthenticated, "authentication credentials were not provided", requestID)
			return
		} else if err != nil {
			env.Logger.ErrorContext(ctx, "unable to get access token", slog.Any("error", err))
			_ = apiError.EncodeError(w, apiError.InvalidAccessToken, "invalid access token", requestID)
			return
		}

		userID, err := token.Verify(env.Config, raw)
		if errors.Is(err, token.ErrNoSecret) {
			env.Logger.ErrorContext(ctx, "app secret not loaded")
			_ = apiError.EncodeInternalError(w, requestID)
			return
		} else if errors.Is(err, jwt.ErrTokenExpired) {
			env.Logger.ErrorContext(ctx, "access token expired", slog.Any("error", err))
			_ = apiError.EncodeError(w, apiError.ExpiredAccessToken, "access token expired", requestID)
			return
		} else if err != nil {
			env.Logger.ErrorContext(ctx, "invalid access token", slog.Any("error", err))
			_ = apiError.EncodeError(w, apiError.InvalidAccessToken, "invalid access token", requestID)
			return
		}

		ctx = log.AppendCtx(ctx, slog.Int64("user-id", userID))
		ctx = token.UserIDWithCtx(ctx, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
