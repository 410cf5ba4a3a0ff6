// Package auth contains handlers for the token endpoints
package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5"

	apiError "github.com/matt-dz/foodgram/internal/api/error"
	"github.com/matt-dz/foodgram/internal/api/requestid"
	"github.com/matt-dz/foodgram/internal/api/token"
	"github.com/matt-dz/foodgram/internal/api/validate"
	"github.com/matt-dz/foodgram/internal/argon2id"
	"github.com/matt-dz/foodgram/internal/database"
	"github.com/matt-dz/foodgram/internal/env"
	mJson "github.com/matt-dz/foodgram/internal/json"
)

var requestValidator = validate.New()

// HandleLogin godoc
//
//	@Summary	Exchange credentials for an auth token.
//
//	@Tags		Auth
//
//	@Accept		json
//	@Param		request	body		LoginRequest	true	"Login Request"
//
//	@Success	200		{object}	LoginResponse
//	@Failure	400		{object}	apiError.Error	"Invalid credentials"
//	@Router		/api/auth/token/login/ [POST]
func HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.ExtractRequestID(ctx)

	// Decode JSON
	var request LoginRequest
	env.Logger.DebugContext(ctx, "Reading request body")
	defer func() { _ = r.Body.Close() }()
	if err := mJson.Decode(r.Body, &request); err != nil {
		env.Logger.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid request body", requestID)
		return
	}
	if err := requestValidator.Struct(request); err != nil {
		env.Logger.ErrorContext(ctx, "Failed to validate request body", slog.Any("error", err))
		if fields, ok := validate.Fields(err); ok {
			_ = apiError.EncodeValidationError(w, fields, requestID)
			return
		}
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid request body", requestID)
		return
	}

	// Retrieve user information
	env.Logger.DebugContext(ctx, "Retrieving user information")
	user, err := env.Database.GetUserByEmail(ctx, request.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		env.Logger.ErrorContext(ctx,
			"User with email does not exist",
			slog.String("email", request.Email),
			slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.InvalidCredentials, "unable to log in with provided credentials", requestID)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to retrieve user information", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	// Comparing passwords
	env.Logger.DebugContext(ctx, "Comparing passwords")
	err = argon2id.Compare(request.Password, user.PasswordHash)
	if errors.Is(err, argon2id.ErrMismatchedPassword) {
		env.Logger.ErrorContext(ctx, "Given password is incorrect")
		_ = apiError.EncodeError(w, apiError.InvalidCredentials, "unable to log in with provided credentials", requestID)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to compare passwords", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	if argon2id.NeedsRehash(user.PasswordHash, argon2id.DefaultParams) {
		rehash(r, user.ID, request.Password)
	}

	// Create access token
	env.Logger.DebugContext(ctx, "Generating access token")
	accessToken, err := token.IssueAccessToken(env.Config, user.ID, time.Now())
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to create access token", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	env.Logger.InfoContext(ctx, "User logged in", slog.Int64("user-id", user.ID))

	if err := mJson.Encode(w, http.StatusOK, LoginResponse{AuthToken: accessToken}); err != nil {
		env.Logger.ErrorContext(ctx, "Failed to write response", slog.Any("error", err))
	}
}

// HandleLogout godoc
//
//	@Summary		Log out.
//	@Description	Tokens are stateless, so the client discards its token.
//	@Tags			Auth
//	@Success		204
//	@Failure		401	{object}	apiError.Error	"Unauthorized"
//	@Router			/api/auth/token/logout/ [POST]
func HandleLogout(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// rehash upgrades a stored hash to the current parameters. Failures are
// logged and do not fail the login.
func rehash(r *http.Request, userID int64, password string) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)

	env.Logger.DebugContext(ctx, "Upgrading password hash")
	hash, err := argon2id.EncodeHash(password, argon2id.DefaultParams)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to hash password", slog.Any("error", err))
		return
	}
	if _, err := env.Database.UpdateUserPassword(ctx, database.UpdateUserPasswordParams{
		ID:           userID,
		PasswordHash: hash,
	}); err != nil {
		env.Logger.ErrorContext(ctx, "Failed to store upgraded password hash", slog.Any("error", err))
	}
}
