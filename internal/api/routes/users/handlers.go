// Package users contains handlers for the user resource.
package users

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	apiError "github.com/matt-dz/foodgram/internal/api/error"
	"github.com/matt-dz/foodgram/internal/api/query"
	"github.com/matt-dz/foodgram/internal/api/requestid"
	"github.com/matt-dz/foodgram/internal/api/token"
	"github.com/matt-dz/foodgram/internal/api/validate"
	"github.com/matt-dz/foodgram/internal/argon2id"
	"github.com/matt-dz/foodgram/internal/database"
	"github.com/matt-dz/foodgram/internal/env"
	mJson "github.com/matt-dz/foodgram/internal/json"
	"github.com/matt-dz/foodgram/internal/password"
	"github.com/matt-dz/foodgram/internal/present"
)

const (
	emailConstraint    = "users_email_key"
	usernameConstraint = "users_username_key"
)

// HandleListUsers godoc
//
//	@Summary	List users.
//	@Tags		Users
//	@Param		page	query		int	false	"Page"
//	@Param		limit	query		int	false	"Page size"
//	@Success	200		{object}	present.Page[present.User]
//	@Router		/api/users/ [GET]
func HandleListUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.ExtractRequestID(ctx)

	page, err := query.ParsePage(r.URL.Query(), env.Config.Pagination.DefaultLimit)
	if encodeParamError(w, err, requestID) {
		return
	}

	env.Logger.DebugContext(ctx, "counting users")
	count, err := env.Database.CountUsers(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to count users", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	env.Logger.DebugContext(ctx, "listing users")
	rows, err := env.Database.ListUsers(ctx, database.ListUsersParams{
		ViewerID: database.NullableID(token.ViewerFromCtx(ctx)),
		Limit:    int32(page.Limit),
		Offset:   page.Offset(),
	})
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to list users", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	results := make([]present.User, len(rows))
	for i, row := range rows {
		results[i] = present.NewListedUser(row)
	}
	resp := present.NewPage(results, count, query.SelfURL(r, env.Config.HostOrigin), page.Number, page.Limit)
	if err := mJson.Encode(w, http.StatusOK, resp); err != nil {
		env.Logger.ErrorContext(ctx, "failed to write response", slog.Any("error", err))
	}
}

// HandleCreateUser godoc
//
//	@Summary	Register a user.
//	@Tags		Users
//
//	@Accept		json
//	@Param		request	body		CreateUserRequest	true	"Create User Request"
//
//	@Success	201		{object}	CreateUserResponse
//	@Failure	400		{object}	apiError.Error	"Bad Request"
//	@Router		/api/users/ [POST]
func HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.ExtractRequestID(ctx)

	// Decode JSON
	var request CreateUserRequest
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

	// Ensure password strength
	env.Logger.DebugContext(ctx, "Validating password")
	err := password.ValidatePassword(request.Password,
		request.Email, request.Username, request.FirstName, request.LastName)
	if err != nil {
		env.Logger.DebugContext(ctx, "Password rejected", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.WeakPassword, err.Error(), requestID) // OK to share the error with client.
		return
	}

	// Hash password
	env.Logger.DebugContext(ctx, "Hashing password")
	hash, err := argon2id.EncodeHash(request.Password, argon2id.DefaultParams)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to hash password", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	// Create user
	env.Logger.DebugContext(ctx, "Creating user")
	userID, err := env.Database.CreateUser(ctx, database.CreateUserParams{
		Email:        request.Email,
		Username:     request.Username,
		FirstName:    request.FirstName,
		LastName:     request.LastName,
		PasswordHash: hash,
	})
	if errors.Is(database.TranslateError(err), database.ErrUniqueViolation) {
		env.Logger.DebugContext(ctx, "User already exists", slog.Any("error", err))
		switch database.ConstraintName(err) {
		case usernameConstraint:
			_ = apiError.EncodeError(w, apiError.UsernameConflict, "username already in use", requestID)
		default:
			_ = apiError.EncodeError(w, apiError.EmailConflict, "email already in use", requestID)
		}
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to create user", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	env.Logger.InfoContext(ctx, "User created", slog.Int64("user-id", userID))

	// Write response
	resp := CreateUserResponse{
		Email:     request.Email,
		ID:        userID,
		Username:  request.Username,
		FirstName: request.FirstName,
		LastName:  request.LastName,
	}
	if err := mJson.Encode(w, http.StatusCreated, resp); err != nil {
		env.Logger.ErrorContext(ctx, "Failed to write response", slog.Any("error", err))
	}
}

// HandleGetMe godoc
//
//	@Summary	Get the authenticated user.
//	@Tags		Users
//	@Success	200	{object}	present.User
//	@Failure	401	{object}	apiError.Error	"Unauthorized"
//	@Router		/api/users/me/ [GET]
func HandleGetMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.ExtractRequestID(ctx)
	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to extract user id from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	user, err := env.Database.GetUser(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		env.Logger.ErrorContext(ctx, "authenticated user no longer exists")
		_ = apiError.EncodeError(w, apiError.UserNotFound, "user not found", requestID)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	if err := mJson.Encode(w, http.StatusOK, present.NewUser(user, false)); err != nil {
		env.Logger.ErrorContext(ctx, "failed to write response", slog.Any("error", err))
	}
}

// HandleGetUser godoc
//
//	@Summary	Get a user profile.
//	@Tags		Users
//	@Param		id	path		int	true	"User ID"
//	@Success	200	{object}	present.User
//	@Failure	404	{object}	apiError.Error	"Not Found"
//	@Router		/api/users/{id}/ [GET]
func HandleGetUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.ExtractRequestID(ctx)

	id, ok := userIDParam(w, r, requestID)
	if !ok {
		return
	}

	user, err := env.Database.GetUser(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		_ = apiError.EncodeError(w, apiError.UserNotFound, "user not found", requestID)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	subscribed := false
	if viewerID := token.ViewerFromCtx(ctx); viewerID != 0 {
		subscribed, err = env.Database.IsSubscribed(ctx, database.IsSubscribedParams{
			UserID:   database.NullableID(viewerID),
			AuthorID: id,
		})
		if err != nil {
			env.Logger.ErrorContext(ctx, "failed to check subscription", slog.Any("error", err))
			_ = apiError.EncodeInternalError(w, requestID)
			return
		}
	}

	if err := mJson.Encode(w, http.StatusOK, present.NewUser(user, subscribed)); err != nil {
		env.Logger.ErrorContext(ctx, "failed to write response", slog.Any("error", err))
	}
}

// HandleSetPassword godoc
//
//	@Summary	Change the password of the authenticated user.
//	@Tags		Users
//	@Accept		json
//	@Param		request	body	SetPasswordRequest	true	"Set Password Request"
//	@Success	204
//	@Failure	400	{object}	apiError.Error	"Bad Request"
//	@Router		/api/users/set_password/ [POST]
func HandleSetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.ExtractRequestID(ctx)
	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to extract user id from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	var request SetPasswordRequest
	defer func() { _ = r.Body.Close() }()
	if err := mJson.Decode(r.Body, &request); err != nil {
		env.Logger.ErrorContext(ctx, "failed to decode request body", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid request body", requestID)
		return
	}
	if err := requestValidator.Struct(request); err != nil {
		if fields, ok := validate.Fields(err); ok {
			_ = apiError.EncodeValidationError(w, fields, requestID)
			return
		}
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid request body", requestID)
		return
	}

	user, err := env.Database.GetUser(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		_ = apiError.EncodeError(w, apiError.UserNotFound, "user not found", requestID)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	env.Logger.DebugContext(ctx, "comparing current password")
	err = argon2id.Compare(request.CurrentPassword, user.PasswordHash)
	if errors.Is(err, argon2id.ErrMismatchedPassword) {
		_ = apiError.EncodeError(w, apiError.InvalidCredentials, "current password is incorrect", requestID)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "failed to compare password", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	err = password.ValidatePassword(request.NewPassword, user.Email, user.Username, user.FirstName, user.LastName)
	if err != nil {
		_ = apiError.EncodeError(w, apiError.WeakPassword, err.Error(), requestID)
		return
	}
	hash, err := argon2id.EncodeHash(request.NewPassword, argon2id.DefaultParams)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	if _, err := env.Database.UpdateUserPassword(ctx, database.UpdateUserPasswordParams{
		ID:           userID,
		PasswordHash: hash,
	}); err != nil {
		env.Logger.ErrorContext(ctx, "failed to update password", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	env.Logger.InfoContext(ctx, "password changed")
	w.WriteHeader(http.StatusNoContent)
}

func userIDParam(w http.ResponseWriter, r *http.Request, requestID string) (int64, bool) {
	id, err := query.ID(chi.URLParam(r, "id"))
	if err != nil {
		_ = apiError.EncodeError(w, apiError.UserNotFound, "user not found", requestID)
		return 0, false
	}
	return id, true
}
