package users

import (
	"errors"
	"log/slog"
	"net/http"

	apiError "github.com/matt-dz/foodgram/internal/api/error"
	"github.com/matt-dz/foodgram/internal/api/query"
	"github.com/matt-dz/foodgram/internal/api/requestid"
	"github.com/matt-dz/foodgram/internal/api/token"
	"github.com/matt-dz/foodgram/internal/env"
	mJson "github.com/matt-dz/foodgram/internal/json"
	"github.com/matt-dz/foodgram/internal/present"
	"github.com/matt-dz/foodgram/internal/relation"
)

const recipesLimitParam = "recipes_limit"

// HandleListSubscriptions godoc
//
//	@Summary	List the authors the authenticated user follows.
//	@Tags		Subscriptions
//	@Param		page			query		int	false	"Page"
//	@Param		limit			query		int	false	"Page size"
//	@Param		recipes_limit	query		int	false	"Recipes per author"
//	@Success	200				{object}	present.Page[present.Subscription]
//	@Failure	401				{object}	apiError.Error	"Unauthorized"
//	@Router		/api/users/subscriptions/ [GET]
func HandleListSubscriptions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.ExtractRequestID(ctx)
	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to extract user id from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	values := r.URL.Query()
	page, err := query.ParsePage(values, env.Config.Pagination.DefaultLimit)
	if encodeParamError(w, err, requestID) {
		return
	}
	recipesLimit, err := query.Limit(values, recipesLimitParam)
	if encodeParamError(w, err, requestID) {
		return
	}

	env.Logger.DebugContext(ctx, "listing subscriptions")
	subs, count, err := env.Relations.ListSubscriptions(ctx, userID, int32(page.Limit), page.Offset(), recipesLimit)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to list subscriptions", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	resp := present.NewPage(
		present.NewSubscriptions(subs, env.Files),
		count,
		query.SelfURL(r, env.Config.HostOrigin),
		page.Number,
		page.Limit,
	)
	if err := mJson.Encode(w, http.StatusOK, resp); err != nil {
		env.Logger.ErrorContext(ctx, "failed to write response", slog.Any("error", err))
	}
}

// HandleSubscribe godoc
//
//	@Summary	Follow an author.
//	@Tags		Subscriptions
//	@Param		id				path		int	true	"Author ID"
//	@Param		recipes_limit	query		int	false	"Recipes in the response"
//	@Success	201				{object}	present.Subscription
//	@Failure	400				{object}	apiError.Error	"Bad Request"
//	@Failure	404				{object}	apiError.Error	"Not Found"
//	@Router		/api/users/{id}/subscribe/ [POST]
func HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	handleSubscription(w, r, http.StatusCreated, func(r *http.Request, userID, authorID int64, limit int32) (relation.Subscription, error) {
		return env.EnvFromCtx(r.Context()).Relations.Subscribe(r.Context(), userID, authorID, limit)
	})
}

// HandleGetSubscription godoc
//
//	@Summary	Get the follow entry for an author.
//	@Tags		Subscriptions
//	@Param		id				path		int	true	"Author ID"
//	@Param		recipes_limit	query		int	false	"Recipes in the response"
//	@Success	200				{object}	present.Subscription
//	@Failure	404				{object}	apiError.Error	"Not Found"
//	@Router		/api/users/{id}/subscribe/ [GET]
func HandleGetSubscription(w http.ResponseWriter, r *http.Request) {
	handleSubscription(w, r, http.StatusOK, func(r *http.Request, userID, authorID int64, limit int32) (relation.Subscription, error) {
		return env.EnvFromCtx(r.Context()).Relations.GetSubscription(r.Context(), userID, authorID, limit)
	})
}

// HandleUnsubscribe godoc
//
//	@Summary	Stop following an author.
//	@Tags		Subscriptions
//	@Param		id	path	int	true	"Author ID"
//	@Success	204
//	@Failure	404	{object}	apiError.Error	"Not Found"
//	@Router		/api/users/{id}/subscribe/ [DELETE]
func HandleUnsubscribe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.ExtractRequestID(ctx)
	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to extract user id from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	authorID, ok := userIDParam(w, r, requestID)
	if !ok {
		return
	}

	env.Logger.DebugContext(ctx, "unsubscribing", slog.Int64("author-id", authorID))
	if err := env.Relations.Unsubscribe(ctx, userID, authorID); err != nil {
		encodeSubscriptionError(w, r, err, requestID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type subscriptionFunc func(r *http.Request, userID, authorID int64, recipesLimit int32) (relation.Subscription, error)

func handleSubscription(w http.ResponseWriter, r *http.Request, status int, fn subscriptionFunc) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.ExtractRequestID(ctx)
	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to extract user id from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	authorID, ok := userIDParam(w, r, requestID)
	if !ok {
		return
	}
	recipesLimit, err := query.Limit(r.URL.Query(), recipesLimitParam)
	if encodeParamError(w, err, requestID) {
		return
	}

	sub, err := fn(r, userID, authorID, recipesLimit)
	if err != nil {
		encodeSubscriptionError(w, r, err, requestID)
		return
	}
	if err := mJson.Encode(w, status, present.NewSubscription(sub, env.Files)); err != nil {
		env.Logger.ErrorContext(ctx, "failed to write response", slog.Any("error", err))
	}
}

func encodeSubscriptionError(w http.ResponseWriter, r *http.Request, err error, requestID string) {
	switch {
	case errors.Is(err, relation.ErrSelfReference):
		_ = apiError.EncodeError(w, apiError.SelfSubscription, "cannot subscribe to yourself", requestID)
	case errors.Is(err, relation.ErrTargetNotFound):
		_ = apiError.EncodeError(w, apiError.UserNotFound, "user not found", requestID)
	case errors.Is(err, relation.ErrConflict):
		_ = apiError.EncodeError(w, apiError.AlreadySubscribed, "already subscribed", requestID)
	case errors.Is(err, relation.ErrNotFound):
		_ = apiError.EncodeError(w, apiError.NotSubscribed, "not subscribed", requestID)
	default:
		ctx := r.Context()
		env.EnvFromCtx(ctx).Logger.ErrorContext(ctx, "subscription operation failed", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
	}
}

func encodeParamError(w http.ResponseWriter, err error, requestID string) bool {
	if err == nil {
		return false
	}
	var perr *query.ParamError
	if errors.As(err, &perr) {
		_ = apiError.EncodeValidationError(w, perr.Fields(), requestID)
		return true
	}
	_ = apiError.EncodeInternalError(w, requestID)
	return true
}
