// Package tags contains handlers for the tag catalog.
package tags

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	apiError "github.com/matt-dz/foodgram/internal/api/error"
	"github.com/matt-dz/foodgram/internal/api/query"
	"github.com/matt-dz/foodgram/internal/api/requestid"
	"github.com/matt-dz/foodgram/internal/catalog"
	"github.com/matt-dz/foodgram/internal/env"
	mJson "github.com/matt-dz/foodgram/internal/json"
	"github.com/matt-dz/foodgram/internal/present"
)

// HandleListTags godoc
//
//	@Summary	List every tag.
//	@Tags		Tags
//	@Success	200	{array}	present.Tag
//	@Router		/api/tags/ [GET]
func HandleListTags(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.ExtractRequestID(ctx)

	env.Logger.DebugContext(ctx, "listing tags")
	tags, err := env.Catalog.ListTags(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to list tags", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	if err := mJson.Encode(w, http.StatusOK, present.NewTags(tags)); err != nil {
		env.Logger.ErrorContext(ctx, "failed to write response", slog.Any("error", err))
	}
}

// HandleGetTag godoc
//
//	@Summary	Get a tag.
//	@Tags		Tags
//	@Param		id	path		int	true	"Tag ID"
//	@Success	200	{object}	present.Tag
//	@Failure	404	{object}	apiError.Error	"Not Found"
//	@Router		/api/tags/{id}/ [GET]
func HandleGetTag(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.ExtractRequestID(ctx)

	id, err := query.ID(chi.URLParam(r, "id"))
	if err != nil {
		_ = apiError.EncodeError(w, apiError.TagNotFound, "tag not found", requestID)
		return
	}

	env.Logger.DebugContext(ctx, "getting tag", slog.Int64("tag-id", id))
	tag, err := env.Catalog.GetTag(ctx, id)
	if errors.Is(err, catalog.ErrNotFound) {
		_ = apiError.EncodeError(w, apiError.TagNotFound, "tag not found", requestID)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "failed to get tag", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	if err := mJson.Encode(w, http.StatusOK, present.NewTag(tag)); err != nil {
		env.Logger.ErrorContext(ctx, "failed to write response", slog.Any("error", err))
	}
}
