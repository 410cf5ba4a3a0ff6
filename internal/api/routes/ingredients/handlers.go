// Package ingredients contains handlers for the ingredient catalog.
package ingredients

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

// HandleSearchIngredients godoc
//
//	@Summary		Search ingredients by name.
//	@Description	Substring match ignoring case. Names starting with the
//	@Description	query are listed first.
//	@Tags			Ingredients
//	@Param			name	query	string	false	"Name fragment"
//	@Success		200		{array}	present.Ingredient
//	@Router			/api/ingredients/ [GET]
func HandleSearchIngredients(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.ExtractRequestID(ctx)

	name := r.URL.Query().Get("name")
	env.Logger.DebugContext(ctx, "searching ingredients", slog.String("name", name))
	ingredients, err := env.Catalog.SearchIngredients(ctx, name)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to search ingredients", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	if err := mJson.Encode(w, http.StatusOK, present.NewIngredients(ingredients)); err != nil {
		env.Logger.ErrorContext(ctx, "failed to write response", slog.Any("error", err))
	}
}

// HandleGetIngredient godoc
//
//	@Summary	Get an ingredient.
//	@Tags		Ingredients
//	@Param		id	path		int	true	"Ingredient ID"
//	@Success	200	{object}	present.Ingredient
//	@Failure	404	{object}	apiError.Error	"Not Found"
//	@Router		/api/ingredients/{id}/ [GET]
func HandleGetIngredient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.ExtractRequestID(ctx)

	id, err := query.ID(chi.URLParam(r, "id"))
	if err != nil {
		_ = apiError.EncodeError(w, apiError.IngredientNotFound, "ingredient not found", requestID)
		return
	}

	ingredient, err := env.Catalog.GetIngredient(ctx, id)
	if errors.Is(err, catalog.ErrNotFound) {
		_ = apiError.EncodeError(w, apiError.IngredientNotFound, "ingredient not found", requestID)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "failed to get ingredient", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	if err := mJson.Encode(w, http.StatusOK, present.NewIngredient(ingredient)); err != nil {
		env.Logger.ErrorContext(ctx, "failed to write response", slog.Any("error", err))
	}
}
