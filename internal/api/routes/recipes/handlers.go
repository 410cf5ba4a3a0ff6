// Package recipes contains handlers for the recipes endpoint.
package recipes

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	apiError "github.com/matt-dz/foodgram/internal/api/error"
	"github.com/matt-dz/foodgram/internal/api/query"
	"github.com/matt-dz/foodgram/internal/api/requestid"
	"github.com/matt-dz/foodgram/internal/api/token"
	"github.com/matt-dz/foodgram/internal/database"
	"github.com/matt-dz/foodgram/internal/env"
	mJson "github.com/matt-dz/foodgram/internal/json"
	"github.com/matt-dz/foodgram/internal/present"
	"github.com/matt-dz/foodgram/internal/recipe"
	"github.com/matt-dz/foodgram/internal/shopping"
)

const (
	shoppingListFilename = "shopping_list.txt"
	maxBodySize          = 16 << 20 // room for a base64 encoded recipe.MaxImageBytes image
)

// HandleListRecipes godoc
//
//	@Summary		List recipes.
//	@Description	Newest first. The favorited and cart filters only apply
//	@Description	to authenticated callers.
//	@Tags			Recipes
//	@Param			author				query		[]int		false	"Author IDs"
//	@Param			tags				query		[]string	false	"Tag slugs"
//	@Param			is_favorited		query		int			false	"Only favorites"
//	@Param			is_in_shopping_cart	query		int			false	"Only cart recipes"
//	@Param			page				query		int			false	"Page"
//	@Param			limit				query		int			false	"Page size"
//	@Success		200					{object}	present.Page[present.Recipe]
//	@Failure		400					{object}	apiError.Error	"Bad Request"
//	@Router			/api/recipes/ [GET]
func HandleListRecipes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.ExtractRequestID(ctx)
	viewerID := token.ViewerFromCtx(ctx)

	env.Logger.DebugContext(ctx, "parsing filters")
	values := r.URL.Query()
	filter, page, err := parseFilter(values, env.Config.Pagination.DefaultLimit)
	var perr *query.ParamError
	if errors.As(err, &perr) {
		_ = apiError.EncodeValidationError(w, perr.Fields(), requestID)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "failed to parse filters", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	env.Logger.DebugContext(ctx, "listing recipes")
	details, count, err := env.Recipes.List(ctx, viewerID, filter)
	if err != nil {
		encodeRecipeError(ctx, w, err, requestID)
		return
	}

	resp := present.NewPage(
		present.NewRecipes(details, env.Files),
		count,
		query.SelfURL(r, env.Config.HostOrigin),
		page.Number,
		page.Limit,
	)
	if err := mJson.Encode(w, http.StatusOK, resp); err != nil {
		env.Logger.ErrorContext(ctx, "failed to write response", slog.Any("error", err))
	}
}

// HandleCreateRecipe godoc
//
//	@Summary	Create a recipe.
//	@Tags		Recipes
//	@Accept		json
//	@Param		request	body		recipe.Payload	true	"Recipe"
//	@Success	201		{object}	present.Recipe
//	@Failure	400		{object}	apiError.Error	"Validation failed"
//	@Failure	401		{object}	apiError.Error	"Unauthorized"
//	@Router		/api/recipes/ [POST]
func HandleCreateRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.ExtractRequestID(ctx)
	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to extract user id from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	env.Logger.DebugContext(ctx, "reading request body")
	var payload recipe.Payload
	if err := mJson.Decode(http.MaxBytesReader(w, r.Body, maxBodySize), &payload); err != nil {
		env.Logger.ErrorContext(ctx, "failed to decode request body", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid request body", requestID)
		return
	}

	env.Logger.DebugContext(ctx, "creating recipe")
	recipeID, err := env.Recipes.Create(ctx, userID, payload)
	if err != nil {
		encodeRecipeError(ctx, w, err, requestID)
		return
	}
	ctx = withRecipeID(ctx, recipeID)
	env.Logger.InfoContext(ctx, "recipe created")

	detail, err := env.Recipes.Get(ctx, userID, recipeID)
	if err != nil {
		encodeRecipeError(ctx, w, err, requestID)
		return
	}
	if err := mJson.Encode(w, http.StatusCreated, present.NewRecipe(detail, env.Files)); err != nil {
		env.Logger.ErrorContext(ctx, "failed to write response", slog.Any("error", err))
	}
}

// HandleGetRecipe godoc
//
//	@Summary	Get a recipe.
//	@Tags		Recipes
//	@Param		id	path		int	true	"Recipe ID"
//	@Success	200	{object}	present.Recipe
//	@Failure	404	{object}	apiError.Error	"Not Found"
//	@Router		/api/recipes/{id}/ [GET]
func HandleGetRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.ExtractRequestID(ctx)

	recipeID, ok := recipeIDParam(w, r, requestID)
	if !ok {
		return
	}
	ctx = withRecipeID(ctx, recipeID)

	env.Logger.DebugContext(ctx, "getting recipe")
	detail, err := env.Recipes.Get(ctx, token.ViewerFromCtx(ctx), recipeID)
	if err != nil {
		encodeRecipeError(ctx, w, err, requestID)
		return
	}
	if err := mJson.Encode(w, http.StatusOK, present.NewRecipe(detail, env.Files)); err != nil {
		env.Logger.ErrorContext(ctx, "failed to write response", slog.Any("error", err))
	}
}

// HandleUpdateRecipe godoc
//
//	@Summary		Update a recipe.
//	@Description	Replaces the recipe's fields, ingredient lines and tags.
//	@Description	The image is kept when omitted.
//	@Tags			Recipes
//	@Accept			json
//	@Param			id		path		int				true	"Recipe ID"
//	@Param			request	body		recipe.Payload	true	"Recipe"
//	@Success		200		{object}	present.Recipe
//	@Failure		400		{object}	apiError.Error	"Validation failed"
//	@Failure		403		{object}	apiError.Error	"Forbidden"
//	@Failure		404		{object}	apiError.Error	"Not Found"
//	@Router			/api/recipes/{id}/ [PATCH]
func HandleUpdateRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.ExtractRequestID(ctx)
	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to extract user id from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	recipeID, ok := recipeIDParam(w, r, requestID)
	if !ok {
		return
	}
	ctx = withRecipeID(ctx, recipeID)

	env.Logger.DebugContext(ctx, "reading request body")
	var payload recipe.Payload
	if err := mJson.Decode(http.MaxBytesReader(w, r.Body, maxBodySize), &payload); err != nil {
		env.Logger.ErrorContext(ctx, "failed to decode request body", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid request body", requestID)
		return
	}

	env.Logger.DebugContext(ctx, "updating recipe")
	if err := env.Recipes.Update(ctx, userID, recipeID, payload); err != nil {
		encodeRecipeError(ctx, w, err, requestID)
		return
	}

	detail, err := env.Recipes.Get(ctx, userID, recipeID)
	if err != nil {
		encodeRecipeError(ctx, w, err, requestID)
		return
	}
	if err := mJson.Encode(w, http.StatusOK, present.NewRecipe(detail, env.Files)); err != nil {
		env.Logger.ErrorContext(ctx, "failed to write response", slog.Any("error", err))
	}
}

// HandleDeleteRecipe godoc
//
//	@Summary	Delete a recipe.
//	@Tags		Recipes
//	@Param		id	path	int	true	"Recipe ID"
//	@Success	204
//	@Failure	403	{object}	apiError.Error	"Forbidden"
//	@Failure	404	{object}	apiError.Error	"Not Found"
//	@Router		/api/recipes/{id}/ [DELETE]
func HandleDeleteRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.ExtractRequestID(ctx)
	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to extract user id from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	recipeID, ok := recipeIDParam(w, r, requestID)
	if !ok {
		return
	}
	ctx = withRecipeID(ctx, recipeID)

	env.Logger.DebugContext(ctx, "deleting recipe")
	if err := env.Recipes.Delete(ctx, userID, recipeID); err != nil {
		encodeRecipeError(ctx, w, err, requestID)
		return
	}
	env.Logger.InfoContext(ctx, "recipe deleted")
	w.WriteHeader(http.StatusNoContent)
}

// HandleAddFavorite godoc
//
//	@Summary	Add a recipe to favorites.
//	@Tags		Recipes
//	@Param		id	path		int	true	"Recipe ID"
//	@Success	201	{object}	present.RecipeShort
//	@Failure	400	{object}	apiError.Error	"Already favorited"
//	@Failure	404	{object}	apiError.Error	"Not Found"
//	@Router		/api/recipes/{id}/favorite/ [POST]
func HandleAddFavorite(w http.ResponseWriter, r *http.Request) {
	addRelation(w, r, favoriteCodes, func(e *env.Env) addFunc { return e.Relations.AddFavorite })
}

// HandleRemoveFavorite godoc
//
//	@Summary	Remove a recipe from favorites.
//	@Tags		Recipes
//	@Param		id	path	int	true	"Recipe ID"
//	@Success	204
//	@Failure	404	{object}	apiError.Error	"Not favorited"
//	@Router		/api/recipes/{id}/favorite/ [DELETE]
func HandleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	removeRelation(w, r, favoriteCodes, func(e *env.Env) removeFunc { return e.Relations.RemoveFavorite })
}

// HandleListFavorites godoc
//
//	@Summary	List the caller's favorite recipes.
//	@Tags		Recipes
//	@Success	200	{array}	present.RecipeShort
//	@Router		/api/recipes/favorite/ [GET]
func HandleListFavorites(w http.ResponseWriter, r *http.Request) {
	listRelation(w, r, func(e *env.Env) listFunc { return e.Relations.ListFavorites })
}

// HandleAddToCart godoc
//
//	@Summary	Add a recipe to the shopping cart.
//	@Tags		Recipes
//	@Param		id	path		int	true	"Recipe ID"
//	@Success	201	{object}	present.RecipeShort
//	@Failure	400	{object}	apiError.Error	"Already in cart"
//	@Failure	404	{object}	apiError.Error	"Not Found"
//	@Router		/api/recipes/{id}/shopping_cart/ [POST]
func HandleAddToCart(w http.ResponseWriter, r *http.Request) {
	addRelation(w, r, cartCodes, func(e *env.Env) addFunc { return e.Relations.AddToCart })
}

// HandleRemoveFromCart godoc
//
//	@Summary	Remove a recipe from the shopping cart.
//	@Tags		Recipes
//	@Param		id	path	int	true	"Recipe ID"
//	@Success	204
//	@Failure	404	{object}	apiError.Error	"Not in cart"
//	@Router		/api/recipes/{id}/shopping_cart/ [DELETE]
func HandleRemoveFromCart(w http.ResponseWriter, r *http.Request) {
	removeRelation(w, r, cartCodes, func(e *env.Env) removeFunc { return e.Relations.RemoveFromCart })
}

// HandleListCart godoc
//
//	@Summary	List the recipes in the caller's shopping cart.
//	@Tags		Recipes
//	@Success	200	{array}	present.RecipeShort
//	@Router		/api/recipes/shopping_cart/ [GET]
func HandleListCart(w http.ResponseWriter, r *http.Request) {
	listRelation(w, r, func(e *env.Env) listFunc { return e.Relations.ListCart })
}

// HandleDownloadShoppingCart godoc
//
//	@Summary		Download the shopping list.
//	@Description	One line per ingredient with amounts summed over every
//	@Description	recipe in the cart.
//	@Tags			Recipes
//	@Produce		plain
//	@Success		200	{file}	file
//	@Router			/api/recipes/download_shopping_cart/ [GET]
func HandleDownloadShoppingCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.ExtractRequestID(ctx)
	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to extract user id from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	env.Logger.DebugContext(ctx, "building shopping list")
	lines, err := env.Shopping.Build(ctx, userID)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to build shopping list", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename="+shoppingListFilename)
	w.WriteHeader(http.StatusOK)
	if err := shopping.Render(w, lines); err != nil {
		env.Logger.ErrorContext(ctx, "failed to write shopping list", slog.Any("error", err))
	}
}

type (
	addFunc    func(ctx context.Context, userID, recipeID int64) (database.Recipe, error)
	removeFunc func(ctx context.Context, userID, recipeID int64) error
	listFunc   func(ctx context.Context, userID int64) ([]database.Recipe, error)
)

func addRelation(w http.ResponseWriter, r *http.Request, codes relationCodes, pick func(*env.Env) addFunc) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.ExtractRequestID(ctx)
	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to extract user id from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	recipeID, ok := recipeIDParam(w, r, requestID)
	if !ok {
		return
	}
	ctx = withRecipeID(ctx, recipeID)

	env.Logger.DebugContext(ctx, "adding recipe relation")
	target, err := pick(env)(ctx, userID, recipeID)
	if err != nil {
		encodeRelationError(ctx, w, err, codes, requestID)
		return
	}
	if err := mJson.Encode(w, http.StatusCreated, present.NewRecipeShort(target, env.Files)); err != nil {
		env.Logger.ErrorContext(ctx, "failed to write response", slog.Any("error", err))
	}
}

func removeRelation(w http.ResponseWriter, r *http.Request, codes relationCodes, pick func(*env.Env) removeFunc) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.ExtractRequestID(ctx)
	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to extract user id from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	recipeID, ok := recipeIDParam(w, r, requestID)
	if !ok {
		return
	}
	ctx = withRecipeID(ctx, recipeID)

	env.Logger.DebugContext(ctx, "removing recipe relation")
	if err := pick(env)(ctx, userID, recipeID); err != nil {
		encodeRelationError(ctx, w, err, codes, requestID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func listRelation(w http.ResponseWriter, r *http.Request, pick func(*env.Env) listFunc) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.ExtractRequestID(ctx)
	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to extract user id from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	env.Logger.DebugContext(ctx, "listing related recipes")
	recipes, err := pick(env)(ctx, userID)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to list related recipes", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	if err := mJson.Encode(w, http.StatusOK, present.NewRecipeShorts(recipes, env.Files)); err != nil {
		env.Logger.ErrorContext(ctx, "failed to write response", slog.Any("error", err))
	}
}

func recipeIDParam(w http.ResponseWriter, r *http.Request, requestID string) (int64, bool) {
	id, err := query.ID(chi.URLParam(r, "id"))
	if err != nil {
		_ = apiError.EncodeError(w, apiError.RecipeNotFound, "recipe not found", requestID)
		return 0, false
	}
	return id, true
}
