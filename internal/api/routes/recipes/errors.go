package recipes

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	apiError "github.com/matt-dz/foodgram/internal/api/error"
	"github.com/matt-dz/foodgram/internal/env"
	"github.com/matt-dz/foodgram/internal/recipe"
	"github.com/matt-dz/foodgram/internal/relation"
)

// encodeRecipeError maps recipe service failures to responses.
func encodeRecipeError(ctx context.Context, w http.ResponseWriter, err error, requestID string) {
	env := env.EnvFromCtx(ctx)

	var verr *recipe.ValidationError
	switch {
	case errors.As(err, &verr):
		env.Logger.DebugContext(ctx, "recipe payload rejected", slog.Any("error", err))
		_ = apiError.EncodeValidationError(w, verr.Fields, requestID)
	case errors.Is(err, recipe.ErrNotFound):
		_ = apiError.EncodeError(w, apiError.RecipeNotFound, "recipe not found", requestID)
	case errors.Is(err, recipe.ErrForbidden):
		_ = apiError.EncodeError(w, apiError.RecipeNotOwned, "only the author may change this recipe", requestID)
	default:
		env.Logger.ErrorContext(ctx, "recipe operation failed", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
	}
}

// relationCodes names the conflict and missing codes of one recipe
// relation.
type relationCodes struct {
	conflict     apiError.ErrorCode
	conflictText string
	missing      apiError.ErrorCode
	missingText  string
}

var (
	favoriteCodes = relationCodes{
		conflict:     apiError.AlreadyFavorited,
		conflictText: "recipe is already in favorites",
		missing:      apiError.NotFavorited,
		missingText:  "recipe is not in favorites",
	}
	cartCodes = relationCodes{
		conflict:     apiError.AlreadyInCart,
		conflictText: "recipe is already in the shopping cart",
		missing:      apiError.NotInCart,
		missingText:  "recipe is not in the shopping cart",
	}
)

func encodeRelationError(ctx context.Context, w http.ResponseWriter, err error, codes relationCodes, requestID string) {
	env := env.EnvFromCtx(ctx)

	switch {
	case errors.Is(err, relation.ErrTargetNotFound):
		_ = apiError.EncodeError(w, apiError.RecipeNotFound, "recipe not found", requestID)
	case errors.Is(err, relation.ErrConflict):
		_ = apiError.EncodeError(w, codes.conflict, codes.conflictText, requestID)
	case errors.Is(err, relation.ErrNotFound):
		_ = apiError.EncodeError(w, codes.missing, codes.missingText, requestID)
	default:
		env.Logger.ErrorContext(ctx, "relation operation failed", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
	}
}
