package recipes

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/matt-dz/foodgram/internal/api/query"
	"github.com/matt-dz/foodgram/internal/log"
	"github.com/matt-dz/foodgram/internal/recipe"
)

func parseFilter(values url.Values, defaultLimit int) (recipe.Filter, query.Page, error) {
	page, err := query.ParsePage(values, defaultLimit)
	if err != nil {
		return recipe.Filter{}, query.Page{}, err
	}
	authors, err := query.IDs(values, "author")
	if err != nil {
		return recipe.Filter{}, query.Page{}, err
	}
	favorited, err := query.Bool(values, "is_favorited")
	if err != nil {
		return recipe.Filter{}, query.Page{}, err
	}
	inCart, err := query.Bool(values, "is_in_shopping_cart")
	if err != nil {
		return recipe.Filter{}, query.Page{}, err
	}

	return recipe.Filter{
		AuthorIDs:     authors,
		TagSlugs:      query.Strings(values, "tags"),
		OnlyFavorited: favorited,
		OnlyInCart:    inCart,
		Limit:         int32(page.Limit),
		Offset:        page.Offset(),
	}, page, nil
}

func withRecipeID(ctx context.Context, recipeID int64) context.Context {
	return log.AppendCtx(ctx, slog.Int64("recipe-id", recipeID))
}
