// Package relation manages the per-user relations between users and
// recipes: following authors, favoriting recipes and the shopping cart.
package relation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"golang.org/x/sync/errgroup"

	"github.com/matt-dz/foodgram/internal/database"
	"github.com/matt-dz/foodgram/internal/log"
)

var (
	ErrConflict       = errors.New("relation already exists")
	ErrNotFound       = errors.New("relation does not exist")
	ErrSelfReference  = errors.New("users cannot subscribe to themselves")
	ErrTargetNotFound = errors.New("relation target does not exist")
)

// Kind names one of the relation tables.
type Kind string

const (
	Follow   Kind = "follow"
	Favorite Kind = "favorite"
	Cart     Kind = "cart"
)

// Subscription is a followed author with a preview of their recipes.
type Subscription struct {
	Author       database.ListFollowedAuthorsRow
	Recipes      []database.Recipe
	RecipesCount int64
}

type recipeRelation struct {
	exists func(context.Context, database.Querier, int64, int64) (bool, error)
	create func(context.Context, database.Querier, int64, int64) error
	remove func(context.Context, database.Querier, int64, int64) (int64, error)
	list   func(context.Context, database.Querier, int64) ([]database.Recipe, error)
}

var recipeRelations = map[Kind]recipeRelation{
	Favorite: {
		exists: func(ctx context.Context, q database.Querier, userID, recipeID int64) (bool, error) {
			return q.FavoriteExists(ctx, database.FavoriteExistsParams{UserID: userID, RecipeID: recipeID})
		},
		create: func(ctx context.Context, q database.Querier, userID, recipeID int64) error {
			return q.CreateFavorite(ctx, database.CreateFavoriteParams{UserID: userID, RecipeID: recipeID})
		},
		remove: func(ctx context.Context, q database.Querier, userID, recipeID int64) (int64, error) {
			return q.DeleteFavorite(ctx, database.DeleteFavoriteParams{UserID: userID, RecipeID: recipeID})
		},
		list: func(ctx context.Context, q database.Querier, userID int64) ([]database.Recipe, error) {
			return q.ListFavoriteRecipes(ctx, userID)
		},
	},
	Cart: {
		exists: func(ctx context.Context, q database.Querier, userID, recipeID int64) (bool, error) {
			return q.CartItemExists(ctx, database.CartItemExistsParams{UserID: userID, RecipeID: recipeID})
		},
		create: func(ctx context.Context, q database.Querier, userID, recipeID int64) error {
			return q.CreateCartItem(ctx, database.CreateCartItemParams{UserID: userID, RecipeID: recipeID})
		},
		remove: func(ctx context.Context, q database.Querier, userID, recipeID int64) (int64, error) {
			return q.DeleteCartItem(ctx, database.DeleteCartItemParams{UserID: userID, RecipeID: recipeID})
		},
		list: func(ctx context.Context, q database.Querier, userID int64) ([]database.Recipe, error) {
			return q.ListCartRecipes(ctx, userID)
		},
	},
}

type Registry struct {
	store  database.Querier
	logger *slog.Logger
}

func NewRegistry(store database.Querier, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = log.NullLogger()
	}
	return &Registry{store: store, logger: logger}
}

func (r *Registry) AddFavorite(ctx context.Context, userID, recipeID int64) (database.Recipe, error) {
	return r.addRecipe(ctx, Favorite, userID, recipeID)
}

func (r *Registry) RemoveFavorite(ctx context.Context, userID, recipeID int64) error {
	return r.removeRecipe(ctx, Favorite, userID, recipeID)
}

func (r *Registry) ListFavorites(ctx context.Context, userID int64) ([]database.Recipe, error) {
	return r.listRecipes(ctx, Favorite, userID)
}

func (r *Registry) AddToCart(ctx context.Context, userID, recipeID int64) (database.Recipe, error) {
	return r.addRecipe(ctx, Cart, userID, recipeID)
}

func (r *Registry) RemoveFromCart(ctx context.Context, userID, recipeID int64) error {
	return r.removeRecipe(ctx, Cart, userID, recipeID)
}

func (r *Registry) ListCart(ctx context.Context, userID int64) ([]database.Recipe, error) {
	return r.listRecipes(ctx, Cart, userID)
}

// addRecipe links userID to recipeID and returns the recipe. The
// existence check only gives a clean error for the common case; the
// unique constraint settles concurrent inserts.
func (r *Registry) addRecipe(ctx context.Context, kind Kind, userID, recipeID int64) (database.Recipe, error) {
	rel := recipeRelations[kind]

	target, err := r.store.GetRecipeByID(ctx, recipeID)
	if errors.Is(err, pgx.ErrNoRows) {
		return database.Recipe{}, ErrTargetNotFound
	} else if err != nil {
		return database.Recipe{}, fmt.Errorf("getting recipe: %w", err)
	}

	exists, err := rel.exists(ctx, r.store, userID, recipeID)
	if err != nil {
		return database.Recipe{}, fmt.Errorf("checking %s: %w", kind, err)
	}
	if exists {
		return database.Recipe{}, ErrConflict
	}

	if err := rel.create(ctx, r.store, userID, recipeID); err != nil {
		if errors.Is(database.TranslateError(err), database.ErrUniqueViolation) {
			r.logger.DebugContext(ctx, "lost insert race", slog.String("kind", string(kind)))
			return database.Recipe{}, ErrConflict
		}
		return database.Recipe{}, fmt.Errorf("creating %s: %w", kind, err)
	}
	return target, nil
}

func (r *Registry) removeRecipe(ctx context.Context, kind Kind, userID, recipeID int64) error {
	n, err := recipeRelations[kind].remove(ctx, r.store, userID, recipeID)
	if err != nil {
		return fmt.Errorf("deleting %s: %w", kind, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Registry) listRecipes(ctx context.Context, kind Kind, userID int64) ([]database.Recipe, error) {
	recipes, err := recipeRelations[kind].list(ctx, r.store, userID)
	if err != nil {
		return nil, fmt.Errorf("listing %s recipes: %w", kind, err)
	}
	if recipes == nil {
		recipes = []database.Recipe{}
	}
	return recipes, nil
}

// Subscribe makes userID follow authorID. A negative recipesLimit
// includes every recipe of the author in the returned entry; zero
// includes none while still counting them.
func (r *Registry) Subscribe(ctx context.Context, userID, authorID int64, recipesLimit int32) (Subscription, error) {
	if userID == authorID {
		return Subscription{}, ErrSelfReference
	}

	author, err := r.store.GetUser(ctx, authorID)
	if errors.Is(err, pgx.ErrNoRows) {
		return Subscription{}, ErrTargetNotFound
	} else if err != nil {
		return Subscription{}, fmt.Errorf("getting author: %w", err)
	}

	exists, err := r.store.FollowExists(ctx, database.FollowExistsParams{UserID: userID, AuthorID: authorID})
	if err != nil {
		return Subscription{}, fmt.Errorf("checking follow: %w", err)
	}
	if exists {
		return Subscription{}, ErrConflict
	}

	if err := r.store.CreateFollow(ctx, database.CreateFollowParams{UserID: userID, AuthorID: authorID}); err != nil {
		switch err = database.TranslateError(err); {
		case errors.Is(err, database.ErrUniqueViolation):
			return Subscription{}, ErrConflict
		case errors.Is(err, database.ErrCheckViolation):
			return Subscription{}, ErrSelfReference
		}
		return Subscription{}, fmt.Errorf("creating follow: %w", err)
	}

	return r.subscription(ctx, authorRow(author), recipesLimit)
}

func authorRow(u database.User) database.ListFollowedAuthorsRow {
	return database.ListFollowedAuthorsRow{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

// GetSubscription returns the follow entry of userID for authorID, or
// ErrNotFound when userID does not follow the author.
func (r *Registry) GetSubscription(ctx context.Context, userID, authorID int64, recipesLimit int32) (Subscription, error) {
	author, err := r.store.GetUser(ctx, authorID)
	if errors.Is(err, pgx.ErrNoRows) {
		return Subscription{}, ErrTargetNotFound
	} else if err != nil {
		return Subscription{}, fmt.Errorf("getting author: %w", err)
	}

	exists, err := r.store.FollowExists(ctx, database.FollowExistsParams{UserID: userID, AuthorID: authorID})
	if err != nil {
		return Subscription{}, fmt.Errorf("checking follow: %w", err)
	}
	if !exists {
		return Subscription{}, ErrNotFound
	}
	return r.subscription(ctx, authorRow(author), recipesLimit)
}

func (r *Registry) Unsubscribe(ctx context.Context, userID, authorID int64) error {
	n, err := r.store.DeleteFollow(ctx, database.DeleteFollowParams{UserID: userID, AuthorID: authorID})
	if err != nil {
		return fmt.Errorf("deleting follow: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListSubscriptions returns one page of the authors userID follows,
// newest subscription first, and the total number of followed authors.
func (r *Registry) ListSubscriptions(
	ctx context.Context, userID int64, limit, offset, recipesLimit int32,
) ([]Subscription, int64, error) {
	count, err := r.store.CountFollowedAuthors(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("counting followed authors: %w", err)
	}

	authors, err := r.store.ListFollowedAuthors(ctx, database.ListFollowedAuthorsParams{
		UserID: userID,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("listing followed authors: %w", err)
	}

	subs := make([]Subscription, len(authors))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, author := range authors {
		g.Go(func() error {
			sub, err := r.subscription(gctx, author, recipesLimit)
			if err != nil {
				return err
			}
			subs[i] = sub
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return subs, count, nil
}

func (r *Registry) subscription(
	ctx context.Context, author database.ListFollowedAuthorsRow, recipesLimit int32,
) (Subscription, error) {
	authorID := database.NullableID(author.ID)

	recipes, err := r.store.ListAuthorRecipes(ctx, database.ListAuthorRecipesParams{
		AuthorID: authorID,
		Limit:    pgtype.Int4{Int32: recipesLimit, Valid: recipesLimit >= 0},
	})
	if err != nil {
		return Subscription{}, fmt.Errorf("listing author recipes: %w", err)
	}
	if recipes == nil {
		recipes = []database.Recipe{}
	}

	count, err := r.store.CountAuthorRecipes(ctx, authorID)
	if err != nil {
		return Subscription{}, fmt.Errorf("counting author recipes: %w", err)
	}

	return Subscription{Author: author, Recipes: recipes, RecipesCount: count}, nil
}
