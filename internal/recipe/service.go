// Package recipe implements the recipe aggregate: payload validation,
// the transactional write path and hydrated reads.
package recipe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"golang.org/x/sync/errgroup"

	"github.com/matt-dz/foodgram/internal/database"
	"github.com/matt-dz/foodgram/internal/filestore"
	"github.com/matt-dz/foodgram/internal/log"
)

// Detail is a recipe with its author, flags, ingredient lines and tags.
type Detail struct {
	database.ListRecipesRow

	Ingredients []database.GetRecipeIngredientsRow
	Tags        []database.Tag
}

// Filter narrows a recipe listing. Empty slices do not filter. The
// favorited and cart flags only apply to authenticated viewers.
type Filter struct {
	AuthorIDs     []int64
	TagSlugs      []string
	OnlyFavorited bool
	OnlyInCart    bool
	Limit         int32
	Offset        int32
}

type Service struct {
	store     database.Store
	files     filestore.FileStore
	validator *Validator
	logger    *slog.Logger
}

func NewService(store database.Store, files filestore.FileStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = log.NullLogger()
	}
	return &Service{
		store:     store,
		files:     files,
		validator: NewValidator(store),
		logger:    logger,
	}
}

// Create validates p and stores the recipe, its ingredient lines and tag
// links in one transaction. The image is written before the transaction
// opens and removed again if the transaction fails.
func (s *Service) Create(ctx context.Context, authorID int64, p Payload) (int64, error) {
	n, err := s.validator.Validate(ctx, ModeCreate, p)
	if err != nil {
		return 0, err
	}

	imageKey := filestore.RecipeImageKey(n.Image.Suffix)
	if err := s.files.Put(ctx, imageKey, n.Image.Data, n.Image.MimeType); err != nil {
		return 0, fmt.Errorf("storing image: %w", err)
	}

	var recipeID int64
	err = s.store.ExecTx(ctx, func(q database.Querier) error {
		id, err := q.CreateRecipe(ctx, database.CreateRecipeParams{
			AuthorID:    database.NullableID(authorID),
			Name:        n.Name,
			ImageKey:    imageKey,
			Text:        n.Text,
			CookingTime: n.CookingTime,
		})
		if err != nil {
			return fmt.Errorf("creating recipe: %w", err)
		}
		recipeID = id
		return replaceChildren(ctx, q, id, n)
	})
	if err != nil {
		s.discardImage(ctx, imageKey)
		return 0, err
	}

	return recipeID, nil
}

// Update replaces the recipe's fields, ingredient lines and tag links.
// Children are cleared and recreated inside the same transaction as the
// row update so readers never observe a recipe without lines or tags.
func (s *Service) Update(ctx context.Context, authorID, recipeID int64, p Payload) error {
	current, err := s.ownedRecipe(ctx, authorID, recipeID)
	if err != nil {
		return err
	}

	n, err := s.validator.Validate(ctx, ModeUpdate, p)
	if err != nil {
		return err
	}

	var newImageKey string
	if n.Image != nil {
		newImageKey = filestore.RecipeImageKey(n.Image.Suffix)
		if err := s.files.Put(ctx, newImageKey, n.Image.Data, n.Image.MimeType); err != nil {
			return fmt.Errorf("storing image: %w", err)
		}
	}

	err = s.store.ExecTx(ctx, func(q database.Querier) error {
		if err := q.UpdateRecipe(ctx, database.UpdateRecipeParams{
			ID:          recipeID,
			Name:        n.Name,
			Text:        n.Text,
			CookingTime: n.CookingTime,
			ImageKey:    pgtype.Text{String: newImageKey, Valid: newImageKey != ""},
		}); err != nil {
			return fmt.Errorf("updating recipe: %w", err)
		}
		if err := q.DeleteRecipeIngredients(ctx, recipeID); err != nil {
			return fmt.Errorf("clearing ingredient lines: %w", err)
		}
		if err := q.DeleteRecipeTags(ctx, recipeID); err != nil {
			return fmt.Errorf("clearing tag links: %w", err)
		}
		return replaceChildren(ctx, q, recipeID, n)
	})
	if err != nil {
		s.discardImage(ctx, newImageKey)
		return err
	}

	if newImageKey != "" {
		s.discardImage(ctx, current.ImageKey)
	}
	return nil
}

// Delete removes a recipe owned by authorID. Lines, links and relations
// referencing the recipe are removed by the store.
func (s *Service) Delete(ctx context.Context, authorID, recipeID int64) error {
	current, err := s.ownedRecipe(ctx, authorID, recipeID)
	if err != nil {
		return err
	}

	if err := s.store.DeleteRecipe(ctx, recipeID); err != nil {
		return fmt.Errorf("deleting recipe: %w", err)
	}
	s.discardImage(ctx, current.ImageKey)
	return nil
}

// Get returns one recipe with flags computed for viewerID. A zero
// viewerID is an anonymous viewer.
func (s *Service) Get(ctx context.Context, viewerID, recipeID int64) (Detail, error) {
	row, err := s.store.GetRecipe(ctx, database.GetRecipeParams{
		ID:       recipeID,
		ViewerID: database.NullableID(viewerID),
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return Detail{}, ErrNotFound
	} else if err != nil {
		return Detail{}, fmt.Errorf("getting recipe: %w", err)
	}

	details, err := s.hydrate(ctx, []database.ListRecipesRow{database.ListRecipesRow(row)})
	if err != nil {
		return Detail{}, err
	}
	return details[0], nil
}

// List returns one page of recipes, newest first, and the total number
// of recipes matching f.
func (s *Service) List(ctx context.Context, viewerID int64, f Filter) ([]Detail, int64, error) {
	if viewerID == 0 {
		f.OnlyFavorited = false
		f.OnlyInCart = false
	}

	count, err := s.store.CountRecipes(ctx, database.CountRecipesParams{
		ViewerID:      database.NullableID(viewerID),
		AuthorIds:     f.AuthorIDs,
		TagSlugs:      f.TagSlugs,
		OnlyFavorited: f.OnlyFavorited,
		OnlyInCart:    f.OnlyInCart,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("counting recipes: %w", err)
	}

	rows, err := s.store.ListRecipes(ctx, database.ListRecipesParams{
		ViewerID:      database.NullableID(viewerID),
		AuthorIds:     f.AuthorIDs,
		TagSlugs:      f.TagSlugs,
		OnlyFavorited: f.OnlyFavorited,
		OnlyInCart:    f.OnlyInCart,
		Limit:         f.Limit,
		Offset:        f.Offset,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("listing recipes: %w", err)
	}

	details, err := s.hydrate(ctx, rows)
	if err != nil {
		return nil, 0, err
	}
	return details, count, nil
}

func (s *Service) hydrate(ctx context.Context, rows []database.ListRecipesRow) ([]Detail, error) {
	details := make([]Detail, len(rows))
	if len(rows) == 0 {
		return details, nil
	}

	ids := make([]int64, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}

	var (
		ingredients []database.GetRecipeIngredientsRow
		tags        []database.GetRecipeTagsRow
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ingredients, err = s.store.GetRecipeIngredients(gctx, ids)
		if err != nil {
			return fmt.Errorf("getting ingredient lines: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		tags, err = s.store.GetRecipeTags(gctx, ids)
		if err != nil {
			return fmt.Errorf("getting tags: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	index := make(map[int64]int, len(rows))
	for i, row := range rows {
		index[row.ID] = i
		details[i] = Detail{
			ListRecipesRow: row,
			Ingredients:    []database.GetRecipeIngredientsRow{},
			Tags:           []database.Tag{},
		}
	}
	for _, line := range ingredients {
		if i, ok := index[line.RecipeID]; ok {
			details[i].Ingredients = append(details[i].Ingredients, line)
		}
	}
	for _, tag := range tags {
		if i, ok := index[tag.RecipeID]; ok {
			details[i].Tags = append(details[i].Tags, database.Tag{
				ID:    tag.ID,
				Name:  tag.Name,
				Color: tag.Color,
				Slug:  tag.Slug,
			})
		}
	}
	return details, nil
}

func (s *Service) ownedRecipe(ctx context.Context, authorID, recipeID int64) (database.Recipe, error) {
	current, err := s.store.GetRecipeByID(ctx, recipeID)
	if errors.Is(err, pgx.ErrNoRows) {
		return database.Recipe{}, ErrNotFound
	} else if err != nil {
		return database.Recipe{}, fmt.Errorf("getting recipe: %w", err)
	}
	if !current.AuthorID.Valid || current.AuthorID.Int64 != authorID {
		return database.Recipe{}, ErrForbidden
	}
	return current, nil
}

func (s *Service) discardImage(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.files.Delete(ctx, key); err != nil {
		s.logger.WarnContext(ctx, "failed to delete recipe image",
			slog.String("key", key), slog.Any("error", err))
	}
}

func replaceChildren(ctx context.Context, q database.Querier, recipeID int64, n Normalized) error {
	lines := make([]database.CreateRecipeIngredientsParams, len(n.Lines))
	for i, line := range n.Lines {
		lines[i] = database.CreateRecipeIngredientsParams{
			RecipeID:     recipeID,
			IngredientID: line.IngredientID,
			Amount:       line.Amount,
		}
	}
	if _, err := q.CreateRecipeIngredients(ctx, lines); err != nil {
		return fmt.Errorf("inserting ingredient lines: %w", err)
	}

	links := make([]database.CreateRecipeTagsParams, len(n.TagIDs))
	for i, tagID := range n.TagIDs {
		links[i] = database.CreateRecipeTagsParams{RecipeID: recipeID, TagID: tagID}
	}
	if _, err := q.CreateRecipeTags(ctx, links); err != nil {
		return fmt.Errorf("inserting tag links: %w", err)
	}
	return nil
}
