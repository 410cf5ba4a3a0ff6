// Package catalog serves the read-only ingredient and tag catalog and
// loads it from fixture files.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/matt-dz/foodgram/internal/database"
	internalhttp "github.com/matt-dz/foodgram/internal/http"
	"github.com/matt-dz/foodgram/internal/log"
)

var ErrNotFound = errors.New("catalog entry not found")

// Cache stores catalog reads. Implementations must be safe for
// concurrent use.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Invalidate(ctx context.Context) error
}

const (
	tagsKey          = "catalog:tags"
	ingredientPrefix = "catalog:ingredients:"
)

type Catalog struct {
	store  database.Querier
	cache  Cache
	http   internalhttp.HTTPDoer
	logger *slog.Logger
}

type Option func(*Catalog)

func WithCache(c Cache) Option {
	return func(cat *Catalog) {
		cat.cache = c
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(cat *Catalog) {
		cat.logger = l
	}
}

// WithHTTP sets the client used to fetch remote fixtures.
func WithHTTP(doer internalhttp.HTTPDoer) Option {
	return func(cat *Catalog) {
		cat.http = doer
	}
}

func New(store database.Querier, opts ...Option) *Catalog {
	c := &Catalog{store: store, logger: log.NullLogger()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchIngredients returns ingredients whose name contains name,
// ignoring case. Names starting with name come first. An empty name
// returns the whole catalog.
func (c *Catalog) SearchIngredients(ctx context.Context, name string) ([]database.Ingredient, error) {
	name = strings.TrimSpace(name)
	key := ingredientPrefix + strings.ToLower(name)

	var cached []database.Ingredient
	if c.lookup(ctx, key, &cached) {
		return cached, nil
	}

	ingredients, err := c.store.SearchIngredients(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("searching ingredients: %w", err)
	}
	if ingredients == nil {
		ingredients = []database.Ingredient{}
	}
	c.remember(ctx, key, ingredients)
	return ingredients, nil
}

func (c *Catalog) GetIngredient(ctx context.Context, id int64) (database.Ingredient, error) {
	ingredient, err := c.store.GetIngredient(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return database.Ingredient{}, ErrNotFound
	} else if err != nil {
		return database.Ingredient{}, fmt.Errorf("getting ingredient: %w", err)
	}
	return ingredient, nil
}

func (c *Catalog) ListTags(ctx context.Context) ([]database.Tag, error) {
	var cached []database.Tag
	if c.lookup(ctx, tagsKey, &cached) {
		return cached, nil
	}

	tags, err := c.store.ListTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	if tags == nil {
		tags = []database.Tag{}
	}
	c.remember(ctx, tagsKey, tags)
	return tags, nil
}

func (c *Catalog) GetTag(ctx context.Context, id int64) (database.Tag, error) {
	tag, err := c.store.GetTag(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return database.Tag{}, ErrNotFound
	} else if err != nil {
		return database.Tag{}, fmt.Errorf("getting tag: %w", err)
	}
	return tag, nil
}

// lookup reads key from the cache. Cache failures are logged and
// treated as misses.
func (c *Catalog) lookup(ctx context.Context, key string, dst any) bool {
	if c.cache == nil {
		return false
	}
	found, err := c.cache.Get(ctx, key, dst)
	if err != nil {
		c.logger.WarnContext(ctx, "catalog cache read failed", slog.String("key", key), slog.Any("error", err))
		return false
	}
	return found
}

func (c *Catalog) remember(ctx context.Context, key string, value any) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Set(ctx, key, value); err != nil {
		c.logger.WarnContext(ctx, "catalog cache write failed", slog.String("key", key), slog.Any("error", err))
	}
}

func (c *Catalog) invalidate(ctx context.Context) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Invalidate(ctx); err != nil {
		c.logger.WarnContext(ctx, "catalog cache invalidation failed", slog.Any("error", err))
	}
}
