// Package env provides a structure for managing application-wide dependencies.
package env

import (
	"context"
	"log/slog"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/matt-dz/foodgram/internal/catalog"
	"github.com/matt-dz/foodgram/internal/config"
	"github.com/matt-dz/foodgram/internal/database"
	"github.com/matt-dz/foodgram/internal/filestore"
	"github.com/matt-dz/foodgram/internal/log"
	"github.com/matt-dz/foodgram/internal/recipe"
	"github.com/matt-dz/foodgram/internal/relation"
	"github.com/matt-dz/foodgram/internal/shopping"
)

type envKeyType struct{}

var envKey envKeyType

type Env struct {
	Logger   *slog.Logger
	Database database.Store
	Files    filestore.FileStore
	Cache    catalog.Cache
	HTTP     *retryablehttp.Client
	Config   config.Config

	Catalog   *catalog.Catalog
	Recipes   *recipe.Service
	Relations *relation.Registry
	Shopping  *shopping.Aggregator
}

// New wires the domain services on top of the given dependencies. A nil
// cache disables catalog caching.
func New(
	lg *slog.Logger,
	db database.Store,
	files filestore.FileStore,
	cache catalog.Cache,
	client *retryablehttp.Client,
	conf config.Config,
) *Env {
	if lg == nil {
		lg = log.NullLogger()
	}

	opts := []catalog.Option{catalog.WithLogger(lg)}
	if cache != nil {
		opts = append(opts, catalog.WithCache(cache))
	}
	if client != nil {
		opts = append(opts, catalog.WithHTTP(client))
	}

	return &Env{
		Logger:    lg,
		Database:  db,
		Files:     files,
		Cache:     cache,
		HTTP:      client,
		Config:    conf,
		Catalog:   catalog.New(db, opts...),
		Recipes:   recipe.NewService(db, files, lg),
		Relations: relation.NewRegistry(db, lg),
		Shopping:  shopping.NewAggregator(db),
	}
}

func Null() *Env {
	return &Env{Logger: log.NullLogger()}
}

func WithCtx(ctx context.Context, env *Env) context.Context {
	return context.WithValue(ctx, envKey, env)
}

// EnvFromCtx returns the Env stored in ctx, or an empty Env with a
// discarding logger when there is none.
func EnvFromCtx(ctx context.Context) *Env {
	if e, ok := ctx.Value(envKey).(*Env); ok && e != nil {
		return e
	}
	return Null()
}
