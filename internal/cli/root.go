// Package cli holds the foodgram command line: the API server and the
// catalog fixture loaders.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matt-dz/foodgram/internal/catalog"
	"github.com/matt-dz/foodgram/internal/config"
	"github.com/matt-dz/foodgram/internal/env"
	internalhttp "github.com/matt-dz/foodgram/internal/http"
	"github.com/matt-dz/foodgram/internal/log"
	"github.com/matt-dz/foodgram/internal/setup"
)

const setupTimeout = 30 * time.Second

var configPath string

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "foodgram",
		Short: "Foodgram recipe sharing backend",
		Long: `Foodgram serves the recipe sharing API and manages the ingredient
and tag catalog.

Configuration is read from a YAML file when one exists at --config,
$FOODGRAM_CONFIG or /data/foodgram.yaml, and from environment
variables otherwise.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: $FOODGRAM_CONFIG or "+config.DefaultConfigPath+")")

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newLoadIngredientsCommand())
	rootCmd.AddCommand(newLoadTagsCommand())

	return rootCmd
}

func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads the configuration and connects every backing service.
// The returned function releases them.
func bootstrap(ctx context.Context) (*env.Env, func(), error) {
	conf, err := config.LoadConfig(config.Path(configPath))
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	level, err := log.ParseLevel(conf.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	logger := log.New(&slog.HandlerOptions{Level: level})

	setupCtx, cancel := context.WithTimeout(ctx, setupTimeout)
	defer cancel()

	files, err := setup.FileStore(setupCtx, conf)
	if err != nil {
		return nil, nil, fmt.Errorf("setting up file store: %w", err)
	}

	db, err := setup.Database(setupCtx, conf)
	if err != nil {
		return nil, nil, fmt.Errorf("setting up database: %w", err)
	}

	redis, err := setup.Cache(setupCtx, conf, logger)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("setting up cache: %w", err)
	}

	cleanup := func() {
		db.Close()
		if redis != nil {
			_ = redis.Close()
		}
	}

	var catalogCache catalog.Cache
	if redis != nil {
		catalogCache = redis
	}
	return env.New(logger, db, files, catalogCache, internalhttp.New(logger), conf), cleanup, nil
}
