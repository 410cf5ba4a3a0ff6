// Package setup is responsible for setting up components.
package setup

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/matt-dz/foodgram/internal/cache"
	"github.com/matt-dz/foodgram/internal/config"
	"github.com/matt-dz/foodgram/internal/database"
	"github.com/matt-dz/foodgram/internal/filestore"
)

// DatabaseURL builds the postgres connection string for conf.
func DatabaseURL(conf config.Database) string {
	u := url.URL{
		Scheme: "postgresql",
		User:   url.UserPassword(conf.User, conf.Password),
		Host:   net.JoinHostPort(conf.Host, strconv.Itoa(int(conf.Port))),
		Path:   "/" + conf.Database,
	}
	return u.String()
}

// Database connects to postgres and creates the schema if it is missing.
func Database(ctx context.Context, conf config.Config) (*database.Database, error) {
	pool, err := pgxpool.New(ctx, DatabaseURL(conf.Database))
	if err != nil {
		return nil, fmt.Errorf("creating database pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	db := database.NewDatabase(pool)
	if err := db.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing database: %w", err)
	}
	return db, nil
}

// FileStore returns the S3 store when an object store is configured and
// the local volume otherwise.
func FileStore(ctx context.Context, conf config.Config) (filestore.FileStore, error) {
	if conf.ObjectStore.Enabled() {
		s3, err := filestore.NewS3(ctx, filestore.S3Config{
			Endpoint:  conf.ObjectStore.Endpoint,
			Bucket:    conf.ObjectStore.Bucket,
			AccessKey: conf.ObjectStore.AccessKey,
			SecretKey: conf.ObjectStore.SecretKey,
			UseSSL:    conf.ObjectStore.UseSSL,
			PublicURL: conf.ObjectStore.PublicURL,
		})
		if err != nil {
			return nil, fmt.Errorf("creating object store: %w", err)
		}
		return s3, nil
	}

	volume, err := filepath.Abs(conf.Fileserver.Volume)
	if err != nil {
		return nil, fmt.Errorf("creating fileserver path: %w", err)
	}
	return filestore.NewLocal(volume, conf.Fileserver.URLPrefix, conf.HostOrigin), nil
}

// Cache connects to redis. It returns nil when no redis address is
// configured; a nil cache disables catalog caching.
func Cache(ctx context.Context, conf config.Config, logger *slog.Logger) (*cache.Redis, error) {
	if !conf.Redis.Enabled() {
		logger.InfoContext(ctx, "redis not configured, catalog cache disabled")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     conf.Redis.Addr,
		Password: conf.Redis.Password,
		DB:       conf.Redis.DB,
	})
	c := cache.NewRedis(client, cache.DefaultPrefix, time.Duration(conf.Redis.TTLSeconds)*time.Second)
	if err := c.Ping(ctx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return c, nil
}
