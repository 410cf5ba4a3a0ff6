// Package api sets up and starts the API
// server with routing and middleware.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/matt-dz/foodgram/internal/api/middleware"
	"github.com/matt-dz/foodgram/internal/api/routes/auth"
	"github.com/matt-dz/foodgram/internal/api/routes/ingredients"
	"github.com/matt-dz/foodgram/internal/api/routes/ping"
	"github.com/matt-dz/foodgram/internal/api/routes/recipes"
	"github.com/matt-dz/foodgram/internal/api/routes/tags"
	"github.com/matt-dz/foodgram/internal/api/routes/users"
	"github.com/matt-dz/foodgram/internal/env"
	"github.com/matt-dz/foodgram/internal/filestore"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
)

func addRoutes(router *chi.Mux) {
	router.Route("/api", func(r chi.Router) {
		r.Get("/ping", ping.HandlePing)

		r.Get("/tags/", tags.HandleListTags)
		r.Get("/tags/{id}/", tags.HandleGetTag)
		r.Get("/ingredients/", ingredients.HandleSearchIngredients)
		r.Get("/ingredients/{id}/", ingredients.HandleGetIngredient)

		r.Route("/recipes", func(r chi.Router) {
			r.With(middleware.OptionalAuth).Get("/", recipes.HandleListRecipes)
			r.With(middleware.OptionalAuth).Get("/{id}/", recipes.HandleGetRecipe)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)

				r.Post("/", recipes.HandleCreateRecipe)
				r.Get("/download_shopping_cart/", recipes.HandleDownloadShoppingCart)
				r.Get("/favorite/", recipes.HandleListFavorites)
				r.Get("/shopping_cart/", recipes.HandleListCart)
				r.Patch("/{id}/", recipes.HandleUpdateRecipe)
				r.Delete("/{id}/", recipes.HandleDeleteRecipe)
				r.Post("/{id}/favorite/", recipes.HandleAddFavorite)
				r.Delete("/{id}/favorite/", recipes.HandleRemoveFavorite)
				r.Post("/{id}/shopping_cart/", recipes.HandleAddToCart)
				r.Delete("/{id}/shopping_cart/", recipes.HandleRemoveFromCart)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.With(middleware.OptionalAuth).Get("/", users.HandleListUsers)
			r.Post("/", users.HandleCreateUser)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)

				r.Get("/me/", users.HandleGetMe)
				r.Post("/set_password/", users.HandleSetPassword)
				r.Get("/subscriptions/", users.HandleListSubscriptions)
				r.Get("/{id}/", users.HandleGetUser)
				r.Get("/{id}/subscribe/", users.HandleGetSubscription)
				r.Post("/{id}/subscribe/", users.HandleSubscribe)
				r.Delete("/{id}/subscribe/", users.HandleUnsubscribe)
			})
		})

		r.Route("/auth/token", func(r chi.Router) {
			r.Post("/login/", auth.HandleLogin)
			r.With(middleware.RequireAuth).Post("/logout/", auth.HandleLogout)
		})
	})
}

// addMedia serves recipe images from the local volume. Images kept in an
// object store are served by the store itself.
func addMedia(router *chi.Mux, files filestore.FileStore) {
	local, ok := files.(*filestore.Local)
	if !ok || local.URLPathPrefix() == "" {
		return
	}
	prefix := local.URLPathPrefix()
	fs := http.StripPrefix(prefix, http.FileServer(http.Dir(local.BaseDirectory())))
	router.Get(prefix+"/*", fs.ServeHTTP)
}

// NewRouter builds the handler for every API route.
func NewRouter(env *env.Env) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.AddRequestID)
	router.Use(middleware.LogRequest(env.Logger))
	router.Use(middleware.InjectEnv(env))
	router.Use(middleware.AddCors)

	addRoutes(router)
	addMedia(router, env.Files)
	return router
}

// Start serves the API on the configured address until ctx is cancelled,
// then drains in-flight requests.
func Start(ctx context.Context, env *env.Env) error {
	server := &http.Server{
		Addr:              env.Config.ListenAddr,
		Handler:           NewRouter(env),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		env.Logger.Info(fmt.Sprintf("Listening at %s", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		env.Logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			env.Logger.Error("failed to shut down server", slog.Any("error", err))
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	})
	return g.Wait()
}
