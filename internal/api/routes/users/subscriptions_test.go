package users

import (
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/mock/gomock"

	apiError "github.com/matt-dz/foodgram/internal/api/error"
	"github.com/matt-dz/foodgram/internal/api/query"
	"github.com/matt-dz/foodgram/internal/api/routes/routestest"
	"github.com/matt-dz/foodgram/internal/database"
	"github.com/matt-dz/foodgram/internal/present"
)

func expectAuthorRecipes(s *database.MockStore, authorID int64, limit int32, recipes []database.Recipe, count int64) {
	s.EXPECT().ListAuthorRecipes(gomock.Any(), database.ListAuthorRecipesParams{
		AuthorID: database.NullableID(authorID),
		Limit:    pgtype.Int4{Int32: limit, Valid: limit >= 0},
	}).Return(recipes, nil)
	s.EXPECT().CountAuthorRecipes(gomock.Any(), database.NullableID(authorID)).Return(count, nil)
}

func TestHandleSubscribe(t *testing.T) {
	e, store := routestest.NewEnv(t)
	store.EXPECT().GetUser(gomock.Any(), int64(5)).Return(newUser(5, "baker"), nil)
	store.EXPECT().FollowExists(gomock.Any(), database.FollowExistsParams{UserID: 1, AuthorID: 5}).Return(false, nil)
	store.EXPECT().CreateFollow(gomock.Any(), database.CreateFollowParams{UserID: 1, AuthorID: 5}).Return(nil)
	expectAuthorRecipes(store, 5, 1, []database.Recipe{
		{ID: 8, Name: "Bread", ImageKey: "recipes/8/a.png", CookingTime: 90},
	}, 3)

	w := routestest.Serve(t, e, routestest.Request{
		Method:  http.MethodPost,
		Pattern: "/api/users/{id}/subscribe/",
		Target:  "/api/users/5/subscribe/?recipes_limit=1",
		UserID:  1,
	}, HandleSubscribe)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	var sub present.Subscription
	routestest.Decode(t, w, &sub)
	if sub.ID != 5 || !sub.IsSubscribed {
		t.Errorf("unexpected author %+v", sub.User)
	}
	if len(sub.Recipes) != 1 || sub.RecipesCount != 3 {
		t.Errorf("expected 1 recipe of 3, got %d of %d", len(sub.Recipes), sub.RecipesCount)
	}
	if sub.Recipes[0].Image != "http://testserver/media/recipes/8/a.png" {
		t.Errorf("unexpected image url %q", sub.Recipes[0].Image)
	}
}

func TestHandleSubscribe_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		setup  func(*database.MockStore)
		status int
		code   apiError.ErrorCode
	}{
		{
			name:   "self",
			target: "/api/users/1/subscribe/",
			setup:  func(*database.MockStore) {},
			status: http.StatusBadRequest,
			code:   apiError.SelfSubscription,
		},
		{
			name:   "unknown author",
			target: "/api/users/5/subscribe/",
			setup: func(s *database.MockStore) {
				s.EXPECT().GetUser(gomock.Any(), int64(5)).Return(database.User{}, pgx.ErrNoRows)
			},
			status: http.StatusNotFound,
			code:   apiError.UserNotFound,
		},
		{
			name:   "duplicate",
			target: "/api/users/5/subscribe/",
			setup: func(s *database.MockStore) {
				s.EXPECT().GetUser(gomock.Any(), int64(5)).Return(newUser(5, "baker"), nil)
				s.EXPECT().FollowExists(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			status: http.StatusBadRequest,
			code:   apiError.AlreadySubscribed,
		},
		{
			name:   "negative recipes limit",
			target: "/api/users/5/subscribe/?recipes_limit=-1",
			setup:  func(*database.MockStore) {},
			status: http.StatusBadRequest,
			code:   apiError.ValidationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, store := routestest.NewEnv(t)
			tt.setup(store)

			w := routestest.Serve(t, e, routestest.Request{
				Method:  http.MethodPost,
				Pattern: "/api/users/{id}/subscribe/",
				Target:  tt.target,
				UserID:  1,
			}, HandleSubscribe)

			if w.Code != tt.status {
				t.Fatalf("expected status %d, got %d: %s", tt.status, w.Code, w.Body.String())
			}
			var body apiError.Error
			routestest.Decode(t, w, &body)
			if body.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, body.Code)
			}
		})
	}
}

func TestHandleGetSubscription(t *testing.T) {
	t.Run("following", func(t *testing.T) {
		e, store := routestest.NewEnv(t)
		store.EXPECT().GetUser(gomock.Any(), int64(5)).Return(newUser(5, "baker"), nil)
		store.EXPECT().FollowExists(gomock.Any(), database.FollowExistsParams{UserID: 1, AuthorID: 5}).Return(true, nil)
		expectAuthorRecipes(store, 5, query.NoLimit, nil, 0)

		w := routestest.Serve(t, e, routestest.Request{
			Method:  http.MethodGet,
			Pattern: "/api/users/{id}/subscribe/",
			Target:  "/api/users/5/subscribe/",
			UserID:  1,
		}, HandleGetSubscription)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", w.Code)
		}
		var sub present.Subscription
		routestest.Decode(t, w, &sub)
		if sub.Recipes == nil || len(sub.Recipes) != 0 {
			t.Errorf("expected empty recipe list, got %v", sub.Recipes)
		}
	})

	t.Run("zero recipes limit", func(t *testing.T) {
		e, store := routestest.NewEnv(t)
		store.EXPECT().GetUser(gomock.Any(), int64(5)).Return(newUser(5, "baker"), nil)
		store.EXPECT().FollowExists(gomock.Any(), gomock.Any()).Return(true, nil)
		expectAuthorRecipes(store, 5, 0, nil, 3)

		w := routestest.Serve(t, e, routestest.Request{
			Method:  http.MethodGet,
			Pattern: "/api/users/{id}/subscribe/",
			Target:  "/api/users/5/subscribe/?recipes_limit=0",
			UserID:  1,
		}, HandleGetSubscription)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", w.Code)
		}
		var sub present.Subscription
		routestest.Decode(t, w, &sub)
		if len(sub.Recipes) != 0 || sub.RecipesCount != 3 {
			t.Errorf("expected 0 recipes of 3, got %d of %d", len(sub.Recipes), sub.RecipesCount)
		}
	})

	t.Run("not following", func(t *testing.T) {
		e, store := routestest.NewEnv(t)
		store.EXPECT().GetUser(gomock.Any(), int64(5)).Return(newUser(5, "baker"), nil)
		store.EXPECT().FollowExists(gomock.Any(), gomock.Any()).Return(false, nil)

		w := routestest.Serve(t, e, routestest.Request{
			Method:  http.MethodGet,
			Pattern: "/api/users/{id}/subscribe/",
			Target:  "/api/users/5/subscribe/",
			UserID:  1,
		}, HandleGetSubscription)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", w.Code)
		}
	})
}

func TestHandleUnsubscribe(t *testing.T) {
	tests := []struct {
		name   string
		rows   int64
		status int
	}{
		{name: "following", rows: 1, status: http.StatusNoContent},
		{name: "not following", rows: 0, status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, store := routestest.NewEnv(t)
			store.EXPECT().DeleteFollow(gomock.Any(), database.DeleteFollowParams{UserID: 1, AuthorID: 5}).
				Return(tt.rows, nil)

			w := routestest.Serve(t, e, routestest.Request{
				Method:  http.MethodDelete,
				Pattern: "/api/users/{id}/subscribe/",
				Target:  "/api/users/5/subscribe/",
				UserID:  1,
			}, HandleUnsubscribe)

			if w.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, w.Code)
			}
		})
	}
}

func TestHandleListSubscriptions(t *testing.T) {
	e, store := routestest.NewEnv(t)
	store.EXPECT().CountFollowedAuthors(gomock.Any(), int64(1)).Return(int64(1), nil)
	store.EXPECT().ListFollowedAuthors(gomock.Any(), database.ListFollowedAuthorsParams{
		UserID: 1,
		Limit:  6,
		Offset: 0,
	}).Return([]database.ListFollowedAuthorsRow{
		{ID: 5, Email: "baker@mail.test", Username: "baker", FirstName: "B", LastName: "B"},
	}, nil)
	expectAuthorRecipes(store, 5, 2, []database.Recipe{{ID: 8, Name: "Bread"}, {ID: 9, Name: "Buns"}}, 4)

	w := routestest.Serve(t, e, routestest.Request{
		Method:  http.MethodGet,
		Pattern: "/api/users/subscriptions/",
		Target:  "/api/users/subscriptions/?recipes_limit=2",
		UserID:  1,
	}, HandleListSubscriptions)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var page present.Page[present.Subscription]
	routestest.Decode(t, w, &page)
	if page.Count != 1 || len(page.Results) != 1 {
		t.Fatalf("unexpected page %+v", page)
	}
	if got := page.Results[0]; len(got.Recipes) != 2 || got.RecipesCount != 4 {
		t.Errorf("expected 2 recipes of 4, got %d of %d", len(got.Recipes), got.RecipesCount)
	}
}
