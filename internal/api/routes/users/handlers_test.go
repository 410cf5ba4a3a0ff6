package users

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/mock/gomock"

	apiError "github.com/matt-dz/foodgram/internal/api/error"
	"github.com/matt-dz/foodgram/internal/api/routes/routestest"
	"github.com/matt-dz/foodgram/internal/argon2id"
	"github.com/matt-dz/foodgram/internal/database"
	"github.com/matt-dz/foodgram/internal/present"
)

const strongPassword = "Vx9#qLm2$Rt7!zKp"

func newUser(id int64, username string) database.User {
	return database.User{
		ID:        id,
		Email:     username + "@mail.test",
		Username:  username,
		FirstName: "Julia",
		LastName:  "Child",
	}
}

func TestHandleListUsers(t *testing.T) {
	e, store := routestest.NewEnv(t)
	store.EXPECT().CountUsers(gomock.Any()).Return(int64(2), nil)
	store.EXPECT().ListUsers(gomock.Any(), database.ListUsersParams{
		ViewerID: database.NullableID(3),
		Limit:    1,
		Offset:   1,
	}).Return([]database.ListUsersRow{
		{ID: 9, Email: "b@mail.test", Username: "baker", FirstName: "B", LastName: "B", IsSubscribed: true},
	}, nil)

	w := routestest.Serve(t, e, routestest.Request{
		Method:  http.MethodGet,
		Pattern: "/api/users/",
		Target:  "/api/users/?page=2&limit=1",
		UserID:  3,
	}, HandleListUsers)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var page present.Page[present.User]
	routestest.Decode(t, w, &page)
	if page.Count != 2 || len(page.Results) != 1 {
		t.Fatalf("unexpected page %+v", page)
	}
	if !page.Results[0].IsSubscribed {
		t.Error("expected is_subscribed to be true")
	}
	if page.Next != nil {
		t.Errorf("expected no next link, got %q", *page.Next)
	}
	if page.Previous == nil {
		t.Error("expected a previous link")
	}
}

func TestHandleListUsers_InvalidPage(t *testing.T) {
	e, _ := routestest.NewEnv(t)

	w := routestest.Serve(t, e, routestest.Request{
		Method:  http.MethodGet,
		Pattern: "/api/users/",
		Target:  "/api/users/?page=0",
	}, HandleListUsers)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
	var body apiError.Error
	routestest.Decode(t, w, &body)
	if _, ok := body.Fields["page"]; !ok {
		t.Errorf("expected page field error, got %+v", body.Fields)
	}
}

func TestHandleCreateUser(t *testing.T) {
	e, store := routestest.NewEnv(t)
	store.EXPECT().CreateUser(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, arg database.CreateUserParams) (int64, error) {
			if arg.Username != "chef" || arg.Email != "cook@mail.test" {
				t.Errorf("unexpected params %+v", arg)
			}
			if err := argon2id.Compare(strongPassword, arg.PasswordHash); err != nil {
				t.Errorf("expected stored hash to match password, got %v", err)
			}
			return 12, nil
		})

	w := routestest.Serve(t, e, routestest.Request{
		Method:  http.MethodPost,
		Pattern: "/api/users/",
		Target:  "/api/users/",
		Body: CreateUserRequest{
			Email:     "cook@mail.test",
			Username:  "chef",
			FirstName: "Julia",
			LastName:  "Child",
			Password:  strongPassword,
		},
	}, HandleCreateUser)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	var resp CreateUserResponse
	routestest.Decode(t, w, &resp)
	if resp.ID != 12 || resp.Username != "chef" {
		t.Errorf("unexpected response %+v", resp)
	}
	if body := w.Body.String(); strings.Contains(body, "password") {
		t.Errorf("expected password to be omitted from response, got %s", body)
	}
}

func TestHandleCreateUser_Rejected(t *testing.T) {
	valid := CreateUserRequest{
		Email:     "cook@mail.test",
		Username:  "chef",
		FirstName: "Julia",
		LastName:  "Child",
		Password:  strongPassword,
	}

	tests := []struct {
		name   string
		mutate func(*CreateUserRequest)
		code   apiError.ErrorCode
		field  string
	}{
		{
			name:   "missing email",
			mutate: func(r *CreateUserRequest) { r.Email = "" },
			code:   apiError.ValidationFailed,
			field:  "email",
		},
		{
			name:   "bad username",
			mutate: func(r *CreateUserRequest) { r.Username = "chef!" },
			code:   apiError.ValidationFailed,
			field:  "username",
		},
		{
			name:   "short password",
			mutate: func(r *CreateUserRequest) { r.Password = "abc" },
			code:   apiError.WeakPassword,
		},
		{
			name:   "password contains username",
			mutate: func(r *CreateUserRequest) { r.Password = "Xq9!chef#Lm2$Rt7" },
			code:   apiError.WeakPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := routestest.NewEnv(t)
			req := valid
			tt.mutate(&req)

			w := routestest.Serve(t, e, routestest.Request{
				Method:  http.MethodPost,
				Pattern: "/api/users/",
				Target:  "/api/users/",
				Body:    req,
			}, HandleCreateUser)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d: %s", w.Code, w.Body.String())
			}
			var body apiError.Error
			routestest.Decode(t, w, &body)
			if body.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, body.Code)
			}
			if tt.field != "" {
				if _, ok := body.Fields[tt.field]; !ok {
					t.Errorf("expected field error for %s, got %+v", tt.field, body.Fields)
				}
			}
		})
	}
}

func TestHandleCreateUser_Conflict(t *testing.T) {
	tests := []struct {
		constraint string
		code       apiError.ErrorCode
	}{
		{constraint: emailConstraint, code: apiError.EmailConflict},
		{constraint: usernameConstraint, code: apiError.UsernameConflict},
	}

	for _, tt := range tests {
		t.Run(tt.constraint, func(t *testing.T) {
			e, store := routestest.NewEnv(t)
			store.EXPECT().CreateUser(gomock.Any(), gomock.Any()).
				Return(int64(0), &pgconn.PgError{Code: "23505", ConstraintName: tt.constraint})

			w := routestest.Serve(t, e, routestest.Request{
				Method:  http.MethodPost,
				Pattern: "/api/users/",
				Target:  "/api/users/",
				Body: CreateUserRequest{
					Email:     "cook@mail.test",
					Username:  "chef",
					FirstName: "Julia",
					LastName:  "Child",
					Password:  strongPassword,
				},
			}, HandleCreateUser)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", w.Code)
			}
			var body apiError.Error
			routestest.Decode(t, w, &body)
			if body.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, body.Code)
			}
		})
	}
}

func TestHandleGetMe(t *testing.T) {
	e, store := routestest.NewEnv(t)
	store.EXPECT().GetUser(gomock.Any(), int64(4)).Return(newUser(4, "chef"), nil)

	w := routestest.Serve(t, e, routestest.Request{
		Method:  http.MethodGet,
		Pattern: "/api/users/me/",
		Target:  "/api/users/me/",
		UserID:  4,
	}, HandleGetMe)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var user present.User
	routestest.Decode(t, w, &user)
	if user.ID != 4 || user.IsSubscribed {
		t.Errorf("unexpected user %+v", user)
	}
}

func TestHandleGetUser(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		viewer     int64
		setup      func(*database.MockStore)
		status     int
		subscribed bool
	}{
		{
			name:   "anonymous",
			target: "/api/users/5/",
			setup: func(s *database.MockStore) {
				s.EXPECT().GetUser(gomock.Any(), int64(5)).Return(newUser(5, "baker"), nil)
			},
			status: http.StatusOK,
		},
		{
			name:   "subscribed viewer",
			target: "/api/users/5/",
			viewer: 2,
			setup: func(s *database.MockStore) {
				s.EXPECT().GetUser(gomock.Any(), int64(5)).Return(newUser(5, "baker"), nil)
				s.EXPECT().IsSubscribed(gomock.Any(), database.IsSubscribedParams{
					UserID:   database.NullableID(2),
					AuthorID: 5,
				}).Return(true, nil)
			},
			status:     http.StatusOK,
			subscribed: true,
		},
		{
			name:   "missing",
			target: "/api/users/5/",
			setup: func(s *database.MockStore) {
				s.EXPECT().GetUser(gomock.Any(), int64(5)).Return(database.User{}, pgx.ErrNoRows)
			},
			status: http.StatusNotFound,
		},
		{
			name:   "bad id",
			target: "/api/users/abc/",
			setup:  func(*database.MockStore) {},
			status: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, store := routestest.NewEnv(t)
			tt.setup(store)

			w := routestest.Serve(t, e, routestest.Request{
				Method:  http.MethodGet,
				Pattern: "/api/users/{id}/",
				Target:  tt.target,
				UserID:  tt.viewer,
			}, HandleGetUser)

			if w.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, w.Code)
			}
			if tt.status != http.StatusOK {
				return
			}
			var user present.User
			routestest.Decode(t, w, &user)
			if user.IsSubscribed != tt.subscribed {
				t.Errorf("expected is_subscribed %v, got %v", tt.subscribed, user.IsSubscribed)
			}
		})
	}
}

func TestHandleSetPassword(t *testing.T) {
	current := "Old#Pass9-word!Zq"
	hash, err := argon2id.EncodeHash(current, argon2id.DefaultParams)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := newUser(4, "chef")
	user.PasswordHash = hash

	t.Run("success", func(t *testing.T) {
		e, store := routestest.NewEnv(t)
		store.EXPECT().GetUser(gomock.Any(), int64(4)).Return(user, nil)
		store.EXPECT().UpdateUserPassword(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, arg database.UpdateUserPasswordParams) (int64, error) {
				if arg.ID != 4 {
					t.Errorf("expected id 4, got %d", arg.ID)
				}
				if err := argon2id.Compare(strongPassword, arg.PasswordHash); err != nil {
					t.Errorf("expected new hash to match, got %v", err)
				}
				return 1, nil
			})

		w := routestest.Serve(t, e, routestest.Request{
			Method:  http.MethodPost,
			Pattern: "/api/users/set_password/",
			Target:  "/api/users/set_password/",
			Body:    SetPasswordRequest{CurrentPassword: current, NewPassword: strongPassword},
			UserID:  4,
		}, HandleSetPassword)

		if w.Code != http.StatusNoContent {
			t.Fatalf("expected status 204, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("wrong current password", func(t *testing.T) {
		e, store := routestest.NewEnv(t)
		store.EXPECT().GetUser(gomock.Any(), int64(4)).Return(user, nil)

		w := routestest.Serve(t, e, routestest.Request{
			Method:  http.MethodPost,
			Pattern: "/api/users/set_password/",
			Target:  "/api/users/set_password/",
			Body:    SetPasswordRequest{CurrentPassword: "nope-nope-nope", NewPassword: strongPassword},
			UserID:  4,
		}, HandleSetPassword)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", w.Code)
		}
		var body apiError.Error
		routestest.Decode(t, w, &body)
		if body.Code != apiError.InvalidCredentials {
			t.Errorf("expected code %s, got %s", apiError.InvalidCredentials, body.Code)
		}
	})
}
