package tags

import (
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"go.uber.org/mock/gomock"

	apiError "github.com/matt-dz/foodgram/internal/api/error"
	"github.com/matt-dz/foodgram/internal/api/routes/routestest"
	"github.com/matt-dz/foodgram/internal/database"
	"github.com/matt-dz/foodgram/internal/present"
)

func TestHandleListTags(t *testing.T) {
	e, store := routestest.NewEnv(t)
	store.EXPECT().ListTags(gomock.Any()).Return([]database.Tag{
		{ID: 1, Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"},
		{ID: 2, Name: "Dinner", Color: "#49B64E", Slug: "dinner"},
	}, nil)

	w := routestest.Serve(t, e, routestest.Request{
		Method: http.MethodGet, Pattern: "/api/tags/", Target: "/api/tags/",
	}, HandleListTags)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var got []present.Tag
	routestest.Decode(t, w, &got)
	if len(got) != 2 || got[1].Slug != "dinner" {
		t.Errorf("unexpected tags %+v", got)
	}
}

func TestHandleGetTag(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		setup      func(*database.MockStore)
		wantStatus int
		wantCode   apiError.ErrorCode
	}{
		{
			name:   "found",
			target: "/api/tags/1/",
			setup: func(s *database.MockStore) {
				s.EXPECT().GetTag(gomock.Any(), int64(1)).Return(database.Tag{ID: 1, Slug: "breakfast"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "missing",
			target: "/api/tags/9/",
			setup: func(s *database.MockStore) {
				s.EXPECT().GetTag(gomock.Any(), int64(9)).Return(database.Tag{}, pgx.ErrNoRows)
			},
			wantStatus: http.StatusNotFound,
			wantCode:   apiError.TagNotFound,
		},
		{
			name:       "non numeric id",
			target:     "/api/tags/abc/",
			setup:      func(*database.MockStore) {},
			wantStatus: http.StatusNotFound,
			wantCode:   apiError.TagNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, store := routestest.NewEnv(t)
			tt.setup(store)

			w := routestest.Serve(t, e, routestest.Request{
				Method: http.MethodGet, Pattern: "/api/tags/{id}/", Target: tt.target,
			}, HandleGetTag)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if tt.wantCode != "" {
				var body apiError.Error
				routestest.Decode(t, w, &body)
				if body.Code != tt.wantCode {
					t.Errorf("expected code %q, got %q", tt.wantCode, body.Code)
				}
			}
		})
	}
}
