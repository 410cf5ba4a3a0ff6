package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		wantIs         error
		wantConstraint string
	}{
		{
			name: "unique violation",
			err: &pgconn.PgError{
				Code:           "23505",
				ConstraintName: "favorites_unique_user_recipe",
			},
			wantIs:         ErrUniqueViolation,
			wantConstraint: "favorites_unique_user_recipe",
		},
		{
			name: "wrapped unique violation",
			err: fmt.Errorf("creating follow: %w", &pgconn.PgError{
				Code:           "23505",
				ConstraintName: "follows_unique_user_author",
			}),
			wantIs:         ErrUniqueViolation,
			wantConstraint: "follows_unique_user_author",
		},
		{
			name: "check violation",
			err: &pgconn.PgError{
				Code:           "23514",
				ConstraintName: "follows_no_self_follow",
			},
			wantIs:         ErrCheckViolation,
			wantConstraint: "follows_no_self_follow",
		},
		{
			name:   "no rows passes through",
			err:    pgx.ErrNoRows,
			wantIs: pgx.ErrNoRows,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TranslateError(tt.err)
			if !errors.Is(got, tt.wantIs) {
				t.Errorf("expected error to match %v, got %v", tt.wantIs, got)
			}
			if c := ConstraintName(got); c != tt.wantConstraint {
				t.Errorf("expected constraint %q, got %q", tt.wantConstraint, c)
			}
		})
	}
}

func TestTranslateError_Nil(t *testing.T) {
	if err := TranslateError(nil); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestNullableID(t *testing.T) {
	if id := NullableID(0); id.Valid {
		t.Errorf("expected zero id to be null, got %+v", id)
	}
	if id := NullableID(42); !id.Valid || id.Int64 != 42 {
		t.Errorf("expected valid id 42, got %+v", id)
	}
}
