package database

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/matt-dz/foodgram/internal/sql"
)

// testDatabase connects to the server named by FOODGRAM_TEST_DATABASE_URL
// and applies the schema inside a throwaway Postgres schema.
func testDatabase(t *testing.T) (*Database, *pgxpool.Pool) {
	t.Helper()
	url := os.Getenv("FOODGRAM_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("FOODGRAM_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()

	admin, err := pgxpool.New(ctx, url)
	if err != nil {
		t.Fatalf("connecting to postgres: %v", err)
	}
	t.Cleanup(admin.Close)
	if err := admin.Ping(ctx); err != nil {
		t.Skipf("postgres unavailable: %v", err)
	}

	schema := "foodgram_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	ident := pgx.Identifier{schema}.Sanitize()
	if _, err := admin.Exec(ctx, "CREATE SCHEMA "+ident); err != nil {
		t.Fatalf("creating schema: %v", err)
	}
	t.Cleanup(func() { _, _ = admin.Exec(context.Background(), "DROP SCHEMA "+ident+" CASCADE") })

	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		t.Fatalf("parsing database url: %v", err)
	}
	cfg.ConnConfig.RuntimeParams["search_path"] = schema
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		t.Fatalf("connecting to postgres: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := pool.Exec(ctx, sql.Schema()); err != nil {
		t.Fatalf("applying schema: %v", err)
	}
	return NewDatabase(pool), pool
}

func createTestUser(t *testing.T, db *Database, username string) int64 {
	t.Helper()
	id, err := db.CreateUser(context.Background(), CreateUserParams{
		Email:        username + "@mail.test",
		Username:     username,
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: "x",
	})
	if err != nil {
		t.Fatalf("creating user %s: %v", username, err)
	}
	return id
}

func createTestIngredient(t *testing.T, pool *pgxpool.Pool, name, unit string) int64 {
	t.Helper()
	var id int64
	err := pool.QueryRow(context.Background(),
		"INSERT INTO ingredients (name, measurement_unit) VALUES ($1, $2) RETURNING id", name, unit,
	).Scan(&id)
	if err != nil {
		t.Fatalf("creating ingredient %s: %v", name, err)
	}
	return id
}

func createTestRecipe(t *testing.T, db *Database, authorID int64, name string, lines []CreateRecipeIngredientsParams) int64 {
	t.Helper()
	ctx := context.Background()
	var recipeID int64
	err := db.ExecTx(ctx, func(q Querier) error {
		id, err := q.CreateRecipe(ctx, CreateRecipeParams{
			AuthorID:    NullableID(authorID),
			Name:        name,
			ImageKey:    "recipes/" + name + ".png",
			Text:        "Cook it.",
			CookingTime: 10,
		})
		if err != nil {
			return err
		}
		recipeID = id
		for i := range lines {
			lines[i].RecipeID = id
		}
		_, err = q.CreateRecipeIngredients(ctx, lines)
		return err
	})
	if err != nil {
		t.Fatalf("creating recipe %s: %v", name, err)
	}
	return recipeID
}

func TestGetShoppingList_SumsInFirstEncounterOrder(t *testing.T) {
	db, pool := testDatabase(t)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	shopper := createTestUser(t, db, "shopper")
	flour := createTestIngredient(t, pool, "flour", "g")
	egg := createTestIngredient(t, pool, "egg", "pcs")

	r1 := createTestRecipe(t, db, author, "pancakes", []CreateRecipeIngredientsParams{
		{IngredientID: flour, Amount: 200},
		{IngredientID: egg, Amount: 2},
	})
	r2 := createTestRecipe(t, db, author, "bread", []CreateRecipeIngredientsParams{
		{IngredientID: flour, Amount: 100},
	})
	for _, id := range []int64{r1, r2} {
		if err := db.CreateCartItem(ctx, CreateCartItemParams{UserID: shopper, RecipeID: id}); err != nil {
			t.Fatalf("adding recipe %d to cart: %v", id, err)
		}
	}

	got, err := db.GetShoppingList(ctx, shopper)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []GetShoppingListRow{
		{Name: "flour", MeasurementUnit: "g", TotalAmount: 300},
		{Name: "egg", MeasurementUnit: "pcs", TotalAmount: 2},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}

	empty, err := db.GetShoppingList(ctx, author)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected empty list for user without cart, got %+v", empty)
	}
}

func TestConstraints_TranslateToSentinels(t *testing.T) {
	db, _ := testDatabase(t)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	reader := createTestUser(t, db, "reader")
	recipeID := createTestRecipe(t, db, author, "soup", nil)

	t.Run("duplicate favorite", func(t *testing.T) {
		arg := CreateFavoriteParams{UserID: reader, RecipeID: recipeID}
		if err := db.CreateFavorite(ctx, arg); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		err := TranslateError(db.CreateFavorite(ctx, arg))
		if !errors.Is(err, ErrUniqueViolation) {
			t.Fatalf("expected ErrUniqueViolation, got %v", err)
		}
		if c := ConstraintName(err); c != "favorites_unique_user_recipe" {
			t.Errorf("expected constraint favorites_unique_user_recipe, got %q", c)
		}
	})

	t.Run("duplicate follow", func(t *testing.T) {
		arg := CreateFollowParams{UserID: reader, AuthorID: author}
		if err := db.CreateFollow(ctx, arg); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := TranslateError(db.CreateFollow(ctx, arg)); !errors.Is(err, ErrUniqueViolation) {
			t.Errorf("expected ErrUniqueViolation, got %v", err)
		}
	})

	t.Run("self follow", func(t *testing.T) {
		err := TranslateError(db.CreateFollow(ctx, CreateFollowParams{UserID: reader, AuthorID: reader}))
		if !errors.Is(err, ErrCheckViolation) {
			t.Fatalf("expected ErrCheckViolation, got %v", err)
		}
		if c := ConstraintName(err); c != "follows_no_self_follow" {
			t.Errorf("expected constraint follows_no_self_follow, got %q", c)
		}
	})

	t.Run("zero cooking time", func(t *testing.T) {
		err := db.ExecTx(ctx, func(q Querier) error {
			_, err := q.CreateRecipe(ctx, CreateRecipeParams{
				AuthorID: NullableID(author),
				Name:     "instant",
				Text:     "Nothing to do.",
			})
			return err
		})
		if !errors.Is(TranslateError(err), ErrCheckViolation) {
			t.Errorf("expected ErrCheckViolation for zero cooking time, got %v", err)
		}
	})
}
