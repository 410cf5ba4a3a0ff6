// Package present turns store rows into API response bodies. Relation
// flags are computed by the store for the requesting viewer and are
// always false for anonymous viewers.
package present

import (
	"github.com/matt-dz/foodgram/internal/database"
	"github.com/matt-dz/foodgram/internal/recipe"
	"github.com/matt-dz/foodgram/internal/relation"
)

// UnknownAuthor is shown for recipes whose author account was removed.
var UnknownAuthor = User{Username: "unknown"}

// ImageURLer resolves a stored image key to a public URL.
type ImageURLer interface {
	URL(key string) string
}

type User struct {
	Email        string `json:"email"`
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

type Tag struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

type Ingredient struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

type IngredientAmount struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int32  `json:"amount"`
}

type Recipe struct {
	ID               int64              `json:"id"`
	Tags             []Tag              `json:"tags"`
	Author           User               `json:"author"`
	Ingredients      []IngredientAmount `json:"ingredients"`
	IsFavorited      bool               `json:"is_favorited"`
	IsInShoppingCart bool               `json:"is_in_shopping_cart"`
	Name             string             `json:"name"`
	Image            string             `json:"image"`
	Text             string             `json:"text"`
	CookingTime      int32              `json:"cooking_time"`
}

type RecipeShort struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int32  `json:"cooking_time"`
}

type Subscription struct {
	User
	Recipes      []RecipeShort `json:"recipes"`
	RecipesCount int64         `json:"recipes_count"`
}

func NewTag(t database.Tag) Tag {
	return Tag{ID: t.ID, Name: t.Name, Color: t.Color, Slug: t.Slug}
}

func NewTags(tags []database.Tag) []Tag {
	out := make([]Tag, len(tags))
	for i, t := range tags {
		out[i] = NewTag(t)
	}
	return out
}

func NewIngredient(i database.Ingredient) Ingredient {
	return Ingredient{ID: i.ID, Name: i.Name, MeasurementUnit: i.MeasurementUnit}
}

func NewIngredients(ingredients []database.Ingredient) []Ingredient {
	out := make([]Ingredient, len(ingredients))
	for i, ing := range ingredients {
		out[i] = NewIngredient(ing)
	}
	return out
}

func NewUser(u database.User, isSubscribed bool) User {
	return User{
		Email:        u.Email,
		ID:           u.ID,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: isSubscribed,
	}
}

func NewListedUser(u database.ListUsersRow) User {
	return User{
		Email:        u.Email,
		ID:           u.ID,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: u.IsSubscribed,
	}
}

func NewRecipe(d recipe.Detail, images ImageURLer) Recipe {
	author := UnknownAuthor
	if d.AuthorID.Valid {
		author = User{
			Email:        d.AuthorEmail,
			ID:           d.AuthorID.Int64,
			Username:     d.AuthorUsername,
			FirstName:    d.AuthorFirstName,
			LastName:     d.AuthorLastName,
			IsSubscribed: d.AuthorIsSubscribed,
		}
	}

	ingredients := make([]IngredientAmount, len(d.Ingredients))
	for i, line := range d.Ingredients {
		ingredients[i] = IngredientAmount{
			ID:              line.ID,
			Name:            line.Name,
			MeasurementUnit: line.MeasurementUnit,
			Amount:          line.Amount,
		}
	}

	return Recipe{
		ID:               d.ID,
		Tags:             NewTags(d.Tags),
		Author:           author,
		Ingredients:      ingredients,
		IsFavorited:      d.IsFavorited,
		IsInShoppingCart: d.IsInShoppingCart,
		Name:             d.Name,
		Image:            images.URL(d.ImageKey),
		Text:             d.Text,
		CookingTime:      d.CookingTime,
	}
}

func NewRecipes(details []recipe.Detail, images ImageURLer) []Recipe {
	out := make([]Recipe, len(details))
	for i, d := range details {
		out[i] = NewRecipe(d, images)
	}
	return out
}

func NewRecipeShort(r database.Recipe, images ImageURLer) RecipeShort {
	return RecipeShort{
		ID:          r.ID,
		Name:        r.Name,
		Image:       images.URL(r.ImageKey),
		CookingTime: r.CookingTime,
	}
}

func NewRecipeShorts(recipes []database.Recipe, images ImageURLer) []RecipeShort {
	out := make([]RecipeShort, len(recipes))
	for i, r := range recipes {
		out[i] = NewRecipeShort(r, images)
	}
	return out
}

// NewSubscription renders a followed author. The viewer follows the
// author by definition, so is_subscribed is always true.
func NewSubscription(s relation.Subscription, images ImageURLer) Subscription {
	return Subscription{
		User: User{
			Email:        s.Author.Email,
			ID:           s.Author.ID,
			Username:     s.Author.Username,
			FirstName:    s.Author.FirstName,
			LastName:     s.Author.LastName,
			IsSubscribed: true,
		},
		Recipes:      NewRecipeShorts(s.Recipes, images),
		RecipesCount: s.RecipesCount,
	}
}

func NewSubscriptions(subs []relation.Subscription, images ImageURLer) []Subscription {
	out := make([]Subscription, len(subs))
	for i, s := range subs {
		out[i] = NewSubscription(s, images)
	}
	return out
}
