package recipe

import (
	"context"
	"errors"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	MaxNameLength = 200
)

type IngredientAmount struct {
	ID     int64 `json:"id"`
	Amount int64 `json:"amount"`
}

// Payload is a recipe as submitted for creation or update.
type Payload struct {
	Name        string             `json:"name" validate:"required,max=200"`
	Text        string             `json:"text" validate:"required"`
	CookingTime int64              `json:"cooking_time"`
	Tags        []int64            `json:"tags"`
	Ingredients []IngredientAmount `json:"ingredients"`
	Image       string             `json:"image"`
}

// Line is a validated ingredient line.
type Line struct {
	IngredientID int64
	Amount       int32
}

// Normalized is a payload that passed validation and is ready to be
// persisted. Tag ids are unique and keep their first-seen order.
type Normalized struct {
	Name        string
	Text        string
	CookingTime int32
	TagIDs      []int64
	Lines       []Line
	// Image is nil when the payload carried no image.
	Image *Image
}

type Mode int

const (
	// ModeCreate requires an image.
	ModeCreate Mode = iota
	// ModeUpdate keeps the stored image when none is supplied.
	ModeUpdate
)

// References reports which of the given catalog ids exist.
type References interface {
	ListExistingIngredientIDs(ctx context.Context, ids []int64) ([]int64, error)
	ListExistingTagIDs(ctx context.Context, ids []int64) ([]int64, error)
}

type Validator struct {
	refs     References
	validate *validator.Validate
}

func NewValidator(refs References) *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{refs: refs, validate: validate}
}

// Validate checks p and returns its normalized form. Every violation is
// reported in one *ValidationError. The only side effects are the two
// catalog lookups used to resolve references.
func (v *Validator) Validate(ctx context.Context, mode Mode, p Payload) (Normalized, error) {
	verr := &ValidationError{}

	if err := v.validate.Struct(p); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return Normalized{}, fmt.Errorf("validating payload shape: %w", err)
		}
		for _, fe := range fieldErrs {
			verr.add(ErrInvalidField, fe.Field(), fieldMessage(fe))
		}
	}

	if len(p.Tags) == 0 {
		verr.add(ErrEmptyCollection, "tags", "at least one tag is required")
	}
	if len(p.Ingredients) == 0 {
		verr.add(ErrEmptyCollection, "ingredients", "at least one ingredient is required")
	}

	if p.CookingTime < 1 {
		verr.add(ErrOutOfRange, "cooking_time", "cooking time must be at least 1")
	} else if p.CookingTime > math.MaxInt32 {
		verr.add(ErrOutOfRange, "cooking_time", "cooking time is too large")
	}
	for _, ing := range p.Ingredients {
		if ing.Amount < 1 {
			verr.add(ErrOutOfRange, "ingredients",
				fmt.Sprintf("amount of ingredient %d must be at least 1", ing.ID))
		} else if ing.Amount > math.MaxInt32 {
			verr.add(ErrOutOfRange, "ingredients",
				fmt.Sprintf("amount of ingredient %d is too large", ing.ID))
		}
	}

	ingredientIDs := make([]int64, 0, len(p.Ingredients))
	seen := make(map[int64]bool, len(p.Ingredients))
	for _, ing := range p.Ingredients {
		if seen[ing.ID] {
			verr.add(ErrDuplicateEntry, "ingredients",
				fmt.Sprintf("ingredient %d is listed more than once", ing.ID))
			continue
		}
		seen[ing.ID] = true
		ingredientIDs = append(ingredientIDs, ing.ID)
	}
	tagIDs := uniqueIDs(p.Tags)

	if err := v.checkReferences(ctx, verr, "ingredients", "ingredient", ingredientIDs,
		v.refs.ListExistingIngredientIDs); err != nil {
		return Normalized{}, err
	}
	if err := v.checkReferences(ctx, verr, "tags", "tag", tagIDs,
		v.refs.ListExistingTagIDs); err != nil {
		return Normalized{}, err
	}

	var img *Image
	switch {
	case p.Image != "":
		decoded, err := DecodeImage(p.Image)
		if err != nil {
			verr.add(ErrInvalidField, "image", err.Error())
		} else {
			img = &decoded
		}
	case mode == ModeCreate:
		verr.add(ErrInvalidField, "image", "image is required")
	}

	if !verr.empty() {
		return Normalized{}, verr
	}

	lines := make([]Line, 0, len(p.Ingredients))
	for _, ing := range p.Ingredients {
		lines = append(lines, Line{IngredientID: ing.ID, Amount: int32(ing.Amount)})
	}

	return Normalized{
		Name:        p.Name,
		Text:        p.Text,
		CookingTime: int32(p.CookingTime),
		TagIDs:      tagIDs,
		Lines:       lines,
		Image:       img,
	}, nil
}

func (v *Validator) checkReferences(
	ctx context.Context,
	verr *ValidationError,
	field, noun string,
	ids []int64,
	lookup func(context.Context, []int64) ([]int64, error),
) error {
	if len(ids) == 0 {
		return nil
	}
	existing, err := lookup(ctx, ids)
	if err != nil {
		return fmt.Errorf("looking up %s ids: %w", noun, err)
	}
	for _, id := range ids {
		if !slices.Contains(existing, id) {
			verr.add(ErrInvalidReference, field, fmt.Sprintf("%s %d does not exist", noun, id))
		}
	}
	return nil
}

func uniqueIDs(ids []int64) []int64 {
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	}
	return fmt.Sprintf("failed %q validation", fe.Tag())
}
