package catalog

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/matt-dz/foodgram/internal/database"
	internalhttp "github.com/matt-dz/foodgram/internal/http"
)

var ErrInvalidFixture = errors.New("invalid fixture")

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// LoadResult counts the fixture rows that were inserted and the rows
// that already existed.
type LoadResult struct {
	Created int
	Skipped int
}

type ingredientFixture struct {
	Name            string `json:"name" validate:"required,max=200"`
	MeasurementUnit string `json:"measurement_unit" validate:"required,max=200"`
}

type tagFixture struct {
	Name  string `json:"name" validate:"required,max=200"`
	Color string `json:"color" validate:"required,hexcolor,len=7"`
	Slug  string `json:"slug" validate:"required,max=200,slug"`
}

func newFixtureValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
	return v
}

// Open returns the fixture at source, which is either a local path or
// an http(s) URL.
func (c *Catalog) Open(ctx context.Context, source string) (io.ReadCloser, error) {
	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		f, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("opening fixture: %w", err)
		}
		return f, nil
	}

	doer := c.http
	if doer == nil {
		doer = internalhttp.New(c.logger)
	}
	body, err := internalhttp.Fetch(ctx, doer, source)
	if err != nil {
		return nil, fmt.Errorf("fetching fixture: %w", err)
	}
	return io.NopCloser(bytes.NewReader(body)), nil
}

// LoadIngredientsCSV reads name,measurement_unit rows after a header
// row and creates the ingredients that do not exist yet.
func (c *Catalog) LoadIngredientsCSV(ctx context.Context, r io.Reader) (LoadResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 2
	reader.TrimLeadingSpace = true

	if _, err := reader.Read(); errors.Is(err, io.EOF) {
		return LoadResult{}, nil
	} else if err != nil {
		return LoadResult{}, fmt.Errorf("%w: reading header: %w", ErrInvalidFixture, err)
	}

	var fixtures []ingredientFixture
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return LoadResult{}, fmt.Errorf("%w: %w", ErrInvalidFixture, err)
		}
		fixtures = append(fixtures, ingredientFixture{Name: record[0], MeasurementUnit: record[1]})
	}
	return c.loadIngredients(ctx, fixtures)
}

// LoadIngredientsJSON reads an array of {"name", "measurement_unit"}
// objects.
func (c *Catalog) LoadIngredientsJSON(ctx context.Context, r io.Reader) (LoadResult, error) {
	var fixtures []ingredientFixture
	if err := json.NewDecoder(r).Decode(&fixtures); err != nil {
		return LoadResult{}, fmt.Errorf("%w: %w", ErrInvalidFixture, err)
	}
	return c.loadIngredients(ctx, fixtures)
}

// LoadTagsJSON reads an array of {"name", "color", "slug"} objects.
func (c *Catalog) LoadTagsJSON(ctx context.Context, r io.Reader) (LoadResult, error) {
	var fixtures []tagFixture
	if err := json.NewDecoder(r).Decode(&fixtures); err != nil {
		return LoadResult{}, fmt.Errorf("%w: %w", ErrInvalidFixture, err)
	}

	validate := newFixtureValidator()
	for i := range fixtures {
		fixtures[i].Name = strings.TrimSpace(fixtures[i].Name)
		fixtures[i].Color = strings.ToUpper(strings.TrimSpace(fixtures[i].Color))
		fixtures[i].Slug = strings.TrimSpace(fixtures[i].Slug)
		if err := validate.Struct(fixtures[i]); err != nil {
			return LoadResult{}, fmt.Errorf("%w: tag %d: %w", ErrInvalidFixture, i+1, err)
		}
	}

	var res LoadResult
	for _, f := range fixtures {
		n, err := c.store.CreateTagIfMissing(ctx, database.CreateTagIfMissingParams{
			Name:  f.Name,
			Color: f.Color,
			Slug:  f.Slug,
		})
		if err != nil {
			return res, fmt.Errorf("creating tag %q: %w", f.Name, database.TranslateError(err))
		}
		res.count(n)
	}

	c.invalidate(ctx)
	c.logger.InfoContext(ctx, "loaded tags", "created", res.Created, "skipped", res.Skipped)
	return res, nil
}

func (c *Catalog) loadIngredients(ctx context.Context, fixtures []ingredientFixture) (LoadResult, error) {
	validate := newFixtureValidator()
	for i := range fixtures {
		fixtures[i].Name = strings.TrimSpace(fixtures[i].Name)
		fixtures[i].MeasurementUnit = strings.TrimSpace(fixtures[i].MeasurementUnit)
		if err := validate.Struct(fixtures[i]); err != nil {
			return LoadResult{}, fmt.Errorf("%w: ingredient %d: %w", ErrInvalidFixture, i+1, err)
		}
	}

	var res LoadResult
	for _, f := range fixtures {
		n, err := c.store.CreateIngredientIfMissing(ctx, database.CreateIngredientIfMissingParams{
			Name:            f.Name,
			MeasurementUnit: f.MeasurementUnit,
		})
		if err != nil {
			return res, fmt.Errorf("creating ingredient %q: %w", f.Name, err)
		}
		res.count(n)
	}

	c.invalidate(ctx)
	c.logger.InfoContext(ctx, "loaded ingredients", "created", res.Created, "skipped", res.Skipped)
	return res, nil
}

func (r *LoadResult) count(inserted int64) {
	if inserted > 0 {
		r.Created++
	} else {
		r.Skipped++
	}
}
