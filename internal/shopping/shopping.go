// Package shopping builds a user's shopping list from the recipes in
// their cart.
package shopping

import (
	"context"
	"fmt"
	"io"

	"github.com/matt-dz/foodgram/internal/database"
)

// Line is one entry of a shopping list: the total amount of an
// ingredient across every recipe in the cart.
type Line struct {
	Name   string
	Amount int64
	Unit   string
}

type Source interface {
	GetShoppingList(ctx context.Context, userID int64) ([]database.GetShoppingListRow, error)
}

type Aggregator struct {
	source Source
}

func NewAggregator(source Source) *Aggregator {
	return &Aggregator{source: source}
}

// Build sums the ingredient lines of every recipe in the cart of userID,
// grouped by ingredient name and unit. Lines are returned in the order
// their ingredient first appears in the cart.
func (a *Aggregator) Build(ctx context.Context, userID int64) ([]Line, error) {
	rows, err := a.source.GetShoppingList(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("getting shopping list: %w", err)
	}

	lines := make([]Line, len(rows))
	for i, row := range rows {
		lines[i] = Line{Name: row.Name, Amount: row.TotalAmount, Unit: row.MeasurementUnit}
	}
	return lines, nil
}

// Render writes one "name - amount unit." row per line.
func Render(w io.Writer, lines []Line) error {
	for _, line := range lines {
		if _, err := fmt.Fprintf(w, "%s - %d %s.\n", line.Name, line.Amount, line.Unit); err != nil {
			return err
		}
	}
	return nil
}
