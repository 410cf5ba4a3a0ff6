package shopping

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/matt-dz/foodgram/internal/database"
)

func TestBuild(t *testing.T) {
	ctrl := gomock.NewController(t)
	q := database.NewMockQuerier(ctrl)
	q.EXPECT().GetShoppingList(gomock.Any(), int64(1)).Return([]database.GetShoppingListRow{
		{Name: "flour", MeasurementUnit: "g", TotalAmount: 300},
		{Name: "egg", MeasurementUnit: "pcs", TotalAmount: 4},
	}, nil)

	got, err := NewAggregator(q).Build(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []Line{{Name: "flour", Amount: 300, Unit: "g"}, {Name: "egg", Amount: 4, Unit: "pcs"}}
	if len(got) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestBuild_EmptyCart(t *testing.T) {
	ctrl := gomock.NewController(t)
	q := database.NewMockQuerier(ctrl)
	q.EXPECT().GetShoppingList(gomock.Any(), int64(1)).Return(nil, nil)

	got, err := NewAggregator(q).Build(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no lines, got %v", got)
	}

	var buf bytes.Buffer
	if err := Render(&buf, got); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected empty document, got %q", buf.String())
	}
}

func TestBuild_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	q := database.NewMockQuerier(ctrl)
	storeErr := errors.New("boom")
	q.EXPECT().GetShoppingList(gomock.Any(), gomock.Any()).Return(nil, storeErr)

	if _, err := NewAggregator(q).Build(context.Background(), 1); !errors.Is(err, storeErr) {
		t.Errorf("expected wrapped store error, got %v", err)
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name  string
		lines []Line
		want  string
	}{
		{
			name:  "single line",
			lines: []Line{{Name: "flour", Amount: 300, Unit: "g"}},
			want:  "flour - 300 g.\n",
		},
		{
			name: "same name different units stay separate",
			lines: []Line{
				{Name: "sugar", Amount: 100, Unit: "g"},
				{Name: "sugar", Amount: 2, Unit: "tbsp"},
			},
			want: "sugar - 100 g.\nsugar - 2 tbsp.\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Render(&buf, tt.lines); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, buf.String())
			}
		})
	}
}
