package error

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestEncodeError(t *testing.T) {
	tests := []struct {
		name       string
		code       ErrorCode
		wantStatus int
	}{
		{name: "not found", code: RecipeNotFound, wantStatus: http.StatusNotFound},
		{name: "conflict is a bad request", code: AlreadyFavorited, wantStatus: http.StatusBadRequest},
		{name: "forbidden", code: RecipeNotOwned, wantStatus: http.StatusForbidden},
		{name: "unauthorized", code: NotAuthenticated, wantStatus: http.StatusUnauthorized},
		{name: "unknown code falls back to 500", code: UnknownError, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			if err := EncodeError(w, tt.code, "message", "req-1"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("expected application/json, got %q", ct)
			}

			var body Error
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("decoding body: %v", err)
			}
			if body.Code != tt.code || body.ErrorID != "req-1" || body.Status != tt.wantStatus {
				t.Errorf("unexpected body %+v", body)
			}
		})
	}
}

func TestEncodeValidationError(t *testing.T) {
	w := httptest.NewRecorder()
	fields := map[string][]string{"cooking_time": {"must be at least 1"}}
	if err := EncodeValidationError(w, fields, "req-2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}

	var body Error
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if got := body.Fields["cooking_time"]; len(got) != 1 || got[0] != "must be at least 1" {
		t.Errorf("expected cooking_time message, got %v", body.Fields)
	}
}
