package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestAppendCtx(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, nil)

	base := AppendCtx(context.Background(), slog.String("request_id", "01J"))
	first := AppendCtx(base, slog.Int64("user_id", 1))
	second := AppendCtx(base, slog.Int64("user_id", 2))

	logger.InfoContext(first, "first")
	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("failed to decode record: %v", err)
	}
	if record["request_id"] != "01J" {
		t.Errorf("expected request_id 01J, got %v", record["request_id"])
	}
	if record["user_id"] != float64(1) {
		t.Errorf("expected user_id 1, got %v", record["user_id"])
	}

	buf.Reset()
	logger.With(slog.String("component", "test")).InfoContext(second, "second")
	record = nil
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("failed to decode record: %v", err)
	}
	if record["user_id"] != float64(2) {
		t.Errorf("expected user_id 2, got %v", record["user_id"])
	}
	if record["component"] != "test" {
		t.Errorf("expected component test, got %v", record["component"])
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "INFO", want: slog.LevelInfo},
		{in: "", want: slog.LevelInfo},
		{in: "warn", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q, got nil", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
