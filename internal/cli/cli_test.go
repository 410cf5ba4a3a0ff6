package cli

import "testing"

func TestNewRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	if cmd.Use != "foodgram" {
		t.Errorf("expected Use to be 'foodgram', got %s", cmd.Use)
	}
	if cmd.PersistentFlags().Lookup("config") == nil {
		t.Error("expected a persistent config flag")
	}

	for _, name := range []string{"serve", "load-ingredients", "load-tags"} {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected subcommand %s", name)
		}
	}
}

func TestLoadCommandsRequireSource(t *testing.T) {
	for _, name := range []string{"load-ingredients", "load-tags"} {
		t.Run(name, func(t *testing.T) {
			cmd := NewRootCommand()
			cmd.SetArgs([]string{name})
			cmd.SetOut(nopWriter{})
			cmd.SetErr(nopWriter{})
			if err := cmd.Execute(); err == nil {
				t.Error("expected an error without a source argument")
			}
		})
	}
}

func TestFixtureFormat(t *testing.T) {
	tests := []struct {
		source  string
		want    string
		wantErr bool
	}{
		{source: "data/ingredients.csv", want: formatCSV},
		{source: "data/INGREDIENTS.JSON", want: formatJSON},
		{source: "https://example.com/fixtures/tags.json?ref=main", want: formatJSON},
		{source: "https://example.com/fixtures/ingredients.csv", want: formatCSV},
		{source: "data/ingredients.txt", wantErr: true},
		{source: "data/ingredients", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			got, err := fixtureFormat(tt.source)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got format %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
