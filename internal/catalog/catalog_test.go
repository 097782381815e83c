package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"gameshelf/internal/config"
	"gameshelf/internal/model"
)

func TestMemoryCatalog_Games(t *testing.T) {
	c := NewMemoryCatalog(model.Game{ID: 3, Name: "Celeste"}, model.Game{ID: 1, Name: "Hades"})
	c.Put(model.Game{ID: 2, Name: "Outer Wilds"})
	c.Put(model.Game{ID: 1, Name: "Hades II"})

	games, err := c.Games(context.Background())
	if err != nil {
		t.Fatalf("Games() error = %v", err)
	}

	want := []string{"Hades II", "Outer Wilds", "Celeste"}
	if len(games) != len(want) {
		t.Fatalf("Games() returned %d games, want %d", len(games), len(want))
	}
	for i, g := range games {
		if g.Name != want[i] {
			t.Errorf("games[%d].Name = %q, want %q", i, g.Name, want[i])
		}
	}
}

func TestMemoryCatalog_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewMemoryCatalog().Games(ctx); err == nil {
		t.Error("Games() expected error for canceled context")
	}
}

func TestFileCatalog(t *testing.T) {
	t.Run("missing file is empty", func(t *testing.T) {
		c := NewFileCatalog(filepath.Join(t.TempDir(), "games.json"))
		games, err := c.Games(context.Background())
		if err != nil {
			t.Fatalf("Games() error = %v", err)
		}
		if len(games) != 0 {
			t.Errorf("Games() returned %d games, want 0", len(games))
		}
	})

	t.Run("reads written file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "games.json")
		in := []model.Game{
			{ID: 7, Name: "Tunic", Rating: 4.5, Platforms: []string{"PC", "Switch"}},
			{ID: 9, Name: "Inside"},
		}
		if err := WriteFile(path, in); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}

		games, err := NewFileCatalog(path).Games(context.Background())
		if err != nil {
			t.Fatalf("Games() error = %v", err)
		}
		if len(games) != 2 || games[0].Name != "Tunic" || len(games[0].Platforms) != 2 {
			t.Errorf("Games() = %+v, want %+v", games, in)
		}
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "games.json")
		if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := NewFileCatalog(path).Games(context.Background()); err == nil {
			t.Error("Games() expected error for malformed file")
		}
	})
}

func TestNewCatalogFromConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.CatalogConfig
		wantErr bool
	}{
		{name: "memory", cfg: config.CatalogConfig{Type: "memory"}},
		{name: "file", cfg: config.CatalogConfig{Type: "file", Path: "/tmp/games.json"}},
		{name: "file without path", cfg: config.CatalogConfig{Type: "file"}, wantErr: true},
		{name: "unknown", cfg: config.CatalogConfig{Type: "igdb"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCatalogFromConfig(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewCatalogFromConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && c == nil {
				t.Error("NewCatalogFromConfig() returned nil catalog")
			}
		})
	}
}

func TestLookup(t *testing.T) {
	games := []model.Game{{ID: 1, Name: "Hades"}, {ID: 2, Name: "Celeste"}}

	got := Lookup(games, []int64{2, 5, 1})

	if len(got) != 3 {
		t.Fatalf("Lookup() returned %d games, want 3", len(got))
	}
	if got[0].Name != "Celeste" || got[2].Name != "Hades" {
		t.Errorf("Lookup() order = %+v", got)
	}
	if got[1].ID != 5 || got[1].Name != "" {
		t.Errorf("unknown game = %+v, want placeholder with ID 5", got[1])
	}
}
