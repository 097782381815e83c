package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"gameshelf/internal/model"
)

// FileCatalog reads games from a JSON file containing an array of games.
// The file is read on every call so edits are picked up without a restart.
// A missing file is treated as an empty catalog.
type FileCatalog struct {
	path string
}

// NewFileCatalog creates a catalog backed by the file at path.
func NewFileCatalog(path string) *FileCatalog {
	return &FileCatalog{path: path}
}

// Path returns the catalog file path.
func (f *FileCatalog) Path() string {
	return f.path
}

func (f *FileCatalog) Games(ctx context.Context) ([]model.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Game{}, nil
		}
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var games []model.Game
	if err := json.Unmarshal(data, &games); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", f.path, err)
	}
	if games == nil {
		games = []model.Game{}
	}
	return games, nil
}

// WriteFile saves games as a catalog file at path, replacing any existing file.
func WriteFile(path string, games []model.Game) error {
	data, err := json.MarshalIndent(games, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	return nil
}
