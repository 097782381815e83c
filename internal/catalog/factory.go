package catalog

import (
	"fmt"

	"gameshelf/internal/config"
	"gameshelf/internal/model"
	"gameshelf/internal/shelf"
)

// NewCatalogFromConfig creates a GameCatalog based on the catalog config type.
func NewCatalogFromConfig(cfg config.CatalogConfig) (shelf.GameCatalog, error) {
	switch cfg.Type {
	case "memory":
		return NewMemoryCatalog(), nil
	case "file", "":
		if cfg.Path == "" {
			return nil, fmt.Errorf("file catalog requires path to be set")
		}
		return NewFileCatalog(cfg.Path), nil
	default:
		return nil, fmt.Errorf("unknown catalog type: %s", cfg.Type)
	}
}

// Lookup returns the games with the given IDs in the order of ids. IDs the
// catalog does not know are returned as placeholders carrying only the ID.
func Lookup(games []model.Game, ids []int64) []model.Game {
	byID := make(map[int64]model.Game, len(games))
	for _, g := range games {
		byID[g.ID] = g
	}
	out := make([]model.Game, 0, len(ids))
	for _, id := range ids {
		g, ok := byID[id]
		if !ok {
			g = model.Game{ID: id}
		}
		out = append(out, g)
	}
	return out
}
