package shelf

import (
	"context"

	"gameshelf/internal/model"
)

// GameCatalog provides game metadata for display. Collection membership is
// never validated against it: a collection may hold IDs the catalog does not know.
type GameCatalog interface {
	Games(ctx context.Context) ([]model.Game, error)
}
