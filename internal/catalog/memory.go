package catalog

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"gameshelf/internal/model"
)

// MemoryCatalog is an in-memory GameCatalog, useful for testing.
// This implementation is safe for concurrent use.
type MemoryCatalog struct {
	mu    sync.RWMutex
	games map[int64]model.Game
}

// NewMemoryCatalog creates a catalog holding the given games.
func NewMemoryCatalog(games ...model.Game) *MemoryCatalog {
	m := &MemoryCatalog{games: make(map[int64]model.Game, len(games))}
	for _, g := range games {
		m.games[g.ID] = g
	}
	return m
}

// Put adds or replaces a game.
func (m *MemoryCatalog) Put(g model.Game) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = g
}

// Games returns every game ordered by ID.
func (m *MemoryCatalog) Games(ctx context.Context) ([]model.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.Game, 0, len(m.games))
	for _, g := range m.games {
		out = append(out, g)
	}
	slices.SortFunc(out, func(a, b model.Game) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}
