package shelf

import (
	"maps"
	"time"

	"gameshelf/internal/model"
)

// DefaultFreshness is how long a cached snapshot is served without re-reading storage.
const DefaultFreshness = 2 * time.Minute

// cacheState is the store's in-memory snapshot. A nil field means absent.
// It is only touched while holding CollectionStore.mu.
type cacheState struct {
	collections   []*model.GameCollection
	collectionsAt time.Time
	counts        map[string]int
	countsAt      time.Time
}

// isFresh reports whether a value cached at the given time may still be served at now.
func isFresh(at, now time.Time, window time.Duration) bool {
	if at.IsZero() || now.Before(at) {
		return false
	}
	return now.Sub(at) < window
}

func (c *cacheState) freshCollections(now time.Time, window time.Duration) bool {
	return c.collections != nil && isFresh(c.collectionsAt, now, window)
}

func (c *cacheState) freshCounts(now time.Time, window time.Duration) bool {
	return c.counts != nil && isFresh(c.countsAt, now, window)
}

func (c *cacheState) clear() {
	*c = cacheState{}
}

func cloneCollections(in []*model.GameCollection) []*model.GameCollection {
	out := make([]*model.GameCollection, len(in))
	for i, c := range in {
		out[i] = c.Clone()
	}
	return out
}

func cloneCounts(in map[string]int) map[string]int {
	return maps.Clone(in)
}
