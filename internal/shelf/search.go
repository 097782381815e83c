package shelf

import (
	"context"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"gameshelf/internal/model"
)

// Search returns the collections whose names fuzzily match query, best match
// first. An empty query returns every collection sorted by type and name.
func (s *CollectionStore) Search(ctx context.Context, query string) ([]*model.GameCollection, error) {
	all, err := s.GetAll(ctx, false)
	if err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	if query == "" {
		SortCollections(all, SortOptions{ByType: true, ByName: true})
		return all, nil
	}

	names := make([]string, len(all))
	for i, c := range all {
		names[i] = c.Name
	}

	ranks := fuzzy.RankFindNormalizedFold(query, names)
	sort.Stable(ranks)

	result := make([]*model.GameCollection, len(ranks))
	for i, r := range ranks {
		result[i] = all[r.OriginalIndex]
	}
	return result, nil
}
