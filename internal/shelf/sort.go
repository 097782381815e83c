package shelf

import (
	"cmp"
	"context"
	"slices"

	"golang.org/x/text/cases"

	"gameshelf/internal/model"
)

// SortOptions selects the keys Sorted orders by, in the order type, name, game count.
type SortOptions struct {
	ByType      bool
	ByName      bool
	ByGameCount bool
	Descending  bool
}

// Sorted returns GetAll's collections reordered in memory. Ties on the selected
// keys fall back to type sort order, then case-insensitive name.
func (s *CollectionStore) Sorted(ctx context.Context, opts SortOptions) ([]*model.GameCollection, error) {
	all, err := s.GetAll(ctx, false)
	if err != nil {
		return nil, err
	}
	SortCollections(all, opts)
	return all, nil
}

// SortCollections orders collections in place.
func SortCollections(collections []*model.GameCollection, opts SortOptions) {
	fold := cases.Fold()
	keys := make(map[*model.GameCollection]string, len(collections))
	for _, c := range collections {
		keys[c] = fold.String(c.Name)
	}

	dir := 1
	if opts.Descending {
		dir = -1
	}

	slices.SortStableFunc(collections, func(a, b *model.GameCollection) int {
		if opts.ByType {
			if c := cmp.Compare(a.Type.SortOrder(), b.Type.SortOrder()); c != 0 {
				return dir * c
			}
		}
		if opts.ByName {
			if c := cmp.Compare(keys[a], keys[b]); c != 0 {
				return dir * c
			}
		}
		if opts.ByGameCount {
			if c := cmp.Compare(len(a.GameIDs), len(b.GameIDs)); c != 0 {
				return dir * c
			}
		}
		return cmp.Or(
			cmp.Compare(a.Type.SortOrder(), b.Type.SortOrder()),
			cmp.Compare(keys[a], keys[b]),
		)
	})
}
