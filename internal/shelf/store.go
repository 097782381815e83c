package shelf

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"gameshelf/internal/model"
)

// CollectionStore owns persisted collections and their memberships and
// serves reads from a time-boxed in-memory snapshot.
//
// Writes go straight to the Database and take the cache lock only to clear
// the snapshot afterwards. Reads hold the lock across check-and-refresh so
// that concurrent misses share a single reload.
type CollectionStore struct {
	database  Database
	logger    Logger
	clock     Clock
	idgen     IDGenerator
	freshness time.Duration

	mu    sync.Mutex
	cache cacheState
}

// NewCollectionStore creates a store. A non-positive freshness uses DefaultFreshness.
func NewCollectionStore(database Database, logger Logger, clock Clock, idgen IDGenerator, freshness time.Duration) *CollectionStore {
	if freshness <= 0 {
		freshness = DefaultFreshness
	}
	return &CollectionStore{
		database:  database,
		logger:    logger,
		clock:     clock,
		idgen:     idgen,
		freshness: freshness,
	}
}

// Create validates and persists a new collection.
func (s *CollectionStore) Create(ctx context.Context, name string, ctype model.CollectionType, description *string) (*model.GameCollection, error) {
	if err := model.ValidateName(name); err != nil {
		return nil, err
	}
	if err := model.ValidateDescription(description); err != nil {
		return nil, err
	}
	if !ctype.Valid() {
		return nil, &model.ValidationError{Field: "type", Reason: model.ReasonUnknownType}
	}

	existing, err := s.database.FindCollectionByName(ctx, name)
	if err != nil {
		return nil, translate("checking collection name", err)
	}
	if existing != nil {
		return nil, &model.CollectionNameExistsError{Name: name}
	}

	now := s.clock.Now()
	c := &model.GameCollection{
		ID:          s.idgen.New(),
		Name:        name,
		Type:        ctype,
		Description: description,
		GameIDs:     []int64{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := model.Validate(c); err != nil {
		return nil, err
	}

	if err := s.database.InsertCollection(ctx, c); err != nil {
		// Two concurrent creates with the same name both pass the lookup above;
		// the storage unique constraint decides the loser.
		if isConstraint(err, ConstraintUnique) {
			return nil, &model.CollectionNameExistsError{Name: name}
		}
		return nil, translate("creating collection", err)
	}

	s.invalidate()
	s.logger.Info("collection created", "id", c.ID, "name", c.Name, "type", c.Type)
	return c.Clone(), nil
}

// GetAll returns every collection with its members populated, oldest first.
// A cached snapshot younger than the freshness window is served unless
// forceRefresh is set.
func (s *CollectionStore) GetAll(ctx context.Context, forceRefresh bool) ([]*model.GameCollection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	if !forceRefresh && s.cache.freshCollections(now, s.freshness) {
		return cloneCollections(s.cache.collections), nil
	}

	collections, err := s.loadCollections(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.collections = collections
	s.cache.collectionsAt = now
	s.logger.Debug("collection cache refreshed", "count", len(collections))
	return cloneCollections(collections), nil
}

func (s *CollectionStore) loadCollections(ctx context.Context) ([]*model.GameCollection, error) {
	collections, err := s.database.ListCollections(ctx)
	if err != nil {
		return nil, translate("listing collections", err)
	}
	for _, c := range collections {
		ids, err := s.database.ListGameIDs(ctx, c.ID)
		if err != nil {
			return nil, translate("listing collection games", err)
		}
		if ids == nil {
			ids = []int64{}
		}
		c.GameIDs = ids
	}
	return collections, nil
}

// GetByID reads a single collection from storage.
func (s *CollectionStore) GetByID(ctx context.Context, id string) (*model.GameCollection, error) {
	c, err := s.database.FindCollectionByID(ctx, id)
	if err != nil {
		return nil, translate("finding collection", err)
	}
	if c == nil {
		return nil, &model.CollectionNotFoundError{ID: id}
	}
	return c, nil
}

// Update persists a new name and description for an existing collection.
// Type and membership cannot be changed through Update.
func (s *CollectionStore) Update(ctx context.Context, c *model.GameCollection) (*model.GameCollection, error) {
	if c == nil {
		return nil, &model.ValidationError{Field: "collection", Reason: model.ReasonBlank}
	}

	persisted, err := s.GetByID(ctx, c.ID)
	if err != nil {
		return nil, err
	}

	if c.Type != persisted.Type {
		if persisted.Type.IsDefault() {
			return nil, &model.DefaultCollectionProtectedError{Type: persisted.Type, Action: "change the type of"}
		}
		return nil, &model.ValidationError{Field: "type", Reason: model.ReasonImmutable}
	}

	if persisted.Type.IsDefault() && c.Name != persisted.Name {
		return nil, &model.DefaultCollectionProtectedError{Type: persisted.Type, Action: "rename"}
	}

	updated := persisted.Clone()
	updated.Name = c.Name
	updated.Description = c.Description
	updated.Touch(s.clock.Now())
	if err := model.Validate(updated); err != nil {
		return nil, err
	}

	if c.Name != persisted.Name {
		other, err := s.database.FindCollectionByName(ctx, c.Name)
		if err != nil {
			return nil, translate("checking collection name", err)
		}
		if other != nil && other.ID != c.ID {
			return nil, &model.CollectionNameExistsError{Name: c.Name}
		}
	}

	found, err := s.database.UpdateCollection(ctx, updated)
	if err != nil {
		if isConstraint(err, ConstraintUnique) {
			return nil, &model.CollectionNameExistsError{Name: c.Name}
		}
		return nil, translate("updating collection", err)
	}
	if !found {
		return nil, &model.CollectionNotFoundError{ID: c.ID}
	}

	s.invalidate()
	s.logger.Info("collection updated", "id", updated.ID, "name", updated.Name)
	return updated, nil
}

// Delete removes a custom collection and all of its memberships.
func (s *CollectionStore) Delete(ctx context.Context, id string) error {
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c.Type.IsDefault() {
		return &model.DefaultCollectionProtectedError{Type: c.Type, Action: "delete"}
	}

	found, err := s.database.DeleteCollection(ctx, id)
	if err != nil {
		return translate("deleting collection", err)
	}
	if !found {
		return &model.CollectionNotFoundError{ID: id}
	}

	s.invalidate()
	s.logger.Info("collection deleted", "id", id, "name", c.Name)
	return nil
}

// AddGame adds a game to a collection.
func (s *CollectionStore) AddGame(ctx context.Context, collectionID string, gameID int64) error {
	if err := model.ValidateGameID(gameID); err != nil {
		return err
	}
	c, err := s.GetByID(ctx, collectionID)
	if err != nil {
		return err
	}
	if c.Contains(gameID) {
		return &model.DuplicateGameError{GameID: gameID, CollectionName: c.Name}
	}

	c.Touch(s.clock.Now())
	if err := s.database.AddGame(ctx, collectionID, gameID, c.UpdatedAt); err != nil {
		if isConstraint(err, ConstraintPrimaryKey, ConstraintUnique) {
			return &model.DuplicateGameError{GameID: gameID, CollectionName: c.Name}
		}
		return translate("adding game", err)
	}

	s.invalidate()
	s.logger.Info("game added", "collection", c.Name, "game_id", gameID)
	return nil
}

// Memberships returns when each game joined the collection, in the order added.
func (s *CollectionStore) Memberships(ctx context.Context, collectionID string) ([]model.Membership, error) {
	if _, err := s.GetByID(ctx, collectionID); err != nil {
		return nil, err
	}
	memberships, err := s.database.ListMemberships(ctx, collectionID)
	if err != nil {
		return nil, translate("listing memberships", err)
	}
	return memberships, nil
}

// RemoveGame removes a game from a collection.
func (s *CollectionStore) RemoveGame(ctx context.Context, collectionID string, gameID int64) error {
	if err := model.ValidateGameID(gameID); err != nil {
		return err
	}
	c, err := s.GetByID(ctx, collectionID)
	if err != nil {
		return err
	}
	if !c.Contains(gameID) {
		return &model.GameNotInCollectionError{GameID: gameID, CollectionName: c.Name}
	}

	c.Touch(s.clock.Now())
	removed, err := s.database.RemoveGame(ctx, collectionID, gameID, c.UpdatedAt)
	if err != nil {
		return translate("removing game", err)
	}
	if !removed {
		return &model.GameNotInCollectionError{GameID: gameID, CollectionName: c.Name}
	}

	s.invalidate()
	s.logger.Info("game removed", "collection", c.Name, "game_id", gameID)
	return nil
}

// MoveOutcome reports where a game ended up after MoveGame.
type MoveOutcome int

const (
	// MoveFailed means nothing changed: the game is still in (or back in) the source.
	MoveFailed MoveOutcome = iota
	// Moved means the game left the source and is now in the destination.
	Moved
	// MoveRollbackFailed means the game left the source, the destination
	// rejected it, and re-adding it to the source also failed. The game is in neither.
	MoveRollbackFailed
)

func (o MoveOutcome) String() string {
	switch o {
	case Moved:
		return "moved"
	case MoveRollbackFailed:
		return "rollback failed"
	default:
		return "failed"
	}
}

// MoveResult is the outcome of a move. RollbackErr is set only for MoveRollbackFailed.
type MoveResult struct {
	Outcome     MoveOutcome
	RollbackErr error
}

// MoveGame removes a game from one collection and adds it to another. If the
// add fails, the game is re-added to the source and the add error is returned.
func (s *CollectionStore) MoveGame(ctx context.Context, gameID int64, fromID, toID string) (MoveResult, error) {
	if fromID == toID {
		return MoveResult{Outcome: MoveFailed}, &model.ValidationError{Field: "toCollectionId", Reason: model.ReasonSameCollection}
	}

	if err := s.RemoveGame(ctx, fromID, gameID); err != nil {
		return MoveResult{Outcome: MoveFailed}, err
	}

	if err := s.AddGame(ctx, toID, gameID); err != nil {
		if rbErr := s.AddGame(ctx, fromID, gameID); rbErr != nil {
			s.logger.Error("move rollback failed", "game_id", gameID, "from", fromID, "to", toID, "error", rbErr)
			return MoveResult{Outcome: MoveRollbackFailed, RollbackErr: rbErr}, err
		}
		s.logger.Warn("move rolled back", "game_id", gameID, "from", fromID, "to", toID, "error", err)
		return MoveResult{Outcome: MoveFailed}, err
	}

	return MoveResult{Outcome: Moved}, nil
}

// GameCounts returns the number of games per collection ID, cached like GetAll.
func (s *CollectionStore) GameCounts(ctx context.Context) (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	if s.cache.freshCounts(now, s.freshness) {
		return cloneCounts(s.cache.counts), nil
	}

	counts, err := s.database.CountGames(ctx)
	if err != nil {
		return nil, translate("counting games", err)
	}
	if counts == nil {
		counts = map[string]int{}
	}

	s.cache.counts = counts
	s.cache.countsAt = now
	return cloneCounts(counts), nil
}

// FindByType returns the collections of the given type, oldest first.
func (s *CollectionStore) FindByType(ctx context.Context, ctype model.CollectionType) ([]*model.GameCollection, error) {
	all, err := s.GetAll(ctx, false)
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(all, func(c *model.GameCollection) bool {
		return c.Type != ctype
	}), nil
}

// CollectionsContaining returns every collection that holds the game.
func (s *CollectionStore) CollectionsContaining(ctx context.Context, gameID int64) ([]*model.GameCollection, error) {
	if err := model.ValidateGameID(gameID); err != nil {
		return nil, err
	}
	all, err := s.GetAll(ctx, false)
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(all, func(c *model.GameCollection) bool {
		return !c.Contains(gameID)
	}), nil
}

// invalidate drops the cached snapshot. Called after every successful write.
func (s *CollectionStore) invalidate() {
	s.mu.Lock()
	s.cache.clear()
	s.mu.Unlock()
	s.logger.Debug("collection cache invalidated")
}

// isConstraint reports whether err is a storage constraint violation of one of the kinds.
func isConstraint(err error, kinds ...ConstraintKind) bool {
	var cv *ConstraintViolation
	if !errors.As(err, &cv) {
		return false
	}
	return slices.Contains(kinds, cv.Kind)
}

// translate maps a persistence failure to the store's error taxonomy. Callers
// handle the constraint kinds that carry domain meaning before falling back here.
func translate(op string, err error) error {
	var cv *ConstraintViolation
	if errors.As(err, &cv) {
		return &model.ConstraintError{Context: fmt.Sprintf("%s: %s", op, cv.Kind)}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &model.UnknownError{Message: op, Err: err}
	}
	return &model.DatabaseError{Op: op, Err: err}
}
