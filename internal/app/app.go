package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gameshelf/internal/catalog"
	"gameshelf/internal/config"
	"gameshelf/internal/database"
	"gameshelf/internal/model"
	"gameshelf/internal/shelf"
)

// ShelfApp is the application layer between the CLI and the shelf package.
// It constructs all dependencies from config, makes sure the default
// collections exist, and manages the DB lifecycle on Close.
type ShelfApp struct {
	cfg         *config.Config
	db          *database.SQLiteDatabase
	catalog     shelf.GameCatalog
	logger      shelf.Logger
	clock       shelf.Clock
	store       *shelf.CollectionStore
	coordinator *shelf.TransitionCoordinator
	initializer *shelf.Initializer
	session     *Session
	logFile     *os.File
}

// CollectionSummary is a collection together with its game count.
type CollectionSummary struct {
	Collection *model.GameCollection
	GameCount  int
}

// CollectionDetail is a collection with its games resolved through the catalog.
type CollectionDetail struct {
	Collection *model.GameCollection
	Entries    []CollectionEntry
}

// CollectionEntry is one game in a collection and when it was added.
type CollectionEntry struct {
	Game    model.Game
	AddedAt time.Time
}

// NewShelfApp creates a fully wired ShelfApp from the given config.
// command identifies the CLI command being run (e.g. "list", "move").
// The caller must call Close when done.
func NewShelfApp(ctx context.Context, cfg *config.Config, command string) (*ShelfApp, error) {
	clock := shelf.RealClock{}
	session := NewSession(command, clock.Now())

	freshness, err := cfg.Cache.FreshnessWindow()
	if err != nil {
		return nil, err
	}

	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	gc, err := catalog.NewCatalogFromConfig(cfg.Catalog)
	if err != nil {
		return nil, fmt.Errorf("creating catalog: %w", err)
	}

	db, err := database.NewDatabaseFromConfig(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("creating database: %w", err)
	}

	if err := db.CheckMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database schema out of date: %w", err)
	}

	sl, logFile, err := newLogger(cfg.LogDir, level, session.ID)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	logger := &slogAdapter{l: sl.With("command", command)}

	logger.Debug("database opened", "path", db.Path())

	store := shelf.NewCollectionStore(db, logger, clock, shelf.UUIDGenerator{}, freshness)
	a := &ShelfApp{
		cfg:         cfg,
		db:          db,
		catalog:     gc,
		logger:      logger,
		clock:       clock,
		store:       store,
		coordinator: shelf.NewTransitionCoordinator(store, logger),
		initializer: shelf.NewInitializer(store, logger, clock),
		session:     session,
		logFile:     logFile,
	}

	if _, err := a.initializer.InitializeOnAppStart(ctx); err != nil {
		a.session.Record(err)
		a.Close()
		return nil, fmt.Errorf("creating default collections: %w", err)
	}

	return a, nil
}

// Session returns the session of this invocation.
func (a *ShelfApp) Session() *Session {
	return a.session
}

// CreateCollection creates a custom collection. An empty description is stored as none.
func (a *ShelfApp) CreateCollection(ctx context.Context, name, description string) (*model.GameCollection, error) {
	c, err := a.store.Create(ctx, name, model.Custom, optional(description))
	return c, a.session.Record(err)
}

// ListCollections returns every collection with its game count, in the requested order.
func (a *ShelfApp) ListCollections(ctx context.Context, opts shelf.SortOptions) ([]CollectionSummary, error) {
	collections, err := a.store.Sorted(ctx, opts)
	if err != nil {
		return nil, a.session.Record(err)
	}
	counts, err := a.store.GameCounts(ctx)
	if err != nil {
		return nil, a.session.Record(err)
	}

	out := make([]CollectionSummary, len(collections))
	for i, c := range collections {
		out[i] = CollectionSummary{Collection: c, GameCount: counts[c.ID]}
	}
	return out, nil
}

// ShowCollection returns a collection and the catalog entries for its games.
func (a *ShelfApp) ShowCollection(ctx context.Context, id string) (*CollectionDetail, error) {
	c, err := a.store.GetByID(ctx, id)
	if err != nil {
		return nil, a.session.Record(err)
	}

	memberships, err := a.store.Memberships(ctx, id)
	if err != nil {
		return nil, a.session.Record(err)
	}

	games, err := a.catalog.Games(ctx)
	if err != nil {
		// Show the collection with bare IDs.
		a.logger.Warn("catalog unavailable", "error", err)
		games = nil
	}

	ids := make([]int64, len(memberships))
	for i, m := range memberships {
		ids[i] = m.GameID
	}
	resolved := catalog.Lookup(games, ids)
	entries := make([]CollectionEntry, len(memberships))
	for i, m := range memberships {
		entries[i] = CollectionEntry{Game: resolved[i], AddedAt: m.AddedAt}
	}
	return &CollectionDetail{Collection: c, Entries: entries}, nil
}

// RenameCollection changes the name of a custom collection.
func (a *ShelfApp) RenameCollection(ctx context.Context, id, name string) (*model.GameCollection, error) {
	c, err := a.store.GetByID(ctx, id)
	if err != nil {
		return nil, a.session.Record(err)
	}
	c.Name = name
	updated, err := a.store.Update(ctx, c)
	return updated, a.session.Record(err)
}

// DescribeCollection replaces a collection's description. An empty description clears it.
func (a *ShelfApp) DescribeCollection(ctx context.Context, id, description string) (*model.GameCollection, error) {
	c, err := a.store.GetByID(ctx, id)
	if err != nil {
		return nil, a.session.Record(err)
	}
	c.Description = optional(description)
	updated, err := a.store.Update(ctx, c)
	return updated, a.session.Record(err)
}

// DeleteCollection deletes a custom collection.
func (a *ShelfApp) DeleteCollection(ctx context.Context, id string) error {
	return a.session.Record(a.store.Delete(ctx, id))
}

// AddGame adds a game to a collection.
func (a *ShelfApp) AddGame(ctx context.Context, collectionID string, gameID int64) error {
	return a.session.Record(a.store.AddGame(ctx, collectionID, gameID))
}

// RemoveGame removes a game from a collection.
func (a *ShelfApp) RemoveGame(ctx context.Context, collectionID string, gameID int64) error {
	return a.session.Record(a.store.RemoveGame(ctx, collectionID, gameID))
}

// MoveGame moves a game between collections. A move that needs consent fails
// with *model.ConfirmationRequiredError unless confirmed is set.
func (a *ShelfApp) MoveGame(ctx context.Context, gameID int64, fromID, toID string, confirmed bool) (shelf.MoveResult, error) {
	res, err := a.coordinator.Move(ctx, gameID, fromID, toID, confirmed)
	return res, a.recordMove(err)
}

// MoveToNext advances a game to the next status collection. The first call
// always fails with *model.ConfirmationRequiredError; the CLI re-issues the
// move it names through MoveGame once the user agrees.
func (a *ShelfApp) MoveToNext(ctx context.Context, gameID int64, currentID string) (shelf.MoveResult, error) {
	res, err := a.coordinator.MoveToNext(ctx, gameID, currentID)
	return res, a.recordMove(err)
}

// recordMove records a move failure. A pending confirmation is not a failure.
func (a *ShelfApp) recordMove(err error) error {
	var cr *model.ConfirmationRequiredError
	if errors.As(err, &cr) {
		return err
	}
	return a.session.Record(err)
}

// Find returns collections whose names fuzzily match query.
func (a *ShelfApp) Find(ctx context.Context, query string) ([]*model.GameCollection, error) {
	cs, err := a.store.Search(ctx, query)
	return cs, a.session.Record(err)
}

// Where returns the collections holding a game.
func (a *ShelfApp) Where(ctx context.Context, gameID int64) ([]*model.GameCollection, error) {
	cs, err := a.store.CollectionsContaining(ctx, gameID)
	return cs, a.session.Record(err)
}

// Reinitialize re-runs the default collection check against storage.
func (a *ShelfApp) Reinitialize(ctx context.Context) (*shelf.InitResult, error) {
	res, err := a.initializer.ForceReinitialize(ctx)
	return res, a.session.Record(err)
}

// Close logs the session outcome and closes all resources.
func (a *ShelfApp) Close() error {
	var firstErr error

	a.logger.Debug("session finished",
		"status", a.session.Status,
		"elapsed", a.clock.Now().Sub(a.session.StartedAt))

	if err := a.db.Close(); err != nil {
		firstErr = fmt.Errorf("closing database: %w", err)
	}

	if a.logFile != nil {
		a.logFile.Close()
	}

	return firstErr
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
