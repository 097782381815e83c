package testutil

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"gameshelf/internal/database"
	"gameshelf/internal/model"
	"gameshelf/internal/shelf"
)

// NewTestDatabase creates a new in-memory SQLite database with schema applied.
// The database is automatically closed when the test completes.
func NewTestDatabase(t *testing.T) *database.SQLiteDatabase {
	t.Helper()

	sqlDB, err := database.OpenConnection(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	if _, err := sqlDB.Exec(database.Schema); err != nil {
		sqlDB.Close()
		t.Fatalf("failed to apply schema: %v", err)
	}

	db := database.NewSQLiteDatabaseFromDB(sqlDB)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// ErrInjected is returned by FaultyDatabase for operations set to fail.
var ErrInjected = errors.New("injected failure")

// CountingDatabase wraps a shelf.Database, counting the reads the store's
// cache is supposed to absorb.
type CountingDatabase struct {
	shelf.Database

	lists  atomic.Int64
	counts atomic.Int64
}

func NewCountingDatabase(inner shelf.Database) *CountingDatabase {
	return &CountingDatabase{Database: inner}
}

func (d *CountingDatabase) ListCollections(ctx context.Context) ([]*model.GameCollection, error) {
	d.lists.Add(1)
	return d.Database.ListCollections(ctx)
}

func (d *CountingDatabase) CountGames(ctx context.Context) (map[string]int, error) {
	d.counts.Add(1)
	return d.Database.CountGames(ctx)
}

// ListCalls returns how many times ListCollections reached the wrapped database.
func (d *CountingDatabase) ListCalls() int { return int(d.lists.Load()) }

// CountCalls returns how many times CountGames reached the wrapped database.
func (d *CountingDatabase) CountCalls() int { return int(d.counts.Load()) }

// FaultyDatabase wraps a shelf.Database and fails AddGame for chosen
// collections. Failures can be toggled while a test runs.
type FaultyDatabase struct {
	shelf.Database

	mu       sync.Mutex
	failAdds map[string]int // collection ID -> remaining failures, -1 for always
}

func NewFaultyDatabase(inner shelf.Database) *FaultyDatabase {
	return &FaultyDatabase{Database: inner, failAdds: make(map[string]int)}
}

// FailAddGame makes AddGame into collectionID fail the next n times, or always if n < 0.
func (d *FaultyDatabase) FailAddGame(collectionID string, n int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failAdds[collectionID] = n
}

func (d *FaultyDatabase) AddGame(ctx context.Context, collectionID string, gameID int64, at time.Time) error {
	d.mu.Lock()
	remaining, ok := d.failAdds[collectionID]
	if ok && remaining != 0 {
		if remaining > 0 {
			d.failAdds[collectionID] = remaining - 1
		}
		d.mu.Unlock()
		return ErrInjected
	}
	d.mu.Unlock()
	return d.Database.AddGame(ctx, collectionID, gameID, at)
}
