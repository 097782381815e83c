package database

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"

	"gameshelf/internal/database/migrations"
	"gameshelf/internal/database/sqlc"
	"gameshelf/internal/model"
	"gameshelf/internal/shelf"
)

// Schema is the current schema produced by applying every migration.
//
//go:embed sqlc/schema.sql
var Schema string

// SQLiteDatabase implements shelf.Database using SQLite.
type SQLiteDatabase struct {
	db      *sql.DB
	queries *sqlc.Queries
	path    string
}

// NewSQLiteDatabase opens a SQLite database.
// path can be a file path or ":memory:" for an in-memory database.
func NewSQLiteDatabase(path string) (*SQLiteDatabase, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	return &SQLiteDatabase{
		db:      db,
		queries: sqlc.New(db),
		path:    path,
	}, nil
}

// NewSQLiteDatabaseFromDB wraps an existing database connection.
// The caller is responsible for ensuring the connection is properly configured.
func NewSQLiteDatabaseFromDB(db *sql.DB) *SQLiteDatabase {
	return &SQLiteDatabase{
		db:      db,
		queries: sqlc.New(db),
	}
}

// OpenConnection opens a SQLite connection pool with foreign keys enforced on
// every connection. An in-memory database is limited to one connection, since
// each new connection to ":memory:" would see its own empty database.
func OpenConnection(path string) (*sql.DB, error) {
	dsn := path + "?_foreign_keys=on&_busy_timeout=5000"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// Collection operations

func (s *SQLiteDatabase) InsertCollection(ctx context.Context, c *model.GameCollection) error {
	err := s.queries.InsertCollection(ctx, sqlc.InsertCollectionParams{
		ID:          c.ID,
		Name:        c.Name,
		Type:        string(c.Type),
		Description: nullString(c.Description),
		CreatedAt:   c.CreatedAt.UnixMilli(),
		UpdatedAt:   c.UpdatedAt.UnixMilli(),
	})
	if err != nil {
		return fmt.Errorf("inserting collection: %w", classify(err))
	}
	return nil
}

func (s *SQLiteDatabase) FindCollectionByID(ctx context.Context, id string) (*model.GameCollection, error) {
	row, err := s.queries.GetCollectionByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding collection by id: %w", err)
	}

	c, err := toCollection(row)
	if err != nil {
		return nil, err
	}

	ids, err := s.ListGameIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	c.GameIDs = ids
	return c, nil
}

func (s *SQLiteDatabase) FindCollectionByName(ctx context.Context, name string) (*model.GameCollection, error) {
	row, err := s.queries.GetCollectionByName(ctx, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding collection by name: %w", err)
	}
	return toCollection(row)
}

func (s *SQLiteDatabase) ListCollections(ctx context.Context) ([]*model.GameCollection, error) {
	rows, err := s.queries.ListCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing collections: %w", err)
	}

	result := make([]*model.GameCollection, 0, len(rows))
	for _, row := range rows {
		c, err := toCollection(row)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, nil
}

func (s *SQLiteDatabase) UpdateCollection(ctx context.Context, c *model.GameCollection) (bool, error) {
	n, err := s.queries.UpdateCollection(ctx, sqlc.UpdateCollectionParams{
		Name:        c.Name,
		Description: nullString(c.Description),
		UpdatedAt:   c.UpdatedAt.UnixMilli(),
		ID:          c.ID,
	})
	if err != nil {
		return false, fmt.Errorf("updating collection: %w", classify(err))
	}
	return n > 0, nil
}

func (s *SQLiteDatabase) DeleteCollection(ctx context.Context, id string) (bool, error) {
	n, err := s.queries.DeleteCollectionByID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("deleting collection: %w", classify(err))
	}
	return n > 0, nil
}

// Membership operations

func (s *SQLiteDatabase) ListGameIDs(ctx context.Context, collectionID string) ([]int64, error) {
	ids, err := s.queries.ListGameIDsByCollection(ctx, collectionID)
	if err != nil {
		return nil, fmt.Errorf("listing game ids: %w", err)
	}
	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}

func (s *SQLiteDatabase) ListMemberships(ctx context.Context, collectionID string) ([]model.Membership, error) {
	rows, err := s.queries.ListMembershipsByCollection(ctx, collectionID)
	if err != nil {
		return nil, fmt.Errorf("listing memberships: %w", err)
	}
	memberships := make([]model.Membership, 0, len(rows))
	for _, row := range rows {
		memberships = append(memberships, model.Membership{
			CollectionID: row.CollectionID,
			GameID:       row.GameID,
			AddedAt:      time.UnixMilli(row.AddedAt).UTC(),
		})
	}
	return memberships, nil
}

func (s *SQLiteDatabase) AddGame(ctx context.Context, collectionID string, gameID int64, at time.Time) error {
	return s.withTx(ctx, func(q *sqlc.Queries) error {
		err := q.InsertMembership(ctx, sqlc.InsertMembershipParams{
			CollectionID: collectionID,
			GameID:       gameID,
			AddedAt:      at.UnixMilli(),
		})
		if err != nil {
			return fmt.Errorf("inserting membership: %w", classify(err))
		}
		if _, err := q.TouchCollection(ctx, sqlc.TouchCollectionParams{
			UpdatedAt: at.UnixMilli(),
			ID:        collectionID,
		}); err != nil {
			return fmt.Errorf("touching collection: %w", classify(err))
		}
		return nil
	})
}

func (s *SQLiteDatabase) RemoveGame(ctx context.Context, collectionID string, gameID int64, at time.Time) (bool, error) {
	removed := false
	err := s.withTx(ctx, func(q *sqlc.Queries) error {
		n, err := q.DeleteMembership(ctx, sqlc.DeleteMembershipParams{
			CollectionID: collectionID,
			GameID:       gameID,
		})
		if err != nil {
			return fmt.Errorf("deleting membership: %w", classify(err))
		}
		if n == 0 {
			return nil
		}
		removed = true
		if _, err := q.TouchCollection(ctx, sqlc.TouchCollectionParams{
			UpdatedAt: at.UnixMilli(),
			ID:        collectionID,
		}); err != nil {
			return fmt.Errorf("touching collection: %w", classify(err))
		}
		return nil
	})
	return removed, err
}

func (s *SQLiteDatabase) CountGames(ctx context.Context) (map[string]int, error) {
	rows, err := s.queries.CountGamesByCollection(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting games: %w", err)
	}
	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		counts[r.ID] = int(r.GameCount)
	}
	return counts, nil
}

// withTx runs fn inside a transaction, committing only if fn succeeds.
func (s *SQLiteDatabase) withTx(ctx context.Context, fn func(q *sqlc.Queries) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(s.queries.WithTx(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Path returns the database file path (or ":memory:" for in-memory databases).
func (s *SQLiteDatabase) Path() string {
	return s.path
}

// Migrate applies any pending schema migrations.
func (s *SQLiteDatabase) Migrate() error {
	return migrations.MigrateUp(s.db)
}

// CheckMigrations verifies the database schema is up-to-date.
func (s *SQLiteDatabase) CheckMigrations() error {
	return migrations.CheckDBMigrationStatus(s.db)
}

// Close closes the database connection.
func (s *SQLiteDatabase) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func toCollection(row sqlc.Collection) (*model.GameCollection, error) {
	ctype, err := model.ParseCollectionType(row.Type)
	if err != nil {
		return nil, fmt.Errorf("collection %s: %w", row.ID, err)
	}
	c := &model.GameCollection{
		ID:        row.ID,
		Name:      row.Name,
		Type:      ctype,
		GameIDs:   []int64{},
		CreatedAt: time.UnixMilli(row.CreatedAt).UTC(),
		UpdatedAt: time.UnixMilli(row.UpdatedAt).UTC(),
	}
	if row.Description.Valid {
		d := row.Description.String
		c.Description = &d
	}
	return c, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// classify wraps SQLite constraint failures in *shelf.ConstraintViolation so the
// store can map them to domain errors. Other errors are returned unchanged.
func classify(err error) error {
	var serr sqlite3.Error
	if !errors.As(err, &serr) || serr.Code != sqlite3.ErrConstraint {
		return err
	}

	kind := shelf.ConstraintOther
	switch serr.ExtendedCode {
	case sqlite3.ErrConstraintUnique:
		kind = shelf.ConstraintUnique
	case sqlite3.ErrConstraintPrimaryKey:
		kind = shelf.ConstraintPrimaryKey
	case sqlite3.ErrConstraintForeignKey:
		kind = shelf.ConstraintForeignKey
	default:
		// Older SQLite builds report some violations with only the primary code.
		if strings.Contains(serr.Error(), "FOREIGN KEY") {
			kind = shelf.ConstraintForeignKey
		}
	}
	return &shelf.ConstraintViolation{Kind: kind, Err: err}
}

// Compile-time check that SQLiteDatabase implements shelf.Database
var _ shelf.Database = (*SQLiteDatabase)(nil)
