package shelf

import (
	"context"
	"fmt"
	"time"

	"gameshelf/internal/model"
)

// Database is the persistence boundary for collections and their memberships.
// Implementations must report constraint failures as *ConstraintViolation so the
// store can tell a duplicate name apart from a dangling reference.
type Database interface {
	// Collection operations

	// InsertCollection persists a new collection row. GameIDs are ignored.
	InsertCollection(ctx context.Context, c *model.GameCollection) error

	// FindCollectionByID returns the collection with its GameIDs populated,
	// or nil if there is none.
	FindCollectionByID(ctx context.Context, id string) (*model.GameCollection, error)

	// FindCollectionByName matches names case-insensitively. GameIDs are not populated.
	// Returns nil if there is no match.
	FindCollectionByName(ctx context.Context, name string) (*model.GameCollection, error)

	// ListCollections returns every collection ordered by creation time.
	// GameIDs are not populated.
	ListCollections(ctx context.Context) ([]*model.GameCollection, error)

	// UpdateCollection writes name, description and updated_at. It returns false
	// if no row has the collection's ID.
	UpdateCollection(ctx context.Context, c *model.GameCollection) (bool, error)

	// DeleteCollection removes a collection and, by cascade, its memberships.
	// It returns false if no row had the ID.
	DeleteCollection(ctx context.Context, id string) (bool, error)

	// Membership operations

	// ListGameIDs returns the games in a collection in the order they were added.
	ListGameIDs(ctx context.Context, collectionID string) ([]int64, error)

	// ListMemberships returns the collection's memberships with their added times,
	// in the same order as ListGameIDs.
	ListMemberships(ctx context.Context, collectionID string) ([]model.Membership, error)

	// AddGame inserts a membership and bumps the collection's updated_at in one transaction.
	AddGame(ctx context.Context, collectionID string, gameID int64, at time.Time) error

	// RemoveGame deletes a membership and bumps the collection's updated_at in one
	// transaction. It returns false if the pair did not exist.
	RemoveGame(ctx context.Context, collectionID string, gameID int64, at time.Time) (bool, error)

	// CountGames returns the number of games in every collection, including empty ones.
	CountGames(ctx context.Context) (map[string]int, error)

	// Close closes the database connection.
	Close() error
}

// ConstraintKind classifies a storage constraint failure.
type ConstraintKind int

const (
	ConstraintUnique ConstraintKind = iota + 1
	ConstraintPrimaryKey
	ConstraintForeignKey
	ConstraintOther
)

func (k ConstraintKind) String() string {
	switch k {
	case ConstraintUnique:
		return "unique"
	case ConstraintPrimaryKey:
		return "primary key"
	case ConstraintForeignKey:
		return "foreign key"
	default:
		return "other"
	}
}

// ConstraintViolation is returned by a Database when storage rejected a write.
type ConstraintViolation struct {
	Kind ConstraintKind
	Err  error
}

func (e *ConstraintViolation) Error() string {
	return fmt.Sprintf("%s constraint violated: %v", e.Kind, e.Err)
}

func (e *ConstraintViolation) Unwrap() error { return e.Err }
