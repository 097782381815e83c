package model

import "fmt"

// Error types returned by the collection store and the transition coordinator.
// Each carries the structured fields a caller needs to render a specific message;
// match them with errors.As.

// CollectionNotFoundError is returned when no collection has the given ID.
type CollectionNotFoundError struct {
	ID string
}

func (e *CollectionNotFoundError) Error() string {
	return fmt.Sprintf("collection not found: %s", e.ID)
}

// CollectionNameExistsError is returned when another collection already uses
// the name, compared case-insensitively.
type CollectionNameExistsError struct {
	Name string
}

func (e *CollectionNameExistsError) Error() string {
	return fmt.Sprintf("a collection named %q already exists", e.Name)
}

// DefaultCollectionProtectedError is returned when an action would delete or
// rename one of the default collections.
type DefaultCollectionProtectedError struct {
	Type   CollectionType
	Action string
}

func (e *DefaultCollectionProtectedError) Error() string {
	return fmt.Sprintf("cannot %s the default %s collection", e.Action, e.Type.DisplayName())
}

// DuplicateGameError is returned when adding a game a collection already contains.
type DuplicateGameError struct {
	GameID         int64
	CollectionName string
}

func (e *DuplicateGameError) Error() string {
	return fmt.Sprintf("game %d is already in %q", e.GameID, e.CollectionName)
}

// GameNotInCollectionError is returned when removing a game the collection does not contain.
type GameNotInCollectionError struct {
	GameID         int64
	CollectionName string
}

func (e *GameNotInCollectionError) Error() string {
	return fmt.Sprintf("game %d is not in %q", e.GameID, e.CollectionName)
}

// Validation failure reasons.
const (
	ReasonBlank                = "must not be blank"
	ReasonTooShort             = "must be at least 2 characters"
	ReasonTooLong              = "is too long"
	ReasonSurroundingSpace     = "must not start or end with whitespace"
	ReasonInvalidCharacters    = "contains characters that are not allowed"
	ReasonNotPositive          = "must be a positive number"
	ReasonDuplicate            = "contains duplicates"
	ReasonUnknownType          = "is not a known collection type"
	ReasonBeforeCreated        = "must not be before the creation time"
	ReasonImmutable            = "cannot be changed"
	ReasonSameCollection       = "must differ from the source collection"
	ReasonNoNextStatus         = "has no next status"
	ReasonTimestampNotPositive = "must be after the epoch"
)

// ValidationError is returned before any persistence call when input is invalid.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ConstraintError is returned when storage rejected a write on a constraint
// other than name uniqueness, such as a foreign key.
type ConstraintError struct {
	Context string
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("database constraint violated: %s", e.Context)
}

// DatabaseError wraps any other persistence failure.
type DatabaseError struct {
	Op  string
	Err error
}

func (e *DatabaseError) Error() string {
	return fmt.Sprintf("database error during %s: %v", e.Op, e.Err)
}

func (e *DatabaseError) Unwrap() error { return e.Err }

// ConfirmationRequiredError signals that a move needs explicit consent.
// Callers re-issue the move with confirmation skipped once the user agrees.
type ConfirmationRequiredError struct {
	Message string
	GameID  int64
	FromID  string
	ToID    string
}

func (e *ConfirmationRequiredError) Error() string {
	return fmt.Sprintf("confirmation required: %s", e.Message)
}

// UnknownError is the catch-all for failures with no better classification.
type UnknownError struct {
	Message string
	Err     error
}

func (e *UnknownError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *UnknownError) Unwrap() error { return e.Err }
