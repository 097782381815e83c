package model

import (
	"slices"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const (
	MinNameLength        = 2
	MaxNameLength        = 50
	MaxDescriptionLength = 200
)

// GameCollection is a named, typed set of game IDs.
type GameCollection struct {
	ID          string // UUID, assigned once at creation
	Name        string
	Type        CollectionType
	Description *string // nil when the user gave none
	GameIDs     []int64 // ordered by when each game was added
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Contains reports whether gameID is a member of the collection.
func (c *GameCollection) Contains(gameID int64) bool {
	return slices.Contains(c.GameIDs, gameID)
}

// Clone returns a deep copy of c.
func (c *GameCollection) Clone() *GameCollection {
	cp := *c
	cp.GameIDs = slices.Clone(c.GameIDs)
	if c.Description != nil {
		d := *c.Description
		cp.Description = &d
	}
	return &cp
}

// Touch bumps UpdatedAt to now, never moving it backwards.
func (c *GameCollection) Touch(now time.Time) {
	if now.After(c.UpdatedAt) {
		c.UpdatedAt = now
	}
}

// Membership is one (collection, game) pair.
type Membership struct {
	CollectionID string
	GameID       int64
	AddedAt      time.Time
}

// Game is catalog metadata used to display collection members.
type Game struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Image     string   `json:"image,omitempty"`
	Rating    float64  `json:"rating,omitempty"`
	Platforms []string `json:"platforms,omitempty"`
	Genres    []string `json:"genres,omitempty"`
}

func isNameRune(r rune) bool {
	if r > unicode.MaxASCII {
		return false
	}
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}
	return strings.ContainsRune(" -_'\".,!?()", r)
}

// ValidateName checks a collection name. It returns nil for a valid name,
// otherwise a *ValidationError describing the first rule broken.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "name", Reason: ReasonBlank}
	}
	if strings.TrimSpace(name) != name {
		return &ValidationError{Field: "name", Reason: ReasonSurroundingSpace}
	}
	n := utf8.RuneCountInString(name)
	if n < MinNameLength {
		return &ValidationError{Field: "name", Reason: ReasonTooShort}
	}
	if n > MaxNameLength {
		return &ValidationError{Field: "name", Reason: ReasonTooLong}
	}
	if strings.IndexFunc(name, func(r rune) bool { return !isNameRune(r) }) >= 0 {
		return &ValidationError{Field: "name", Reason: ReasonInvalidCharacters}
	}
	return nil
}

// ValidateDescription accepts nil or any description of at most 200 characters.
func ValidateDescription(desc *string) error {
	if desc == nil {
		return nil
	}
	if utf8.RuneCountInString(*desc) > MaxDescriptionLength {
		return &ValidationError{Field: "description", Reason: ReasonTooLong}
	}
	return nil
}

// ValidateGameID rejects non-positive game IDs.
func ValidateGameID(gameID int64) error {
	if gameID <= 0 {
		return &ValidationError{Field: "gameId", Reason: ReasonNotPositive}
	}
	return nil
}

// Validate checks every invariant of a collection value.
func Validate(c *GameCollection) error {
	if err := ValidateName(c.Name); err != nil {
		return err
	}
	if err := ValidateDescription(c.Description); err != nil {
		return err
	}
	if !c.Type.Valid() {
		return &ValidationError{Field: "type", Reason: ReasonUnknownType}
	}
	if c.CreatedAt.UnixMilli() <= 0 {
		return &ValidationError{Field: "createdAt", Reason: ReasonTimestampNotPositive}
	}
	if c.UpdatedAt.Before(c.CreatedAt) {
		return &ValidationError{Field: "updatedAt", Reason: ReasonBeforeCreated}
	}
	seen := make(map[int64]struct{}, len(c.GameIDs))
	for _, id := range c.GameIDs {
		if err := ValidateGameID(id); err != nil {
			return err
		}
		if _, dup := seen[id]; dup {
			return &ValidationError{Field: "gameIds", Reason: ReasonDuplicate}
		}
		seen[id] = struct{}{}
	}
	return nil
}
