package model

import "fmt"

// CollectionType identifies the kind of a game collection.
// The set is closed: three protected default types plus CUSTOM.
type CollectionType string

const (
	Wishlist         CollectionType = "WISHLIST"
	CurrentlyPlaying CollectionType = "CURRENTLY_PLAYING"
	Completed        CollectionType = "COMPLETED"
	Custom           CollectionType = "CUSTOM"
)

// TypeInfo is the static metadata attached to each collection type.
type TypeInfo struct {
	IsDefault   bool
	DisplayName string
	Description string
	SortOrder   int
}

var typeInfo = map[CollectionType]TypeInfo{
	Wishlist: {
		IsDefault:   true,
		DisplayName: "Wishlist",
		Description: "Games you want to play",
		SortOrder:   0,
	},
	CurrentlyPlaying: {
		IsDefault:   true,
		DisplayName: "Currently Playing",
		Description: "Games you are playing right now",
		SortOrder:   1,
	},
	Completed: {
		IsDefault:   true,
		DisplayName: "Completed",
		Description: "Games you have finished",
		SortOrder:   2,
	},
	Custom: {
		IsDefault:   false,
		DisplayName: "Custom",
		Description: "Your own collection",
		SortOrder:   3,
	},
}

// ParseCollectionType converts a stored or user-supplied string into a CollectionType.
func ParseCollectionType(s string) (CollectionType, error) {
	t := CollectionType(s)
	if _, ok := typeInfo[t]; !ok {
		return "", fmt.Errorf("unknown collection type: %q", s)
	}
	return t, nil
}

// Valid reports whether t is one of the four known types.
func (t CollectionType) Valid() bool {
	_, ok := typeInfo[t]
	return ok
}

// Info returns the metadata for t. Unknown types get the zero TypeInfo
// with a SortOrder after every known type.
func (t CollectionType) Info() TypeInfo {
	info, ok := typeInfo[t]
	if !ok {
		return TypeInfo{DisplayName: string(t), SortOrder: len(typeInfo)}
	}
	return info
}

func (t CollectionType) IsDefault() bool    { return t.Info().IsDefault }
func (t CollectionType) DisplayName() string { return t.Info().DisplayName }
func (t CollectionType) Description() string { return t.Info().Description }
func (t CollectionType) SortOrder() int      { return t.Info().SortOrder }

func (t CollectionType) String() string { return string(t) }

// DefaultTypes returns the protected types in sort order.
func DefaultTypes() []CollectionType {
	return []CollectionType{Wishlist, CurrentlyPlaying, Completed}
}

// nextStatus is the logical progression of a game through the default collections.
var nextStatus = map[CollectionType]CollectionType{
	Wishlist:         CurrentlyPlaying,
	CurrentlyPlaying: Completed,
}

// NextStatus returns the type a game in t logically moves to next.
// COMPLETED and CUSTOM have no next status.
func NextStatus(t CollectionType) (CollectionType, bool) {
	next, ok := nextStatus[t]
	return next, ok
}

// TransitionRule describes whether moving a game between two collection
// types needs explicit consent. An empty Message means the caller should
// build a generic one from the collection names.
type TransitionRule struct {
	RequiresConfirmation bool
	Message              string
}

type transitionKey struct {
	from, to CollectionType
}

// transitions lists every pair of default types. Pairs not listed here
// (anything involving CUSTOM, or a type to itself) never need confirmation.
var transitions = map[transitionKey]TransitionRule{
	{Wishlist, CurrentlyPlaying}:  {true, "Start playing this game? It will move from your wishlist to Currently Playing."},
	{Wishlist, Completed}:         {true, "Mark this game as completed without playing it first?"},
	{CurrentlyPlaying, Completed}: {true, "Mark this game as completed?"},
	{CurrentlyPlaying, Wishlist}:  {true, "Stop playing this game and put it back on your wishlist?"},
	{Completed, CurrentlyPlaying}: {true, "Play this game again? It will move out of Completed."},
	{Completed, Wishlist}:         {true, ""},
}

// Transition returns the rule for moving a game from a collection of type
// from into one of type to.
func Transition(from, to CollectionType) TransitionRule {
	if from == Custom || to == Custom || from == to {
		return TransitionRule{}
	}
	return transitions[transitionKey{from, to}]
}
