package shelf

import (
	"context"
	"fmt"

	"gameshelf/internal/model"
)

// Confirmation describes whether a move needs the user's consent.
type Confirmation struct {
	RequiresConfirmation bool
	Message              string
}

// TransitionCoordinator moves games between collections, gating moves that
// change a game's status on explicit confirmation. It never writes to storage
// itself; every change goes through the CollectionStore.
type TransitionCoordinator struct {
	store  *CollectionStore
	logger Logger
}

func NewTransitionCoordinator(store *CollectionStore, logger Logger) *TransitionCoordinator {
	return &TransitionCoordinator{store: store, logger: logger}
}

// ConfirmationFor loads both collections and consults the transition table.
func (c *TransitionCoordinator) ConfirmationFor(ctx context.Context, gameID int64, fromID, toID string) (Confirmation, error) {
	from, err := c.store.GetByID(ctx, fromID)
	if err != nil {
		return Confirmation{}, err
	}
	to, err := c.store.GetByID(ctx, toID)
	if err != nil {
		return Confirmation{}, err
	}
	return confirmationBetween(from, to), nil
}

func confirmationBetween(from, to *model.GameCollection) Confirmation {
	rule := model.Transition(from.Type, to.Type)
	msg := rule.Message
	if msg == "" {
		msg = fmt.Sprintf("Move game from %s to %s?", from.Name, to.Name)
	}
	return Confirmation{RequiresConfirmation: rule.RequiresConfirmation, Message: msg}
}

// Move moves a game between collections. Unless skipConfirmation is set, a
// move that needs consent fails with *model.ConfirmationRequiredError and
// changes nothing; callers re-issue it with skipConfirmation once the user agrees.
func (c *TransitionCoordinator) Move(ctx context.Context, gameID int64, fromID, toID string, skipConfirmation bool) (MoveResult, error) {
	if !skipConfirmation {
		conf, err := c.ConfirmationFor(ctx, gameID, fromID, toID)
		if err != nil {
			return MoveResult{Outcome: MoveFailed}, err
		}
		if conf.RequiresConfirmation {
			c.logger.Debug("move needs confirmation", "game_id", gameID, "from", fromID, "to", toID)
			return MoveResult{Outcome: MoveFailed}, &model.ConfirmationRequiredError{
				Message: conf.Message,
				GameID:  gameID,
				FromID:  fromID,
				ToID:    toID,
			}
		}
	}

	result, err := c.store.MoveGame(ctx, gameID, fromID, toID)
	if err != nil {
		return result, err
	}
	c.logger.Info("game moved", "game_id", gameID, "from", fromID, "to", toID)
	return result, nil
}

// MoveToNext moves a game from its current collection to the oldest collection
// of the next status type. The move always asks for confirmation.
func (c *TransitionCoordinator) MoveToNext(ctx context.Context, gameID int64, currentID string) (MoveResult, error) {
	current, err := c.store.GetByID(ctx, currentID)
	if err != nil {
		return MoveResult{Outcome: MoveFailed}, err
	}

	nextType, ok := model.NextStatus(current.Type)
	if !ok {
		return MoveResult{Outcome: MoveFailed}, &model.ValidationError{Field: "collectionType", Reason: model.ReasonNoNextStatus}
	}

	candidates, err := c.store.FindByType(ctx, nextType)
	if err != nil {
		return MoveResult{Outcome: MoveFailed}, err
	}
	if len(candidates) == 0 {
		return MoveResult{Outcome: MoveFailed}, &model.CollectionNotFoundError{ID: string(nextType)}
	}

	return c.Move(ctx, gameID, currentID, candidates[0].ID, false)
}
