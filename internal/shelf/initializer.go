package shelf

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gameshelf/internal/model"
)

// InitState is the in-memory state of the Initializer.
type InitState int

const (
	Uninitialized InitState = iota
	Initialized
)

func (s InitState) String() string {
	if s == Initialized {
		return "initialized"
	}
	return "uninitialized"
}

// InitResult reports what a run of the Initializer did.
type InitResult struct {
	WasAlreadyInitialized bool
	Created               []*model.GameCollection
	Elapsed               time.Duration
}

// Initializer makes sure the default collections exist. Runs are serialized
// by mu so concurrent cold-start callers cannot both create defaults.
type Initializer struct {
	store  *CollectionStore
	logger Logger
	clock  Clock

	mu    sync.Mutex
	state InitState
}

func NewInitializer(store *CollectionStore, logger Logger, clock Clock) *Initializer {
	return &Initializer{store: store, logger: logger, clock: clock}
}

// State returns the current state.
func (i *Initializer) State() InitState {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.state
}

// InitializeOnAppStart creates any missing default collections. Once a run
// has succeeded, later calls return immediately without touching storage.
func (i *Initializer) InitializeOnAppStart(ctx context.Context) (*InitResult, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.state == Initialized {
		return &InitResult{WasAlreadyInitialized: true, Created: []*model.GameCollection{}}, nil
	}
	return i.run(ctx)
}

// ForceReinitialize clears the state and runs the default check again.
// It is meant for recovery and tests, not for normal startup.
func (i *Initializer) ForceReinitialize(ctx context.Context) (*InitResult, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.state = Uninitialized
	i.logger.Info("forcing reinitialization")
	return i.run(ctx)
}

// run must be called with mu held.
func (i *Initializer) run(ctx context.Context) (*InitResult, error) {
	start := i.clock.Now()
	created := []*model.GameCollection{}

	// A forced run must see collections created or deleted since the last read.
	if _, err := i.store.GetAll(ctx, true); err != nil {
		return nil, fmt.Errorf("loading collections: %w", err)
	}

	for _, t := range model.DefaultTypes() {
		existing, err := i.store.FindByType(ctx, t)
		if err != nil {
			return nil, fmt.Errorf("checking for %s collection: %w", t, err)
		}
		if len(existing) > 0 {
			continue
		}

		desc := t.Description()
		c, err := i.store.Create(ctx, t.DisplayName(), t, &desc)
		if err != nil {
			return nil, fmt.Errorf("creating %s collection: %w", t, err)
		}
		created = append(created, c)
		i.logger.Info("default collection created", "type", t, "id", c.ID)
	}

	i.state = Initialized
	elapsed := i.clock.Now().Sub(start)
	i.logger.Debug("initialization complete", "created", len(created), "elapsed", elapsed)
	return &InitResult{Created: created, Elapsed: elapsed}, nil
}
