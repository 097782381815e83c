package shelf_test

import (
	"context"
	"sync"
	"testing"

	"gameshelf/internal/model"
	"gameshelf/internal/shelf"
	"gameshelf/internal/testutil"
)

func TestInitializer_InitializeOnAppStart(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the defaults once", func(t *testing.T) {
		f := newStoreFixture(t)
		initializer := shelf.NewInitializer(f.store, shelf.NewNopLogger(), f.clock)

		if initializer.State() != shelf.Uninitialized {
			t.Fatalf("State() = %v, want uninitialized", initializer.State())
		}

		res, err := initializer.InitializeOnAppStart(ctx)
		if err != nil {
			t.Fatalf("InitializeOnAppStart() error = %v", err)
		}
		if res.WasAlreadyInitialized || len(res.Created) != 3 {
			t.Fatalf("first run = %+v, want 3 created", res)
		}
		if initializer.State() != shelf.Initialized {
			t.Errorf("State() = %v, want initialized", initializer.State())
		}

		for _, c := range res.Created {
			if c.Name != c.Type.DisplayName() {
				t.Errorf("default %s named %q", c.Type, c.Name)
			}
			if c.Description == nil || *c.Description != c.Type.Description() {
				t.Errorf("default %s description = %v", c.Type, c.Description)
			}
		}

		reads := f.db.ListCalls()
		res, err = initializer.InitializeOnAppStart(ctx)
		if err != nil {
			t.Fatalf("second InitializeOnAppStart() error = %v", err)
		}
		if !res.WasAlreadyInitialized || len(res.Created) != 0 {
			t.Errorf("second run = %+v, want already initialized", res)
		}
		if f.db.ListCalls() != reads {
			t.Error("second run read storage")
		}

		all, _ := f.store.GetAll(ctx, true)
		if len(all) != 3 {
			t.Errorf("collections = %d, want 3", len(all))
		}
	})

	t.Run("fills in only the missing defaults", func(t *testing.T) {
		f := newStoreFixture(t)
		mustCreate(t, f.store, "Wishlist", model.Wishlist)
		mustCreate(t, f.store, "Backlog", model.Custom)

		res, err := shelf.NewInitializer(f.store, shelf.NewNopLogger(), f.clock).InitializeOnAppStart(ctx)
		if err != nil {
			t.Fatalf("InitializeOnAppStart() error = %v", err)
		}
		if len(res.Created) != 2 {
			t.Fatalf("created %d, want 2", len(res.Created))
		}
		for _, c := range res.Created {
			if c.Type == model.Wishlist {
				t.Error("created a second wishlist")
			}
		}
	})

	t.Run("a fresh initializer over populated storage creates nothing", func(t *testing.T) {
		f := newStoreFixture(t)
		if _, err := shelf.NewInitializer(f.store, shelf.NewNopLogger(), f.clock).InitializeOnAppStart(ctx); err != nil {
			t.Fatal(err)
		}

		res, err := shelf.NewInitializer(f.store, shelf.NewNopLogger(), f.clock).InitializeOnAppStart(ctx)
		if err != nil {
			t.Fatalf("InitializeOnAppStart() error = %v", err)
		}
		if res.WasAlreadyInitialized || len(res.Created) != 0 {
			t.Errorf("result = %+v, want a run that created nothing", res)
		}
	})

	t.Run("concurrent cold start creates each default once", func(t *testing.T) {
		f := newStoreFixture(t)
		initializer := shelf.NewInitializer(f.store, shelf.NewNopLogger(), f.clock)

		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			created int
		)
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				res, err := initializer.InitializeOnAppStart(ctx)
				if err != nil {
					t.Errorf("InitializeOnAppStart() error = %v", err)
					return
				}
				mu.Lock()
				created += len(res.Created)
				mu.Unlock()
			}()
		}
		wg.Wait()

		if created != 3 {
			t.Errorf("created across callers = %d, want 3", created)
		}
		for _, ct := range model.DefaultTypes() {
			got, _ := f.store.FindByType(ctx, ct)
			if len(got) != 1 {
				t.Errorf("%s collections = %d, want 1", ct, len(got))
			}
		}
	})

	t.Run("failure leaves the initializer uninitialized", func(t *testing.T) {
		db := testutil.NewTestDatabase(t)
		clock := testutil.FixedClock()
		store := shelf.NewCollectionStore(db, shelf.NewNopLogger(), clock, testutil.NewStubIDGenerator(), 0)
		initializer := shelf.NewInitializer(store, shelf.NewNopLogger(), clock)
		db.Close()

		if _, err := initializer.InitializeOnAppStart(ctx); err == nil {
			t.Fatal("InitializeOnAppStart() expected error")
		}
		if initializer.State() != shelf.Uninitialized {
			t.Errorf("State() = %v, want uninitialized", initializer.State())
		}
	})
}

func TestInitializer_ForceReinitialize(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDatabase(t)
	clock := testutil.FixedClock()
	store := shelf.NewCollectionStore(db, shelf.NewNopLogger(), clock, testutil.NewStubIDGenerator(), 0)
	logger := &recordingLogger{}
	initializer := shelf.NewInitializer(store, logger, clock)

	res, err := initializer.InitializeOnAppStart(ctx)
	if err != nil {
		t.Fatalf("InitializeOnAppStart() error = %v", err)
	}

	// Remove a default behind the store's back, as another process might.
	var completedID string
	for _, c := range res.Created {
		if c.Type == model.Completed {
			completedID = c.ID
		}
	}
	if _, err := db.DeleteCollection(ctx, completedID); err != nil {
		t.Fatalf("DeleteCollection() error = %v", err)
	}

	res, err = initializer.ForceReinitialize(ctx)
	if err != nil {
		t.Fatalf("ForceReinitialize() error = %v", err)
	}
	if res.WasAlreadyInitialized || len(res.Created) != 1 || res.Created[0].Type != model.Completed {
		t.Errorf("ForceReinitialize() = %+v, want Completed recreated", res)
	}
	if initializer.State() != shelf.Initialized {
		t.Errorf("State() = %v, want initialized", initializer.State())
	}

	// Warn and above are copied to stderr.
	if got := logger.levels("forcing reinitialization"); len(got) != 1 || got[0] != "INFO" {
		t.Errorf("forcing reinitialization logged at %v, want [INFO]", got)
	}
	for _, r := range logger.all() {
		if r.level == "WARN" || r.level == "ERROR" {
			t.Errorf("unexpected %s record %q", r.level, r.msg)
		}
	}
}

type logRecord struct {
	level string
	msg   string
}

type recordingLogger struct {
	mu      sync.Mutex
	records []logRecord
}

func (l *recordingLogger) record(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, logRecord{level: level, msg: msg})
}

func (l *recordingLogger) Debug(msg string, _ ...any) { l.record("DEBUG", msg) }
func (l *recordingLogger) Info(msg string, _ ...any)  { l.record("INFO", msg) }
func (l *recordingLogger) Warn(msg string, _ ...any)  { l.record("WARN", msg) }
func (l *recordingLogger) Error(msg string, _ ...any) { l.record("ERROR", msg) }

func (l *recordingLogger) all() []logRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]logRecord(nil), l.records...)
}

// levels returns the level of every record with the message.
func (l *recordingLogger) levels(msg string) []string {
	var out []string
	for _, r := range l.all() {
		if r.msg == msg {
			out = append(out, r.level)
		}
	}
	return out
}
