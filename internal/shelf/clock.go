package shelf

import (
	"time"

	"github.com/google/uuid"
)

// Clock abstracts time retrieval so store and service logic is deterministic in tests.
type Clock interface {
	Now() time.Time
}

// RealClock returns the current time truncated to milliseconds, the
// resolution timestamps are persisted at.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now().Truncate(time.Millisecond) }

// IDGenerator abstracts collection ID generation so tests are deterministic.
type IDGenerator interface {
	New() string
}

// UUIDGenerator produces random UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) New() string { return uuid.New().String() }
