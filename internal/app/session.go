package app

import "time"

// Session tracks a single CLI invocation. Its ID tags every log line the
// invocation writes, and its status is logged when the app is closed.
type Session struct {
	ID        string
	Command   string
	StartedAt time.Time
	Status    string // "success" or "error"
}

// NewSession creates a session for command started at now.
func NewSession(command string, now time.Time) *Session {
	return &Session{
		ID:        now.UTC().Format("20060102T150405.000Z"),
		Command:   command,
		StartedAt: now,
		Status:    "success",
	}
}

// Record marks the session as failed if err is non-nil and returns err unchanged.
func (s *Session) Record(err error) error {
	if err != nil {
		s.Status = "error"
	}
	return err
}

// Failed returns true if any recorded operation failed.
func (s *Session) Failed() bool {
	return s.Status == "error"
}
