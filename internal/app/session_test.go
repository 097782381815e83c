package app

import (
	"errors"
	"testing"
	"time"
)

func TestNewSession(t *testing.T) {
	now := time.Date(2024, 6, 15, 14, 30, 45, 7*int(time.Millisecond), time.UTC)

	s := NewSession("move", now)

	if s.ID != "20240615T143045.007Z" {
		t.Errorf("ID = %q, want %q", s.ID, "20240615T143045.007Z")
	}
	if s.Command != "move" {
		t.Errorf("Command = %q, want %q", s.Command, "move")
	}
	if s.Status != "success" || s.Failed() {
		t.Errorf("new session status = %q, want success", s.Status)
	}
}

func TestSession_Record(t *testing.T) {
	s := NewSession("add", time.Now())

	if err := s.Record(nil); err != nil {
		t.Fatalf("Record(nil) = %v", err)
	}
	if s.Failed() {
		t.Fatal("session failed after a nil error")
	}

	boom := errors.New("boom")
	if err := s.Record(boom); err != boom {
		t.Errorf("Record() = %v, want the same error", err)
	}
	if !s.Failed() {
		t.Error("session not failed after an error")
	}

	s.Record(nil)
	if !s.Failed() {
		t.Error("a later success cleared the failure")
	}
}
