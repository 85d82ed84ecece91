package session_test

import (
	"testing"

	"github.com/sjtrotter/dashbuddy/pkg/session"
)

func TestULIDSourceUnique(t *testing.T) {
	src := session.NewULIDSource()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := src.NewSessionID()
		if len(id) != 26 {
			t.Fatalf("unexpected ULID length: %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestSequentialSource(t *testing.T) {
	src := &session.SequentialSource{}
	if got := src.NewSessionID(); got != "session-1" {
		t.Fatalf("got %q", got)
	}
	if got := src.NewSessionID(); got != "session-2" {
		t.Fatalf("got %q", got)
	}
}
