package ports

import "time"

// Clock abstracts the wall clock so deadline parsing and timeout
// scheduling are testable.
type Clock interface {
	Now() time.Time
}

// SessionIDSource mints opaque session identifiers. IDs must be unique per
// process lifetime; ordering is not required but lexicographic ordering
// (ULID) is convenient for event stores.
type SessionIDSource interface {
	NewSessionID() string
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock is the real wall clock.
var SystemClock Clock = ClockFunc(time.Now)
