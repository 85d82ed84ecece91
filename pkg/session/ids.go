// Package session mints session identifiers.
package session

import (
	"crypto/rand"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
)

// ULIDSource generates ULID session identifiers. ULIDs sort by creation
// time, which keeps event stores naturally ordered by session.
type ULIDSource struct {
	mu sync.Mutex
}

// NewULIDSource returns a production ID source.
func NewULIDSource() *ULIDSource {
	return &ULIDSource{}
}

// NewSessionID mints one identifier.
func (s *ULIDSource) NewSessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}

// SequentialSource mints "session-1", "session-2", ... for deterministic
// tests.
type SequentialSource struct {
	n atomic.Int64
}

// NewSessionID mints the next sequential identifier.
func (s *SequentialSource) NewSessionID() string {
	return fmt.Sprintf("session-%d", s.n.Add(1))
}
