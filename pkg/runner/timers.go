package runner

import (
	"sync"
	"time"

	"github.com/sjtrotter/dashbuddy/pkg/domain"
)

// timerKey identifies a pending timeout. Keying by state kind as well as
// tag means a timer scheduled by one state can never fire into another:
// leaving the state cancels its timers, and the loop double-checks the
// key against the held state on delivery.
type timerKey struct {
	State domain.StateKind
	Tag   domain.TimeoutTag
}

// timerSet owns the pending timers of the dispatch loop. Scheduling a key
// that is already pending replaces the prior timer.
type timerSet struct {
	mu     sync.Mutex
	timers map[timerKey]*time.Timer
	fires  chan timerKey
}

func newTimerSet() *timerSet {
	return &timerSet{
		timers: make(map[timerKey]*time.Timer),
		fires:  make(chan timerKey, 16),
	}
}

// Schedule arms (or re-arms) the timer for key.
func (t *timerSet) Schedule(key timerKey, d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if prior, ok := t.timers[key]; ok {
		prior.Stop()
	}
	t.timers[key] = time.AfterFunc(d, func() {
		t.mu.Lock()
		delete(t.timers, key)
		t.mu.Unlock()

		select {
		case t.fires <- key:
		default:
			// The loop is far behind; dropping is safe because every
			// timeout-driven phase retries off the next snapshot.
		}
	})
}

// CancelState drops every pending timer keyed to the given state.
func (t *timerSet) CancelState(kind domain.StateKind) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for key, timer := range t.timers {
		if key.State == kind {
			timer.Stop()
			delete(t.timers, key)
		}
	}
}

// Stop drops every pending timer.
func (t *timerSet) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for key, timer := range t.timers {
		timer.Stop()
		delete(t.timers, key)
	}
}
