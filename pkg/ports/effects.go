package ports

import (
	"context"
	"time"

	"github.com/sjtrotter/dashbuddy/pkg/domain"
)

// EffectExecutor is implemented by the host to carry out emitted effects.
// One call per effect; execution is fire-and-forget from the machine's
// perspective and must never synchronously feed a result back into it. Any
// resulting state change arrives as a new snapshot or a scheduled timeout.
//
// Timeout scheduling is deliberately absent: the dispatch loop owns timers
// so that keyed cancellation stays next to the state that keyed them.
type EffectExecutor interface {
	// LogEvent appends one session event to the event record.
	LogEvent(ctx context.Context, sessionID string, event domain.EventType, payload map[string]any, occurredAt time.Time) error

	// UpdateConversation replaces the companion conversation message.
	UpdateConversation(ctx context.Context, text, persona string) error

	// CaptureArtifact saves a labeled capture of the current screen.
	CaptureArtifact(ctx context.Context, label string) error

	// StartDistanceTracking begins GPS distance accumulation.
	StartDistanceTracking(ctx context.Context) error

	// StopDistanceTracking ends GPS distance accumulation.
	StopDistanceTracking(ctx context.Context) error

	// InvokeClick performs a click on the given captured node. A stale or
	// missing target is reported as an error and retried by the owning
	// phase on the next snapshot; it must never advance the machine.
	InvokeClick(ctx context.Context, target *domain.Node) error

	// EndSession finalizes the session on the collaborator side.
	EndSession(ctx context.Context, sessionID string) error
}
