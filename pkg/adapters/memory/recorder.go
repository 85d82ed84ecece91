package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sjtrotter/dashbuddy/pkg/domain"
)

// ErrClickFailed is reported by InvokeClick when FailClicks is set.
var ErrClickFailed = errors.New("click target not found")

// RecordedEvent is one LogEvent captured by the Recorder.
type RecordedEvent struct {
	SessionID  string
	Event      domain.EventType
	Payload    map[string]any
	OccurredAt time.Time
}

// Recorder implements ports.EffectExecutor by remembering every call.
// It exists for tests and for dry runs of captured snapshot streams.
type Recorder struct {
	mu sync.Mutex

	Events        []RecordedEvent
	Conversations []string
	Artifacts     []string
	Clicks        []*domain.Node
	DistanceOn    int
	DistanceOff   int
	SessionEnds   []string

	// FailClicks makes InvokeClick report failure, to exercise the
	// retry-on-next-snapshot path.
	FailClicks bool
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) LogEvent(ctx context.Context, sessionID string, event domain.EventType, payload map[string]any, occurredAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, RecordedEvent{
		SessionID: sessionID, Event: event, Payload: payload, OccurredAt: occurredAt,
	})
	return nil
}

func (r *Recorder) UpdateConversation(ctx context.Context, text, persona string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Conversations = append(r.Conversations, text)
	return nil
}

func (r *Recorder) CaptureArtifact(ctx context.Context, label string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Artifacts = append(r.Artifacts, label)
	return nil
}

func (r *Recorder) StartDistanceTracking(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.DistanceOn++
	return nil
}

func (r *Recorder) StopDistanceTracking(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.DistanceOff++
	return nil
}

func (r *Recorder) InvokeClick(ctx context.Context, target *domain.Node) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailClicks {
		return ErrClickFailed
	}
	r.Clicks = append(r.Clicks, target)
	return nil
}

func (r *Recorder) EndSession(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.SessionEnds = append(r.SessionEnds, sessionID)
	return nil
}

// EventTypes returns the recorded event types in order.
func (r *Recorder) EventTypes() []domain.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.EventType, 0, len(r.Events))
	for _, e := range r.Events {
		out = append(out, e.Event)
	}
	return out
}
