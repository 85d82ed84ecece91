// Package host is the production effect executor: events land in the
// SQLite event log, everything without a durable backend is logged
// structurally. The capture-side effects (clicks, artifacts, distance
// tracking) are handed to an optional device hook; without one they are
// logged and acknowledged, which keeps captured-stream replays runnable
// on a workstation.
package host

import (
	"context"
	"log/slog"
	"time"

	"github.com/sjtrotter/dashbuddy/pkg/adapters/sqlite"
	"github.com/sjtrotter/dashbuddy/pkg/domain"
)

// Device abstracts the capture-side collaborator that can actually touch
// the observed app.
type Device interface {
	Click(ctx context.Context, target *domain.Node) error
	Capture(ctx context.Context, label string) error
	SetDistanceTracking(ctx context.Context, on bool) error
}

// Executor implements ports.EffectExecutor.
type Executor struct {
	events *sqlite.EventLog
	device Device
	logger *slog.Logger
}

// New builds an executor. events may be nil (no durable log); device may
// be nil (log-only capture effects).
func New(events *sqlite.EventLog, device Device, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Executor{events: events, device: device, logger: logger}
}

func (e *Executor) LogEvent(ctx context.Context, sessionID string, event domain.EventType, payload map[string]any, occurredAt time.Time) error {
	e.logger.Info("session event", "event", event, "session", sessionID)
	if e.events == nil {
		return nil
	}
	return e.events.Append(ctx, sessionID, string(event), payload, occurredAt)
}

func (e *Executor) UpdateConversation(ctx context.Context, text, persona string) error {
	e.logger.Info("conversation", "persona", persona, "text", text)
	return nil
}

func (e *Executor) CaptureArtifact(ctx context.Context, label string) error {
	if e.device != nil {
		return e.device.Capture(ctx, label)
	}
	e.logger.Debug("capture artifact", "label", label)
	return nil
}

func (e *Executor) StartDistanceTracking(ctx context.Context) error {
	if e.device != nil {
		return e.device.SetDistanceTracking(ctx, true)
	}
	e.logger.Debug("distance tracking on")
	return nil
}

func (e *Executor) StopDistanceTracking(ctx context.Context) error {
	if e.device != nil {
		return e.device.SetDistanceTracking(ctx, false)
	}
	e.logger.Debug("distance tracking off")
	return nil
}

func (e *Executor) InvokeClick(ctx context.Context, target *domain.Node) error {
	if e.device != nil {
		return e.device.Click(ctx, target)
	}
	e.logger.Debug("click requested", "kind", target.Kind, "id", target.ResourceID)
	return nil
}

func (e *Executor) EndSession(ctx context.Context, sessionID string) error {
	e.logger.Info("session ended", "session", sessionID)
	return nil
}
