// Package runner hosts the dispatch loop that connects a snapshot source,
// the classifier, the state machine, and the host-side effect executor.
//
// The loop is single-threaded on purpose: snapshots and timer fires are
// serialized through one goroutine, so reducers never observe a torn state
// and effects execute in the order the machine emitted them.
package runner

import (
	"context"
	"errors"
	"log/slog"

	"github.com/sjtrotter/dashbuddy/internal/classify"
	"github.com/sjtrotter/dashbuddy/internal/machine"
	"github.com/sjtrotter/dashbuddy/internal/observability"
	"github.com/sjtrotter/dashbuddy/pkg/domain"
	"github.com/sjtrotter/dashbuddy/pkg/ports"
)

// Options wires the collaborators of a Runner. Classifier, Machine and
// Executor are required; Store, Metrics and Logger are optional.
type Options struct {
	Classifier *classify.Registry
	Machine    *machine.Machine
	Executor   ports.EffectExecutor
	Store      ports.StateStore
	Slot       string
	Clock      ports.Clock
	Metrics    *observability.Metrics
	Logger     *slog.Logger
}

// Runner consumes snapshots, steps the machine, and dispatches effects.
// It owns the single live State value and the pending timer set.
type Runner struct {
	classifier *classify.Registry
	machine    *machine.Machine
	executor   ports.EffectExecutor
	store      ports.StateStore
	slot       string
	clock      ports.Clock
	metrics    *observability.Metrics
	logger     *slog.Logger

	state  domain.State
	timers *timerSet
}

// New builds a Runner. The initial state is Initializing; Run recovers the
// persisted session identity before consuming snapshots.
func New(opts Options) *Runner {
	r := &Runner{
		classifier: opts.Classifier,
		machine:    opts.Machine,
		executor:   opts.Executor,
		store:      opts.Store,
		slot:       opts.Slot,
		clock:      opts.Clock,
		metrics:    opts.Metrics,
		logger:     opts.Logger,
		timers:     newTimerSet(),
	}
	if r.slot == "" {
		r.slot = "active"
	}
	if r.clock == nil {
		r.clock = ports.SystemClock
	}
	if r.logger == nil {
		r.logger = slog.New(slog.DiscardHandler)
	}
	return r
}

// State returns the currently held state. Only meaningful between Run
// iterations in tests; Run mutates it from its own goroutine.
func (r *Runner) State() domain.State {
	return r.state
}

// Run recovers persisted state, then processes snapshots and timer fires
// until the source closes or ctx ends. Returns nil on a clean drain.
func (r *Runner) Run(ctx context.Context, source ports.SnapshotSource) error {
	defer r.timers.Stop()

	r.state = machine.Initial(r.recoverSessionID(ctx))

	snapshots, err := source.Snapshots(ctx)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case snap, ok := <-snapshots:
			if !ok {
				return nil
			}
			r.handleSnapshot(ctx, snap)

		case key := <-r.timers.fires:
			// A fire raced a state change; the new state never owned
			// this key, so it is dropped rather than delivered.
			if key.State != r.state.Kind {
				continue
			}
			r.apply(ctx, r.machine.StepTimeout(r.state, key.Tag))
		}
	}
}

// HandleSnapshot classifies and applies one snapshot. Exposed for hosts
// that own their own event loop and feed trees directly.
func (r *Runner) HandleSnapshot(ctx context.Context, root *domain.Node) domain.ScreenInfo {
	return r.handleSnapshot(ctx, root)
}

func (r *Runner) handleSnapshot(ctx context.Context, root *domain.Node) domain.ScreenInfo {
	info := r.classifier.Identify(root)
	r.metrics.ObserveClassification(info.Screen)
	if info.Screen == domain.ScreenDeliveryCompleted && info.Receipt != nil && info.Receipt.Breakdown == nil {
		r.metrics.ObserveDiscardedParse()
	}
	r.apply(ctx, r.machine.Step(r.state, info))
	return info
}

// apply commits a transition: swaps the held state, cancels timers owned
// by a departed state, executes effects in order, and persists the result.
func (r *Runner) apply(ctx context.Context, tr domain.Transition) {
	prev := r.state
	r.state = tr.Next

	if prev.Kind != tr.Next.Kind {
		r.timers.CancelState(prev.Kind)
		r.metrics.ObserveTransition(prev.Kind, tr.Next.Kind)
	}

	for _, eff := range tr.Effects {
		r.execute(ctx, eff)
	}

	if len(tr.Effects) > 0 || prev.Kind != tr.Next.Kind {
		r.persist(ctx)
	}
}

// execute carries out one effect. Effect failures are logged and counted,
// never propagated: the machine has already moved on, and every phase that
// depends on an effect retries off the next snapshot.
func (r *Runner) execute(ctx context.Context, eff domain.Effect) {
	var err error
	switch eff.Kind {
	case domain.EffectScheduleTimeout:
		r.timers.Schedule(timerKey{State: r.state.Kind, Tag: eff.Tag}, eff.Delay)
		return
	case domain.EffectLogEvent:
		err = r.executor.LogEvent(ctx, eff.SessionID, eff.Event, eff.Payload, r.clock.Now())
	case domain.EffectUpdateConversation:
		err = r.executor.UpdateConversation(ctx, eff.Text, eff.Persona)
	case domain.EffectCaptureArtifact:
		err = r.executor.CaptureArtifact(ctx, eff.Label)
	case domain.EffectStartDistance:
		err = r.executor.StartDistanceTracking(ctx)
	case domain.EffectStopDistance:
		err = r.executor.StopDistanceTracking(ctx)
	case domain.EffectInvokeClick:
		err = r.executor.InvokeClick(ctx, eff.Target)
	case domain.EffectEndSession:
		err = r.executor.EndSession(ctx, eff.SessionID)
	default:
		r.logger.Warn("unknown effect dropped", "kind", eff.Kind)
		return
	}
	if err != nil {
		r.metrics.ObserveEffectError()
		r.logger.Error("effect failed", "kind", eff.Kind, "err", err)
	}
}

func (r *Runner) recoverSessionID(ctx context.Context) string {
	if r.store == nil {
		return ""
	}
	st, err := r.store.Load(ctx, r.slot)
	if err != nil {
		if !errors.Is(err, domain.ErrSessionNotFound) {
			r.logger.Error("state recovery failed", "slot", r.slot, "err", err)
		}
		return ""
	}
	if st.SessionID != "" {
		r.logger.Info("recovered session", "session", st.SessionID, "state", st.Kind)
	}
	return st.SessionID
}

func (r *Runner) persist(ctx context.Context) {
	if r.store == nil {
		return
	}
	if err := r.store.Save(ctx, r.slot, r.state); err != nil {
		r.logger.Error("state persist failed", "slot", r.slot, "err", err)
	}
}
