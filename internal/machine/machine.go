package machine

import (
	"log/slog"
	"time"

	"github.com/sjtrotter/dashbuddy/internal/evaluate"
	"github.com/sjtrotter/dashbuddy/internal/observability"
	"github.com/sjtrotter/dashbuddy/pkg/domain"
	"github.com/sjtrotter/dashbuddy/pkg/ports"
)

// Delays for the post-delivery receipt choreography.
const (
	stabilizeDelay = 1500 * time.Millisecond
	verifyDelay    = 3 * time.Second
)

// conversationPersona tags companion messages emitted by the machine.
const conversationPersona = "dashbuddy"

// Machine maps (current state, classified snapshot or timeout) to a
// Transition. It is a pure table of reducers and entry factories: the
// machine itself holds no session state; the dispatch loop owns the one
// live State value and passes it in on every call.
type Machine struct {
	ids      ports.SessionIDSource
	clock    ports.Clock
	strategy evaluate.Strategy
	logger   *slog.Logger
	metrics  *observability.Metrics

	handlers map[domain.StateKind]handler
}

type enterFunc func(m *Machine, prev domain.State, in domain.ScreenInfo, recovery bool) domain.Transition
type reduceFunc func(m *Machine, cur domain.State, in domain.ScreenInfo) *domain.Transition
type timeoutFunc func(m *Machine, cur domain.State, tag domain.TimeoutTag) *domain.Transition

// handler bundles the per-state behavior. enter reconstructs the state
// from a snapshot (the entry factory); reduce handles snapshots while the
// state is held, returning nil for "not handled here"; reduceTimeout
// handles fired timers for states that schedule them.
type handler struct {
	enter         enterFunc
	reduce        reduceFunc
	reduceTimeout timeoutFunc
}

// Options configures a Machine.
type Options struct {
	IDs      ports.SessionIDSource
	Clock    ports.Clock
	Strategy evaluate.Strategy
	Logger   *slog.Logger
	Metrics  *observability.Metrics
}

// New builds the machine. Strategy scores offers as they are presented;
// IDs mints session identifiers on the offline-to-waiting transition.
func New(opts Options) *Machine {
	m := &Machine{
		ids:      opts.IDs,
		clock:    opts.Clock,
		strategy: opts.Strategy,
		logger:   opts.Logger,
		metrics:  opts.Metrics,
	}
	if m.clock == nil {
		m.clock = ports.SystemClock
	}
	if m.logger == nil {
		m.logger = slog.New(slog.DiscardHandler)
	}
	m.handlers = map[domain.StateKind]handler{
		domain.StateInitializing:   {reduce: reduceInitializing},
		domain.StateIdleOffline:    {enter: enterIdleOffline, reduce: reduceIdleOffline},
		domain.StateAwaitingOffer:  {enter: enterAwaitingOffer, reduce: reduceAwaitingOffer},
		domain.StateOfferPresented: {enter: enterOfferPresented, reduce: reduceOfferPresented},
		domain.StateOnPickup:       {enter: enterOnPickup, reduce: reduceOnPickup},
		domain.StateOnDelivery:     {enter: enterOnDelivery, reduce: reduceOnDelivery},
		domain.StatePostDelivery:   {enter: enterPostDelivery, reduce: reducePostDelivery, reduceTimeout: timeoutPostDelivery},
		domain.StateDashPaused:     {enter: enterDashPaused, reduce: reduceDashPaused},
		domain.StatePostDash:       {enter: enterPostDash, reduce: reducePostDash},
	}
	return m
}

// Initial returns the state a fresh process starts in. recoveredSessionID
// carries the persisted session identity across a restart, empty when none
// was persisted; the first classified snapshot then reconstructs the full
// state without re-emitting one-shot effects.
func Initial(recoveredSessionID string) domain.State {
	return domain.State{Kind: domain.StateInitializing, SessionID: recoveredSessionID}
}

// Step processes one classified snapshot against the current state.
//
// The contract is closed-world: a reducer claims an input by returning a
// non-nil Transition, and every claimed result is committed, including
// same-kind results that only refresh state data (a later frame filling
// in a store name, a running-pay update). When the reducer declines the
// input, the dispatcher checks it against the structurally unambiguous
// anchor screens and forces a transition when one implies a different
// state. The machine must not stay desynchronized just because the
// capture layer dropped the frame that carried the ordinary transition.
func (m *Machine) Step(cur domain.State, in domain.ScreenInfo) domain.Transition {
	if in.Screen == domain.ScreenUnknown {
		return domain.NoOp(cur)
	}

	h := m.handlers[cur.Kind]
	if h.reduce != nil {
		if tr := safeReduce(m, h.reduce, cur, in); tr != nil {
			m.logTransition(cur, tr.Next, in)
			return *tr
		}
	}

	if healed, ok := m.selfHeal(cur, in); ok {
		m.logger.Warn("forced anchor transition",
			"from", cur.Kind, "to", healed.Next.Kind, "screen", in.Screen)
		m.metrics.ObserveAnchorHeal()
		return healed
	}

	return domain.NoOp(cur)
}

// StepTimeout processes a fired timer. Timers are keyed by (state kind,
// tag); the dispatch loop only delivers timers keyed to the state it still
// holds, so a handler here can trust the tag belongs to cur.
func (m *Machine) StepTimeout(cur domain.State, tag domain.TimeoutTag) domain.Transition {
	h := m.handlers[cur.Kind]
	if h.reduceTimeout == nil {
		return domain.NoOp(cur)
	}
	if tr := h.reduceTimeout(m, cur, tag); tr != nil {
		return *tr
	}
	return domain.NoOp(cur)
}

// safeReduce guards a reducer the way the registry guards a matcher: an
// unexpected panic is contained and treated as "not handled".
func safeReduce(m *Machine, fn reduceFunc, cur domain.State, in domain.ScreenInfo) (tr *domain.Transition) {
	defer func() {
		if rec := recover(); rec != nil {
			m.logger.Error("reducer panic contained", "state", cur.Kind, "screen", in.Screen, "panic", rec)
			tr = nil
		}
	}()
	return fn(m, cur, in)
}

func (m *Machine) logTransition(from, to domain.State, in domain.ScreenInfo) {
	if from.Kind != to.Kind {
		m.logger.Info("state transition",
			"from", from.Kind, "to", to.Kind, "screen", in.Screen, "session", to.SessionID)
	}
}

// anchor screens are considered structurally unambiguous: seeing one is
// sufficient evidence of the state it implies, even without the ordinary
// transition path.
func (m *Machine) selfHeal(cur domain.State, in domain.ScreenInfo) (domain.Transition, bool) {
	switch in.Screen {
	case domain.ScreenIdleMap:
		if cur.Kind != domain.StateIdleOffline {
			return enterIdleOffline(m, cur, in, false), true
		}
	case domain.ScreenWaitingForOffer:
		if cur.Kind != domain.StateAwaitingOffer {
			return enterAwaitingOffer(m, cur, in, false), true
		}
	case domain.ScreenDashSummary:
		if cur.Kind != domain.StatePostDash {
			return enterPostDash(m, cur, in, false), true
		}
	case domain.ScreenOffer:
		// An offer can only be presented to a waiting courier. When the
		// waiting frame was missed, synthesize it first so the session
		// identity and start effects are not lost, then apply the offer.
		if cur.Kind != domain.StateOfferPresented && in.Offer != nil {
			// A receipt still waiting on its verify timer is flushed first;
			// the hijack would otherwise drop the validated breakdown.
			effects := pendingRecordEffects(cur)
			waiting := enterAwaitingOffer(m, cur, domain.Simple(domain.ScreenWaitingForOffer), false)
			offered := enterOfferPresented(m, waiting.Next, in, false)
			effects = append(effects, waiting.Effects...)
			effects = append(effects, offered.Effects...)
			return domain.Transition{
				Next:    offered.Next,
				Effects: effects,
			}, true
		}
	}
	return domain.Transition{}, false
}
