package dashbuddy

import (
	"fmt"
	"log/slog"

	"github.com/sjtrotter/dashbuddy/internal/classify"
	"github.com/sjtrotter/dashbuddy/internal/config"
	"github.com/sjtrotter/dashbuddy/internal/evaluate"
	"github.com/sjtrotter/dashbuddy/internal/machine"
	"github.com/sjtrotter/dashbuddy/internal/observability"
	"github.com/sjtrotter/dashbuddy/pkg/domain"
	"github.com/sjtrotter/dashbuddy/pkg/ports"
	"github.com/sjtrotter/dashbuddy/pkg/session"
)

// Version of the library.
const Version = "0.3.0"

// App is the high-level entry point: a classifier, a scoring strategy, and
// the state machine assembled behind one surface. Hosts that want the full
// dispatch loop use pkg/runner; App serves hosts that feed inputs
// themselves and interpret the returned transitions.
type App struct {
	registry *classify.Registry
	strategy evaluate.Strategy
	machine  *machine.Machine

	clock   ports.Clock
	ids     ports.SessionIDSource
	logger  *slog.Logger
	metrics *observability.Metrics
}

// Option configures an App.
type Option func(*App)

// WithLogger sets the structured logger for the whole pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) { a.logger = logger }
}

// WithClock injects the time source used for deadline parsing and event
// timestamps. Tests pin it.
func WithClock(clock ports.Clock) Option {
	return func(a *App) { a.clock = clock }
}

// WithStrategy replaces the offer scoring strategy.
func WithStrategy(s evaluate.Strategy) Option {
	return func(a *App) { a.strategy = s }
}

// WithSessionIDs replaces the session identifier source.
func WithSessionIDs(ids ports.SessionIDSource) Option {
	return func(a *App) { a.ids = ids }
}

// WithMetrics attaches a metric set.
func WithMetrics(m *observability.Metrics) Option {
	return func(a *App) { a.metrics = m }
}

// New assembles an App. Defaults: system clock, ULID session identifiers,
// the weighted strategy prioritizing pay per mile, and a discarded logger.
func New(opts ...Option) *App {
	a := &App{
		clock:  ports.SystemClock,
		ids:    session.NewULIDSource(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.strategy == nil {
		a.strategy = &evaluate.Weighted{Prioritized: evaluate.MetricPayPerMile}
	}

	a.registry = classify.NewDefaultRegistry(a.clock, classify.WithLogger(a.logger))
	a.machine = machine.New(machine.Options{
		IDs:      a.ids,
		Clock:    a.clock,
		Strategy: a.strategy,
		Logger:   a.logger,
		Metrics:  a.metrics,
	})
	return a
}

// Registry exposes the assembled classifier.
func (a *App) Registry() *classify.Registry { return a.registry }

// Machine exposes the assembled state machine.
func (a *App) Machine() *machine.Machine { return a.machine }

// Strategy exposes the assembled scoring strategy.
func (a *App) Strategy() evaluate.Strategy { return a.strategy }

// Identify classifies one captured tree.
func (a *App) Identify(root *domain.Node) domain.ScreenInfo {
	info := a.registry.Identify(root)
	a.metrics.ObserveClassification(info.Screen)
	return info
}

// Evaluate scores one offer with the configured strategy.
func (a *App) Evaluate(offer domain.Offer) evaluate.Verdict {
	return a.strategy.Evaluate(offer)
}

// Initial returns the state a fresh host starts from.
func (a *App) Initial(recoveredSessionID string) domain.State {
	return machine.Initial(recoveredSessionID)
}

// Step classifies the tree and advances the state in one call.
func (a *App) Step(cur domain.State, root *domain.Node) (domain.Transition, domain.ScreenInfo) {
	info := a.Identify(root)
	return a.machine.Step(cur, info), info
}

// StepTimeout advances the state on a fired timer.
func (a *App) StepTimeout(cur domain.State, tag domain.TimeoutTag) domain.Transition {
	return a.machine.StepTimeout(cur, tag)
}

// StrategyFromConfig builds the scoring strategy an evaluator config names.
func StrategyFromConfig(cfg config.EvaluatorConfig) (evaluate.Strategy, error) {
	switch cfg.Strategy {
	case "", "weighted":
		w := &evaluate.Weighted{}
		if cfg.Prioritized != "" {
			w.Prioritized = evaluate.Metric(cfg.Prioritized)
		}
		return w, nil
	case "ranked":
		r := &evaluate.Ranked{
			Protect:          cfg.Protect,
			DisallowShopping: cfg.DisallowShopping,
		}
		for _, rule := range cfg.Rules {
			r.Rules = append(r.Rules, evaluate.Rule{
				Metric:         evaluate.Metric(rule.Metric),
				Target:         rule.Target,
				HigherIsBetter: rule.HigherIsBetter,
			})
		}
		return r, nil
	default:
		return nil, fmt.Errorf("unknown evaluator strategy %q", cfg.Strategy)
	}
}
