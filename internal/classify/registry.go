package classify

import (
	"log/slog"
	"sort"

	"github.com/sjtrotter/dashbuddy/pkg/domain"
	"github.com/sjtrotter/dashbuddy/pkg/ports"
)

// Registry evaluates a fixed set of matchers in descending priority order
// and returns the first match. It holds no mutable state and performs no
// I/O, so Identify is safe to call from anywhere.
type Registry struct {
	matchers []Matcher
	logger   *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger attaches a logger for matcher failures.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// NewRegistry builds a registry over the given matchers. Evaluation order
// is descending priority; the sort is stable, so ties keep registration
// order and classification stays reproducible.
func NewRegistry(matchers []Matcher, opts ...Option) *Registry {
	sorted := make([]Matcher, len(matchers))
	copy(sorted, matchers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority() > sorted[j].Priority()
	})

	r := &Registry{matchers: sorted}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewDefaultRegistry wires the full matcher set of the observed app.
func NewDefaultRegistry(clock ports.Clock, opts ...Option) *Registry {
	if clock == nil {
		clock = ports.SystemClock
	}
	matchers := []Matcher{
		&offerMatcher{clock: clock},
		&receiptMatcher{},
		&collapsedReceiptMatcher{},
		&pickupMatcher{},
		&dropoffMatcher{},
		&dashSummaryMatcher{},
		&dashPausedMatcher{},
		&waitingMatcher{},
		&idleMapMatcher{},
	}
	matchers = append(matchers, staticMatchers()...)
	return NewRegistry(matchers, opts...)
}

// Identify classifies one snapshot. It always produces exactly one result:
// the first matcher to claim the tree wins, and an unclaimed tree degrades
// to Simple(ScreenUnknown). A matcher that panics on a malformed tree is
// treated as "no match" for that matcher only.
func (r *Registry) Identify(root *domain.Node) domain.ScreenInfo {
	if root == nil {
		return domain.Simple(domain.ScreenUnknown)
	}
	for _, m := range r.matchers {
		if info := r.tryMatch(m, root); info != nil {
			return *info
		}
	}
	return domain.Simple(domain.ScreenUnknown)
}

func (r *Registry) tryMatch(m Matcher, root *domain.Node) (info *domain.ScreenInfo) {
	defer func() {
		if rec := recover(); rec != nil {
			if r.logger != nil {
				r.logger.Warn("matcher panic treated as no match",
					"screen", m.Screen(), "panic", rec)
			}
			info = nil
		}
	}()
	return m.Match(root)
}
