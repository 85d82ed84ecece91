// Package observability exposes Prometheus counters for the dispatch loop.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sjtrotter/dashbuddy/pkg/domain"
)

// Metrics counts what the loop sees and does. All counters are safe for
// concurrent use, though the loop itself is single-threaded.
type Metrics struct {
	SnapshotsClassified *prometheus.CounterVec
	Transitions         *prometheus.CounterVec
	AnchorHeals         prometheus.Counter
	DiscardedParses     prometheus.Counter
	EffectErrors        prometheus.Counter
}

// New registers the metric set on reg and returns it.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SnapshotsClassified: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dashbuddy_snapshots_classified_total",
			Help: "Snapshots classified, by resulting screen.",
		}, []string{"screen"}),
		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dashbuddy_state_transitions_total",
			Help: "State transitions, by source and destination state.",
		}, []string{"from", "to"}),
		AnchorHeals: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dashbuddy_anchor_heals_total",
			Help: "Forced transitions via the anchor fallback.",
		}),
		DiscardedParses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dashbuddy_pay_parses_discarded_total",
			Help: "Pay breakdown parses discarded for failing total validation.",
		}),
		EffectErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dashbuddy_effect_errors_total",
			Help: "Effect executions reported as failed by the host.",
		}),
	}
	reg.MustRegister(m.SnapshotsClassified, m.Transitions, m.AnchorHeals, m.DiscardedParses, m.EffectErrors)
	return m
}

// ObserveClassification records one classified snapshot.
func (m *Metrics) ObserveClassification(s domain.Screen) {
	if m == nil {
		return
	}
	m.SnapshotsClassified.WithLabelValues(string(s)).Inc()
}

// ObserveTransition records one state change.
func (m *Metrics) ObserveTransition(from, to domain.StateKind) {
	if m == nil {
		return
	}
	m.Transitions.WithLabelValues(string(from), string(to)).Inc()
}

// ObserveAnchorHeal records one forced anchor transition.
func (m *Metrics) ObserveAnchorHeal() {
	if m == nil {
		return
	}
	m.AnchorHeals.Inc()
}

// ObserveDiscardedParse records one pay breakdown rejected by validation.
func (m *Metrics) ObserveDiscardedParse() {
	if m == nil {
		return
	}
	m.DiscardedParses.Inc()
}

// ObserveEffectError records one failed effect execution.
func (m *Metrics) ObserveEffectError() {
	if m == nil {
		return
	}
	m.EffectErrors.Inc()
}
