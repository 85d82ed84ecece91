package dashbuddy_test

import (
	"testing"
	"time"

	"github.com/sjtrotter/dashbuddy"
	"github.com/sjtrotter/dashbuddy/internal/config"
	"github.com/sjtrotter/dashbuddy/internal/evaluate"
	"github.com/sjtrotter/dashbuddy/pkg/domain"
	"github.com/sjtrotter/dashbuddy/pkg/ports"
	"github.com/sjtrotter/dashbuddy/pkg/session"
)

func fixedClock() ports.Clock {
	return ports.ClockFunc(func() time.Time {
		return time.Date(2026, 3, 14, 17, 0, 0, 0, time.UTC)
	})
}

func TestAppStep(t *testing.T) {
	app := dashbuddy.New(
		dashbuddy.WithClock(fixedClock()),
		dashbuddy.WithSessionIDs(&session.SequentialSource{}),
	)

	waiting, err := domain.DecodeTree([]byte(`{
		"kind": "FrameLayout",
		"children": [
			{"kind": "TextView", "text": "Looking for orders"}
		]
	}`))
	if err != nil {
		t.Fatal(err)
	}

	state := app.Initial("")
	tr, info := app.Step(state, waiting)
	if info.Screen != domain.ScreenWaitingForOffer {
		t.Fatalf("screen = %v", info.Screen)
	}
	if tr.Next.Kind != domain.StateAwaitingOffer || tr.Next.SessionID != "session-1" {
		t.Fatalf("state = %+v", tr.Next)
	}
	// Cold start reconstructs silently.
	if len(tr.Effects) != 0 {
		t.Fatalf("effects = %+v", tr.Effects)
	}
}

func TestAppEvaluateDefaultStrategy(t *testing.T) {
	app := dashbuddy.New(dashbuddy.WithClock(fixedClock()))

	pay, miles, minutes := 15.0, 1.0, 10.0
	v := app.Evaluate(domain.Offer{PayAmount: &pay, DistanceMiles: &miles, MinutesToComplete: &minutes, ItemCount: 2})
	if v.Action != evaluate.ActionAccept {
		t.Fatalf("verdict = %+v", v)
	}
}

func TestStrategyFromConfig(t *testing.T) {
	t.Run("weighted", func(t *testing.T) {
		s, err := dashbuddy.StrategyFromConfig(config.EvaluatorConfig{Strategy: "weighted", Prioritized: "payout"})
		if err != nil {
			t.Fatal(err)
		}
		w, ok := s.(*evaluate.Weighted)
		if !ok || w.Prioritized != evaluate.MetricPayout {
			t.Fatalf("strategy = %#v", s)
		}
	})

	t.Run("ranked", func(t *testing.T) {
		s, err := dashbuddy.StrategyFromConfig(config.EvaluatorConfig{
			Strategy:         "ranked",
			DisallowShopping: true,
			Rules: []config.RuleConfig{
				{Metric: "distance", Target: 8},
			},
		})
		if err != nil {
			t.Fatal(err)
		}
		r, ok := s.(*evaluate.Ranked)
		if !ok || !r.DisallowShopping || len(r.Rules) != 1 {
			t.Fatalf("strategy = %#v", s)
		}
	})

	t.Run("empty defaults to weighted", func(t *testing.T) {
		s, err := dashbuddy.StrategyFromConfig(config.EvaluatorConfig{})
		if err != nil {
			t.Fatal(err)
		}
		if _, ok := s.(*evaluate.Weighted); !ok {
			t.Fatalf("strategy = %#v", s)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if _, err := dashbuddy.StrategyFromConfig(config.EvaluatorConfig{Strategy: "oracle"}); err == nil {
			t.Fatal("expected an error")
		}
	})
}
