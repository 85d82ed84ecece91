package runner_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sjtrotter/dashbuddy/internal/classify"
	"github.com/sjtrotter/dashbuddy/internal/evaluate"
	"github.com/sjtrotter/dashbuddy/internal/machine"
	"github.com/sjtrotter/dashbuddy/pkg/adapters/memory"
	"github.com/sjtrotter/dashbuddy/pkg/domain"
	"github.com/sjtrotter/dashbuddy/pkg/ports"
	"github.com/sjtrotter/dashbuddy/pkg/runner"
	"github.com/sjtrotter/dashbuddy/pkg/session"
)

func text(s string) *domain.Node {
	return &domain.Node{Kind: "TextView", Text: s}
}

func idText(idSuffix, s string) *domain.Node {
	return &domain.Node{Kind: "TextView", ResourceID: "com.dd.dasher:id/" + idSuffix, Text: s}
}

func tree(children ...*domain.Node) *domain.Node {
	n := &domain.Node{Kind: "FrameLayout", Children: children}
	n.RebuildParents()
	return n
}

func idleTree() *domain.Node {
	return tree(idText("dash_now_button", "Dash Now"), idText("zone_name", "Downtown"))
}

func waitingTree() *domain.Node {
	return tree(text("Looking for orders"), idText("running_total", "$0.00"))
}

func pickupTree() *domain.Node {
	return tree(idText("trip_status", "Pick up from Burger Spot"), idText("store_name", "Burger Spot"))
}

func summaryTree() *domain.Node {
	return tree(text("Dash Summary"), idText("total_earned", "$41.75"), text("3 deliveries"))
}

func harness(store ports.StateStore, exec ports.EffectExecutor) *runner.Runner {
	clock := ports.ClockFunc(func() time.Time {
		return time.Date(2026, 3, 14, 17, 0, 0, 0, time.UTC)
	})
	m := machine.New(machine.Options{
		IDs:      &session.SequentialSource{},
		Clock:    clock,
		Strategy: &evaluate.Weighted{},
	})
	return runner.New(runner.Options{
		Classifier: classify.NewDefaultRegistry(clock),
		Machine:    m,
		Executor:   exec,
		Store:      store,
		Slot:       "active",
		Clock:      clock,
	})
}

func feed(trees ...*domain.Node) runner.ChannelSource {
	ch := make(chan *domain.Node, len(trees))
	for _, t := range trees {
		ch <- t
	}
	close(ch)
	return runner.ChannelSource{C: ch}
}

func TestRunnerLifecycle(t *testing.T) {
	store := memory.NewStore()
	rec := memory.NewRecorder()
	r := harness(store, rec)

	err := r.Run(context.Background(), feed(idleTree(), waitingTree(), summaryTree()))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	events := rec.EventTypes()
	if len(events) != 2 || events[0] != domain.EventSessionStart || events[1] != domain.EventSessionStop {
		t.Fatalf("events = %v", events)
	}
	if rec.DistanceOn != 1 || rec.DistanceOff != 1 {
		t.Fatalf("distance tracking on/off = %d/%d", rec.DistanceOn, rec.DistanceOff)
	}

	st, err := store.Load(context.Background(), "active")
	if err != nil {
		t.Fatalf("state not persisted: %v", err)
	}
	if st.Kind != domain.StatePostDash || st.SessionID != "session-1" {
		t.Fatalf("persisted state = %+v", st)
	}
	if st.Totals == nil || st.Totals.Deliveries != 3 {
		t.Fatalf("totals = %+v", st.Totals)
	}
}

func TestRunnerRecovery(t *testing.T) {
	store := memory.NewStore()
	rec := memory.NewRecorder()
	r := harness(store, rec)

	prior := domain.State{Kind: domain.StateOnPickup, SessionID: "sess-9", StoreName: "Burger Spot"}
	if err := store.Save(context.Background(), "active", prior); err != nil {
		t.Fatal(err)
	}

	if err := r.Run(context.Background(), feed(pickupTree())); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	st, err := store.Load(context.Background(), "active")
	if err != nil {
		t.Fatal(err)
	}
	if st.Kind != domain.StateOnPickup || st.SessionID != "sess-9" {
		t.Fatalf("recovered state = %+v", st)
	}
	if len(rec.Events) != 0 {
		t.Fatalf("recovery must not re-emit events, got %v", rec.EventTypes())
	}
}

func TestRunnerContextCancel(t *testing.T) {
	r := harness(memory.NewStore(), memory.NewRecorder())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ch := make(chan *domain.Node)
	err := r.Run(ctx, runner.ChannelSource{C: ch})
	if err != context.Canceled {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestJSONLSource(t *testing.T) {
	input := strings.Join([]string{
		`{"kind":"TextView","text":"Looking for orders"}`,
		`not json at all`,
		`{"kind":"TextView","text":"Dash Summary"}`,
		``,
	}, "\n")

	src := runner.JSONLSource{R: strings.NewReader(input)}
	ch, err := src.Snapshots(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	var got []*domain.Node
	for n := range ch {
		got = append(got, n)
	}
	if len(got) != 2 {
		t.Fatalf("expected the malformed line skipped, got %d trees", len(got))
	}
	if got[0].Text != "Looking for orders" || got[1].Text != "Dash Summary" {
		t.Fatalf("trees out of order: %v, %v", got[0].Text, got[1].Text)
	}
}

// failingExecutor rejects every event append, as a wedged event store would.
type failingExecutor struct {
	*memory.Recorder
}

func (f *failingExecutor) LogEvent(ctx context.Context, sessionID string, event domain.EventType, payload map[string]any, occurredAt time.Time) error {
	return errors.New("event store unavailable")
}

func TestRunnerEffectFailureDoesNotStop(t *testing.T) {
	store := memory.NewStore()
	exec := &failingExecutor{Recorder: memory.NewRecorder()}
	r := harness(store, exec)

	if err := r.Run(context.Background(), feed(idleTree(), waitingTree())); err != nil {
		t.Fatalf("effect failures must not surface from Run: %v", err)
	}

	// The transition still happened and was persisted.
	st, err := store.Load(context.Background(), "active")
	if err != nil {
		t.Fatal(err)
	}
	if st.Kind != domain.StateAwaitingOffer {
		t.Fatalf("state = %+v", st)
	}
	if exec.DistanceOn != 1 {
		t.Fatal("effects after the failing one must still execute")
	}
}
