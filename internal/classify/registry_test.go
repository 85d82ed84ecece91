package classify_test

import (
	"testing"

	"github.com/sjtrotter/dashbuddy/internal/classify"
	"github.com/sjtrotter/dashbuddy/pkg/domain"
)

type fakeMatcher struct {
	screen   domain.Screen
	priority int
	claims   bool
	panics   bool
}

func (m *fakeMatcher) Screen() domain.Screen { return m.screen }
func (m *fakeMatcher) Priority() int         { return m.priority }
func (m *fakeMatcher) Match(root *domain.Node) *domain.ScreenInfo {
	if m.panics {
		panic("malformed tree")
	}
	if !m.claims {
		return nil
	}
	info := domain.Simple(m.screen)
	return &info
}

func TestRegistryPriorityOrder(t *testing.T) {
	// Both claim every tree; the higher priority must win regardless of
	// registration order.
	reg := classify.NewRegistry([]classify.Matcher{
		&fakeMatcher{screen: "low", priority: 10, claims: true},
		&fakeMatcher{screen: "high", priority: 90, claims: true},
	})

	if got := reg.Identify(group()); got.Screen != "high" {
		t.Fatalf("screen = %v, want high", got.Screen)
	}
}

func TestRegistryStableTies(t *testing.T) {
	reg := classify.NewRegistry([]classify.Matcher{
		&fakeMatcher{screen: "first", priority: 50, claims: true},
		&fakeMatcher{screen: "second", priority: 50, claims: true},
	})

	for i := 0; i < 10; i++ {
		if got := reg.Identify(group()); got.Screen != "first" {
			t.Fatalf("tie must keep registration order, got %v", got.Screen)
		}
	}
}

func TestRegistryPanicContainment(t *testing.T) {
	reg := classify.NewRegistry([]classify.Matcher{
		&fakeMatcher{screen: "exploding", priority: 90, panics: true},
		&fakeMatcher{screen: "sane", priority: 10, claims: true},
	})

	got := reg.Identify(group())
	if got.Screen != "sane" {
		t.Fatalf("a panicking matcher must only disable itself, got %v", got.Screen)
	}
}

func TestRegistryUnknownFallback(t *testing.T) {
	reg := classify.NewRegistry([]classify.Matcher{
		&fakeMatcher{screen: "never", priority: 50},
	})

	if got := reg.Identify(group(text("anything"))); got.Screen != domain.ScreenUnknown {
		t.Fatalf("screen = %v, want unknown", got.Screen)
	}
	if got := reg.Identify(nil); got.Screen != domain.ScreenUnknown {
		t.Fatalf("nil root must classify unknown, got %v", got.Screen)
	}
}

func TestRegistryExpandedReceiptOutranksCollapsed(t *testing.T) {
	// A tree carrying the anchor plus section headers must never be
	// claimed as collapsed, whatever the evaluation order tried first.
	root := group(
		text("Delivery Complete"),
		text("Platform Pay"),
		text("Base pay"), text("$6.25"),
		text("Total"), text("$6.25"),
		text("Show more"),
	)

	if got := testRegistry().Identify(root); got.Screen != domain.ScreenDeliveryCompleted {
		t.Fatalf("screen = %v", got.Screen)
	}
}

func TestRegistryOfferOutranksInDelivery(t *testing.T) {
	// An offer card shown over the pickup screen: both anchor sets are in
	// the tree, and the offer must win on priority.
	root := group(
		idText("trip_status", "Pick up from Burger Spot"),
		idText("order_value", "$11.00"),
		text("Deliver by 5:45 PM"),
		button("Decline"),
	)

	if got := testRegistry().Identify(root); got.Screen != domain.ScreenOffer {
		t.Fatalf("screen = %v", got.Screen)
	}
}
