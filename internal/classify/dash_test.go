package classify_test

import (
	"testing"
	"time"

	"github.com/sjtrotter/dashbuddy/pkg/domain"
)

func TestWaitingForOfferMatch(t *testing.T) {
	root := group(
		text("Looking for orders"),
		idText("running_total", "$23.50"),
		idText("wait_estimate", "Usually under 10 min"),
	)

	info := testRegistry().Identify(root)
	if info.Screen != domain.ScreenWaitingForOffer {
		t.Fatalf("screen = %v", info.Screen)
	}
	w := info.Waiting
	if w.RunningPay == nil || *w.RunningPay != 23.50 {
		t.Errorf("running pay = %v", w.RunningPay)
	}
	if w.WaitEstimate != "Usually under 10 min" {
		t.Errorf("wait estimate = %q", w.WaitEstimate)
	}
	if w.HeadingBack {
		t.Error("heading back should be false")
	}
}

func TestWaitingForOfferFallbackPay(t *testing.T) {
	root := group(
		text("Looking for orders"),
		text("Earned so far: $12.00"),
		text("Heading back to Downtown"),
	)

	info := testRegistry().Identify(root)
	if info.Screen != domain.ScreenWaitingForOffer {
		t.Fatalf("screen = %v", info.Screen)
	}
	if info.Waiting.RunningPay == nil || *info.Waiting.RunningPay != 12.00 {
		t.Errorf("fallback running pay = %v", info.Waiting.RunningPay)
	}
	if !info.Waiting.HeadingBack {
		t.Error("heading back should be true")
	}
}

func TestIdleMapMatch(t *testing.T) {
	root := group(
		idText("dash_now_button", "Dash Now"),
		idText("zone_name", "Downtown"),
		text("Earn by Time available"),
	)

	info := testRegistry().Identify(root)
	if info.Screen != domain.ScreenIdleMap {
		t.Fatalf("screen = %v", info.Screen)
	}
	if info.Idle.Zone != "Downtown" || info.Idle.PayMode != "time" {
		t.Fatalf("idle = %+v", info.Idle)
	}
}

func TestIdleMapTextAnchorFallback(t *testing.T) {
	root := group(
		button("Dash Now"),
		text("Per Offer earnings shown before you accept"),
	)

	info := testRegistry().Identify(root)
	if info.Screen != domain.ScreenIdleMap {
		t.Fatalf("screen = %v", info.Screen)
	}
	if info.Idle.PayMode != "per_offer" {
		t.Fatalf("pay mode = %q", info.Idle.PayMode)
	}
}

func TestDashPausedMatch(t *testing.T) {
	root := group(
		text("Dash Paused"),
		text("28:30"),
		button("Resume"),
	)

	info := testRegistry().Identify(root)
	if info.Screen != domain.ScreenDashPaused {
		t.Fatalf("screen = %v", info.Screen)
	}
	if info.Paused.Remaining != 28*time.Minute+30*time.Second {
		t.Fatalf("remaining = %v", info.Paused.Remaining)
	}
}

func TestDashSummaryMatch(t *testing.T) {
	root := group(
		text("Dash Summary"),
		idText("total_earned", "$87.25"),
		text("7 deliveries"),
		text("Active time 3h 12m"),
	)

	info := testRegistry().Identify(root)
	if info.Screen != domain.ScreenDashSummary {
		t.Fatalf("screen = %v", info.Screen)
	}
	s := info.Summary
	if s.TotalPay == nil || *s.TotalPay != 87.25 {
		t.Errorf("total pay = %v", s.TotalPay)
	}
	if s.Deliveries != 7 {
		t.Errorf("deliveries = %d", s.Deliveries)
	}
	if s.ActiveTime != "3h 12m" {
		t.Errorf("active time = %q", s.ActiveTime)
	}
}
