package classify

import (
	"strings"

	"github.com/sjtrotter/dashbuddy/pkg/domain"
)

const (
	waitingAnchorPhrase = "looking for orders"
	headingBackPhrase   = "heading back"
	earnedPhrase        = "earned"

	idSuffixDashNow      = "dash_now_button"
	idSuffixZoneName     = "zone_name"
	idSuffixRunningTotal = "running_total"
	idSuffixWaitEstimate = "wait_estimate"

	pausedAnchorPhrase  = "dash paused"
	summaryAnchorPhrase = "dash summary"
	idSuffixTotalEarned = "total_earned"
)

// waitingMatcher classifies the active between-offers panel.
type waitingMatcher struct{}

func (m *waitingMatcher) Screen() domain.Screen { return domain.ScreenWaitingForOffer }
func (m *waitingMatcher) Priority() int         { return 60 }

func (m *waitingMatcher) Match(root *domain.Node) *domain.ScreenInfo {
	if !root.Exists(func(n *domain.Node) bool { return n.TextContains(waitingAnchorPhrase) }) {
		return nil
	}

	info := &domain.WaitingForOffer{
		WaitEstimate: firstTextByIDSuffix(root, idSuffixWaitEstimate),
		HeadingBack: root.Exists(func(n *domain.Node) bool {
			return n.TextContains(headingBackPhrase)
		}),
	}

	if t := firstTextByIDSuffix(root, idSuffixRunningTotal); t != "" {
		info.RunningPay = ParseMoney(t)
	}
	if info.RunningPay == nil {
		if n := root.FindFirst(func(n *domain.Node) bool {
			return n.TextContains(earnedPhrase) && ParseMoney(n.Text) != nil
		}); n != nil {
			info.RunningPay = ParseMoney(n.Text)
		}
	}

	return &domain.ScreenInfo{Screen: domain.ScreenWaitingForOffer, Waiting: info}
}

// idleMapMatcher classifies the offline map: the "dash now" entry point is
// the structural anchor, shown only when no session is running.
type idleMapMatcher struct{}

func (m *idleMapMatcher) Screen() domain.Screen { return domain.ScreenIdleMap }
func (m *idleMapMatcher) Priority() int         { return 50 }

func (m *idleMapMatcher) Match(root *domain.Node) *domain.ScreenInfo {
	anchor := root.FindFirst(func(n *domain.Node) bool {
		return n.HasIDSuffix(idSuffixDashNow) || n.TextEquals("dash now")
	})
	if anchor == nil {
		return nil
	}

	info := &domain.IdleMapInfo{
		Zone:    firstTextByIDSuffix(root, idSuffixZoneName),
		PayMode: detectPayMode(root),
	}
	return &domain.ScreenInfo{Screen: domain.ScreenIdleMap, Idle: info}
}

func detectPayMode(root *domain.Node) string {
	if root.Exists(func(n *domain.Node) bool { return n.TextContains("earn by time") }) {
		return "time"
	}
	if root.Exists(func(n *domain.Node) bool { return n.TextContains("per offer") }) {
		return "per_offer"
	}
	return ""
}

// dashPausedMatcher classifies the paused-session screen.
type dashPausedMatcher struct{}

func (m *dashPausedMatcher) Screen() domain.Screen { return domain.ScreenDashPaused }
func (m *dashPausedMatcher) Priority() int         { return 70 }

func (m *dashPausedMatcher) Match(root *domain.Node) *domain.ScreenInfo {
	if !root.Exists(func(n *domain.Node) bool { return n.TextContains(pausedAnchorPhrase) }) {
		return nil
	}

	info := &domain.DashPausedInfo{}
	// The countdown sits next to the resume control.
	if n := root.FindFirst(func(n *domain.Node) bool {
		return ParsePauseRemaining(n.Text) > 0
	}); n != nil {
		info.Remaining = ParsePauseRemaining(n.Text)
	}
	return &domain.ScreenInfo{Screen: domain.ScreenDashPaused, Paused: info}
}

// dashSummaryMatcher classifies the end-of-session totals screen.
type dashSummaryMatcher struct{}

func (m *dashSummaryMatcher) Screen() domain.Screen { return domain.ScreenDashSummary }
func (m *dashSummaryMatcher) Priority() int         { return 70 }

func (m *dashSummaryMatcher) Match(root *domain.Node) *domain.ScreenInfo {
	if !root.Exists(func(n *domain.Node) bool { return n.TextContains(summaryAnchorPhrase) }) {
		return nil
	}

	totals := &domain.DashSummaryTotals{}

	if t := firstTextByIDSuffix(root, idSuffixTotalEarned); t != "" {
		totals.TotalPay = ParseMoney(t)
	}
	if totals.TotalPay == nil {
		for _, t := range root.VisibleTexts() {
			if v := ParseMoney(t); v != nil {
				totals.TotalPay = v
				break
			}
		}
	}

	if n := root.FindFirst(func(n *domain.Node) bool {
		return n.TextContains("deliver") && !n.TextContains("$")
	}); n != nil {
		if c, ok := ParseCount(n.Text); ok {
			totals.Deliveries = c
		}
	}

	if n := root.FindFirst(func(n *domain.Node) bool {
		return strings.Contains(strings.ToLower(n.Text), "active time")
	}); n != nil {
		totals.ActiveTime = strings.TrimSpace(strings.TrimPrefix(
			strings.ToLower(n.Text), "active time"))
	}

	return &domain.ScreenInfo{Screen: domain.ScreenDashSummary, Summary: totals}
}
