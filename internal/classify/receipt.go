package classify

import (
	"strings"

	"github.com/sjtrotter/dashbuddy/pkg/domain"
)

const (
	receiptAnchorPhrase = "delivery complete"
	expandControlPhrase = "show more"
	idSuffixExpand      = "expand_details"
)

func hasReceiptAnchor(root *domain.Node) bool {
	return root.Exists(func(n *domain.Node) bool {
		return n.TextContains(receiptAnchorPhrase)
	})
}

func hasBreakdownSections(root *domain.Node) bool {
	return root.Exists(func(n *domain.Node) bool {
		_, ok := matchSectionHeader(strings.ToLower(n.Text))
		return ok
	})
}

// receiptMatcher classifies the expanded post-delivery receipt: the
// receipt anchor plus at least one breakdown section header. The itemized
// parse rides along only when it validates; the screen identity holds
// either way so the owning phase can retry extraction.
type receiptMatcher struct{}

func (m *receiptMatcher) Screen() domain.Screen { return domain.ScreenDeliveryCompleted }
func (m *receiptMatcher) Priority() int         { return 90 }

func (m *receiptMatcher) Match(root *domain.Node) *domain.ScreenInfo {
	if !hasReceiptAnchor(root) || !hasBreakdownSections(root) {
		return nil
	}
	return &domain.ScreenInfo{
		Screen:  domain.ScreenDeliveryCompleted,
		Receipt: &domain.DeliveryReceipt{Breakdown: ParseBreakdown(root)},
	}
}

// collapsedReceiptMatcher classifies the receipt before its breakdown is
// expanded: the same anchor but neither section header. It carries the
// expand control so the machine can request a click.
type collapsedReceiptMatcher struct{}

func (m *collapsedReceiptMatcher) Screen() domain.Screen {
	return domain.ScreenDeliverySummaryCollapsed
}
func (m *collapsedReceiptMatcher) Priority() int { return 85 }

func (m *collapsedReceiptMatcher) Match(root *domain.Node) *domain.ScreenInfo {
	if !hasReceiptAnchor(root) || hasBreakdownSections(root) {
		return nil
	}
	expand := root.FindFirst(func(n *domain.Node) bool {
		return n.HasIDSuffix(idSuffixExpand) || n.TextContains(expandControlPhrase)
	})
	return &domain.ScreenInfo{
		Screen:    domain.ScreenDeliverySummaryCollapsed,
		Collapsed: &domain.CollapsedReceipt{Expand: expand},
	}
}
