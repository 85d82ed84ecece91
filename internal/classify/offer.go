package classify

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/sjtrotter/dashbuddy/pkg/domain"
	"github.com/sjtrotter/dashbuddy/pkg/ports"
)

const (
	idSuffixOrderValue = "order_value"
	idSuffixDistance   = "distance"

	offerDeadlinePhrase = "deliver by"
	offerDeclinePhrase  = "decline"
)

// offerMatcher classifies the incoming-offer card. Anchors: a decline
// control and the "deliver by" deadline phrase, a pairing no other
// screen of the app shows. Everything else is best-effort extraction;
// a missing field degrades to nil, never to a failed match.
type offerMatcher struct {
	clock ports.Clock
}

func (m *offerMatcher) Screen() domain.Screen { return domain.ScreenOffer }
func (m *offerMatcher) Priority() int         { return 100 }

func (m *offerMatcher) Match(root *domain.Node) *domain.ScreenInfo {
	hasDecline := root.Exists(func(n *domain.Node) bool {
		return n.TextContains(offerDeclinePhrase)
	})
	deadlineNode := root.FindFirst(func(n *domain.Node) bool {
		return n.TextContains(offerDeadlinePhrase)
	})
	if !hasDecline || deadlineNode == nil {
		return nil
	}

	now := m.clock.Now()
	texts := root.VisibleTexts()

	offer := &domain.Offer{
		Orders:        ExtractOrders(root),
		PayAmount:     m.extractPay(root),
		DistanceMiles: m.extractDistance(root, texts),
		DueBy:         ParseDeadline(deadlineNode.Text, now),
		Badges:        DetectBadges(texts),
	}

	if offer.DueBy != nil {
		mins := offer.DueBy.Sub(now).Minutes()
		offer.MinutesToComplete = &mins
	}
	for _, ord := range offer.Orders {
		offer.ItemCount += ord.ItemCount
	}
	offer.Hash = offerContentHash(offer)

	return &domain.ScreenInfo{Screen: domain.ScreenOffer, Offer: offer}
}

func (m *offerMatcher) extractPay(root *domain.Node) *float64 {
	if n := root.FindFirst(func(n *domain.Node) bool { return n.HasIDSuffix(idSuffixOrderValue) }); n != nil {
		if v := ParseMoney(n.Text); v != nil {
			return v
		}
	}
	// No stable identifier on this build: take the first standalone money
	// text on the card.
	if n := root.FindFirst(func(n *domain.Node) bool {
		t := strings.TrimSpace(n.Text)
		return strings.HasPrefix(t, "$") && ParseMoney(t) != nil
	}); n != nil {
		return ParseMoney(n.Text)
	}
	return nil
}

func (m *offerMatcher) extractDistance(root *domain.Node, texts []string) *float64 {
	if n := root.FindFirst(func(n *domain.Node) bool { return n.HasIDSuffix(idSuffixDistance) }); n != nil {
		if v := ParseDistance(n.Text); v != nil {
			return v
		}
	}
	for _, t := range texts {
		if v := ParseDistance(t); v != nil {
			return v
		}
	}
	return nil
}

// offerContentHash fingerprints the extracted fields so the same offer is
// recognized across consecutive snapshots even as the card re-renders.
func offerContentHash(o *domain.Offer) string {
	var b strings.Builder
	for _, ord := range o.Orders {
		fmt.Fprintf(&b, "%s/%s/%d|", strings.ToLower(ord.Merchant), ord.Kind, ord.ItemCount)
	}
	if o.PayAmount != nil {
		fmt.Fprintf(&b, "pay=%.2f|", *o.PayAmount)
	}
	if o.DistanceMiles != nil {
		fmt.Fprintf(&b, "dist=%.2f|", *o.DistanceMiles)
	}
	if o.DueBy != nil {
		fmt.Fprintf(&b, "due=%s|", o.DueBy.Format("15:04"))
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:8])
}
