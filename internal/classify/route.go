package classify

import (
	"strings"

	"github.com/sjtrotter/dashbuddy/pkg/domain"
)

// The in-delivery navigation screens share one status anchor; only the
// phrase inside it tells pickup apart from dropoff. Comparing the anchor's
// text, never its identifier, is what disambiguates the two.
const (
	idSuffixTripStatus   = "trip_status"
	idSuffixCustomerName = "customer_name"
	idSuffixAddress      = "customer_address"
	idSuffixSubstatus    = "trip_substatus"
)

var pickupPhrases = []string{"pick up from", "heading to store", "arrived at store"}
var dropoffPhrases = []string{"deliver to", "heading to customer", "arrived at customer"}

func tripStatusNode(root *domain.Node) *domain.Node {
	return root.FindFirst(func(n *domain.Node) bool {
		return n.HasIDSuffix(idSuffixTripStatus)
	})
}

func anyPhrase(n *domain.Node, phrases []string) bool {
	for _, p := range phrases {
		if n.TextContains(p) {
			return true
		}
	}
	return false
}

// pickupMatcher classifies the heading-to-store leg.
type pickupMatcher struct{}

func (m *pickupMatcher) Screen() domain.Screen { return domain.ScreenPickupDetails }
func (m *pickupMatcher) Priority() int         { return 80 }

func (m *pickupMatcher) Match(root *domain.Node) *domain.ScreenInfo {
	anchor := tripStatusNode(root)
	if anchor == nil || !anyPhrase(anchor, pickupPhrases) {
		return nil
	}

	details := &domain.PickupDetails{
		StoreName:    firstTextByIDSuffix(root, idSuffixStoreName),
		CustomerHash: HashIdentity(firstTextByIDSuffix(root, idSuffixCustomerName)),
		Status:       strings.TrimSpace(anchor.Text),
	}
	if sub := firstTextByIDSuffix(root, idSuffixSubstatus); sub != "" {
		details.Status = sub
	}
	return &domain.ScreenInfo{Screen: domain.ScreenPickupDetails, Pickup: details}
}

// dropoffMatcher classifies the deliver-to-customer leg. The customer name
// and street address are hashed before leaving this layer.
type dropoffMatcher struct{}

func (m *dropoffMatcher) Screen() domain.Screen { return domain.ScreenDropoffDetails }
func (m *dropoffMatcher) Priority() int         { return 80 }

func (m *dropoffMatcher) Match(root *domain.Node) *domain.ScreenInfo {
	anchor := tripStatusNode(root)
	if anchor == nil || !anyPhrase(anchor, dropoffPhrases) {
		return nil
	}

	details := &domain.DropoffDetails{
		CustomerHash: HashIdentity(firstTextByIDSuffix(root, idSuffixCustomerName)),
		AddressHash:  HashIdentity(firstTextByIDSuffix(root, idSuffixAddress)),
		Status:       strings.TrimSpace(anchor.Text),
	}
	if sub := firstTextByIDSuffix(root, idSuffixSubstatus); sub != "" {
		details.Status = sub
	}
	return &domain.ScreenInfo{Screen: domain.ScreenDropoffDetails, Dropoff: details}
}

func firstTextByIDSuffix(root *domain.Node, suffix string) string {
	n := root.FindFirst(func(c *domain.Node) bool {
		return c.HasIDSuffix(suffix) && strings.TrimSpace(c.Text) != ""
	})
	if n == nil {
		return ""
	}
	return strings.TrimSpace(n.Text)
}
