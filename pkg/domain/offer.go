package domain

import "time"

// OrderKind distinguishes a plain restaurant pickup from an order the
// courier shops for in-store.
type OrderKind string

const (
	OrderPickup OrderKind = "pickup"
	OrderShop   OrderKind = "shop"
)

// OrderLine is one component order of an offer.
type OrderLine struct {
	Merchant  string    `json:"merchant"`
	Kind      OrderKind `json:"kind"`
	ItemCount int       `json:"item_count"`
}

// Badge is a fixed-vocabulary attribute detected on an offer card.
type Badge string

const (
	BadgeCardRequired Badge = "red_card_required"
	BadgeLargeOrder   Badge = "large_order"
	BadgeAlcohol      Badge = "contains_alcohol"
)

// Offer is the structured payload of an offer card. All money is in
// dollars, all distance in miles. Optional fields are nil when the
// corresponding text failed to parse; a partial offer is still an offer.
type Offer struct {
	Orders        []OrderLine `json:"orders,omitempty"`
	PayAmount     *float64    `json:"pay_amount,omitempty"`
	DistanceMiles *float64    `json:"distance_miles,omitempty"`
	DueBy         *time.Time  `json:"due_by,omitempty"`

	// MinutesToComplete is derived from DueBy at classification time so
	// downstream scoring stays a pure function of the offer alone.
	MinutesToComplete *float64 `json:"minutes_to_complete,omitempty"`

	ItemCount int     `json:"item_count,omitempty"`
	Badges    []Badge `json:"badges,omitempty"`

	// Hash is a content hash over the extracted fields, used to recognize
	// the same offer across consecutive snapshots.
	Hash string `json:"hash"`
}

// HasShopOrder reports whether any component order requires shopping.
func (o *Offer) HasShopOrder() bool {
	for _, ord := range o.Orders {
		if ord.Kind == OrderShop {
			return true
		}
	}
	return false
}

// Merchants returns the merchant names of all component orders, in card order.
func (o *Offer) Merchants() []string {
	out := make([]string, 0, len(o.Orders))
	for _, ord := range o.Orders {
		out = append(out, ord.Merchant)
	}
	return out
}
