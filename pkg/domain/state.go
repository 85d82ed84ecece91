package domain

// StateKind identifies one variant of the session lifecycle.
type StateKind string

const (
	StateInitializing   StateKind = "initializing"
	StateIdleOffline    StateKind = "idle_offline"
	StateAwaitingOffer  StateKind = "awaiting_offer"
	StateOfferPresented StateKind = "offer_presented"
	StateOnPickup       StateKind = "on_pickup"
	StateOnDelivery     StateKind = "on_delivery"
	StatePostDelivery   StateKind = "post_delivery"
	StateDashPaused     StateKind = "dash_paused"
	StatePostDash       StateKind = "post_dash"
)

// PostDeliveryPhase is the state-local sub-phase of StatePostDelivery.
type PostDeliveryPhase string

const (
	PhaseStabilizing PostDeliveryPhase = "stabilizing"
	PhaseClicking    PostDeliveryPhase = "clicking"
	PhaseVerifying   PostDeliveryPhase = "verifying"
	PhaseRecorded    PostDeliveryPhase = "recorded"
)

// State is the current session lifecycle state. It is a tagged union: Kind
// selects the variant and only that variant's fields are meaningful.
//
// States are created only by the state machine. The single live State value
// is owned exclusively by the dispatch loop; nothing else retains or
// mutates it.
//
// SessionID is assigned once, on the transition out of IdleOffline, and
// threaded unchanged through every subsequent state until the session
// returns to IdleOffline, which clears it.
type State struct {
	Kind      StateKind `json:"kind"`
	SessionID string    `json:"session_id,omitempty"`

	// StateIdleOffline
	Zone    string `json:"zone,omitempty"`
	PayMode string `json:"pay_mode,omitempty"`

	// StateAwaitingOffer
	RunningPay   *float64 `json:"running_pay,omitempty"`
	WaitEstimate string   `json:"wait_estimate,omitempty"`
	HeadingBack  bool     `json:"heading_back,omitempty"`

	// StateOfferPresented
	OfferHash string   `json:"offer_hash,omitempty"`
	Merchant  string   `json:"merchant,omitempty"`
	Amount    *float64 `json:"amount,omitempty"`

	// StateOnPickup
	StoreName    string `json:"store_name,omitempty"`
	PickupStatus string `json:"pickup_status,omitempty"`

	// StateOnPickup, StateOnDelivery
	CustomerHash string `json:"customer_hash,omitempty"`

	// StateOnDelivery
	AddressHash string `json:"address_hash,omitempty"`

	// StatePostDelivery
	Phase     PostDeliveryPhase `json:"phase,omitempty"`
	ParsedPay *PayBreakdown     `json:"parsed_pay,omitempty"`
	Merchants []string          `json:"merchants,omitempty"`

	// StateDashPaused
	RemainingMS int64 `json:"remaining_ms,omitempty"`

	// StatePostDash
	Totals *DashSummaryTotals `json:"totals,omitempty"`
}

// InSession reports whether the state belongs to an active session, i.e.
// carries a session identity.
func (s State) InSession() bool {
	return s.SessionID != ""
}
