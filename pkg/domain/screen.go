package domain

import "time"

// Screen identifies a semantic screen of the observed app.
type Screen string

const (
	ScreenUnknown Screen = "unknown"

	// Data-carrying screens.
	ScreenOffer                    Screen = "offer"
	ScreenPickupDetails            Screen = "pickup_details"
	ScreenDropoffDetails           Screen = "dropoff_details"
	ScreenDeliveryCompleted        Screen = "delivery_completed"
	ScreenDeliverySummaryCollapsed Screen = "delivery_summary_collapsed"
	ScreenIdleMap                  Screen = "idle_map"
	ScreenWaitingForOffer          Screen = "waiting_for_offer"
	ScreenDashPaused               Screen = "dash_paused"
	ScreenDashSummary              Screen = "dash_summary"

	// Static screens classified by text signature only.
	ScreenMainMenu        Screen = "main_menu"
	ScreenEarnings        Screen = "earnings"
	ScreenSchedule        Screen = "schedule"
	ScreenRatings         Screen = "ratings"
	ScreenAccountSettings Screen = "account_settings"
	ScreenLogin           Screen = "login"
	ScreenAppStartup      Screen = "app_startup"
)

// ScreenInfo is the single classified result for one snapshot. Exactly one
// is produced per tree; at most one of the payload pointers is set, and it
// always corresponds to Screen.
type ScreenInfo struct {
	Screen Screen `json:"screen"`

	Offer     *Offer              `json:"offer,omitempty"`
	Pickup    *PickupDetails      `json:"pickup,omitempty"`
	Dropoff   *DropoffDetails     `json:"dropoff,omitempty"`
	Receipt   *DeliveryReceipt    `json:"receipt,omitempty"`
	Collapsed *CollapsedReceipt   `json:"collapsed,omitempty"`
	Idle      *IdleMapInfo        `json:"idle,omitempty"`
	Waiting   *WaitingForOffer    `json:"waiting,omitempty"`
	Paused    *DashPausedInfo     `json:"paused,omitempty"`
	Summary   *DashSummaryTotals  `json:"summary,omitempty"`
}

// Simple builds a tag-only result for screens with no extractable payload.
func Simple(s Screen) ScreenInfo {
	return ScreenInfo{Screen: s}
}

// PickupDetails is extracted from the "heading to store" screen. Partial
// results are valid: a missing store name does not invalidate the match.
type PickupDetails struct {
	StoreName    string `json:"store_name,omitempty"`
	CustomerHash string `json:"customer_hash,omitempty"`
	Status       string `json:"status,omitempty"`
}

// DropoffDetails is extracted from the "deliver to customer" screen.
// Customer name and address are one-way hashed before they get here.
type DropoffDetails struct {
	CustomerHash string `json:"customer_hash,omitempty"`
	AddressHash  string `json:"address_hash,omitempty"`
	Status       string `json:"status,omitempty"`
}

// PaySection tags which breakdown section a pay item was parsed from.
type PaySection string

const (
	PaySectionBase PaySection = "platform_pay"
	PaySectionTips PaySection = "customer_tips"
)

// PayItem is one line of an itemized pay breakdown.
type PayItem struct {
	Label   string     `json:"label"`
	Amount  float64    `json:"amount"`
	Section PaySection `json:"section"`
}

// PayBreakdown is a validated itemized pay parse. The sum of Items always
// matches Total within a cent; unvalidated parses are never constructed.
type PayBreakdown struct {
	Items []PayItem `json:"items"`
	Total float64   `json:"total"`
}

// DeliveryReceipt is the expanded post-delivery receipt. Breakdown is nil
// when the itemized parse could not be corroborated against a displayed
// total; the screen identity still holds.
type DeliveryReceipt struct {
	Breakdown *PayBreakdown `json:"breakdown,omitempty"`
}

// CollapsedReceipt is the post-delivery receipt before expansion. Expand
// points at the control that reveals the itemized breakdown, when present
// in the snapshot.
type CollapsedReceipt struct {
	Expand *Node `json:"-"`
}

// IdleMapInfo is extracted from the offline map screen.
type IdleMapInfo struct {
	Zone    string `json:"zone,omitempty"`
	PayMode string `json:"pay_mode,omitempty"`
}

// WaitingForOffer is extracted from the active "looking for orders" panel.
type WaitingForOffer struct {
	RunningPay   *float64 `json:"running_pay,omitempty"`
	WaitEstimate string   `json:"wait_estimate,omitempty"`
	HeadingBack  bool     `json:"heading_back,omitempty"`
}

// DashPausedInfo is extracted from the paused-session screen.
type DashPausedInfo struct {
	Remaining time.Duration `json:"remaining_ms,omitempty"`
}

// DashSummaryTotals is extracted from the end-of-session summary.
type DashSummaryTotals struct {
	Deliveries int      `json:"deliveries,omitempty"`
	TotalPay   *float64 `json:"total_pay,omitempty"`
	ActiveTime string   `json:"active_time,omitempty"`
}
