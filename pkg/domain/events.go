package domain

// EventType categorizes a logged session event.
type EventType string

const (
	EventSessionStart     EventType = "session_start"
	EventSessionStop      EventType = "session_stop"
	EventOfferReceived    EventType = "offer_received"
	EventOfferEvaluated   EventType = "offer_evaluated"
	EventPickupStarted    EventType = "pickup_started"
	EventPickupConfirmed  EventType = "pickup_confirmed"
	EventDeliveryRecorded EventType = "delivery_recorded"
	EventDashPaused       EventType = "dash_paused"
	EventDashResumed      EventType = "dash_resumed"
)
