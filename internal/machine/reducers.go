package machine

import (
	"math"

	"github.com/sjtrotter/dashbuddy/pkg/domain"
)

// Per-state reducers. Returning nil means "not handled here": the
// dispatcher then consults the anchor screens before settling for a no-op.

// reduceInitializing is the recovery entry point. A fresh process holds
// Initializing until the first snapshot classifies; whatever screen shows
// up reconstructs the implied state without re-emitting one-shot effects.
// A session identity recovered from the store rides in on cur.SessionID
// and is preserved; a fresh one is minted only if the implied state needs
// one and none was recovered.
func reduceInitializing(m *Machine, cur domain.State, in domain.ScreenInfo) *domain.Transition {
	var tr domain.Transition
	switch in.Screen {
	case domain.ScreenIdleMap:
		tr = enterIdleOffline(m, cur, in, true)
	case domain.ScreenWaitingForOffer:
		tr = enterAwaitingOffer(m, cur, in, true)
	case domain.ScreenOffer:
		tr = enterOfferPresented(m, enterAwaitingOffer(m, cur, in, true).Next, in, true)
	case domain.ScreenPickupDetails:
		tr = enterOnPickup(m, ensureSession(m, cur), in, true)
	case domain.ScreenDropoffDetails:
		tr = enterOnDelivery(m, ensureSession(m, cur), in, true)
	case domain.ScreenDeliveryCompleted, domain.ScreenDeliverySummaryCollapsed:
		tr = enterPostDelivery(m, ensureSession(m, cur), in, true)
	case domain.ScreenDashPaused:
		tr = enterDashPaused(m, ensureSession(m, cur), in, true)
	case domain.ScreenDashSummary:
		tr = enterPostDash(m, cur, in, true)
	default:
		return nil
	}
	return &tr
}

// ensureSession backfills a session identity for recovery into a
// mid-session state when nothing was persisted. Assigned fresh only when
// truly absent.
func ensureSession(m *Machine, cur domain.State) domain.State {
	if cur.SessionID == "" {
		cur.SessionID = m.ids.NewSessionID()
	}
	return cur
}

func reduceIdleOffline(m *Machine, cur domain.State, in domain.ScreenInfo) *domain.Transition {
	switch in.Screen {
	case domain.ScreenWaitingForOffer:
		tr := enterAwaitingOffer(m, cur, in, false)
		return &tr
	case domain.ScreenIdleMap:
		// Still offline; just track zone and pay mode.
		next := cur
		if in.Idle != nil {
			next.Zone = in.Idle.Zone
			next.PayMode = in.Idle.PayMode
		}
		return &domain.Transition{Next: next}
	}
	return nil
}

func reduceAwaitingOffer(m *Machine, cur domain.State, in domain.ScreenInfo) *domain.Transition {
	switch in.Screen {
	case domain.ScreenOffer:
		tr := enterOfferPresented(m, cur, in, false)
		return &tr
	case domain.ScreenWaitingForOffer:
		next := cur
		if in.Waiting != nil {
			next.RunningPay = in.Waiting.RunningPay
			next.WaitEstimate = in.Waiting.WaitEstimate
			next.HeadingBack = in.Waiting.HeadingBack
		}
		return &domain.Transition{Next: next}
	case domain.ScreenDashPaused:
		tr := enterDashPaused(m, cur, in, false)
		return &tr
	case domain.ScreenIdleMap:
		tr := enterIdleOffline(m, cur, in, false)
		return &tr
	case domain.ScreenDashSummary:
		tr := enterPostDash(m, cur, in, false)
		return &tr
	}
	return nil
}

func reduceOfferPresented(m *Machine, cur domain.State, in domain.ScreenInfo) *domain.Transition {
	switch in.Screen {
	case domain.ScreenPickupDetails:
		tr := enterOnPickup(m, cur, in, false)
		return &tr
	case domain.ScreenIdleMap, domain.ScreenWaitingForOffer:
		// Declined or expired. The session continues; no start effects.
		tr := enterAwaitingOffer(m, cur, in, false)
		return &tr
	case domain.ScreenOffer:
		if in.Offer != nil && in.Offer.Hash != cur.OfferHash {
			// A different offer replaced the card.
			tr := enterOfferPresented(m, cur, in, false)
			return &tr
		}
		// Same offer re-rendered.
		return &domain.Transition{Next: cur}
	case domain.ScreenDashPaused:
		tr := enterDashPaused(m, cur, in, false)
		return &tr
	}
	return nil
}

func reduceOnPickup(m *Machine, cur domain.State, in domain.ScreenInfo) *domain.Transition {
	switch in.Screen {
	case domain.ScreenDropoffDetails:
		tr := enterOnDelivery(m, cur, in, false)
		return &tr
	case domain.ScreenPickupDetails:
		next := cur
		if in.Pickup != nil {
			if in.Pickup.StoreName != "" {
				next.StoreName = in.Pickup.StoreName
			}
			if in.Pickup.CustomerHash != "" {
				next.CustomerHash = in.Pickup.CustomerHash
			}
			next.PickupStatus = in.Pickup.Status
		}
		return &domain.Transition{Next: next}
	case domain.ScreenIdleMap:
		tr := enterIdleOffline(m, cur, in, false)
		return &tr
	}
	return nil
}

func reduceOnDelivery(m *Machine, cur domain.State, in domain.ScreenInfo) *domain.Transition {
	switch in.Screen {
	case domain.ScreenDeliveryCompleted, domain.ScreenDeliverySummaryCollapsed:
		tr := enterPostDelivery(m, cur, in, false)
		return &tr
	case domain.ScreenDropoffDetails:
		next := cur
		if in.Dropoff != nil {
			if in.Dropoff.CustomerHash != "" {
				next.CustomerHash = in.Dropoff.CustomerHash
			}
			if in.Dropoff.AddressHash != "" {
				next.AddressHash = in.Dropoff.AddressHash
			}
		}
		return &domain.Transition{Next: next}
	case domain.ScreenIdleMap:
		tr := enterIdleOffline(m, cur, in, false)
		return &tr
	}
	return nil
}

func reducePostDelivery(m *Machine, cur domain.State, in domain.ScreenInfo) *domain.Transition {
	switch in.Screen {
	case domain.ScreenDeliverySummaryCollapsed:
		switch cur.Phase {
		case domain.PhaseClicking:
			if in.Collapsed != nil && in.Collapsed.Expand != nil {
				next := cur
				next.Phase = domain.PhaseVerifying
				return &domain.Transition{
					Next:    next,
					Effects: []domain.Effect{domain.InvokeClick(in.Collapsed.Expand)},
				}
			}
			// No expand control in this frame; stay and retry.
			return &domain.Transition{Next: cur}
		case domain.PhaseStabilizing:
			return &domain.Transition{Next: cur}
		}
		return &domain.Transition{Next: cur}

	case domain.ScreenDeliveryCompleted:
		if cur.Phase == domain.PhaseRecorded {
			return &domain.Transition{Next: cur}
		}
		if in.Receipt == nil || in.Receipt.Breakdown == nil {
			// Parse discarded upstream; stay in phase and retry next frame.
			return &domain.Transition{Next: cur}
		}
		br := in.Receipt.Breakdown
		if cur.ParsedPay != nil && math.Abs(cur.ParsedPay.Total-br.Total) <= 0.01 {
			// Identical total already stored: idempotent.
			return &domain.Transition{Next: cur}
		}
		next := cur
		next.Phase = domain.PhaseVerifying
		next.ParsedPay = br
		return &domain.Transition{
			Next:    next,
			Effects: []domain.Effect{domain.ScheduleTimeout(verifyDelay, domain.TimeoutVerify)},
		}

	case domain.ScreenWaitingForOffer:
		tr := enterAwaitingOffer(m, cur, in, false)
		tr.Effects = append(pendingRecordEffects(cur), tr.Effects...)
		return &tr
	case domain.ScreenIdleMap:
		tr := enterIdleOffline(m, cur, in, false)
		tr.Effects = append(pendingRecordEffects(cur), tr.Effects...)
		return &tr
	case domain.ScreenDashSummary:
		tr := enterPostDash(m, cur, in, false)
		tr.Effects = append(pendingRecordEffects(cur), tr.Effects...)
		return &tr
	}
	return nil
}

// pendingRecordEffects flushes a verified-but-unrecorded pay breakdown
// when the UI moves on before the verify timer fires. Losing the record
// would be worse than recording it a few seconds early.
func pendingRecordEffects(cur domain.State) []domain.Effect {
	if cur.ParsedPay == nil || cur.Phase == domain.PhaseRecorded {
		return nil
	}
	return []domain.Effect{
		domain.LogEvent(cur.SessionID, domain.EventDeliveryRecorded, breakdownPayload(cur.ParsedPay)),
	}
}

func timeoutPostDelivery(m *Machine, cur domain.State, tag domain.TimeoutTag) *domain.Transition {
	switch {
	case tag == domain.TimeoutStabilize && cur.Phase == domain.PhaseStabilizing:
		next := cur
		next.Phase = domain.PhaseClicking
		return &domain.Transition{Next: next}
	case tag == domain.TimeoutVerify && cur.Phase == domain.PhaseVerifying && cur.ParsedPay != nil:
		next := cur
		next.Phase = domain.PhaseRecorded
		return &domain.Transition{
			Next: next,
			Effects: []domain.Effect{
				domain.LogEvent(cur.SessionID, domain.EventDeliveryRecorded, breakdownPayload(cur.ParsedPay)),
			},
		}
	}
	return nil
}

func reduceDashPaused(m *Machine, cur domain.State, in domain.ScreenInfo) *domain.Transition {
	switch in.Screen {
	case domain.ScreenWaitingForOffer:
		tr := enterAwaitingOffer(m, cur, in, false)
		return &tr
	case domain.ScreenDashPaused:
		next := cur
		if in.Paused != nil {
			next.RemainingMS = in.Paused.Remaining.Milliseconds()
		}
		return &domain.Transition{Next: next}
	case domain.ScreenIdleMap:
		tr := enterIdleOffline(m, cur, in, false)
		return &tr
	case domain.ScreenDashSummary:
		tr := enterPostDash(m, cur, in, false)
		return &tr
	}
	return nil
}

func reducePostDash(m *Machine, cur domain.State, in domain.ScreenInfo) *domain.Transition {
	switch in.Screen {
	case domain.ScreenDashSummary:
		next := cur
		if in.Summary != nil {
			next.Totals = in.Summary
		}
		return &domain.Transition{Next: next}
	case domain.ScreenIdleMap:
		tr := enterIdleOffline(m, cur, in, false)
		return &tr
	case domain.ScreenWaitingForOffer:
		// A new dash began straight from the summary. Close out the old
		// session identity first so the fresh one is minted.
		closed := cur
		closed.SessionID = ""
		tr := enterAwaitingOffer(m, closed, in, false)
		tr.Effects = append([]domain.Effect{domain.EndSession(cur.SessionID)}, tr.Effects...)
		return &tr
	}
	return nil
}
