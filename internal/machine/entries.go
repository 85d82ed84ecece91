package machine

import (
	"fmt"

	"github.com/sjtrotter/dashbuddy/internal/evaluate"
	"github.com/sjtrotter/dashbuddy/pkg/domain"
)

// Entry factories construct each state from the snapshot that implies it.
// They serve three callers: ordinary reducer transitions, forced anchor
// transitions, and restart recovery. With recovery set, every one-shot
// effect is suppressed: the state is reconstructed, not re-entered.

func enterIdleOffline(m *Machine, prev domain.State, in domain.ScreenInfo, recovery bool) domain.Transition {
	next := domain.State{Kind: domain.StateIdleOffline}
	if in.Idle != nil {
		next.Zone = in.Idle.Zone
		next.PayMode = in.Idle.PayMode
	}

	var effects []domain.Effect
	if !recovery && prev.InSession() {
		// PostDash already logged the stop and halted distance tracking
		// when the summary appeared.
		if prev.Kind != domain.StatePostDash {
			effects = append(effects,
				domain.LogEvent(prev.SessionID, domain.EventSessionStop, nil),
				domain.StopDistanceTracking(),
			)
		}
		effects = append(effects, domain.EndSession(prev.SessionID))
	}
	return domain.Transition{Next: next, Effects: effects}
}

func enterAwaitingOffer(m *Machine, prev domain.State, in domain.ScreenInfo, recovery bool) domain.Transition {
	next := domain.State{Kind: domain.StateAwaitingOffer, SessionID: prev.SessionID}
	if in.Waiting != nil {
		next.RunningPay = in.Waiting.RunningPay
		next.WaitEstimate = in.Waiting.WaitEstimate
		next.HeadingBack = in.Waiting.HeadingBack
	}

	fresh := next.SessionID == ""
	if fresh {
		next.SessionID = m.ids.NewSessionID()
	}

	var effects []domain.Effect
	if !recovery {
		if fresh {
			effects = append(effects,
				domain.LogEvent(next.SessionID, domain.EventSessionStart, map[string]any{
					"zone": prev.Zone, "pay_mode": prev.PayMode,
				}),
				domain.StartDistanceTracking(),
				domain.UpdateConversation("Dash started. Watching for offers.", conversationPersona),
			)
		}
		if prev.Kind == domain.StateDashPaused {
			effects = append(effects, domain.LogEvent(next.SessionID, domain.EventDashResumed, nil))
		}
	}
	return domain.Transition{Next: next, Effects: effects}
}

func enterOfferPresented(m *Machine, prev domain.State, in domain.ScreenInfo, recovery bool) domain.Transition {
	offer := in.Offer
	next := domain.State{Kind: domain.StateOfferPresented, SessionID: prev.SessionID}
	if offer == nil {
		return domain.Transition{Next: next}
	}

	next.OfferHash = offer.Hash
	next.Amount = offer.PayAmount
	if merchants := offer.Merchants(); len(merchants) > 0 {
		next.Merchant = merchants[0]
	}

	var effects []domain.Effect
	if !recovery {
		effects = append(effects,
			domain.LogEvent(next.SessionID, domain.EventOfferReceived, offerPayload(offer)),
			domain.CaptureArtifact("offer_"+offer.Hash),
		)
		if m.strategy != nil {
			v := m.strategy.Evaluate(*offer)
			effects = append(effects,
				domain.LogEvent(next.SessionID, domain.EventOfferEvaluated, map[string]any{
					"score": v.Score, "quality": string(v.Quality), "action": string(v.Action),
				}),
				domain.UpdateConversation(verdictMessage(offer, v), conversationPersona),
			)
		}
	}
	return domain.Transition{Next: next, Effects: effects}
}

func enterOnPickup(m *Machine, prev domain.State, in domain.ScreenInfo, recovery bool) domain.Transition {
	next := domain.State{Kind: domain.StateOnPickup, SessionID: prev.SessionID}
	if in.Pickup != nil {
		next.StoreName = in.Pickup.StoreName
		next.CustomerHash = in.Pickup.CustomerHash
		next.PickupStatus = in.Pickup.Status
	}

	var effects []domain.Effect
	if !recovery {
		effects = append(effects,
			domain.LogEvent(next.SessionID, domain.EventPickupStarted, map[string]any{
				"store": next.StoreName, "status": next.PickupStatus,
			}),
		)
	}
	return domain.Transition{Next: next, Effects: effects}
}

func enterOnDelivery(m *Machine, prev domain.State, in domain.ScreenInfo, recovery bool) domain.Transition {
	next := domain.State{Kind: domain.StateOnDelivery, SessionID: prev.SessionID}
	if in.Dropoff != nil {
		next.CustomerHash = in.Dropoff.CustomerHash
		next.AddressHash = in.Dropoff.AddressHash
	}

	var effects []domain.Effect
	if !recovery {
		effects = append(effects,
			domain.LogEvent(next.SessionID, domain.EventPickupConfirmed, map[string]any{
				"store": prev.StoreName,
			}),
		)
	}
	return domain.Transition{Next: next, Effects: effects}
}

func enterPostDelivery(m *Machine, prev domain.State, in domain.ScreenInfo, recovery bool) domain.Transition {
	next := domain.State{Kind: domain.StatePostDelivery, SessionID: prev.SessionID}
	if prev.Kind == domain.StateOnPickup || prev.Kind == domain.StateOnDelivery {
		if prev.StoreName != "" {
			next.Merchants = []string{prev.StoreName}
		}
	}

	var effects []domain.Effect
	switch {
	case in.Screen == domain.ScreenDeliverySummaryCollapsed:
		// Freshly collapsed receipt: let the UI settle before looking for
		// the expand control.
		next.Phase = domain.PhaseStabilizing
		if !recovery {
			effects = append(effects, domain.ScheduleTimeout(stabilizeDelay, domain.TimeoutStabilize))
		}
	default:
		next.Phase = domain.PhaseVerifying
		if in.Receipt != nil && in.Receipt.Breakdown != nil {
			next.ParsedPay = in.Receipt.Breakdown
			if !recovery {
				effects = append(effects, domain.ScheduleTimeout(verifyDelay, domain.TimeoutVerify))
			}
		}
	}
	return domain.Transition{Next: next, Effects: effects}
}

func enterDashPaused(m *Machine, prev domain.State, in domain.ScreenInfo, recovery bool) domain.Transition {
	next := domain.State{Kind: domain.StateDashPaused, SessionID: prev.SessionID}
	if in.Paused != nil {
		next.RemainingMS = in.Paused.Remaining.Milliseconds()
	}

	var effects []domain.Effect
	if !recovery {
		effects = append(effects,
			domain.LogEvent(next.SessionID, domain.EventDashPaused, map[string]any{
				"remaining_ms": next.RemainingMS,
			}),
		)
	}
	return domain.Transition{Next: next, Effects: effects}
}

func enterPostDash(m *Machine, prev domain.State, in domain.ScreenInfo, recovery bool) domain.Transition {
	next := domain.State{Kind: domain.StatePostDash, SessionID: prev.SessionID}
	if in.Summary != nil {
		next.Totals = in.Summary
	}

	var effects []domain.Effect
	if !recovery && prev.InSession() {
		effects = append(effects,
			domain.LogEvent(prev.SessionID, domain.EventSessionStop, summaryPayload(next.Totals)),
			domain.StopDistanceTracking(),
		)
	}
	return domain.Transition{Next: next, Effects: effects}
}

func offerPayload(o *domain.Offer) map[string]any {
	p := map[string]any{
		"hash":       o.Hash,
		"merchants":  o.Merchants(),
		"item_count": o.ItemCount,
	}
	if o.PayAmount != nil {
		p["pay"] = *o.PayAmount
	}
	if o.DistanceMiles != nil {
		p["distance_miles"] = *o.DistanceMiles
	}
	if o.DueBy != nil {
		p["due_by"] = o.DueBy.Format("15:04")
	}
	if len(o.Badges) > 0 {
		p["badges"] = o.Badges
	}
	return p
}

func summaryPayload(t *domain.DashSummaryTotals) map[string]any {
	if t == nil {
		return nil
	}
	p := map[string]any{"deliveries": t.Deliveries}
	if t.TotalPay != nil {
		p["total_pay"] = *t.TotalPay
	}
	if t.ActiveTime != "" {
		p["active_time"] = t.ActiveTime
	}
	return p
}

func breakdownPayload(b *domain.PayBreakdown) map[string]any {
	if b == nil {
		return nil
	}
	items := make([]map[string]any, 0, len(b.Items))
	for _, it := range b.Items {
		items = append(items, map[string]any{
			"label": it.Label, "amount": it.Amount, "section": string(it.Section),
		})
	}
	return map[string]any{"total": b.Total, "items": items}
}

func verdictMessage(o *domain.Offer, v evaluate.Verdict) string {
	pay := "?"
	if o.PayAmount != nil {
		pay = fmt.Sprintf("$%.2f", *o.PayAmount)
	}
	switch v.Action {
	case evaluate.ActionAccept:
		return fmt.Sprintf("Offer %s looks %s (%.0f): accept.", pay, v.Quality, v.Score)
	case evaluate.ActionDecline:
		return fmt.Sprintf("Offer %s looks %s (%.0f): decline.", pay, v.Quality, v.Score)
	default:
		return fmt.Sprintf("Offer %s scored %.0f (%s). Your call.", pay, v.Score, v.Quality)
	}
}
