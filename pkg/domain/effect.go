package domain

import "time"

// EffectKind identifies one variant of Effect.
type EffectKind string

const (
	EffectLogEvent           EffectKind = "log_event"
	EffectUpdateConversation EffectKind = "update_conversation"
	EffectScheduleTimeout    EffectKind = "schedule_timeout"
	EffectCaptureArtifact    EffectKind = "capture_artifact"
	EffectStartDistance      EffectKind = "start_distance_tracking"
	EffectStopDistance       EffectKind = "stop_distance_tracking"
	EffectInvokeClick        EffectKind = "invoke_click"
	EffectEndSession         EffectKind = "end_session"
)

// TimeoutTag names a scheduled timeout. Timer identity is the pair
// (state kind, tag); scheduling again for the same pair cancels the
// pending timer.
type TimeoutTag string

const (
	TimeoutStabilize TimeoutTag = "stabilize"
	TimeoutVerify    TimeoutTag = "verify"
)

// Effect is a one-shot intent emitted by the state machine and interpreted
// by external collaborators. Effects are data, never actions: executing one
// must not synchronously re-enter the machine.
type Effect struct {
	Kind EffectKind `json:"kind"`

	// EffectLogEvent
	Event     EventType      `json:"event,omitempty"`
	Payload   map[string]any `json:"payload,omitempty"`
	SessionID string         `json:"session_id,omitempty"`

	// EffectUpdateConversation
	Text    string `json:"text,omitempty"`
	Persona string `json:"persona,omitempty"`

	// EffectScheduleTimeout
	Delay time.Duration `json:"delay,omitempty"`
	Tag   TimeoutTag    `json:"tag,omitempty"`

	// EffectCaptureArtifact
	Label string `json:"label,omitempty"`

	// EffectInvokeClick
	Target *Node `json:"-"`
}

func LogEvent(sessionID string, event EventType, payload map[string]any) Effect {
	return Effect{Kind: EffectLogEvent, SessionID: sessionID, Event: event, Payload: payload}
}

func UpdateConversation(text, persona string) Effect {
	return Effect{Kind: EffectUpdateConversation, Text: text, Persona: persona}
}

func ScheduleTimeout(delay time.Duration, tag TimeoutTag) Effect {
	return Effect{Kind: EffectScheduleTimeout, Delay: delay, Tag: tag}
}

func CaptureArtifact(label string) Effect {
	return Effect{Kind: EffectCaptureArtifact, Label: label}
}

func StartDistanceTracking() Effect {
	return Effect{Kind: EffectStartDistance}
}

func StopDistanceTracking() Effect {
	return Effect{Kind: EffectStopDistance}
}

func InvokeClick(target *Node) Effect {
	return Effect{Kind: EffectInvokeClick, Target: target}
}

func EndSession(sessionID string) Effect {
	return Effect{Kind: EffectEndSession, SessionID: sessionID}
}
