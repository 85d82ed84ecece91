package evaluate

import (
	"github.com/sjtrotter/dashbuddy/pkg/domain"
)

// Action is the recommended response to an offer.
type Action string

const (
	ActionAccept  Action = "accept"
	ActionDecline Action = "decline"
	ActionNone    Action = "none"
)

// Quality labels an offer's score bucket, worst to best.
type Quality string

const (
	QualityBad   Quality = "bad"
	QualityPoor  Quality = "poor"
	QualityFair  Quality = "fair"
	QualityGood  Quality = "good"
	QualityGreat Quality = "great"
)

// Verdict is the outcome of scoring one offer.
type Verdict struct {
	Score   float64 `json:"score"` // 0..100
	Quality Quality `json:"quality"`
	Action  Action  `json:"action"`
}

// Strategy scores offers. Implementations are pure functions of the offer
// and their own fixed configuration; two independent models exist and
// neither is authoritative over the other.
type Strategy interface {
	Evaluate(offer domain.Offer) Verdict
}

// Decision thresholds are fixed, not configurable.
const (
	acceptThreshold  = 70.0
	declineThreshold = 30.0
)

func actionFor(score float64) Action {
	switch {
	case score >= acceptThreshold:
		return ActionAccept
	case score <= declineThreshold:
		return ActionDecline
	default:
		return ActionNone
	}
}

func qualityFor(score float64) Quality {
	switch {
	case score >= 70:
		return QualityGreat
	case score >= 60:
		return QualityGood
	case score >= 50:
		return QualityFair
	case score >= 40:
		return QualityPoor
	default:
		return QualityBad
	}
}

func verdict(score float64) Verdict {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return Verdict{Score: score, Quality: qualityFor(score), Action: actionFor(score)}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
