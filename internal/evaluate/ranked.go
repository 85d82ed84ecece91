package evaluate

import (
	"github.com/sjtrotter/dashbuddy/pkg/domain"
)

// Rule is one entry of the rank-ordered rule model.
type Rule struct {
	Metric Metric  `json:"metric"`
	Target float64 `json:"target"`
	// HigherIsBetter scores value/target; otherwise the rule is a limit:
	// exceeding the target scores zero.
	HigherIsBetter bool `json:"higher_is_better"`
}

// Ranked is the rank-weighted rule model. Rules are ordered by the user;
// rank 0 carries the highest weight. It shares nothing with Weighted:
// separate calibration, separate semantics, and deliberately no
// cross-validation between the two.
type Ranked struct {
	Rules []Rule

	// Protect forces a maximal score and an accept outcome, overriding
	// every rule.
	Protect bool

	// DisallowShopping hard-rejects any offer with a shop-for-items
	// component.
	DisallowShopping bool
}

// Evaluate scores the offer against the ranked rules.
//
// Rank weight is (N - rank) / (N*(N+1)/2), so the weights of N rules sum
// to 1. A zero score on a limit rule ranked in the top half is a hard
// reject regardless of every other rule.
func (r *Ranked) Evaluate(offer domain.Offer) Verdict {
	if r.Protect {
		return verdict(100)
	}
	if r.DisallowShopping && offer.HasShopOrder() {
		return verdict(0)
	}

	n := len(r.Rules)
	if n == 0 {
		return verdict(50)
	}

	denom := float64(n * (n + 1) / 2)
	var total float64

	for rank, rule := range r.Rules {
		score := ruleScore(rule, offer)

		if score == 0 && !rule.HigherIsBetter && topHalf(rank, n) {
			return verdict(0)
		}

		weight := float64(n-rank) / denom
		total += weight * score
	}
	return verdict(total * 100)
}

func topHalf(rank, n int) bool {
	return rank < (n+1)/2
}

func ruleScore(rule Rule, offer domain.Offer) float64 {
	if rule.Target <= 0 {
		return 0
	}
	value, ok := MetricValue(rule.Metric, offer)
	if !ok {
		// No data: a limit rule passes vacuously at full score, a
		// higher-is-better rule earns nothing.
		if rule.HigherIsBetter {
			return 0
		}
		return 1
	}

	if rule.HigherIsBetter {
		return clamp01(value / rule.Target)
	}
	if value > rule.Target {
		return 0
	}
	return 1 - value/rule.Target
}
