package evaluate

import (
	"github.com/sjtrotter/dashbuddy/pkg/domain"
)

// Metric names one scored dimension of an offer.
type Metric string

const (
	MetricPayout     Metric = "payout"
	MetricDistance   Metric = "distance"
	MetricTime       Metric = "time"
	MetricPayPerMile Metric = "pay_per_mile"
	MetricPayPerHour Metric = "pay_per_hour"
	MetricItemCount  Metric = "item_count"
)

// calibration is the fixed (min, max) pair a raw metric value is linearly
// normalized against. Values outside the pair clamp to the ends.
type calibration struct {
	min, max float64
	// inverted metrics score high when the raw value is low.
	inverted bool
}

var weightedCalibrations = map[Metric]calibration{
	MetricPayout:     {min: 2, max: 15},
	MetricDistance:   {min: 1, max: 12, inverted: true},
	MetricTime:       {min: 10, max: 60, inverted: true},
	MetricPayPerMile: {min: 0.5, max: 3},
	MetricPayPerHour: {min: 8, max: 35},
	MetricItemCount:  {min: 1, max: 20, inverted: true},
}

var weightedBaseWeights = map[Metric]float64{
	MetricPayout:     0.25,
	MetricDistance:   0.15,
	MetricTime:       0.15,
	MetricPayPerMile: 0.20,
	MetricPayPerHour: 0.15,
	MetricItemCount:  0.10,
}

// Weighted is the weighted-normalized scoring model: each metric is
// normalized to [0,1] against its calibration pair, multiplied by a
// weight, summed, and scaled to 100.
type Weighted struct {
	// Prioritized doubles the weight of one user-chosen metric.
	Prioritized Metric
}

// Evaluate scores the offer. When any component order is a shop-for-items
// order, item count weighs more and distance/time weigh less: shopping
// time dominates driving time on those offers.
func (w *Weighted) Evaluate(offer domain.Offer) Verdict {
	weights := make(map[Metric]float64, len(weightedBaseWeights))
	for m, v := range weightedBaseWeights {
		weights[m] = v
	}
	if _, ok := weights[w.Prioritized]; ok {
		weights[w.Prioritized] *= 2
	}
	if offer.HasShopOrder() {
		weights[MetricItemCount] *= 2
		weights[MetricDistance] *= 0.5
		weights[MetricTime] *= 0.5
	}

	var totalWeight, weightedSum float64
	for m, weight := range weights {
		weightedSum += weight * subScore(m, offer)
		totalWeight += weight
	}
	if totalWeight == 0 {
		return verdict(0)
	}
	return verdict(weightedSum / totalWeight * 100)
}

// subScore normalizes one metric to [0,1]. A metric the offer carries no
// data for scores neutral rather than dragging the offer to either end.
func subScore(m Metric, offer domain.Offer) float64 {
	raw, ok := MetricValue(m, offer)
	if !ok {
		return 0.5
	}
	cal := weightedCalibrations[m]
	norm := clamp01((raw - cal.min) / (cal.max - cal.min))
	if cal.inverted {
		return 1 - norm
	}
	return norm
}

// MetricValue extracts the raw value of a metric from an offer. The second
// return is false when the offer lacks the data to compute it.
func MetricValue(m Metric, offer domain.Offer) (float64, bool) {
	switch m {
	case MetricPayout:
		if offer.PayAmount != nil {
			return *offer.PayAmount, true
		}
	case MetricDistance:
		if offer.DistanceMiles != nil {
			return *offer.DistanceMiles, true
		}
	case MetricTime:
		if offer.MinutesToComplete != nil {
			return *offer.MinutesToComplete, true
		}
	case MetricPayPerMile:
		if offer.PayAmount != nil && offer.DistanceMiles != nil && *offer.DistanceMiles > 0 {
			return *offer.PayAmount / *offer.DistanceMiles, true
		}
	case MetricPayPerHour:
		if offer.PayAmount != nil && offer.MinutesToComplete != nil && *offer.MinutesToComplete > 0 {
			return *offer.PayAmount / *offer.MinutesToComplete * 60, true
		}
	case MetricItemCount:
		if offer.ItemCount > 0 {
			return float64(offer.ItemCount), true
		}
	}
	return 0, false
}
