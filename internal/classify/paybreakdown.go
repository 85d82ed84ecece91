package classify

import (
	"math"
	"strings"

	"github.com/sjtrotter/dashbuddy/pkg/domain"
)

// breakdownTolerance is the largest absolute difference allowed between
// the summed items and a displayed total for the parse to be accepted.
const breakdownTolerance = 0.01

const ineligibleSentinel = "ineligible"

// sectionHeaders switch the parse mode. Text between two headers belongs
// to the section the preceding header opened.
var sectionHeaders = map[string]domain.PaySection{
	"platform pay":  domain.PaySectionBase,
	"customer tips": domain.PaySectionTips,
	"customer tip":  domain.PaySectionTips,
}

// totalLabels name the independently-displayed totals a parse must be
// corroborated against. A money value following one of these is a total
// candidate, never a breakdown item.
var totalLabels = map[string]bool{
	"total":               true,
	"total earned":        true,
	"your earnings":       true,
	"guaranteed earnings": true,
}

// ParseBreakdown walks the receipt's visible text as a mode-tagged linear
// sequence of (label, value) pairs and validates the result against a
// displayed total.
//
// The validation is load-bearing: a partially-wrong monetary record is
// worse than no record, so when no candidate total matches the summed
// items within a cent, the entire parse is discarded and the caller gets
// nil; the owning state retries on the next snapshot.
func ParseBreakdown(root *domain.Node) *domain.PayBreakdown {
	texts := root.VisibleTexts()

	var (
		items        []domain.PayItem
		candidates   []float64
		mode         domain.PaySection
		modeActive   bool
		pendingLabel string
		pendingTotal bool
	)

	for _, raw := range texts {
		t := strings.TrimSpace(raw)
		lower := strings.ToLower(t)

		if section, ok := matchSectionHeader(lower); ok {
			mode = section
			modeActive = true
			pendingLabel = ""
			pendingTotal = false
			continue
		}

		if totalLabels[lower] {
			pendingLabel = ""
			pendingTotal = true
			continue
		}

		if v := ParseMoney(t); v != nil {
			switch {
			case pendingTotal:
				candidates = append(candidates, *v)
				pendingTotal = false
			case modeActive && pendingLabel != "":
				items = append(items, domain.PayItem{Label: pendingLabel, Amount: *v, Section: mode})
				pendingLabel = ""
			default:
				// A money value with no label in scope can still be the
				// displayed total (e.g. a headline amount).
				candidates = append(candidates, *v)
			}
			continue
		}

		if modeActive && pendingLabel != "" && strings.Contains(lower, ineligibleSentinel) {
			items = append(items, domain.PayItem{Label: pendingLabel, Amount: 0, Section: mode})
			pendingLabel = ""
			continue
		}

		if modeActive {
			pendingLabel = t
			pendingTotal = false
		}
	}

	if len(items) == 0 {
		return nil
	}

	var sum float64
	for _, it := range items {
		sum += it.Amount
	}
	for _, c := range candidates {
		if math.Abs(c-sum) <= breakdownTolerance {
			return &domain.PayBreakdown{Items: items, Total: c}
		}
	}
	return nil
}

func matchSectionHeader(lower string) (domain.PaySection, bool) {
	for h, section := range sectionHeaders {
		if strings.Contains(lower, h) {
			return section, true
		}
	}
	return "", false
}
