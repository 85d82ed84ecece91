package classify

import (
	"sort"
	"strings"

	"github.com/sjtrotter/dashbuddy/pkg/domain"
)

// badgeVocabulary maps card keywords to badges. Detection is a substring
// scan over all visible text in scope; every matching keyword is recorded,
// not just the first.
var badgeVocabulary = map[string]domain.Badge{
	"red card":    domain.BadgeCardRequired,
	"large order": domain.BadgeLargeOrder,
	"alcohol":     domain.BadgeAlcohol,
}

// DetectBadges scans the given visible texts for the badge vocabulary and
// returns the matches as a sorted, de-duplicated set.
func DetectBadges(texts []string) []domain.Badge {
	seen := make(map[domain.Badge]struct{})
	for _, t := range texts {
		lower := strings.ToLower(t)
		for kw, b := range badgeVocabulary {
			if strings.Contains(lower, kw) {
				seen[b] = struct{}{}
			}
		}
	}
	if len(seen) == 0 {
		return nil
	}
	out := make([]domain.Badge, 0, len(seen))
	for b := range seen {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
