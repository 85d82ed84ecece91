package classify

import (
	"github.com/sjtrotter/dashbuddy/pkg/domain"
)

// Matcher is one independent classification rule. Match is pure and total:
// it inspects the tree, returns the structured result when its screen is
// recognized, and nil otherwise. When a required anchor is absent it must
// return nil rather than a best-effort guess; field-level extraction
// failures degrade to empty fields, not to a failed match.
type Matcher interface {
	// Screen is the identity this matcher classifies.
	Screen() domain.Screen

	// Priority orders evaluation; higher runs first. Ties are broken by
	// registration order.
	Priority() int

	// Match returns the classified result or nil.
	Match(root *domain.Node) *domain.ScreenInfo
}
