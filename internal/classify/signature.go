package classify

import (
	"strings"

	"github.com/sjtrotter/dashbuddy/pkg/domain"
)

// Signature is a declarative text profile for screens with no extractable
// payload. A tree matches when every required substring is present in the
// concatenated visible text, at least one any-of member is present (when
// the group is configured), no forbidden substring is present, and the
// visible-text count falls inside the bounds.
type Signature struct {
	Required  []string
	AnyOf     []string
	Forbidden []string
	MinTexts  int
	MaxTexts  int // 0 means unbounded
}

// Matches tests the signature against the visible texts of a tree.
func (s Signature) Matches(texts []string) bool {
	if len(texts) < s.MinTexts {
		return false
	}
	if s.MaxTexts > 0 && len(texts) > s.MaxTexts {
		return false
	}

	joined := strings.ToLower(strings.Join(texts, "\n"))

	for _, req := range s.Required {
		if !strings.Contains(joined, strings.ToLower(req)) {
			return false
		}
	}
	for _, bad := range s.Forbidden {
		if strings.Contains(joined, strings.ToLower(bad)) {
			return false
		}
	}
	if len(s.AnyOf) > 0 {
		found := false
		for _, any := range s.AnyOf {
			if strings.Contains(joined, strings.ToLower(any)) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// signatureMatcher classifies a static screen by signature alone.
type signatureMatcher struct {
	screen   domain.Screen
	priority int
	sig      Signature
}

func (m *signatureMatcher) Screen() domain.Screen { return m.screen }
func (m *signatureMatcher) Priority() int         { return m.priority }

func (m *signatureMatcher) Match(root *domain.Node) *domain.ScreenInfo {
	if !m.sig.Matches(root.VisibleTexts()) {
		return nil
	}
	info := domain.Simple(m.screen)
	return &info
}

// staticMatchers lists the signature-classified screens. These are the
// fallback tier: every data-carrying matcher outranks them, so a static
// signature only ever claims a tree no structural matcher wanted.
func staticMatchers() []Matcher {
	return []Matcher{
		&signatureMatcher{
			screen:   domain.ScreenMainMenu,
			priority: 20,
			sig: Signature{
				Required:  []string{"dash"},
				AnyOf:     []string{"dash now", "dash along the way", "promos"},
				Forbidden: []string{"deliver by", "delivery complete"},
				MinTexts:  3,
			},
		},
		&signatureMatcher{
			screen:   domain.ScreenEarnings,
			priority: 20,
			sig: Signature{
				Required:  []string{"earnings", "this week"},
				Forbidden: []string{"deliver by"},
				MinTexts:  2,
			},
		},
		&signatureMatcher{
			screen:   domain.ScreenSchedule,
			priority: 15,
			sig: Signature{
				Required: []string{"schedule"},
				AnyOf:    []string{"available", "scheduled"},
				MinTexts: 2,
			},
		},
		&signatureMatcher{
			screen:   domain.ScreenRatings,
			priority: 15,
			sig: Signature{
				Required: []string{"ratings"},
				AnyOf:    []string{"customer rating", "acceptance rate", "completion rate"},
				MinTexts: 2,
			},
		},
		&signatureMatcher{
			screen:   domain.ScreenAccountSettings,
			priority: 15,
			sig: Signature{
				Required:  []string{"account"},
				AnyOf:     []string{"settings", "vehicle", "payout"},
				Forbidden: []string{"deliver by"},
				MinTexts:  2,
			},
		},
		&signatureMatcher{
			screen:   domain.ScreenLogin,
			priority: 10,
			sig: Signature{
				Required: []string{"sign in"},
				AnyOf:    []string{"email", "password", "continue"},
				MinTexts: 2,
			},
		},
		&signatureMatcher{
			screen:   domain.ScreenAppStartup,
			priority: 5,
			sig: Signature{
				Required: []string{"dasher"},
				MaxTexts: 2,
			},
		},
	}
}
