package classify_test

import (
	"testing"

	"github.com/sjtrotter/dashbuddy/internal/classify"
	"github.com/sjtrotter/dashbuddy/pkg/domain"
)

func TestSignatureMatches(t *testing.T) {
	sig := classify.Signature{
		Required:  []string{"earnings"},
		AnyOf:     []string{"this week", "last week"},
		Forbidden: []string{"deliver by"},
		MinTexts:  2,
	}

	t.Run("match", func(t *testing.T) {
		if !sig.Matches([]string{"Earnings", "This Week: $412.50"}) {
			t.Fatal("expected a match")
		}
	})
	t.Run("missing required", func(t *testing.T) {
		if sig.Matches([]string{"Ratings", "This week"}) {
			t.Fatal("required substring absent")
		}
	})
	t.Run("missing any-of", func(t *testing.T) {
		if sig.Matches([]string{"Earnings", "All time"}) {
			t.Fatal("no any-of member present")
		}
	})
	t.Run("forbidden present", func(t *testing.T) {
		if sig.Matches([]string{"Earnings", "This week", "Deliver by 5:45 PM"}) {
			t.Fatal("forbidden substring present")
		}
	})
	t.Run("too few texts", func(t *testing.T) {
		if sig.Matches([]string{"Earnings this week"}) {
			t.Fatal("below MinTexts")
		}
	})
}

func TestSignatureMaxTexts(t *testing.T) {
	sig := classify.Signature{Required: []string{"dasher"}, MaxTexts: 2}

	if !sig.Matches([]string{"Dasher"}) {
		t.Fatal("expected a match")
	}
	if sig.Matches([]string{"Dasher", "a", "b"}) {
		t.Fatal("above MaxTexts")
	}
}

func TestStaticScreens(t *testing.T) {
	reg := testRegistry()

	cases := []struct {
		name  string
		tree  *domain.Node
		want  domain.Screen
	}{
		{
			name: "earnings",
			tree: group(text("Earnings"), text("This week"), text("$412.50")),
			want: domain.ScreenEarnings,
		},
		{
			name: "schedule",
			tree: group(text("Schedule"), text("Available times")),
			want: domain.ScreenSchedule,
		},
		{
			name: "ratings",
			tree: group(text("Ratings"), text("Customer rating 4.9")),
			want: domain.ScreenRatings,
		},
		{
			name: "login",
			tree: group(text("Sign in"), text("Email"), text("Password")),
			want: domain.ScreenLogin,
		},
		{
			name: "startup splash",
			tree: group(text("Dasher")),
			want: domain.ScreenAppStartup,
		},
		{
			name: "unknown",
			tree: group(text("Something else entirely")),
			want: domain.ScreenUnknown,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := reg.Identify(c.tree); got.Screen != c.want {
				t.Fatalf("screen = %v, want %v", got.Screen, c.want)
			}
		})
	}
}
