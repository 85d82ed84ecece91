package classify_test

import (
	"math"
	"testing"
	"time"

	"github.com/sjtrotter/dashbuddy/internal/classify"
)

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"$14.50", 14.50, true},
		{"Total earned: $1,234.56", 1234.56, true},
		{"$ 8", 8, true},
		{"ineligible", 0, false},
		{"5 items", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got := classify.ParseMoney(c.in)
		if c.ok != (got != nil) {
			t.Errorf("ParseMoney(%q) presence = %v, want %v", c.in, got != nil, c.ok)
			continue
		}
		if got != nil && *got != c.want {
			t.Errorf("ParseMoney(%q) = %v, want %v", c.in, *got, c.want)
		}
	}
}

func TestParseDistance(t *testing.T) {
	if got := classify.ParseDistance("5.2 mi"); got == nil || *got != 5.2 {
		t.Fatalf("miles parse failed: %v", got)
	}

	got := classify.ParseDistance("528 ft")
	if got == nil || math.Abs(*got-0.1) > 1e-9 {
		t.Fatalf("feet conversion failed: %v", got)
	}

	if classify.ParseDistance("5.2") != nil {
		t.Error("unitless number must not parse")
	}
	if classify.ParseDistance("mi") != nil {
		t.Error("unit without digits must not parse")
	}
}

func TestParseDeadline(t *testing.T) {
	now := time.Date(2026, 3, 14, 17, 0, 0, 0, time.UTC)

	t.Run("12 hour", func(t *testing.T) {
		got := classify.ParseDeadline("Deliver by 5:45 PM", now)
		if got == nil {
			t.Fatal("expected a deadline")
		}
		want := time.Date(2026, 3, 14, 17, 45, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Fatalf("got %v, want %v", got, want)
		}
	})

	t.Run("24 hour", func(t *testing.T) {
		got := classify.ParseDeadline("Deliver by 17:45", now)
		if got == nil || got.Hour() != 17 || got.Minute() != 45 {
			t.Fatalf("got %v", got)
		}
	})

	t.Run("rolls past midnight", func(t *testing.T) {
		late := time.Date(2026, 3, 14, 23, 50, 0, 0, time.UTC)
		got := classify.ParseDeadline("Deliver by 12:10 AM", late)
		if got == nil {
			t.Fatal("expected a deadline")
		}
		if got.Day() != 15 {
			t.Fatalf("deadline in the past must roll one day forward, got %v", got)
		}
	})

	t.Run("no clock text", func(t *testing.T) {
		if classify.ParseDeadline("Deliver promptly", now) != nil {
			t.Fatal("expected nil for text without a clock time")
		}
	})
}

func TestParseItemCount(t *testing.T) {
	n, noun, ok := classify.ParseItemCount("Burger Spot (3 items)")
	if !ok || n != 3 || noun != "item" {
		t.Fatalf("got %d %q %v", n, noun, ok)
	}

	n, noun, ok = classify.ParseItemCount("(2 orders)")
	if !ok || n != 2 || noun != "order" {
		t.Fatalf("got %d %q %v", n, noun, ok)
	}

	if _, _, ok := classify.ParseItemCount("3 items"); ok {
		t.Error("count without parentheses must not parse")
	}
}

func TestParsePauseRemaining(t *testing.T) {
	if got := classify.ParsePauseRemaining("28:30"); got != 28*time.Minute+30*time.Second {
		t.Fatalf("mm:ss parse = %v", got)
	}
	if got := classify.ParsePauseRemaining("resumes in 15 min"); got != 15*time.Minute {
		t.Fatalf("min parse = %v", got)
	}
	if got := classify.ParsePauseRemaining("paused"); got != 0 {
		t.Fatalf("expected zero, got %v", got)
	}
}
