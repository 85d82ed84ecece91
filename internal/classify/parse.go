package classify

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	moneyRe    = regexp.MustCompile(`\$\s*([0-9][0-9,]*(?:\.[0-9]+)?)`)
	distanceRe = regexp.MustCompile(`([0-9]+(?:\.[0-9]+)?)\s*(mi|ft)\b`)
	clock12Re  = regexp.MustCompile(`\b([0-9]{1,2}):([0-9]{2})\s*([AaPp])\.?[Mm]\.?`)
	clock24Re  = regexp.MustCompile(`\b([0-9]{1,2}):([0-9]{2})\b`)
	countRe    = regexp.MustCompile(`\(\s*([0-9]+)\s+(item|order)s?\s*\)`)
	pauseRe    = regexp.MustCompile(`\b([0-9]{1,2}):([0-9]{2})\b`)
	pauseMinRe = regexp.MustCompile(`([0-9]+)\s*min`)
)

// ParseMoney extracts a dollar amount from s: leading currency symbol,
// optional thousands separators, decimal fraction. Returns nil when no
// parseable amount is present; it never fails loudly, because the text
// comes from a scraped UI.
func ParseMoney(s string) *float64 {
	m := moneyRe.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return nil
	}
	return &v
}

// ParseDistance extracts a distance in miles. Two units are understood:
// "mi" is taken as-is and "ft" is converted at 5280 ft per mile. Returns
// nil when s carries no digit or no recognized unit.
func ParseDistance(s string) *float64 {
	m := distanceRe.FindStringSubmatch(strings.ToLower(s))
	if m == nil {
		return nil
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	if m[2] == "ft" {
		v /= 5280
	}
	return &v
}

// ParseDeadline reads a clock time (12-hour with meridiem, or 24-hour)
// out of s and anchors it to now's date. A result already in the past is
// rolled forward exactly one day: the app only ever shows same-day or
// next-few-minutes deadlines, so a "past" time means it crossed midnight.
func ParseDeadline(s string, now time.Time) *time.Time {
	var hour, minute int

	if m := clock12Re.FindStringSubmatch(s); m != nil {
		h, _ := strconv.Atoi(m[1])
		mm, _ := strconv.Atoi(m[2])
		if h < 1 || h > 12 || mm > 59 {
			return nil
		}
		hour = h % 12
		if strings.EqualFold(m[3], "p") {
			hour += 12
		}
		minute = mm
	} else if m := clock24Re.FindStringSubmatch(s); m != nil {
		h, _ := strconv.Atoi(m[1])
		mm, _ := strconv.Atoi(m[2])
		if h > 23 || mm > 59 {
			return nil
		}
		hour = h
		minute = mm
	} else {
		return nil
	}

	t := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if t.Before(now) {
		t = t.AddDate(0, 0, 1)
	}
	return &t
}

// ParseItemCount reads a "(3 items)" or "(2 orders)" style count label.
// The second return names the counted noun ("item" or "order").
func ParseItemCount(s string) (int, string, bool) {
	m := countRe.FindStringSubmatch(strings.ToLower(s))
	if m == nil {
		return 0, "", false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, "", false
	}
	return n, m[2], true
}

// ParsePauseRemaining reads a remaining-pause duration, either "mm:ss" or
// "N min". Returns zero when neither form is present.
func ParsePauseRemaining(s string) time.Duration {
	if m := pauseRe.FindStringSubmatch(s); m != nil {
		min, _ := strconv.Atoi(m[1])
		sec, _ := strconv.Atoi(m[2])
		if sec < 60 {
			return time.Duration(min)*time.Minute + time.Duration(sec)*time.Second
		}
	}
	if m := pauseMinRe.FindStringSubmatch(strings.ToLower(s)); m != nil {
		min, _ := strconv.Atoi(m[1])
		return time.Duration(min) * time.Minute
	}
	return 0
}

// ParseCount reads a leading integer out of s ("5 deliveries" -> 5).
func ParseCount(s string) (int, bool) {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, false
	}
	return n, true
}
