// Package calendar works with civil dates. A date is a time.Time at UTC
// midnight, so equality and ordering are plain time comparisons.
package calendar

import (
	"fmt"
	"strings"
	"time"
)

const Layout = "2006-01-02"

func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Normalize keeps the calendar day of t as seen in t's own location.
func Normalize(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	y, m, d := t.Date()
	return Date(y, m, d)
}

// Today is the current calendar day in loc.
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return Normalize(now.In(loc))
}

func Parse(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	// Accept full timestamps too; dashboards sometimes send ISO strings.
	if len(raw) > len(Layout) && raw[len(Layout)] == 'T' {
		raw = raw[:len(Layout)]
	}
	t, err := time.Parse(Layout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: want YYYY-MM-DD", raw)
	}
	return t, nil
}

func Format(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return Normalize(t).Format(Layout)
}

func AddDays(t time.Time, days int) time.Time {
	return Normalize(t).AddDate(0, 0, days)
}

// Days lists every date in [from, to]; empty when to is before from.
func Days(from, to time.Time) []time.Time {
	from, to = Normalize(from), Normalize(to)
	if to.Before(from) {
		return nil
	}
	out := make([]time.Time, 0, int(to.Sub(from).Hours()/24)+1)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}

// Min returns the earlier date.
func Min(a, b time.Time) time.Time {
	if b.Before(a) {
		return b
	}
	return a
}
