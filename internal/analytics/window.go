// Package analytics derives dashboard values from the transaction journal:
// period filtering, calendar-aligned trend series and product/category rollups.
//
// Every function is pure. Dates are interpreted in now's location.
package analytics

import (
	"time"

	"posjournal/internal/core"
)

const (
	dailyBuckets    = 7
	weeklyBuckets   = 6
	monthlyBuckets  = 6
	weeklyLookback  = 7
	monthlyLookback = 30
)

// bucket is an inclusive range of calendar days.
type bucket struct {
	label      string
	start, end time.Time
}

func (b bucket) includes(day time.Time) bool {
	return !day.Before(b.start) && !day.After(b.end)
}

// windowStrategy encapsulates how one period filters and buckets.
type windowStrategy interface {
	// contains reports whether day belongs to the filter window ending today.
	contains(day, today time.Time) bool
	// buckets returns the trend buckets, oldest first, the last one covering today.
	buckets(today time.Time) []bucket
}

type dailyWindow struct{}

func (dailyWindow) contains(day, today time.Time) bool {
	return day.Equal(today)
}

func (dailyWindow) buckets(today time.Time) []bucket {
	out := make([]bucket, dailyBuckets)
	for i := range out {
		day := core.AddDays(today, -(dailyBuckets - 1 - i))
		out[i] = bucket{label: shortDate(day), start: day, end: day}
	}
	return out
}

// lookbackWindow filters on [today - days, today] and buckets by ISO week.
type lookbackWindow struct{ days int }

func (w lookbackWindow) contains(day, today time.Time) bool {
	return !day.After(today) && !day.Before(core.AddDays(today, -w.days))
}

type weeklyWindow struct{ lookbackWindow }

func (weeklyWindow) buckets(today time.Time) []bucket {
	current := core.StartOfWeek(today)
	out := make([]bucket, weeklyBuckets)
	for i := range out {
		start := core.AddDays(current, -7*(weeklyBuckets-1-i))
		end := core.AddDays(start, 6)
		out[i] = bucket{label: shortDate(start) + " - " + shortDate(end), start: start, end: end}
	}
	return out
}

type monthlyWindow struct{ lookbackWindow }

func (monthlyWindow) buckets(today time.Time) []bucket {
	current := core.StartOfMonth(today)
	out := make([]bucket, monthlyBuckets)
	for i := range out {
		// AddDate on the first of a month never overflows into the next one.
		start := current.AddDate(0, -(monthlyBuckets - 1 - i), 0)
		end := core.AddDays(start.AddDate(0, 1, 0), -1)
		out[i] = bucket{label: monthLabel(start), start: start, end: end}
	}
	return out
}

var windowStrategies = map[core.Period]windowStrategy{
	core.Daily:   dailyWindow{},
	core.Weekly:  weeklyWindow{lookbackWindow{days: weeklyLookback}},
	core.Monthly: monthlyWindow{lookbackWindow{days: monthlyLookback}},
}

// strategyFor returns the window for p. Unknown periods behave as monthly.
func strategyFor(p core.Period) windowStrategy {
	if s, ok := windowStrategies[p]; ok {
		return s
	}
	return windowStrategies[core.Monthly]
}

// shortDate formats a day as "Jan 5".
func shortDate(t time.Time) string { return t.Format("Jan 2") }

// monthLabel formats a month as "Jan 24".
func monthLabel(t time.Time) string { return t.Format("Jan 06") }
