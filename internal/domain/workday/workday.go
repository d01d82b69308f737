package workday

import (
	"math"
	"strings"
	"time"
)

// DateLayout is the ISO calendar-date layout used for project dates.
const DateLayout = "2006-01-02"

// Span describes a date range in business days and calendar weeks.
type Span struct {
	BusinessDays int     `json:"businessDays"`
	Weeks        float64 `json:"weeks"`
}

// Compute counts the weekdays between start and end, both inclusive.
// Malformed dates and reversed ranges yield a zero Span.
func Compute(start, end string) Span {
	from, ok := ParseDate(start)
	if !ok {
		return Span{}
	}
	to, ok := ParseDate(end)
	if !ok {
		return Span{}
	}
	if to.Before(from) {
		return Span{}
	}

	count := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if IsBusinessDay(d) {
			count++
		}
	}

	totalDays := math.Ceil(to.Sub(from).Hours()/24) + 1
	weeks := math.Round(totalDays/7*10) / 10

	return Span{BusinessDays: count, Weeks: weeks}
}

// IsBusinessDay reports whether d falls on Monday through Friday.
func IsBusinessDay(d time.Time) bool {
	wd := d.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// ParseDate parses an ISO calendar date in UTC. A trailing time component
// (as produced by JSON timestamps) is ignored.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if len(s) > len(DateLayout) && s[len(DateLayout)] == 'T' {
		s = s[:len(DateLayout)]
	}
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDate renders t as an ISO calendar date.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
