// Package dates provides the date parsing and interval helpers shared by the
// fusion, risk, and summary packages. Callers pass an explicit "now" so the
// range checks stay deterministic under test.
package dates

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseYMD parses a provider date string of the form "YYYY", "YYYY-MM", or
// "YYYY-MM-DD" into a UTC time. Missing month/day default to 1. Returns
// ok=false for empty or unparseable input.
func ParseYMD(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	parts := strings.SplitN(s, "-", 3)
	year, err := strconv.Atoi(parts[0])
	if err != nil || year <= 0 {
		return time.Time{}, false
	}
	month, day := 1, 1
	if len(parts) > 1 {
		if month, err = strconv.Atoi(parts[1]); err != nil || month < 1 || month > 12 {
			return time.Time{}, false
		}
	}
	if len(parts) > 2 {
		// Tolerate trailing time components like "2020-01-02T15:04:05Z".
		dayStr := parts[2]
		if i := strings.IndexAny(dayStr, "T "); i >= 0 {
			dayStr = dayStr[:i]
		}
		if day, err = strconv.Atoi(dayStr); err != nil || day < 1 || day > 31 {
			return time.Time{}, false
		}
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

// MonthsBetween returns whole calendar months between start and end, clamped
// to >= 0. An empty or invalid start yields 0; an empty end means now.
func MonthsBetween(start, end string, now time.Time) int {
	a, ok := ParseYMD(start)
	if !ok {
		return 0
	}
	b := now
	if end != "" {
		parsed, ok := ParseYMD(end)
		if !ok {
			return 0
		}
		b = parsed
	}
	months := (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
	if months < 0 {
		return 0
	}
	return months
}

// WithinYears reports whether date falls on or after now minus the given
// number of years. Empty or invalid dates are never in range.
func WithinYears(date string, years int, now time.Time) bool {
	d, ok := ParseYMD(date)
	if !ok {
		return false
	}
	cutoff := now.AddDate(-years, 0, 0)
	return !d.Before(cutoff)
}

// YearsBetween returns the span between two times in years, rounded to one
// decimal place, clamped to >= 0.
func YearsBetween(a, b time.Time) float64 {
	if a.IsZero() || b.IsZero() {
		return 0
	}
	years := b.Sub(a).Hours() / (365.25 * 24)
	if years < 0 {
		return 0
	}
	return float64(int(years*10+0.5)) / 10
}

var shortMonths = []string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// FormatMonthYear renders a provider date as "Jan 2020". Unparseable input
// is returned verbatim so the report never loses data.
func FormatMonthYear(s string) string {
	if s == "" {
		return ""
	}
	d, ok := ParseYMD(s)
	if !ok {
		return s
	}
	return fmt.Sprintf("%s %d", shortMonths[d.Month()-1], d.Year())
}

// FormatRange renders "Jan 2020 – Mar 2022"; an open or current end date
// renders as "Present".
func FormatRange(start, end string, now time.Time) string {
	startStr := FormatMonthYear(start)
	if end == "" {
		return startStr
	}
	endStr := "Present"
	if d, ok := ParseYMD(end); !ok || !sameDay(d, now) {
		endStr = FormatMonthYear(end)
	}
	if startStr == "" {
		return endStr
	}
	return startStr + " – " + endStr
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
