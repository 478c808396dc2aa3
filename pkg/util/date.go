package util

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format used by FRED and the output artifact.
const DateLayout = "2006-01-02"

// ParseDate parses YYYY-MM-DD into a UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// ParseDateDefault parses s or returns def if s is empty or invalid.
func ParseDateDefault(s string, def time.Time) time.Time {
	if s == "" {
		return def
	}
	t, err := ParseDate(s)
	if err != nil {
		return def
	}
	return t
}

// FormatDate formats t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// TruncateDay returns the UTC midnight of the calendar day t falls on in its own location.
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysInclusive counts calendar days in [start, end]. Returns 0 when end is before start.
func DaysInclusive(start, end time.Time) int {
	s, e := TruncateDay(start), TruncateDay(end)
	if e.Before(s) {
		return 0
	}
	// UTC midnights are always a whole number of 24h apart
	return int(e.Sub(s)/(24*time.Hour)) + 1
}

// TrailingWindow returns [today-days, today] as UTC midnights, where today is
// the UTC calendar date of now.
func TrailingWindow(now time.Time, days int) (time.Time, time.Time) {
	end := TruncateDay(now.UTC())
	return end.AddDate(0, 0, -days), end
}
