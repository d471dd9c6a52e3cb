// Package timeutil provides UTC calendar-day helpers for Stratos.
// Streak continuity is defined in whole calendar days (UTC), so every
// date comparison in the progression engine goes through this package.
// No external dependencies - uses only standard library.
package timeutil

import (
	"time"
)

// DateOnly truncates a time to midnight UTC, keeping only the calendar date.
func DateOnly(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar date (midnight UTC).
func Today() time.Time {
	return DateOnly(time.Now())
}

// DaysBetween returns the whole-day difference between two dates (b - a).
// Both arguments are truncated to midnight UTC first, so two times on the
// same calendar day always yield 0 regardless of the time of day.
func DaysBetween(a, b time.Time) int {
	da := DateOnly(a)
	db := DateOnly(b)
	return int(db.Sub(da).Hours() / 24)
}

// SameDay reports whether two times fall on the same UTC calendar day.
func SameDay(a, b time.Time) bool {
	return DaysBetween(a, b) == 0
}

// IsYesterday reports whether a is exactly one calendar day before b.
func IsYesterday(a, b time.Time) bool {
	return DaysBetween(a, b) == 1
}

// FormatDate formats a time as an ISO calendar date (2006-01-02).
func FormatDate(t time.Time) string {
	return DateOnly(t).Format("2006-01-02")
}

// ParseDate parses an ISO calendar date into midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	return DateOnly(t), nil
}

// StartOfWeek returns the Monday 00:00:00 UTC of the week containing t.
func StartOfWeek(t time.Time) time.Time {
	d := DateOnly(t)
	weekday := int(d.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday
	}
	return d.AddDate(0, 0, -(weekday - 1))
}
