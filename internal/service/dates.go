package service

import "time"

// daysInMonth returns the number of days in the given month.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// dateOnly truncates t to midnight in its location.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// monthAnchor returns the date in ref's month with the given day,
// clipped to the month length (day 31 in a 30-day month becomes day 30).
func monthAnchor(day int, ref time.Time) time.Time {
	if max := daysInMonth(ref.Year(), ref.Month()); day > max {
		day = max
	}
	return time.Date(ref.Year(), ref.Month(), day, 0, 0, 0, 0, ref.Location())
}

// addClippedMonth advances t by one calendar month keeping the same
// day-of-month, clipped to the target month's length. Jan 31 becomes
// Feb 28/29, never Mar 2.
func addClippedMonth(t time.Time) time.Time {
	next := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, 1, 0)
	day := t.Day()
	if max := daysInMonth(next.Year(), next.Month()); day > max {
		day = max
	}
	return time.Date(next.Year(), next.Month(), day, 0, 0, 0, 0, t.Location())
}

// sameCalendarMonth reports whether a and b fall in the same year and month.
func sameCalendarMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// monthBounds returns the first day of ref's month and the first day of
// the following month (half-open interval).
func monthBounds(ref time.Time) (time.Time, time.Time) {
	from := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	return from, from.AddDate(0, 1, 0)
}
