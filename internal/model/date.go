package model

import "time"

// Day is the bar interval. The archive holds exactly one bar per symbol
// per UTC day.
const Day = 24 * time.Hour

// MidnightUTC truncates t to midnight UTC.
func MidnightUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole days from start to end,
// inclusive of both. Returns 0 when start is after end.
func DaysBetween(start, end time.Time) int {
	start = MidnightUTC(start)
	end = MidnightUTC(end)
	if start.After(end) {
		return 0
	}
	return int(end.Sub(start)/Day) + 1
}
