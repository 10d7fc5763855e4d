package timezone

import "time"

// DefaultOffsetMinutes is the reporting timezone offset used when none is
// configured: IST (UTC+5:30).
const DefaultOffsetMinutes = 330

// NormalizeDay maps an instant to the start-of-day instant of the calendar
// day it falls on in a fixed UTC offset, expressed in UTC. The result is the
// canonical key for daily aggregates: every instant within the same local day
// maps to the same value, and applying NormalizeDay to its own output returns
// the same instant.
func NormalizeDay(t time.Time, offsetMinutes int) time.Time {
	loc := time.FixedZone("reporting", offsetMinutes*60)
	local := t.In(loc)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return midnight.UTC()
}

// Today returns the start of the current day in the given offset.
func Today(offsetMinutes int) time.Time {
	return NormalizeDay(time.Now(), offsetMinutes)
}
