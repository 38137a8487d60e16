package timeutil

import "time"

// ToUTC normalizes a timestamp read from storage. Values without zone
// information are assumed to be UTC and tagged accordingly, so that two
// stored instants can always be subtracted safely.
func ToUTC(t time.Time) time.Time {
	if t.Location() == time.Local {
		// Drivers hand back zone-less values in time.Local; reinterpret the
		// wall clock as UTC instead of converting the instant.
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	}
	return t.UTC()
}

// DateOf truncates a timestamp to its UTC calendar day.
func DateOf(t time.Time) time.Time {
	t = ToUTC(t)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MonthRange returns the first and last day of the given month, both at
// midnight UTC. The range is inclusive on both ends.
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start, end
}

// PreviousMonth resolves the month immediately before the given one,
// rolling January back to December of the prior year.
func PreviousMonth(year int, month time.Month) (int, time.Month) {
	if month == time.January {
		return year - 1, time.December
	}
	return year, month - 1
}

// HoursBetween returns the elapsed hours from start to end, never negative.
// Both instants are normalized to UTC before subtraction.
func HoursBetween(start, end time.Time) float64 {
	h := ToUTC(end).Sub(ToUTC(start)).Hours()
	if h < 0 {
		return 0
	}
	return h
}
