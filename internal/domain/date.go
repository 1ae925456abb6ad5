package domain

import "time"

// DateLayout is the calendar-date format used for ledger column names and
// outcome events. It is unambiguous and sorts lexicographically.
const DateLayout = "2006-01-02"

// DateOf strips a timestamp down to its wall-clock calendar day, discarding
// the zone. The result is midnight UTC, so reporting dates compare with
// Equal regardless of where the message was stamped.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a UTC-midnight day.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
