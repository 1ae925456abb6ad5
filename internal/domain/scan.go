package domain

import (
	"strings"
	"time"
)

// Scan decides whether one station reported for the target date. It walks the
// messages in the order supplied and stops at the first one whose effective
// sender matches the station (case-insensitive) and whose extracted reporting
// date equals the target. First match wins: the scan is order-dependent and
// must not be parallelized.
//
// "No matching message" and "matching sender but unusable date" are the same
// outcome: no confirmed report.
func Scan(station Station, messages []Message, target time.Time) bool {
	source := Classify(station.Sender, station.StationID)
	grammar := GrammarFor(source, station.StationID)

	for _, msg := range messages {
		sender, ok := msg.EffectiveSender()
		if !ok {
			continue
		}
		if !strings.EqualFold(sender, station.Sender) {
			continue
		}
		date, ok := ExtractReportingDate(msg.Subject, grammar, source, msg.ReceivedAt)
		if !ok {
			continue
		}
		if date.Equal(target) {
			return true
		}
	}
	return false
}
