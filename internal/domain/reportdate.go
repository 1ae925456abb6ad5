package domain

import (
	"regexp"
	"strings"
	"time"
)

// ExtractReportingDate computes the calendar day a message attests to, ok
// reporting whether a usable date was found. Absence of a date is the normal
// "no evidence" outcome, never an error.
//
// Per provider:
//   - SourceMeteoReceiptOnly ignores the subject entirely: receipt wall-clock
//     day minus one. ok is false only when the receipt timestamp is missing.
//   - SourceMeteoStation / SourceMailRelay: subject date minus one day. The
//     embedded date is the send day, one day after the data day; the offset
//     is provider behavior, not a formatting quirk.
//   - SourceWindCube: subject date with "/" separators normalized, no offset.
//   - SourceZXLidar: year/month/day groups reassembled, no offset.
//
// Any non-match, missing grammar, or group that fails date parsing yields
// ok == false.
func ExtractReportingDate(subject string, grammar *regexp.Regexp, source SourceType, receivedAt time.Time) (time.Time, bool) {
	if source == SourceMeteoReceiptOnly {
		if receivedAt.IsZero() {
			return time.Time{}, false
		}
		return DateOf(receivedAt).AddDate(0, 0, -1), true
	}

	if grammar == nil {
		return time.Time{}, false
	}
	m := grammar.FindStringSubmatch(subject)
	if m == nil {
		return time.Time{}, false
	}

	switch source {
	case SourceMeteoStation, SourceMailRelay:
		d, err := ParseDate(m[1])
		if err != nil {
			return time.Time{}, false
		}
		return d.AddDate(0, 0, -1), true
	case SourceWindCube:
		d, err := ParseDate(strings.ReplaceAll(m[1], "/", "-"))
		if err != nil {
			return time.Time{}, false
		}
		return d, true
	case SourceZXLidar:
		d, err := ParseDate(m[1] + "-" + m[2] + "-" + m[3])
		if err != nil {
			return time.Time{}, false
		}
		return d, true
	default:
		return time.Time{}, false
	}
}
