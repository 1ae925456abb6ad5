package domain

import "time"

// Station is one monitored field device, loaded from the roster. Immutable
// for the duration of a run.
type Station struct {
	Name      string // unique, keys the ledger
	Sender    string // expected report sender address
	StationID string // identifier embedded in subject grammars
}

// Message is an ephemeral inbound email supplied by the mail source.
type Message struct {
	Sender         string    // envelope Sender (transmitting agent), fallback
	ResolvedSender string    // envelope From (author), preferred when set
	Subject        string
	ReceivedAt     time.Time // may carry a non-UTC zone
}

// EffectiveSender returns the address to match against a station's expected
// sender, preferring the author (From) address over the transmitting agent.
// ok is false when the
// message carries no usable address at all; such messages are skipped.
func (m Message) EffectiveSender() (string, bool) {
	if m.ResolvedSender != "" {
		return m.ResolvedSender, true
	}
	if m.Sender != "" {
		return m.Sender, true
	}
	return "", false
}

// Outcome is one station's reconciled result for one target date.
type Outcome struct {
	Station     string    `json:"station"`
	Sender      string    `json:"sender"`
	Date        string    `json:"date"` // YYYY-MM-DD
	Received    bool      `json:"received"`
	ProcessedAt time.Time `json:"processed_at"`
}

// NewOutcome stamps a station's daily scan result with the package clock.
func NewOutcome(station Station, target time.Time, received bool) Outcome {
	return Outcome{
		Station:     station.Name,
		Sender:      station.Sender,
		Date:        target.Format(DateLayout),
		Received:    received,
		ProcessedAt: clock.Now(),
	}
}
