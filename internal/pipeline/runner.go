// Package pipeline orchestrates daily reconciliation: one target date at a
// time, one station at a time, strictly sequential. The ledger file is fully
// read before a date's merge and fully rewritten after it; nothing here is
// safe for concurrent runs against the same ledger.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/javimendezpy/control-emails/internal/domain"
	"github.com/javimendezpy/control-emails/internal/ledger"
	"github.com/javimendezpy/control-emails/internal/observability"
)

// MessageSource supplies the messages received within a closed time window.
type MessageSource interface {
	Window(ctx context.Context, start, end time.Time) ([]domain.Message, error)
}

// LedgerStore loads the persisted ledger (or an empty one) and rewrites it in full.
type LedgerStore interface {
	Load() (*ledger.Ledger, error)
	Save(*ledger.Ledger) error
}

// OutcomePublisher pushes one day's outcomes to downstream consumers.
type OutcomePublisher interface {
	PublishOutcomes(ctx context.Context, outcomes []domain.Outcome) error
}

// Exporter mirrors the merged ledger into a presentational artifact.
type Exporter interface {
	Export(l *ledger.Ledger) error
}

// Runner reconciles a range of target dates against the mailbox and the ledger.
type Runner struct {
	source    MessageSource
	store     LedgerStore
	roster    []domain.Station
	publisher OutcomePublisher // nil disables publishing
	exporter  Exporter         // nil disables the export
	logger    *slog.Logger
	metrics   *observability.Metrics
	ready     atomic.Bool
}

// New creates a Runner. publisher and exporter may be nil.
func New(source MessageSource, store LedgerStore, roster []domain.Station, publisher OutcomePublisher, exporter Exporter, logger *slog.Logger, metrics *observability.Metrics) *Runner {
	return &Runner{
		source:    source,
		store:     store,
		roster:    roster,
		publisher: publisher,
		exporter:  exporter,
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness returns nil once at least one date has been reconciled and
// persisted.
func (r *Runner) CheckReadiness(_ context.Context) error {
	if !r.ready.Load() {
		return errors.New("no date has been reconciled yet")
	}
	return nil
}

// ValidateRoster logs a warning for every station whose expected sender maps
// to no known provider. Such a station can never be marked received; it is a
// silent permanent miss, surfaced here rather than raised at scan time.
func (r *Runner) ValidateRoster() {
	for _, s := range r.roster {
		if domain.Classify(s.Sender, s.StationID) == domain.SourceUnknown {
			r.logger.Warn("station sender matches no known provider, it will never be marked received",
				"station", s.Name, "sender", s.Sender)
		}
	}
}

// Run processes every calendar day in the inclusive [start, end] range in
// ascending order, persisting after each day. An end before start is rejected
// before any processing. A date that fails to persist aborts the run.
func (r *Runner) Run(ctx context.Context, start, end time.Time) error {
	start, end = domain.DateOf(start), domain.DateOf(end)
	if end.Before(start) {
		return fmt.Errorf("end date %s is before start date %s", end.Format(domain.DateLayout), start.Format(domain.DateLayout))
	}

	r.metrics.RunActive.Set(1)
	defer r.metrics.RunActive.Set(0)
	r.ValidateRoster()

	for target := start; !target.After(end); target = target.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("run cancelled before %s: %w", target.Format(domain.DateLayout), err)
		}
		if err := r.ProcessDate(ctx, target); err != nil {
			return fmt.Errorf("process %s: %w", target.Format(domain.DateLayout), err)
		}
	}
	return nil
}

// ProcessDate reconciles one target date: window query, per-station scan,
// ledger merge, persist, then the optional export and publish. Ledger
// failures are fatal and happen before any write replaces the previous file.
func (r *Runner) ProcessDate(ctx context.Context, target time.Time) error {
	target = domain.DateOf(target)
	dateStr := target.Format(domain.DateLayout)
	began := time.Now()

	windowStart, windowEnd := receiptWindow(target)
	messages, err := r.source.Window(ctx, windowStart, windowEnd)
	if err != nil {
		return fmt.Errorf("query mailbox window: %w", err)
	}
	r.metrics.MessagesScanned.Add(float64(len(messages)))
	r.metrics.WindowSize.Observe(float64(len(messages)))
	r.logger.Info("processing date", "date", dateStr, "window_messages", len(messages))

	outcomes := make([]domain.Outcome, 0, len(r.roster))
	for _, station := range r.roster {
		received := domain.Scan(station, messages, target)
		outcomes = append(outcomes, domain.NewOutcome(station, target, received))
		if received {
			r.metrics.ReportsReceived.Inc()
			r.logger.Info("report received", "date", dateStr, "station", station.Name)
		} else {
			r.metrics.ReportsMissing.Inc()
			r.logger.Error("report missing", "date", dateStr, "station", station.Name, "sender", station.Sender)
		}
	}

	l, err := r.store.Load()
	if err != nil {
		r.metrics.LedgerErrors.Inc()
		return fmt.Errorf("load ledger: %w", err)
	}
	l.Merge(r.roster, outcomes, target)
	if err := r.store.Save(l); err != nil {
		r.metrics.LedgerErrors.Inc()
		return fmt.Errorf("save ledger: %w", err)
	}

	// The ledger is the source of truth; export and publish failures are
	// logged but do not fail the date.
	if r.exporter != nil {
		if err := r.exporter.Export(l); err != nil {
			r.logger.Warn("spreadsheet export failed", "date", dateStr, "error", err)
		}
	}
	if r.publisher != nil {
		if err := r.publisher.PublishOutcomes(ctx, outcomes); err != nil {
			r.logger.Warn("outcome publish failed", "date", dateStr, "error", err)
		}
	}

	r.metrics.DatesProcessed.Inc()
	r.metrics.DateProcessingDuration.Observe(time.Since(began).Seconds())
	r.ready.Store(true)
	r.logger.Info("date persisted", "date", dateStr, "stations", len(outcomes))
	return nil
}

// receiptWindow returns the closed receipt-time window for a target date:
// report emails for day D arrive on D or D+1, so the window spans from D's
// midnight through the end of D+1.
func receiptWindow(target time.Time) (start, end time.Time) {
	start = target
	end = target.AddDate(0, 0, 2).Add(-time.Second)
	return start, end
}
