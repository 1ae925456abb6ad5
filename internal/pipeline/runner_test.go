package pipeline_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/javimendezpy/control-emails/internal/domain"
	"github.com/javimendezpy/control-emails/internal/ledger"
	"github.com/javimendezpy/control-emails/internal/observability"
	"github.com/javimendezpy/control-emails/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockSource struct {
	messages []domain.Message
	err      error
	windows  [][2]time.Time
}

func (m *mockSource) Window(_ context.Context, start, end time.Time) ([]domain.Message, error) {
	m.windows = append(m.windows, [2]time.Time{start, end})
	return m.messages, m.err
}

type mockPublisher struct {
	published []domain.Outcome
	err       error
}

func (m *mockPublisher) PublishOutcomes(_ context.Context, outcomes []domain.Outcome) error {
	m.published = append(m.published, outcomes...)
	return m.err
}

type mockExporter struct {
	exports int
	err     error
}

func (m *mockExporter) Export(_ *ledger.Ledger) error {
	m.exports++
	return m.err
}

type failingStore struct {
	loadErr error
	saveErr error
}

func (s failingStore) Load() (*ledger.Ledger, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return ledger.New(), nil
}

func (s failingStore) Save(*ledger.Ledger) error { return s.saveErr }

// --- helpers ---

var testRoster = []domain.Station{
	{Name: "Punago", Sender: domain.AddrMeteoStation, StationID: "Punago-9"},
	{Name: "Villalube", Sender: domain.AddrMailRelay, StationID: "Villalube-6A"},
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(s)
	require.NoError(t, err)
	return d
}

func newRunner(t *testing.T, source *mockSource, pub *mockPublisher, exp *mockExporter) (*pipeline.Runner, ledger.FileStore) {
	t.Helper()
	store := ledger.FileStore{Path: filepath.Join(t.TempDir(), "control_emails.csv")}
	var publisher pipeline.OutcomePublisher
	if pub != nil {
		publisher = pub
	}
	var exporter pipeline.Exporter
	if exp != nil {
		exporter = exp
	}
	return pipeline.New(source, store, testRoster, publisher, exporter, discardLogger(), observability.NewMetricsForTesting()), store
}

func punagoReport(subjectDate string) domain.Message {
	return domain.Message{
		Sender:  domain.AddrMeteoStation,
		Subject: "Punago-9_" + subjectDate + "_00-10-00",
	}
}

// --- tests ---

func TestProcessDate_MergesAndPersists(t *testing.T) {
	source := &mockSource{messages: []domain.Message{punagoReport("2025-08-12")}}
	runner, store := newRunner(t, source, nil, nil)

	require.NoError(t, runner.ProcessDate(context.Background(), day(t, "2025-08-11")))

	l, err := store.Load()
	require.NoError(t, err)
	got, ok := l.Cell("Punago", "2025-08-11")
	require.True(t, ok)
	assert.Equal(t, "1", got)
	got, _ = l.Cell("Villalube", "2025-08-11")
	assert.Equal(t, "0", got)
}

func TestProcessDate_WindowSpansTargetAndNextDay(t *testing.T) {
	source := &mockSource{}
	runner, _ := newRunner(t, source, nil, nil)

	require.NoError(t, runner.ProcessDate(context.Background(), day(t, "2025-08-11")))

	require.Len(t, source.windows, 1)
	assert.Equal(t, day(t, "2025-08-11"), source.windows[0][0])
	assert.Equal(t, day(t, "2025-08-13").Add(-time.Second), source.windows[0][1])
}

func TestProcessDate_SourceFailureIsFatal(t *testing.T) {
	source := &mockSource{err: errors.New("imap: connection reset")}
	runner, _ := newRunner(t, source, nil, nil)

	err := runner.ProcessDate(context.Background(), day(t, "2025-08-11"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query mailbox window")
}

func TestProcessDate_SaveFailureIsFatal(t *testing.T) {
	runner := pipeline.New(&mockSource{}, failingStore{saveErr: errors.New("disk full")},
		testRoster, nil, nil, discardLogger(), observability.NewMetricsForTesting())

	err := runner.ProcessDate(context.Background(), day(t, "2025-08-11"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save ledger")
	assert.Error(t, runner.CheckReadiness(context.Background()), "a failed date must not mark the runner ready")
}

func TestProcessDate_PublishAndExportFailuresAreNotFatal(t *testing.T) {
	pub := &mockPublisher{err: errors.New("broker down")}
	exp := &mockExporter{err: errors.New("xlsx busy")}
	runner, _ := newRunner(t, &mockSource{}, pub, exp)

	require.NoError(t, runner.ProcessDate(context.Background(), day(t, "2025-08-11")))
	assert.Equal(t, 1, exp.exports)
	assert.Len(t, pub.published, len(testRoster))
}

func TestRun_RejectsEndBeforeStart(t *testing.T) {
	source := &mockSource{}
	runner, _ := newRunner(t, source, nil, nil)

	err := runner.Run(context.Background(), day(t, "2025-08-11"), day(t, "2025-08-10"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "before start")
	assert.Empty(t, source.windows, "no processing may happen on a malformed range")
}

func TestRun_ProcessesInclusiveRangeAscending(t *testing.T) {
	source := &mockSource{}
	runner, store := newRunner(t, source, nil, nil)

	require.NoError(t, runner.Run(context.Background(), day(t, "2025-08-10"), day(t, "2025-08-12")))

	require.Len(t, source.windows, 3)
	assert.Equal(t, day(t, "2025-08-10"), source.windows[0][0])
	assert.Equal(t, day(t, "2025-08-11"), source.windows[1][0])
	assert.Equal(t, day(t, "2025-08-12"), source.windows[2][0])

	l, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{ledger.SenderColumn, "2025-08-12", "2025-08-11", "2025-08-10"}, l.Columns())
	assert.NoError(t, runner.CheckReadiness(context.Background()))
}

func TestRun_SingleDayRange(t *testing.T) {
	source := &mockSource{}
	runner, _ := newRunner(t, source, nil, nil)

	require.NoError(t, runner.Run(context.Background(), day(t, "2025-08-11"), day(t, "2025-08-11")))
	assert.Len(t, source.windows, 1)
}

func TestRun_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	source := &mockSource{}
	runner, _ := newRunner(t, source, nil, nil)

	err := runner.Run(ctx, day(t, "2025-08-10"), day(t, "2025-08-12"))
	require.Error(t, err)
	assert.Empty(t, source.windows)
}

func TestRun_RerunIsIdempotent(t *testing.T) {
	source := &mockSource{messages: []domain.Message{punagoReport("2025-08-12")}}
	runner, store := newRunner(t, source, nil, nil)

	require.NoError(t, runner.Run(context.Background(), day(t, "2025-08-11"), day(t, "2025-08-11")))
	first, err := store.Load()
	require.NoError(t, err)

	require.NoError(t, runner.Run(context.Background(), day(t, "2025-08-11"), day(t, "2025-08-11")))
	second, err := store.Load()
	require.NoError(t, err)

	assert.Equal(t, first.Columns(), second.Columns())
	assert.Equal(t, first.Rows(), second.Rows())
}
