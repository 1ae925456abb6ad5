// Package ledger maintains the persistent station × date matrix of daily
// report outcomes. Rows are keyed by station name and are never deleted;
// date columns are created on demand and never removed or renamed.
package ledger

import (
	"regexp"
	"sort"
	"time"

	"github.com/javimendezpy/control-emails/internal/domain"
)

const (
	// KeyColumn keys every row; it holds the station name.
	KeyColumn = "Station"
	// SenderColumn is the mutable metadata column, overwritten on every merge.
	SenderColumn = "Sender"
)

// dateColumnRe decides whether a column holds daily outcomes. Anything that
// does not match the exact YYYY-MM-DD shape is metadata and keeps its
// position ahead of the date columns.
var dateColumnRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsDateColumn reports whether a column name has the exact YYYY-MM-DD shape
// of a daily outcome column.
func IsDateColumn(name string) bool {
	return dateColumnRe.MatchString(name)
}

// Row is one station's ledger line. Cells maps column name to "0" or "1" for
// date columns, or to metadata values.
type Row struct {
	Station string
	Cells   map[string]string
}

// Ledger is the in-memory form of the persisted matrix. It is rewritten in
// full on save; concurrent writers must be serialized by the caller.
type Ledger struct {
	columns []string // non-key columns in their current order
	rows    []*Row   // station order as first seen
	index   map[string]*Row
}

// New returns an empty ledger seeded with the sender metadata column.
func New() *Ledger {
	return &Ledger{
		columns: []string{SenderColumn},
		index:   make(map[string]*Row),
	}
}

// Columns returns the non-key column names in order.
func (l *Ledger) Columns() []string {
	return l.columns
}

// Rows returns the ledger rows in order.
func (l *Ledger) Rows() []*Row {
	return l.rows
}

// Cell returns the value at (station, column), ok reporting whether the row exists.
func (l *Ledger) Cell(station, column string) (string, bool) {
	row, ok := l.index[station]
	if !ok {
		return "", false
	}
	return row.Cells[column], true
}

// Merge folds one day's outcomes into the ledger. The date column for target
// is created if absent (every row initialized to "0"), each outcome's cell is
// set, and the sender metadata is overwritten for each outcome's row.
// Re-merging the same target with identical outcomes is a no-op; re-running a
// date simply recomputes its column. Prior date columns are never touched.
func (l *Ledger) Merge(roster []domain.Station, outcomes []domain.Outcome, target time.Time) {
	for _, s := range roster {
		l.ensureRow(s.Name)
	}

	dateCol := target.Format(domain.DateLayout)
	l.ensureColumn(dateCol)
	// A hand-edited ledger may have lost the sender column; recreate it so
	// the metadata written below survives the next save.
	l.ensureColumn(SenderColumn)

	for _, out := range outcomes {
		row := l.ensureRow(out.Station)
		row.Cells[dateCol] = cellValue(out.Received)
		row.Cells[SenderColumn] = out.Sender
	}

	l.reorderColumns()
}

// ensureRow returns the row for a station, appending a fresh one with every
// existing date column zeroed when the station is new to the ledger.
func (l *Ledger) ensureRow(station string) *Row {
	if row, ok := l.index[station]; ok {
		return row
	}
	row := &Row{Station: station, Cells: make(map[string]string, len(l.columns))}
	for _, col := range l.columns {
		if dateColumnRe.MatchString(col) {
			row.Cells[col] = "0"
		}
	}
	l.rows = append(l.rows, row)
	l.index[station] = row
	return row
}

func (l *Ledger) ensureColumn(name string) {
	for _, col := range l.columns {
		if col == name {
			return
		}
	}
	l.columns = append(l.columns, name)
	if dateColumnRe.MatchString(name) {
		for _, row := range l.rows {
			row.Cells[name] = "0"
		}
	}
}

// reorderColumns puts metadata columns first in their existing relative
// order, then date columns in descending calendar order. Sorting compares the
// column names directly: the YYYY-MM-DD shape makes lexicographic and
// calendar order agree.
func (l *Ledger) reorderColumns() {
	fixed := make([]string, 0, len(l.columns))
	dates := make([]string, 0, len(l.columns))
	for _, col := range l.columns {
		if dateColumnRe.MatchString(col) {
			dates = append(dates, col)
		} else {
			fixed = append(fixed, col)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	l.columns = append(fixed, dates...)
}

func cellValue(received bool) string {
	if received {
		return "1"
	}
	return "0"
}
