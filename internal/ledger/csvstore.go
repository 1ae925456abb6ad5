package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Load reads a ledger CSV from disk. A missing file is not an error: it
// yields a fresh empty ledger, to be seeded by the first merge.
func Load(path string) (*Ledger, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read ledger %s: %w", path, err)
	}
	if len(records) == 0 {
		return New(), nil
	}

	header := records[0]
	if len(header) == 0 || header[0] != KeyColumn {
		return nil, fmt.Errorf("ledger %s: first column must be %q, got %q", path, KeyColumn, firstOrEmpty(header))
	}

	l := &Ledger{
		columns: append([]string(nil), header[1:]...),
		index:   make(map[string]*Row, len(records)-1),
	}
	for i, rec := range records[1:] {
		if len(rec) != len(header) {
			return nil, fmt.Errorf("ledger %s: row %d has %d fields, header has %d", path, i+2, len(rec), len(header))
		}
		row := &Row{Station: rec[0], Cells: make(map[string]string, len(header)-1)}
		for j, col := range header[1:] {
			row.Cells[col] = rec[j+1]
		}
		l.rows = append(l.rows, row)
		l.index[row.Station] = row
	}
	return l, nil
}

// Save rewrites the whole ledger atomically: the CSV is written to a temp
// file in the same directory and renamed over the target, so a failure can
// never leave a half-written ledger behind.
func Save(path string, l *Ledger) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp ledger: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	w := csv.NewWriter(tmp)
	if err := w.Write(append([]string{KeyColumn}, l.columns...)); err != nil {
		tmp.Close()
		return fmt.Errorf("write ledger header: %w", err)
	}
	for _, row := range l.rows {
		rec := make([]string, 0, len(l.columns)+1)
		rec = append(rec, row.Station)
		for _, col := range l.columns {
			rec = append(rec, row.Cells[col])
		}
		if err := w.Write(rec); err != nil {
			tmp.Close()
			return fmt.Errorf("write ledger row %s: %w", row.Station, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp ledger: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace ledger %s: %w", path, err)
	}
	return nil
}

func firstOrEmpty(ss []string) string {
	if len(ss) == 0 {
		return ""
	}
	return ss[0]
}
