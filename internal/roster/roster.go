// Package roster loads the table of monitored stations. The roster is read
// once per run and is immutable afterwards.
package roster

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/javimendezpy/control-emails/internal/domain"
)

// Load reads a roster CSV with a header and three ordered columns: station
// name, expected sender address, station identifier. Extra columns are
// ignored. Station names must be unique; an empty roster is an error because
// a run without stations can only produce an empty merge.
func Load(path string) ([]domain.Station, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open roster: %w", err)
	}
	defer f.Close()
	return parse(f, path)
}

func parse(r io.Reader, path string) ([]domain.Station, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // tolerate trailing columns

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read roster %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("roster %s: no stations", path)
	}

	stations := make([]domain.Station, 0, len(records)-1)
	seen := make(map[string]struct{}, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) < 3 {
			return nil, fmt.Errorf("roster %s: row %d has %d columns, need name, sender, identifier", path, i+2, len(rec))
		}
		s := domain.Station{
			Name:      strings.TrimSpace(rec[0]),
			Sender:    strings.TrimSpace(rec[1]),
			StationID: strings.TrimSpace(rec[2]),
		}
		if s.Name == "" {
			return nil, fmt.Errorf("roster %s: row %d has an empty station name", path, i+2)
		}
		if _, dup := seen[s.Name]; dup {
			return nil, fmt.Errorf("roster %s: duplicate station %q", path, s.Name)
		}
		seen[s.Name] = struct{}{}
		stations = append(stations, s)
	}
	return stations, nil
}
