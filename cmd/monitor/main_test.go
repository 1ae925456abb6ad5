package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateArgs(t *testing.T) {
	day := func(s string) time.Time {
		d, err := time.Parse("2006-01-02", s)
		require.NoError(t, err)
		return d
	}

	tests := []struct {
		name      string
		args      []string
		wantStart time.Time
		wantEnd   time.Time
		wantErr   bool
	}{
		{"start only defaults end", []string{"2025-08-11"}, day("2025-08-11"), day("2025-08-11"), false},
		{"start and end", []string{"2025-08-10", "2025-08-12"}, day("2025-08-10"), day("2025-08-12"), false},
		{"no args", nil, time.Time{}, time.Time{}, true},
		{"too many args", []string{"2025-08-10", "2025-08-11", "2025-08-12"}, time.Time{}, time.Time{}, true},
		{"garbage start", []string{"next tuesday"}, time.Time{}, time.Time{}, true},
		{"garbage end", []string{"2025-08-10", "12/08/2025"}, time.Time{}, time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := parseDateArgs(tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}
