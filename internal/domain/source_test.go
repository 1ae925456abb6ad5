package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		sender    string
		stationID string
		want      SourceType
	}{
		{"meteo station", AddrMeteoStation, "Punago-9", SourceMeteoStation},
		{"reserved identifier wins over general meteo rule", AddrMeteoStation, ReceiptOnlyStationID, SourceMeteoReceiptOnly},
		{"windcube", AddrWindCube, "WLS71497", SourceWindCube},
		{"mail relay", AddrMailRelay, "Villalube-6A", SourceMailRelay},
		{"zx lidar", AddrZXLidar, "1148", SourceZXLidar},
		{"unrecognized address", "someone@example.com", "Punago-9", SourceUnknown},
		{"empty address", "", "Punago-9", SourceUnknown},
		{"reserved identifier with other address is not special", AddrWindCube, ReceiptOnlyStationID, SourceWindCube},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.sender, tt.stationID))
		})
	}
}

func TestSourceTypeString(t *testing.T) {
	assert.Equal(t, "estacionesmeteo", SourceMeteoStation.String())
	assert.Equal(t, "unknown", SourceUnknown.String())
	assert.Equal(t, "unknown", SourceType(99).String())
}
