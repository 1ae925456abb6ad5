package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrammarFor_MeteoStation(t *testing.T) {
	g := GrammarFor(SourceMeteoStation, "Punago-9")
	require.NotNil(t, g)

	m := g.FindStringSubmatch("Punago-9_2025-08-12_00-10-00")
	require.NotNil(t, m)
	assert.Equal(t, "2025-08-12", m[1])
	assert.Equal(t, "00-10-00", m[2])

	assert.Nil(t, g.FindStringSubmatch("Punago-9_2025-08-12"), "time fragment is required")
	assert.Nil(t, g.FindStringSubmatch("xPunago-9_2025-08-12_00-10-00"), "anchored at start")
	assert.Nil(t, g.FindStringSubmatch("Punago-9_2025-08-12_00-10-00 extra"), "anchored at end")
	assert.Nil(t, g.FindStringSubmatch("Punago-8_2025-08-12_00-10-00"), "other station's subject")
}

func TestGrammarFor_WindCube(t *testing.T) {
	g := GrammarFor(SourceWindCube, "WLS71497")
	require.NotNil(t, g)

	m := g.FindStringSubmatch("WindCube Insights Fleet: New STA File from WLS71497  2025/07/31  00:10:00")
	require.NotNil(t, m)
	assert.Equal(t, "2025/07/31", m[1])

	// Time separators vary between ":" and "-".
	assert.NotNil(t, g.FindStringSubmatch("WindCube Insights Fleet: New STA File from WLS71497 2025/07/31 00-10-00"))
	assert.Nil(t, g.FindStringSubmatch("WindCube Insights Fleet: New STA File from WLS71497  2025-07-31  00:10:00"))
}

func TestGrammarFor_ZXLidar(t *testing.T) {
	g := GrammarFor(SourceZXLidar, "1148")
	require.NotNil(t, g)

	m := g.FindStringSubmatch("Daily Data: Wind10_1148@Y2025_M08_D02.CSV (Averaged data)")
	require.NotNil(t, m)
	assert.Equal(t, []string{"2025", "08", "02"}, m[1:4])

	assert.NotNil(t, g.FindStringSubmatch("Daily Data: Wind10_1148@Y2025_M08_D02.ZPH (Averaged data)"))
	assert.Nil(t, g.FindStringSubmatch("Daily Data: Wind10_1148@Y2025_M08_D02.TXT (Averaged data)"))
}

func TestGrammarFor_NoGrammar(t *testing.T) {
	assert.Nil(t, GrammarFor(SourceMeteoReceiptOnly, ReceiptOnlyStationID))
	assert.Nil(t, GrammarFor(SourceUnknown, "whatever"))
}

func TestGrammarFor_QuotesIdentifier(t *testing.T) {
	// A metacharacter in the identifier must match literally, not as a pattern.
	g := GrammarFor(SourceMeteoStation, "Site.1")
	require.NotNil(t, g)
	assert.NotNil(t, g.FindStringSubmatch("Site.1_2025-08-12_00-10-00"))
	assert.Nil(t, g.FindStringSubmatch("SiteX1_2025-08-12_00-10-00"))
}
