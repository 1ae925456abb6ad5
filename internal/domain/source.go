package domain

// Known provider sender addresses. Stations whose expected sender is not one
// of these classify as SourceUnknown and can never be marked received.
const (
	AddrMeteoStation = "estaciones.meteo@dekra-industrial.es"
	AddrWindCube     = "windcubeinsights@vaisala.info"
	AddrMailRelay    = "emailrelay@konectgds.com"
	AddrZXLidar      = "status@support.zxlidars.com"

	// ReceiptOnlyStationID is the one meteo station whose subject carries no
	// date; its reporting date comes from the receipt timestamp instead.
	ReceiptOnlyStationID = "Olmillos_1"
)

// SourceType classifies a station's expected report provider. It drives which
// subject grammar and which date-decoding rule apply.
type SourceType int

const (
	SourceUnknown SourceType = iota
	SourceMeteoStation
	SourceMeteoReceiptOnly
	SourceWindCube
	SourceMailRelay
	SourceZXLidar
)

// String returns the provider's short name for logs and events.
func (s SourceType) String() string {
	switch s {
	case SourceMeteoStation:
		return "estacionesmeteo"
	case SourceMeteoReceiptOnly:
		return "estacionesmeteo_receipt_only"
	case SourceWindCube:
		return "windcube"
	case SourceMailRelay:
		return "emailrelay"
	case SourceZXLidar:
		return "zx"
	default:
		return "unknown"
	}
}

// Classify maps a station's expected sender address and identifier to a
// provider. Rule order matters: the receipt-only rule must win over the
// general meteo-station rule for the reserved identifier.
func Classify(sender, stationID string) SourceType {
	switch {
	case sender == AddrMeteoStation && stationID == ReceiptOnlyStationID:
		return SourceMeteoReceiptOnly
	case sender == AddrMeteoStation:
		return SourceMeteoStation
	case sender == AddrWindCube:
		return SourceWindCube
	case sender == AddrMailRelay:
		return SourceMailRelay
	case sender == AddrZXLidar:
		return SourceZXLidar
	default:
		return SourceUnknown
	}
}
