package domain

import (
	"fmt"
	"regexp"
)

// GrammarFor returns the compiled subject grammar for a provider,
// parameterized by the station identifier. The identifier is quoted so it is
// always matched literally. Returns nil for providers without a subject date
// (the receipt-only station) and for SourceUnknown.
func GrammarFor(source SourceType, stationID string) *regexp.Regexp {
	id := regexp.QuoteMeta(stationID)
	switch source {
	case SourceMeteoStation, SourceMailRelay:
		return regexp.MustCompile(fmt.Sprintf(`^%s_(\d{4}-\d{2}-\d{2})_(\d{2}-\d{2}-\d{2})$`, id))
	case SourceWindCube:
		return regexp.MustCompile(fmt.Sprintf(`^WindCube Insights Fleet: New STA File from %s\s+(\d{4}/\d{2}/\d{2})\s+(\d{2}[:\-]\d{2}[:\-]\d{2})$`, id))
	case SourceZXLidar:
		return regexp.MustCompile(fmt.Sprintf(`^Daily Data: Wind10_%s@Y(\d{4})_M(\d{2})_D(\d{2})\.(?:CSV|ZPH) \(Averaged data\)$`, id))
	default:
		return nil
	}
}
