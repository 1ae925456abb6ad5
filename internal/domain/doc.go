// Package domain models daily report emails from unattended wind and
// meteorological measurement stations.
//
// # Data Source
//
// Each monitored station (met mast logger, WindCube lidar, ZX lidar) sends one
// report email per day to a shared mailbox. The message body is never
// inspected; the presence of a report is established entirely from the
// envelope sender, the subject line, and the receipt timestamp.
//
// # Subject Line Conventions
//
// Each provider encodes the report in its own subject format:
//
//	Meteo station (estaciones.meteo@dekra-industrial.es):
//	  "<stationID>_YYYY-MM-DD_HH-MM-SS"  →  e.g. "Punago-9_2025-08-12_00-10-00"
//	  The embedded date is the SEND day, one day after the day the data
//	  covers. The reporting date is the subject date minus one day.
//
//	Mail relay (emailrelay@konectgds.com):
//	  Same format and same minus-one-day rule as the meteo station,
//	  e.g. "Villalube-6A_2025-08-11_00-10-00".
//
//	WindCube (windcubeinsights@vaisala.info):
//	  "WindCube Insights Fleet: New STA File from <stationID>  YYYY/MM/DD  HH:MM:SS"
//	  The embedded date is the reporting date itself; only the separators
//	  need normalizing ("/" → "-"). No day offset. The time separators vary
//	  between ":" and "-".
//
//	ZX lidar (status@support.zxlidars.com):
//	  "Daily Data: Wind10_<stationID>@Y<YYYY>_M<MM>_D<DD>.CSV (Averaged data)"
//	  e.g. "Daily Data: Wind10_1148@Y2025_M08_D02.CSV (Averaged data)"
//	  Year, month and day are separate capture groups reassembled as
//	  YYYY-MM-DD. The extension may be CSV or ZPH. No day offset.
//
//	Olmillos_1 (meteo station address, reserved identifier):
//	  The subject carries no date at all ("Ammonit Data Logger Meteo-40M ...").
//	  The reporting date is derived from the receipt timestamp: wall-clock
//	  calendar day minus one.
//
// All subject grammars are anchored to the whole line and treat the station
// identifier as a literal string, never as a pattern.
//
// # Reporting Dates
//
// A reporting date is a bare calendar day, represented as a time.Time at UTC
// midnight. Receipt timestamps may be time-zone aware; the wall-clock date in
// the message's own zone is taken before any day arithmetic. The minus-one-day
// offsets above are reproduced from observed provider behavior.
//
// # Scanning
//
// A station's daily outcome is decided by a short-circuiting scan over the
// receipt-windowed message set: the first message whose sender matches the
// station and whose extracted reporting date equals the target date settles
// the day as received. The scan is order-dependent on purpose; later
// qualifying messages are never consulted.
package domain
