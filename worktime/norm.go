package worktime

// =============================================================================
// NORM POLICY - Expected working minutes per weekday
// =============================================================================
// The norm is organizational configuration, not a law of nature. It is a
// replaceable table keyed by ISO weekday so alternative schedules can be
// plugged in without touching the ledger.
// =============================================================================

// NormPolicy maps an ISO weekday (Monday = 1 .. Sunday = 7) to the
// expected working minutes for that day.
type NormPolicy [8]int // index 0 unused

// Minutes returns the norm for an ISO weekday. Out-of-range weekdays
// report 0, same as weekends.
func (p NormPolicy) Minutes(isoWeekday int) int {
	if isoWeekday < 1 || isoWeekday > 7 {
		return 0
	}
	return p[isoWeekday]
}

// DefaultNormPolicy encodes the organizational schedule:
// 9h Monday-Thursday, 4h Friday, none on weekends.
var DefaultNormPolicy = NormPolicy{
	1: 540, // Mon
	2: 540, // Tue
	3: 540, // Wed
	4: 540, // Thu
	5: 240, // Fri
	6: 0,   // Sat
	7: 0,   // Sun
}
