package folio

import (
	"fmt"
	"time"
)

// parseDate parses a YYYY-MM-DD calendar date at UTC midnight.
func parseDate(s string) (time.Time, bool) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func fixedZone(offsetHours int) *time.Location {
	return time.FixedZone(fmt.Sprintf("UTC%+d", offsetHours), offsetHours*60*60)
}

// localToday returns the calendar date observed at asOf in the fixed zone,
// expressed at UTC midnight so it compares directly with parseDate results.
func localToday(asOf time.Time, tzOffsetHours int) time.Time {
	y, m, d := asOf.In(fixedZone(tzOffsetHours)).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsPublished reports whether a record dated date (YYYY-MM-DD) is visible at
// asOf. The date, taken at UTC midnight, must not be after today's date as
// seen in the zone tzOffsetHours east of UTC, so the boundary never depends
// on the build machine's local clock. Unparseable dates are never published.
func IsPublished(date string, asOf time.Time, tzOffsetHours int) bool {
	d, ok := parseDate(date)
	if !ok {
		return false
	}
	return !d.After(localToday(asOf, tzOffsetHours))
}
