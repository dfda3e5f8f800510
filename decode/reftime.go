package decode

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// StartTime parses the EDF main header's start date ("dd.mm.yy") and
// start time ("hh.mm.ss") fields into a time.Time, plus the
// corresponding Julian Day Number for the per-file diagnostic message
// stream. Two-digit years below 85 are assumed post-2000, matching
// the clinical EDF convention (the format predates Y2K).
//
// This mirrors the teacher's parse_reftime for GSF processing-parameter
// records: both recover a calendar date from a compact field and use
// the meeus julian helpers to do the calendar arithmetic, rather than
// hand-rolling leap-year rules.
func StartTime(hdr Header) (time.Time, float64, error) {
	dparts := strings.Split(hdr.StartDate, ".")
	tparts := strings.Split(hdr.StartTime, ".")
	if len(dparts) != 3 || len(tparts) != 3 {
		return time.Time{}, 0, fmt.Errorf("decode: malformed start date/time %q %q", hdr.StartDate, hdr.StartTime)
	}

	day, err := strconv.Atoi(dparts[0])
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("decode: start day: %w", err)
	}
	month, err := strconv.Atoi(dparts[1])
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("decode: start month: %w", err)
	}
	yy, err := strconv.Atoi(dparts[2])
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("decode: start year: %w", err)
	}
	year := 1900 + yy
	if yy < 85 {
		year = 2000 + yy
	}

	hour, err := strconv.Atoi(tparts[0])
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("decode: start hour: %w", err)
	}
	minute, err := strconv.Atoi(tparts[1])
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("decode: start minute: %w", err)
	}
	second, err := strconv.Atoi(tparts[2])
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("decode: start second: %w", err)
	}

	t := time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)

	dayFraction := (float64(hour) + float64(minute)/60 + float64(second)/3600) / 24
	jd := julian.CalendarGregorianToJD(year, month, float64(day)+dayFraction)

	return t, jd, nil
}
