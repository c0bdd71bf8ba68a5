package generator

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var calendarLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02", // midnight
}

// ParseCalendar interprets s in loc using the first matching layout and
// returns the instant in UTC. A layout that matches with out-of-range fields
// (month 13, February 30) fails with ErrInvalidDateTime rather than falling
// through to the next layout.
func ParseCalendar(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range calendarLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			u := t.UTC()
			if u.Year() < 0 || u.Year() > 9999 {
				return time.Time{}, fmt.Errorf("%w: %q falls outside years 0000-9999 in UTC", ErrInvalidDateTime, s)
			}
			return u, nil
		}
		var perr *time.ParseError
		if errors.As(err, &perr) && strings.HasSuffix(perr.Message, "out of range") {
			return time.Time{}, fmt.Errorf("%w: %q:%s", ErrInvalidDateTime, s, strings.TrimPrefix(perr.Message, ":"))
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q, use ISO 8601 (e.g. '2023-12-25T10:30:00')", ErrInvalidDateFormat, s)
}

// timestampDigits formats t as the 16-digit YYYYMMDDHHMMSSmm value. The
// hundredths are zeroed for user-supplied instants.
func timestampDigits(t time.Time, withHundredths bool) uint64 {
	t = t.UTC()
	var cs uint64
	if withHundredths {
		cs = uint64(t.Nanosecond() / int(10*time.Millisecond))
	}
	return uint64(t.Year())*1_000_000_000_000 +
		uint64(t.Month())*10_000_000_000 +
		uint64(t.Day())*100_000_000 +
		uint64(t.Hour())*1_000_000 +
		uint64(t.Minute())*10_000 +
		uint64(t.Second())*100 +
		cs
}

// timestampYear reads the first four digits of the zero-padded 16-digit form.
func timestampYear(ts uint64) int {
	return int(ts / 1_000_000_000_000)
}

func timestampTime(ts uint64) (time.Time, bool) {
	if ts > maxTimestamp {
		return time.Time{}, false
	}
	year := int(ts / 1_000_000_000_000)
	month := int(ts / 10_000_000_000 % 100)
	day := int(ts / 100_000_000 % 100)
	hour := int(ts / 1_000_000 % 100)
	minute := int(ts / 10_000 % 100)
	sec := int(ts / 100 % 100)
	cs := int(ts % 100)

	t := time.Date(year, time.Month(month), day, hour, minute, sec, cs*int(10*time.Millisecond), time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day ||
		t.Hour() != hour || t.Minute() != minute || t.Second() != sec {
		return time.Time{}, false
	}
	return t, true
}
