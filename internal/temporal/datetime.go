// Package temporal finds and resolves the date and time expression inside
// a short free-form event description.
//
// A date must come before the time. Dates are numeric ("18.11.",
// "18.11.2004"), single relative words ("tomorrow", "huomenna") or
// weekday phrases ("next monday", "viime perjantai", "day after
// tomorrow"). Times are "H", "H:M" or "H:M:S". All resolution happens
// against a reference instant supplied by the caller; nothing in this
// package reads the wall clock.
package temporal

import "time"

// DateTimeMatch is the consolidated result of FindDatetime. Start and End
// are byte offsets into the original input.
type DateTimeMatch struct {
	Date Date
	// Time is nil when no time of day follows the date.
	Time  *Clock
	Start int
	End   int
}

// FindDatetime locates the first date in input, resolves it against now,
// then looks for a time in the text after the date.
//
// ok is false with a nil error when input holds no date. A recognized but
// invalid token is reported as a ParseError.
func FindDatetime(input string, now time.Time) (m DateTimeMatch, ok bool, err error) {
	unit, dateStart, dateEnd, found := FindDate(input)
	if !found {
		return DateTimeMatch{}, false, nil
	}

	date, err := resolveDate(unit, now)
	if err != nil {
		return DateTimeMatch{}, false, err
	}

	m = DateTimeMatch{Date: date, Start: dateStart, End: dateEnd}
	if t, _, timeEnd, found := FindTime(input[dateEnd:]); found {
		clock, err := resolveTime(t)
		if err != nil {
			return DateTimeMatch{}, false, err
		}
		m.Time = &clock
		m.End = dateEnd + timeEnd
	}
	if m.End > len(input) {
		m.End = len(input)
	}
	return m, true, nil
}
