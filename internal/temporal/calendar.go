package temporal

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// Supported calendar range, inclusive.
const (
	MinYear = -9999
	MaxYear = 9999
)

// gregorianCycle is the number of years after which dates fall on the same
// weekdays again (146097 days, exactly 20871 weeks).
const gregorianCycle = 400

// Date is a civil calendar date without a time zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate validates y-m-d as a real calendar date inside the supported
// range.
func NewDate(year int, month time.Month, day int) (Date, bool) {
	if year < MinYear || year > MaxYear {
		return Date{}, false
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return Date{}, false
	}
	return Date{Year: year, Month: month, Day: day}, true
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// In returns midnight of d in loc.
func (d Date) In(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d Date) Weekday() Weekday {
	return WeekdayOf(d.In(time.UTC).Weekday())
}

// String renders ISO 8601 "YYYY-MM-DD"; years before 1 BCE carry a
// leading minus and still four digits ("-0005-01-01").
func (d Date) String() string {
	if d.Year < 0 {
		return fmt.Sprintf("-%04d-%02d-%02d", -d.Year, int(d.Month), d.Day)
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) inRange() bool {
	return d.Year >= MinYear && d.Year <= MaxYear
}

// addDays fails with AmbiguousTime when the result leaves the calendar.
func (d Date) addDays(n int) (Date, error) {
	if !d.inRange() {
		return Date{}, AmbiguousTime
	}
	out := DateOf(d.In(time.UTC).AddDate(0, 0, n))
	if !out.inRange() {
		return Date{}, AmbiguousTime
	}
	return out, nil
}

// Clock is a validated time of day.
type Clock struct {
	Hour   int
	Minute int
	Second int
}

// NewClock validates the components against 0-23, 0-59 and 0-59.
func NewClock(hour, minute, second int) (Clock, bool) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return Clock{}, false
	}
	return Clock{Hour: hour, Minute: minute, Second: second}, true
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
}

// On combines the clock with a date in loc.
func (c Clock) On(d Date, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, c.Hour, c.Minute, c.Second, 0, loc)
}

// resolveDate turns a scanned date into a calendar date relative to now.
func resolveDate(unit DateUnit, now time.Time) (Date, error) {
	switch {
	case unit.Structured != nil:
		return resolveStructured(*unit.Structured, DateOf(now))
	case unit.Relative != nil:
		return resolveRelative(*unit.Relative, DateOf(now))
	default:
		return Date{}, MissingTime
	}
}

func resolveStructured(d DateStructured, today Date) (Date, error) {
	month, day := time.Month(d.Month), int(d.Day)
	if d.HasYear {
		date, ok := NewDate(int(d.Year), month, day)
		if !ok {
			return Date{}, InvalidTime
		}
		return date, nil
	}

	// next occurrence: a date earlier in the year than today means next year
	year := today.Year
	if month < today.Month || (month == today.Month && day < today.Day) {
		year++
	}
	date, ok := NewDate(year, month, day)
	if !ok {
		return Date{}, InvalidTime
	}
	return date, nil
}

func resolveRelative(r DateRelative, today Date) (Date, error) {
	switch r.Kind {
	case Yesterday:
		return today.addDays(-1)
	case Today:
		return today.addDays(0)
	case Tomorrow:
		return today.addDays(1)
	case Overmorrow:
		return today.addDays(2)
	case NextWeekday:
		return nextWeekday(today, r.Weekday)
	case LastWeekday:
		return lastWeekday(today, r.Weekday)
	default:
		return Date{}, AmbiguousTime
	}
}

// nextWeekday finds the first day strictly after today falling on w.
func nextWeekday(today Date, w Weekday) (Date, error) {
	from, err := today.addDays(1)
	if err != nil {
		return Date{}, err
	}
	if _, err := today.addDays(7); err != nil {
		return Date{}, err
	}
	return weekdayBetween(from, from, w, 1)
}

// lastWeekday finds the first day strictly before today falling on w.
func lastWeekday(today Date, w Weekday) (Date, error) {
	from, err := today.addDays(-7)
	if err != nil {
		return Date{}, err
	}
	until, err := today.addDays(-1)
	if err != nil {
		return Date{}, err
	}
	return weekdayBetween(from, until, w, 0)
}

// weekdayBetween expands a daily rule restricted to w over [from, until]
// (or the first count occurrences when count > 0) and returns the last
// occurrence. Every 7-day span holds exactly one.
//
// rrule cannot expand rules starting at or before year 0, so such spans are
// moved forward by whole Gregorian cycles first and moved back afterwards.
func weekdayBetween(from, until Date, w Weekday, count int) (Date, error) {
	shift := 0
	if from.Year <= 0 {
		shift = (1-from.Year)/gregorianCycle*gregorianCycle + gregorianCycle
	}

	opt := rrule.ROption{
		Freq:      rrule.DAILY,
		Dtstart:   from.In(time.UTC).AddDate(shift, 0, 0),
		Byweekday: []rrule.Weekday{w.rruleWeekday()},
	}
	if count > 0 {
		opt.Count = count
	} else {
		opt.Until = until.In(time.UTC).AddDate(shift, 0, 0)
	}
	r, err := rrule.NewRRule(opt)
	if err != nil {
		return Date{}, AmbiguousTime
	}
	occurrences := r.All()
	if len(occurrences) == 0 {
		return Date{}, AmbiguousTime
	}
	return DateOf(occurrences[len(occurrences)-1].AddDate(-shift, 0, 0)), nil
}

// resolveTime validates a scanned time.
func resolveTime(unit TimeUnit) (Clock, error) {
	t := unit.Structured
	var minute, second int8
	switch t.Kind {
	case HMS:
		minute, second = t.Minute, t.Second
	case HM:
		minute = t.Minute
	}
	c, ok := NewClock(int(t.Hour), int(minute), int(second))
	if !ok {
		return Clock{}, InvalidTime
	}
	return c, nil
}
