package ics

import (
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"nlcep/internal/model"
)

const (
	dateLayout     = "20060102"
	floatingLayout = "20060102T150405"
	utcLayout      = "20060102T150405Z"
)

// ErrYearOutOfRange is returned for events that iCalendar's four-digit
// DATE and DATE-TIME values cannot hold.
var ErrYearOutOfRange = errors.New("event date outside years 0000-9999")

// Options controls how parsed events are turned into VEVENTs.
type Options struct {
	// ProdID is the PRODID of newly created calendars.
	ProdID string
	// Now is written as DTSTAMP. Zero means time.Now().
	Now time.Time
	// Duration is the length of events that have a time of day.
	// Zero means one hour.
	Duration time.Duration
}

func (o Options) stamp() time.Time {
	if o.Now.IsZero() {
		return time.Now()
	}
	return o.Now
}

func (o Options) duration() time.Duration {
	if o.Duration <= 0 {
		return time.Hour
	}
	return o.Duration
}

// NewCalendar returns an empty PUBLISH calendar.
func NewCalendar(prodID string) *ical.Calendar {
	cal := ical.NewCalendar()
	if prodID != "" {
		cal.SetProductId(prodID)
	}
	cal.SetMethod(ical.MethodPublish)
	return cal
}

// AddEvent appends ev to cal as a new VEVENT with a random UID.
//
// All-day events get DATE values with an exclusive end on the following
// day. Timed events are written as floating local times, since the parser
// never sees a timezone. Events starting or ending outside years 0000-9999
// are rejected with ErrYearOutOfRange and cal is left untouched.
func AddEvent(cal *ical.Calendar, ev model.Event, opts Options) (*ical.VEvent, error) {
	// UTC is only a carrier here; the values are written without a zone.
	start := ev.DateTime(time.UTC)
	end := ev.End(time.UTC, opts.duration())
	if !representable(start) || !representable(end) {
		return nil, errors.Wrapf(ErrYearOutOfRange, "event on %s", ev.Date)
	}

	vev := cal.AddEvent(uuid.NewString())
	vev.SetDtStampTime(opts.stamp())
	vev.SetSummary(ev.Summary)
	if ev.Location != "" {
		vev.SetLocation(ev.Location)
	}

	if ev.AllDay() {
		date := ical.WithValue(string(ical.ValueDataTypeDate))
		vev.SetProperty(ical.ComponentPropertyDtStart, start.Format(dateLayout), date)
		vev.SetProperty(ical.ComponentPropertyDtEnd, end.Format(dateLayout), date)
	} else {
		vev.SetProperty(ical.ComponentPropertyDtStart, start.Format(floatingLayout))
		vev.SetProperty(ical.ComponentPropertyDtEnd, end.Format(floatingLayout))
	}
	return vev, nil
}

func representable(t time.Time) bool {
	return t.Year() >= 0 && t.Year() <= 9999
}

// Encode renders ev as a complete single-event calendar.
func Encode(ev model.Event, opts Options) (string, error) {
	cal := NewCalendar(opts.ProdID)
	if _, err := AddEvent(cal, ev, opts); err != nil {
		return "", err
	}
	return cal.Serialize(), nil
}

// Entry is a short listing of one VEVENT.
type Entry struct {
	UID      string
	Summary  string
	Location string
	Start    time.Time
	AllDay   bool
}

// Summaries lists the events in cal in file order. Floating and date
// values are interpreted in loc (time.Local when nil).
func Summaries(cal *ical.Calendar, loc *time.Location) []Entry {
	if loc == nil {
		loc = time.Local
	}
	out := make([]Entry, 0, len(cal.Events()))
	for _, vev := range cal.Events() {
		e := Entry{UID: vev.Id()}
		if p := vev.GetProperty(ical.ComponentPropertySummary); p != nil {
			e.Summary = p.Value
		}
		if p := vev.GetProperty(ical.ComponentPropertyLocation); p != nil {
			e.Location = p.Value
		}
		if p := vev.GetProperty(ical.ComponentPropertyDtStart); p != nil {
			e.AllDay = isDateValue(p)
			if t, err := parseICSTime(p.Value, loc); err == nil {
				e.Start = t
			}
		}
		out = append(out, e)
	}
	return out
}

func isDateValue(p *ical.IANAProperty) bool {
	if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}

// parseICSTime parses the basic DATE / DATE-TIME / UTC forms.
func parseICSTime(v string, loc *time.Location) (time.Time, error) {
	v = strings.TrimSpace(v)
	switch {
	case strings.HasSuffix(v, "Z"):
		return time.Parse(utcLayout, v)
	case strings.Contains(v, "T"):
		return time.ParseInLocation(floatingLayout, v, loc)
	default:
		return time.ParseInLocation(dateLayout, v, loc)
	}
}
