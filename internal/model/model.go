package model

import (
	"time"

	"nlcep/internal/temporal"
)

// Event is a calendar event assembled from one line of free-form text.
type Event struct {
	// Summary is the trimmed text before the temporal expression.
	Summary string `json:"summary"`

	Date temporal.Date `json:"-"`
	// Time is nil for all-day events.
	Time *temporal.Clock `json:"-"`

	// Location is the text after the temporal expression, empty when the
	// input has none.
	Location string `json:"location,omitempty"`
}

// AllDay reports whether the event has no time of day.
func (e Event) AllDay() bool {
	return e.Time == nil
}

// DateTime returns the start of the event in loc. All-day events start at
// midnight.
func (e Event) DateTime(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	if e.Time == nil {
		return e.Date.In(loc)
	}
	return e.Time.On(e.Date, loc)
}

// End returns the exclusive end of the event: the next midnight for
// all-day events, otherwise start + d.
func (e Event) End(loc *time.Location, d time.Duration) time.Time {
	start := e.DateTime(loc)
	if e.AllDay() {
		return start.AddDate(0, 0, 1)
	}
	return start.Add(d)
}

// View is the flat JSON form of an event shared by the CLI, the HTTP API
// and the WebAssembly binding.
type View struct {
	Summary  string `json:"summary"`
	Date     string `json:"date"`
	Time     string `json:"time,omitempty"`
	Location string `json:"location,omitempty"`
	AllDay   bool   `json:"all_day"`
	// Start is the event start in loc, RFC 3339.
	Start string `json:"start"`
}

// View renders e with loc as the zone for Start.
func (e Event) View(loc *time.Location) View {
	v := View{
		Summary:  e.Summary,
		Date:     e.Date.String(),
		Location: e.Location,
		AllDay:   e.AllDay(),
		Start:    e.DateTime(loc).Format(time.RFC3339),
	}
	if e.Time != nil {
		v.Time = e.Time.String()
	}
	return v
}
