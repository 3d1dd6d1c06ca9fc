// Package nlcep parses short natural-language event descriptions such as
// "John's birthday 18.11." or "Meeting about Q3 quotas tomorrow 11:00, A769"
// into a summary, a date, an optional time and an optional location.
//
// # Basic Usage
//
//	ev, err := nlcep.Parse("Meeting about Q3 quotas tomorrow 11:00, A769")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(ev.Summary, ev.Date, ev.Time, ev.Location)
//
// # Fixed Reference Time
//
// Relative expressions ("tomorrow", "next monday") resolve against the
// instant passed to ParseAt, in that instant's location:
//
//	now := time.Date(2024, 7, 11, 13, 14, 0, 0, time.UTC)
//	ev, err := nlcep.ParseAt("water the plants tomorrow", now)
//	// ev.Date == 2024-07-12
package nlcep

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"nlcep/internal/model"
	"nlcep/internal/temporal"
)

// Re-exported so callers only need this package.
type (
	// Event is a parsed calendar event.
	Event = model.Event

	// Date is a civil calendar date.
	Date = temporal.Date

	// Clock is a time of day.
	Clock = temporal.Clock

	// ParseError is returned for every parse failure.
	ParseError = temporal.ParseError

	// View is the flat JSON form of an Event.
	View = model.View
)

const (
	ErrMissingTime       = temporal.MissingTime
	ErrInvalidTime       = temporal.InvalidTime
	ErrAmbiguousTime     = temporal.AmbiguousTime
	ErrMissingSummary    = temporal.MissingSummary
	ErrAmbiguousDuration = temporal.AmbiguousDuration
)

var locationStart = regexp.MustCompile(`\s*[@ |,]\s+.+`)

// Parse parses s relative to the current time.
func Parse(s string) (Event, error) {
	return ParseAt(s, time.Now())
}

// ParseAt parses s with now as the reference for relative dates.
//
// The text before the date becomes the summary. The text after the
// date/time becomes the location when it starts with a separator ("@",
// "," or whitespace) followed by more text.
func ParseAt(s string, now time.Time) (Event, error) {
	m, ok, err := temporal.FindDatetime(s, now)
	if err != nil {
		return Event{}, err
	}
	if !ok {
		return Event{}, temporal.MissingTime
	}

	summary := strings.TrimSpace(s[:m.Start])
	if summary == "" {
		return Event{}, temporal.MissingSummary
	}

	var location string
	if rest := s[m.End:]; locationStart.MatchString(rest) {
		location = strings.TrimSpace(rest)
		location = strings.TrimLeft(location, "@,")
		location = strings.TrimLeftFunc(location, unicode.IsSpace)
	}

	return Event{
		Summary:  summary,
		Date:     m.Date,
		Time:     m.Time,
		Location: location,
	}, nil
}
