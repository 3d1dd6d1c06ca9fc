package temporal

import (
	"time"

	"github.com/teambition/rrule-go"
	"golang.org/x/text/cases"
)

// RelativeLanguage records which locale a relative keyword was written in.
// It never influences resolution.
type RelativeLanguage uint8

const (
	English RelativeLanguage = iota + 1
	Finnish
)

func (l RelativeLanguage) String() string {
	switch l {
	case English:
		return "en"
	case Finnish:
		return "fi"
	default:
		return "unknown"
	}
}

// Weekday is an ISO weekday, Monday = 1 through Sunday = 7.
type Weekday uint8

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// Std converts to the standard library weekday.
func (w Weekday) Std() time.Weekday {
	if w == Sunday {
		return time.Sunday
	}
	return time.Weekday(w)
}

func (w Weekday) String() string {
	return w.Std().String()
}

func (w Weekday) rruleWeekday() rrule.Weekday {
	switch w {
	case Monday:
		return rrule.MO
	case Tuesday:
		return rrule.TU
	case Wednesday:
		return rrule.WE
	case Thursday:
		return rrule.TH
	case Friday:
		return rrule.FR
	case Saturday:
		return rrule.SA
	default:
		return rrule.SU
	}
}

// WeekdayOf converts a standard library weekday.
func WeekdayOf(d time.Weekday) Weekday {
	if d == time.Sunday {
		return Sunday
	}
	return Weekday(d)
}

type keyword struct {
	lang RelativeLanguage
	kind RelativeKind
	word string
}

// single-word relative dates
var relativeKeywords = []keyword{
	{English, Yesterday, "yesterday"},
	{English, Today, "today"},
	{English, Tomorrow, "tomorrow"},
	{English, Overmorrow, "overmorrow"},
	{Finnish, Yesterday, "eilen"},
	{Finnish, Today, "tänään"},
	{Finnish, Tomorrow, "huomenna"},
	{Finnish, Overmorrow, "ylihuomenna"},
}

// first word of a two-word "<noun> <weekday>" phrase
var weekdayNouns = []keyword{
	{English, NextWeekday, "next"},
	{English, LastWeekday, "last"},
	{Finnish, NextWeekday, "ensi"},
	{Finnish, LastWeekday, "viime"},
}

type weekdayName struct {
	lang    RelativeLanguage
	weekday Weekday
	word    string
}

var weekdayNames = []weekdayName{
	{English, Monday, "monday"},
	{English, Tuesday, "tuesday"},
	{English, Wednesday, "wednesday"},
	{English, Thursday, "thursday"},
	{English, Friday, "friday"},
	{English, Saturday, "saturday"},
	{English, Sunday, "sunday"},
	{Finnish, Monday, "maanantai"},
	{Finnish, Tuesday, "tiistai"},
	{Finnish, Wednesday, "keskiviikko"},
	{Finnish, Thursday, "torstai"},
	{Finnish, Friday, "perjantai"},
	{Finnish, Saturday, "lauantai"},
	{Finnish, Sunday, "sunnuntai"},
	// essive, "ensi maanantaina"
	{Finnish, Monday, "maanantaina"},
	{Finnish, Tuesday, "tiistaina"},
	{Finnish, Wednesday, "keskiviikkona"},
	{Finnish, Thursday, "torstaina"},
	{Finnish, Friday, "perjantaina"},
	{Finnish, Saturday, "lauantaina"},
	{Finnish, Sunday, "sunnuntaina"},
}

// fixed phrases of three or more words
var relativePhrases = []struct {
	keyword
	words []string
}{
	{keyword{English, Overmorrow, "day after tomorrow"}, []string{"day", "after", "tomorrow"}},
}

// fold lower-cases s for keyword comparison. Casers carry state, so one is
// built per call.
func fold(s string) string {
	return cases.Fold().String(s)
}

func lookupRelative(word string) (DateRelative, bool) {
	w := fold(word)
	for _, k := range relativeKeywords {
		if k.word == w {
			return DateRelative{Kind: k.kind, Language: k.lang}, true
		}
	}
	return DateRelative{}, false
}

func lookupWeekdayNoun(word string) (keyword, bool) {
	w := fold(word)
	for _, k := range weekdayNouns {
		if k.word == w {
			return k, true
		}
	}
	return keyword{}, false
}

func lookupWeekdayName(word string, lang RelativeLanguage) (Weekday, bool) {
	w := fold(word)
	for _, n := range weekdayNames {
		if n.lang == lang && n.word == w {
			return n.weekday, true
		}
	}
	return 0, false
}
