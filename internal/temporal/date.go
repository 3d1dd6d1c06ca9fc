package temporal

import (
	"fmt"
	"strconv"
	"strings"
)

// RelativeKind selects the relative date rule.
type RelativeKind uint8

const (
	LastWeekday RelativeKind = iota + 1
	Yesterday
	Today
	Tomorrow
	Overmorrow
	NextWeekday
)

func (k RelativeKind) String() string {
	switch k {
	case LastWeekday:
		return "LastWeekday"
	case Yesterday:
		return "Yesterday"
	case Today:
		return "Today"
	case Tomorrow:
		return "Tomorrow"
	case Overmorrow:
		return "Overmorrow"
	case NextWeekday:
		return "NextWeekday"
	default:
		return "Unknown"
	}
}

// DateRelative is a date expressed relative to the reference instant.
// Weekday is only set for LastWeekday and NextWeekday.
type DateRelative struct {
	Kind     RelativeKind
	Language RelativeLanguage
	Weekday  Weekday
}

func (r DateRelative) String() string {
	if r.Kind == LastWeekday || r.Kind == NextWeekday {
		return fmt.Sprintf("%s(%s, %s)", r.Kind, r.Language, r.Weekday)
	}
	return fmt.Sprintf("%s(%s)", r.Kind, r.Language)
}

// DateStructured is a numeric date. Without HasYear it is the year-less
// form and Year is zero. The field widths bound how many digits the
// grammar accepts; they are validated again when resolving.
type DateStructured struct {
	HasYear bool
	Year    int16
	Month   int8
	Day     int8
}

// Ymd builds the year-bearing form.
func Ymd(year int16, month, day int8) DateStructured {
	return DateStructured{HasYear: true, Year: year, Month: month, Day: day}
}

// Ym builds the year-less form.
func Ym(month, day int8) DateStructured {
	return DateStructured{Month: month, Day: day}
}

func (d DateStructured) String() string {
	if d.HasYear {
		return fmt.Sprintf("Ymd(%d, %d, %d)", d.Year, d.Month, d.Day)
	}
	return fmt.Sprintf("Ym(%d, %d)", d.Month, d.Day)
}

// DateUnit is the result of one successful date scan. Exactly one of the
// fields is set.
type DateUnit struct {
	Structured *DateStructured
	Relative   *DateRelative
}

func structuredUnit(d DateStructured) DateUnit { return DateUnit{Structured: &d} }

func relativeUnit(r DateRelative) DateUnit { return DateUnit{Relative: &r} }

func (u DateUnit) String() string {
	switch {
	case u.Structured != nil:
		return "Structured(" + u.Structured.String() + ")"
	case u.Relative != nil:
		return "Relative(" + u.Relative.String() + ")"
	default:
		return "DateUnit(nil)"
	}
}

// parseDateStructured reads "D.M." or "D.M.Y". The day comes first.
func parseDateStructured(s string) (DateStructured, bool) {
	segments := strings.Split(s, ".")
	if len(segments) < 2 {
		return DateStructured{}, false
	}
	day, err := strconv.ParseInt(segments[0], 10, 8)
	if err != nil {
		return DateStructured{}, false
	}
	month, err := strconv.ParseInt(segments[1], 10, 8)
	if err != nil {
		return DateStructured{}, false
	}
	if len(segments) > 2 && segments[2] != "" {
		year, err := strconv.ParseInt(segments[2], 10, 16)
		if err != nil {
			return DateStructured{}, false
		}
		return Ymd(int16(year), int8(month), int8(day)), true
	}
	return Ym(int8(month), int8(day)), true
}

// scannedWord is a word seen by the date scanner and its byte offset.
type scannedWord struct {
	text  string
	start int
}

// maxPhraseWords is the longest multi-word template.
const maxPhraseWords = 3

// matchPhrase tests the trailing words of window, most recent last,
// against the multi-word templates. It returns the match and how many
// words it consumed.
func matchPhrase(window []scannedWord) (DateRelative, int, bool) {
	for _, p := range relativePhrases {
		n := len(p.words)
		if len(window) < n {
			continue
		}
		tail := window[len(window)-n:]
		matched := true
		for i, w := range p.words {
			if fold(tail[i].text) != w {
				matched = false
				break
			}
		}
		if matched {
			return DateRelative{Kind: p.kind, Language: p.lang}, n, true
		}
	}

	if len(window) < 2 {
		return DateRelative{}, 0, false
	}
	noun, ok := lookupWeekdayNoun(window[len(window)-2].text)
	if !ok {
		return DateRelative{}, 0, false
	}
	weekday, ok := lookupWeekdayName(window[len(window)-1].text, noun.lang)
	if !ok {
		return DateRelative{}, 0, false
	}
	return DateRelative{Kind: noun.kind, Language: noun.lang, Weekday: weekday}, 2, true
}

func isDateDelimiter(r rune) bool {
	return r == ' ' || r == ','
}

// FindDate returns the first date expression in s and the [start, end)
// byte range it occupies. Words are separated by spaces and commas; a
// multi-word phrase wins over a single word ending at the same position.
func FindDate(s string) (DateUnit, int, int, bool) {
	window := make([]scannedWord, 0, maxPhraseWords)
	start := 0
	for _, word := range splitAny(s, isDateDelimiter) {
		end := start + len(word)

		if len(window) == maxPhraseWords {
			copy(window, window[1:])
			window = window[:maxPhraseWords-1]
		}
		window = append(window, scannedWord{text: word, start: start})

		if rel, n, ok := matchPhrase(window); ok {
			return relativeUnit(rel), window[len(window)-n].start, end, true
		}
		if rel, ok := lookupRelative(word); ok {
			return relativeUnit(rel), start, end, true
		}
		if st, ok := parseDateStructured(word); ok {
			return structuredUnit(st), start, end, true
		}

		start = end + 1
	}
	return DateUnit{}, 0, 0, false
}

// splitAny splits s around every rune for which sep reports true. Unlike
// strings.FieldsFunc it keeps the empty words between adjacent separators,
// which the offset arithmetic depends on.
func splitAny(s string, sep func(rune) bool) []string {
	words := make([]string, 0, 8)
	last := 0
	for i, r := range s {
		if sep(r) {
			words = append(words, s[last:i])
			last = i + 1
		}
	}
	return append(words, s[last:])
}
