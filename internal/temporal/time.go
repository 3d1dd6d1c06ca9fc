package temporal

import (
	"fmt"
	"strconv"
	"strings"
)

// TimeKind tells how many components a structured time carries.
type TimeKind uint8

const (
	H TimeKind = iota + 1
	HM
	HMS
)

// TimeStructured is a clock time as written. Components are not range
// checked until the time is resolved.
type TimeStructured struct {
	Kind   TimeKind
	Hour   int8
	Minute int8
	Second int8
}

func (t TimeStructured) String() string {
	switch t.Kind {
	case HMS:
		return fmt.Sprintf("HMS(%d, %d, %d)", t.Hour, t.Minute, t.Second)
	case HM:
		return fmt.Sprintf("HM(%d, %d)", t.Hour, t.Minute)
	default:
		return fmt.Sprintf("H(%d)", t.Hour)
	}
}

// TimeUnit is the result of one successful time scan.
type TimeUnit struct {
	Structured TimeStructured
}

func parseSmallInt(s string) (int8, bool) {
	n, err := strconv.ParseInt(s, 10, 8)
	if err != nil {
		return 0, false
	}
	return int8(n), true
}

// parseTimeStructured reads "H", "H:M" or "H:M:S". An empty minute or
// second segment ends the token early rather than counting as zero.
func parseTimeStructured(s string) (TimeStructured, bool) {
	segments := strings.Split(s, ":")
	hour, ok := parseSmallInt(segments[0])
	if !ok {
		return TimeStructured{}, false
	}
	if len(segments) < 2 || segments[1] == "" {
		return TimeStructured{Kind: H, Hour: hour}, true
	}
	minute, ok := parseSmallInt(segments[1])
	if !ok {
		return TimeStructured{}, false
	}
	if len(segments) < 3 || segments[2] == "" {
		return TimeStructured{Kind: HM, Hour: hour, Minute: minute}, true
	}
	second, ok := parseSmallInt(segments[2])
	if !ok {
		return TimeStructured{}, false
	}
	return TimeStructured{Kind: HMS, Hour: hour, Minute: minute, Second: second}, true
}

func isTimeDelimiter(r rune) bool {
	return r == ' ' || r == ',' || r == '@' || r == '-'
}

// FindTime returns the first clock time in the text following a date and
// its [start, end) range within that text.
//
// The start offset is one less than the number of leading spaces, because
// the leading empty word advances the offset by one again. With more than
// one leading space the reported range runs one byte long; callers slicing
// with it must clamp.
func FindTime(s string) (TimeUnit, int, int, bool) {
	start := len(s) - len(strings.TrimLeft(s, " "))
	if start > 0 {
		start--
	}
	for _, word := range splitAny(s, isTimeDelimiter) {
		end := start + len(word)
		if t, ok := parseTimeStructured(word); ok {
			return TimeUnit{Structured: t}, start, end, true
		}
		start = end + 1
	}
	return TimeUnit{}, 0, 0, false
}
