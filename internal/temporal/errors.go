package temporal

// ParseError is the flat error taxonomy reported by the parser. Values are
// comparable, so callers can use errors.Is or a plain switch.
type ParseError uint8

const (
	// MissingTime means no date expression was found in the input at all.
	MissingTime ParseError = iota + 1
	// InvalidTime means a date or time token was recognized but does not
	// name a real calendar date or clock time (hour 25, 30.2., ...).
	InvalidTime
	// AmbiguousTime means calendar arithmetic for a relative expression left
	// the supported calendar range.
	AmbiguousTime
	// MissingSummary means a temporal expression was found but nothing
	// precedes it to use as the event summary.
	MissingSummary
	// AmbiguousDuration is reserved for duration parsing.
	AmbiguousDuration
)

func (e ParseError) Error() string {
	switch e {
	case MissingTime:
		return "missing time"
	case InvalidTime:
		return "invalid time"
	case AmbiguousTime:
		return "ambiguous time"
	case MissingSummary:
		return "missing summary"
	case AmbiguousDuration:
		return "ambiguous duration"
	default:
		return "unknown parse error"
	}
}

// Code is the stable machine-readable name used by the JSON surfaces.
func (e ParseError) Code() string {
	switch e {
	case MissingTime:
		return "MissingTime"
	case InvalidTime:
		return "InvalidTime"
	case AmbiguousTime:
		return "AmbiguousTime"
	case MissingSummary:
		return "MissingSummary"
	case AmbiguousDuration:
		return "AmbiguousDuration"
	default:
		return "Unknown"
	}
}
