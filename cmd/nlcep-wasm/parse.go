//go:build js && wasm

package main

import (
	"errors"
	"math"
	"syscall/js"
	"time"

	"nlcep"
)

// parse parses text against the current time in UTC.
// JS: nlcepParse(text) -> {event} or {error, code}
func parse(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return map[string]interface{}{"error": "text argument required"}
	}
	return result(args[0].String(), time.Now().UTC())
}

// parseAt parses text against the given instant, interpreted in UTC.
// JS: nlcepParseAt(text, millisOrDate) -> {event} or {error, code}
func parseAt(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return map[string]interface{}{"error": "text and time arguments required"}
	}

	var millis float64
	switch at := args[1]; at.Type() {
	case js.TypeNumber:
		millis = at.Float()
	case js.TypeObject:
		// A JS Date.
		millis = at.Call("getTime").Float()
	default:
		return map[string]interface{}{"error": "time must be a number of milliseconds or a Date"}
	}
	if math.IsNaN(millis) || math.IsInf(millis, 0) {
		// e.g. new Date("x").getTime()
		return map[string]interface{}{"error": "time is not a valid instant"}
	}
	return result(args[0].String(), time.UnixMilli(int64(millis)).UTC())
}

func result(text string, now time.Time) map[string]interface{} {
	ev, err := nlcep.ParseAt(text, now)
	if err != nil {
		code := "Unknown"
		var pe nlcep.ParseError
		if errors.As(err, &pe) {
			code = pe.Code()
		}
		return map[string]interface{}{"error": err.Error(), "code": code}
	}

	v := ev.View(time.UTC)
	event := map[string]interface{}{
		"summary": v.Summary,
		"date":    v.Date,
		"all_day": v.AllDay,
		"start":   v.Start,
	}
	if v.Time != "" {
		event["time"] = v.Time
	}
	if v.Location != "" {
		event["location"] = v.Location
	}
	return map[string]interface{}{"event": event}
}
