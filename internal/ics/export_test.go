package ics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nlcep/internal/model"
	"nlcep/internal/temporal"
)

var stamp = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func birthday() model.Event {
	return model.Event{
		Summary: "John's birthday",
		Date:    temporal.Date{Year: 2024, Month: time.November, Day: 18},
	}
}

func meeting() model.Event {
	return model.Event{
		Summary:  "Quota meeting",
		Date:     temporal.Date{Year: 2024, Month: time.June, Day: 2},
		Time:     &temporal.Clock{Hour: 11},
		Location: "A769",
	}
}

func TestEncode_AllDay(t *testing.T) {
	out, err := Encode(birthday(), Options{ProdID: "-//test//EN", Now: stamp})
	require.NoError(t, err)

	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Contains(t, out, "PRODID:-//test//EN")
	assert.Contains(t, out, "METHOD:PUBLISH")
	assert.Contains(t, out, "DTSTAMP:20240601T120000Z")
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20241118")
	assert.Contains(t, out, "DTEND;VALUE=DATE:20241119")
	assert.Contains(t, out, "SUMMARY:John's birthday")
	assert.NotContains(t, out, "LOCATION")
}

func TestEncode_Timed(t *testing.T) {
	out, err := Encode(meeting(), Options{Now: stamp, Duration: 90 * time.Minute})
	require.NoError(t, err)

	assert.Contains(t, out, "DTSTART:20240602T110000")
	assert.Contains(t, out, "DTEND:20240602T123000")
	assert.Contains(t, out, "LOCATION:A769")
	assert.NotContains(t, out, "DTSTART:20240602T110000Z")
}

func TestEncode_DefaultDuration(t *testing.T) {
	out, err := Encode(meeting(), Options{Now: stamp})
	require.NoError(t, err)
	assert.Contains(t, out, "DTEND:20240602T120000")
}

func TestEncode_UniqueUIDs(t *testing.T) {
	cal := NewCalendar("")
	a, err := AddEvent(cal, birthday(), Options{Now: stamp})
	require.NoError(t, err)
	b, err := AddEvent(cal, birthday(), Options{Now: stamp})
	require.NoError(t, err)
	assert.NotEmpty(t, a.Id())
	assert.NotEqual(t, a.Id(), b.Id())
	assert.Len(t, cal.Events(), 2)
}

func TestAddEvent_YearOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		ev   model.Event
	}{
		{"before common era", model.Event{Summary: "Party", Date: temporal.Date{Year: -5, Month: time.January, Day: 1}}},
		{"all-day end spills into 10000", model.Event{Summary: "Party", Date: temporal.Date{Year: 9999, Month: time.December, Day: 31}}},
		{"timed end spills into 10000", model.Event{
			Summary: "Party",
			Date:    temporal.Date{Year: 9999, Month: time.December, Day: 31},
			Time:    &temporal.Clock{Hour: 23, Minute: 30},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cal := NewCalendar("")
			_, err := AddEvent(cal, tt.ev, Options{Now: stamp})
			assert.ErrorIs(t, err, ErrYearOutOfRange)
			assert.Empty(t, cal.Events())

			_, err = Encode(tt.ev, Options{Now: stamp})
			assert.ErrorIs(t, err, ErrYearOutOfRange)
		})
	}

	path := filepath.Join(t.TempDir(), "events.ics")
	_, err := AppendFile(path, tests[0].ev, Options{Now: stamp})
	assert.ErrorIs(t, err, ErrYearOutOfRange)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestAddEvent_YearBounds(t *testing.T) {
	out, err := Encode(model.Event{Summary: "Epoch", Date: temporal.Date{Year: 0, Month: time.January, Day: 1}}, Options{Now: stamp})
	require.NoError(t, err)
	assert.Contains(t, out, "DTSTART;VALUE=DATE:00000101")

	out, err = Encode(model.Event{Summary: "Eve", Date: temporal.Date{Year: 9999, Month: time.December, Day: 30}}, Options{Now: stamp})
	require.NoError(t, err)
	assert.Contains(t, out, "DTEND;VALUE=DATE:99991231")
}

func TestAppendFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.ics")
	opts := Options{ProdID: "-//test//EN", Now: stamp}

	uid1, err := AppendFile(path, birthday(), opts)
	require.NoError(t, err)
	uid2, err := AppendFile(path, meeting(), opts)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	cal, err := LoadFile(path, "")
	require.NoError(t, err)
	entries := Summaries(cal, time.UTC)
	require.Len(t, entries, 2)

	assert.Equal(t, uid1, entries[0].UID)
	assert.Equal(t, "John's birthday", entries[0].Summary)
	assert.True(t, entries[0].AllDay)
	assert.Equal(t, time.Date(2024, 11, 18, 0, 0, 0, 0, time.UTC), entries[0].Start)

	assert.Equal(t, uid2, entries[1].UID)
	assert.Equal(t, "A769", entries[1].Location)
	assert.False(t, entries[1].AllDay)
	assert.Equal(t, time.Date(2024, 6, 2, 11, 0, 0, 0, time.UTC), entries[1].Start)
}

func TestLoadFile_Missing(t *testing.T) {
	cal, err := LoadFile(filepath.Join(t.TempDir(), "none.ics"), "")
	require.NoError(t, err)
	assert.Empty(t, cal.Events())
}

func TestParseICSTime(t *testing.T) {
	loc := time.FixedZone("X", 2*60*60)
	tm, err := parseICSTime("20250101T090000Z", loc)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, tm.Location())

	tm, err = parseICSTime("20250101T090000", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 1, 9, 0, 0, 0, loc), tm)

	tm, err = parseICSTime("20250101", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, loc), tm)

	_, err = parseICSTime("garbage", loc)
	assert.Error(t, err)
}
