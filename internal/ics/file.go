package ics

import (
	"bytes"
	"io/fs"
	"os"

	ical "github.com/arran4/golang-ical"
	"github.com/pkg/errors"

	"nlcep/internal/config"
	appLog "nlcep/internal/log"
	"nlcep/internal/model"
)

// LoadFile reads a calendar from path. A missing file yields a new, empty
// calendar.
func LoadFile(path, prodID string) (*ical.Calendar, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewCalendar(prodID), nil
		}
		return nil, errors.Wrapf(err, "read calendar %s", path)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return NewCalendar(prodID), nil
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		appLog.Error("ics parse failed", err, "path", path)
		return nil, errors.Wrapf(err, "parse calendar %s", path)
	}
	return cal, nil
}

// AppendFile adds ev to the calendar stored at path, creating the file when
// needed, and returns the new event's UID.
func AppendFile(path string, ev model.Event, opts Options) (string, error) {
	cal, err := LoadFile(path, opts.ProdID)
	if err != nil {
		return "", err
	}
	vev, err := AddEvent(cal, ev, opts)
	if err != nil {
		return "", err
	}

	if err := config.WriteFileAtomic(path, []byte(cal.Serialize()), ".nlcep-ics-*.tmp"); err != nil {
		return "", err
	}
	appLog.Info("ics event appended", "path", path, "uid", vev.Id(), "event_count", len(cal.Events()))
	return vev.Id(), nil
}
