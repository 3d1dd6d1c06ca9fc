package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"

	"nlcep"
	"nlcep/internal/config"
	"nlcep/internal/ics"
)

// render writes ev in the selected output format.
func render(w io.Writer, st *styles, format string, ev nlcep.Event, loc *time.Location, opts ics.Options) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(ev.View(loc))
	case "ics":
		body, err := ics.Encode(ev, opts)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, body)
		return err
	default:
		return renderText(w, st, ev)
	}
}

func renderText(w io.Writer, st *styles, ev nlcep.Event) error {
	when := ev.Date.String()
	if ev.Time != nil {
		when += " " + ev.Time.String()
	} else {
		when += " (all day)"
	}

	if _, err := fmt.Fprintf(w, "%s %s\n", st.label.Sprint("summary: "), st.summary.Sprint(ev.Summary)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s %s\n", st.label.Sprint("when:    "), st.when.Sprint(when)); err != nil {
		return err
	}
	if ev.Location != "" {
		if _, err := fmt.Fprintf(w, "%s %s\n", st.label.Sprint("where:   "), st.location.Sprint(ev.Location)); err != nil {
			return err
		}
	}
	return nil
}

// writeParseError reports a failed parse: as JSON on stdout in json mode,
// otherwise as a line on stderr.
func writeParseError(stdout, stderr io.Writer, st *styles, format string, err error) {
	code := "Unknown"
	var pe nlcep.ParseError
	if errors.As(err, &pe) {
		code = pe.Code()
	}
	if format == "json" {
		_ = json.NewEncoder(stdout).Encode(struct {
			Error string `json:"error"`
			Code  string `json:"code"`
		}{err.Error(), code})
		return
	}
	fmt.Fprintf(stderr, "%s %s\n", st.err.Sprint("error:"), err)
}

// list prints the events stored in a calendar file.
func list(w io.Writer, st *styles, path string, conf *config.Config) error {
	cal, err := ics.LoadFile(path, conf.ICS.ProdID)
	if err != nil {
		return err
	}
	for _, e := range ics.Summaries(cal, conf.Location()) {
		when := e.Start.Format("2006-01-02 15:04")
		if e.AllDay {
			when = e.Start.Format("2006-01-02") + "      "
		}
		line := fmt.Sprintf("%s  %s", st.when.Sprint(when), st.summary.Sprint(e.Summary))
		if e.Location != "" {
			line += " @ " + st.location.Sprint(e.Location)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
