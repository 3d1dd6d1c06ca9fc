package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"golang.org/x/term"

	"nlcep"
	"nlcep/internal/config"
	"nlcep/internal/ics"
	appLog "nlcep/internal/log"
	"nlcep/internal/metric"
	"nlcep/internal/web"
)

// flagConfig holds CLI flag values before they are merged into the config.
type flagConfig struct {
	configPath string
	now        string
	tz         string
	output     string
	appendPath string
	listPath   string
	initConfig string
	serve      bool
	listen     string
	color      string

	args []string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run is main without the process exit, so tests can drive it.
func run(args []string, stdout, stderr io.Writer) int {
	if err := config.LoadDotEnv(); err != nil {
		appLog.Warn("ignoring .env", "err", err)
	}

	flags, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	conf, err := loadConfig(flags)
	if err != nil {
		appLog.Error("failed to load config", err, "config_path", flags.configPath)
		return 1
	}
	appLog.SetLevel(appLog.ParseLevel(conf.LogLevel))
	appLog.Debug("effective config",
		"listen", conf.Listen,
		"timezone", conf.Timezone,
		"output", conf.Output,
		"default_duration", conf.ICS.DefaultDuration,
	)

	st := newStyles(colorEnabled(flags.color, stdout))

	switch {
	case flags.initConfig != "":
		if err := initConfig(flags.initConfig, conf); err != nil {
			appLog.Error("failed to write config", err, "path", flags.initConfig)
			return 1
		}
		fmt.Fprintf(stderr, "wrote %s\n", flags.initConfig)
		return 0
	case flags.serve:
		return serve(conf)
	case flags.listPath != "":
		if err := list(stdout, st, flags.listPath, conf); err != nil {
			appLog.Error("failed to list calendar", err, "path", flags.listPath)
			return 1
		}
		return 0
	}

	input := strings.Join(flags.args, " ")
	if strings.TrimSpace(input) == "" {
		fmt.Fprintln(stderr, "usage: nlcep [flags] <event text>")
		return 2
	}

	now := time.Now().In(conf.Location())
	if flags.now != "" {
		now, err = time.Parse(time.RFC3339, flags.now)
		if err != nil {
			fmt.Fprintf(stderr, "invalid -now %q: want RFC 3339, e.g. 2024-06-01T12:00:00Z\n", flags.now)
			return 2
		}
	}

	ev, err := nlcep.ParseAt(input, now)
	if err != nil {
		appLog.Debug("parse failed", "input", input, "err", err)
		writeParseError(stdout, stderr, st, conf.Output, err)
		return 1
	}

	opts := ics.Options{ProdID: conf.ICS.ProdID, Duration: conf.EventDuration()}
	if err := render(stdout, st, conf.Output, ev, now.Location(), opts); err != nil {
		appLog.Error("failed to write output", err)
		return 1
	}

	if flags.appendPath != "" {
		uid, err := ics.AppendFile(flags.appendPath, ev, opts)
		if err != nil {
			appLog.Error("failed to append event", err, "path", flags.appendPath)
			return 1
		}
		fmt.Fprintf(stderr, "appended %s to %s\n", uid, flags.appendPath)
	}
	return 0
}

func loadConfig(flags flagConfig) (*config.Config, error) {
	conf, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}
	conf.ApplyEnv()

	// Flags override both the file and the environment.
	if flags.listen != "" {
		conf.Listen = flags.listen
	}
	if flags.tz != "" {
		if _, err := time.LoadLocation(flags.tz); err != nil {
			return nil, errors.Wrapf(err, "invalid -tz %q", flags.tz)
		}
		conf.Timezone = flags.tz
	}
	if flags.output != "" {
		switch flags.output {
		case "text", "json", "ics":
			conf.Output = flags.output
		default:
			return nil, errors.Errorf("invalid -output %q: want text, json or ics", flags.output)
		}
	}
	return conf, nil
}

// initConfig saves conf as a new config file. An existing file is left
// alone.
func initConfig(path string, conf *config.Config) error {
	if _, err := os.Stat(path); err == nil {
		return errors.Errorf("%s already exists", path)
	} else if !os.IsNotExist(err) {
		return errors.Wrapf(err, "stat %s", path)
	}
	return conf.Save(path)
}

func serve(conf *config.Config) int {
	// Root context with cancellation on SIGINT/SIGTERM.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case sig := <-sigCh:
			appLog.Info("signal received, shutting down", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	if err := web.StartServer(ctx, conf, metric.New()); err != nil {
		appLog.Error("HTTP server failed", err, "listen", conf.Listen)
		return 1
	}
	return 0
}

func parseFlags(args []string, stderr io.Writer) (flagConfig, error) {
	var cfg flagConfig

	fs := flag.NewFlagSet("nlcep", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.configPath, "config", "", "Path to YAML config file (optional)")
	fs.StringVar(&cfg.now, "now", "", "Reference time for relative dates, RFC 3339 (default: current time)")
	fs.StringVar(&cfg.tz, "tz", "", "IANA timezone for the current time (overrides config if set)")
	fs.StringVar(&cfg.output, "output", "", "Output format: text, json or ics (overrides config if set)")
	fs.StringVar(&cfg.appendPath, "append", "", "Append the parsed event to this .ics file")
	fs.StringVar(&cfg.listPath, "list", "", "List the events in this .ics file and exit")
	fs.StringVar(&cfg.initConfig, "init-config", "", "Write the effective config to this path and exit (refuses to overwrite)")
	fs.BoolVar(&cfg.serve, "serve", false, "Serve the HTTP API instead of parsing arguments")
	fs.StringVar(&cfg.listen, "listen", "", "HTTP listen address (overrides config if set)")
	fs.StringVar(&cfg.color, "color", "auto", "Colorize text output: auto, always or never")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: nlcep [flags] <event text>")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	cfg.args = fs.Args()
	return cfg, nil
}

// colorEnabled resolves the -color flag for w.
func colorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		// Check if w is a TTY and NO_COLOR is not set
		f, ok := w.(*os.File)
		return ok && term.IsTerminal(int(f.Fd())) && os.Getenv("NO_COLOR") == ""
	}
}

// styles holds color formatters for text output.
type styles struct {
	label    *color.Color
	summary  *color.Color
	when     *color.Color
	location *color.Color
	err      *color.Color
}

func newStyles(enabled bool) *styles {
	s := &styles{
		label:    color.New(color.Faint),
		summary:  color.New(color.Bold, color.FgHiWhite),
		when:     color.New(color.FgHiGreen),
		location: color.New(color.FgHiBlue),
		err:      color.New(color.Bold, color.FgRed),
	}
	for _, c := range []*color.Color{s.label, s.summary, s.when, s.location, s.err} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}
