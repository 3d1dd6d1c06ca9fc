package web

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"nlcep"
	"nlcep/internal/config"
	"nlcep/internal/ics"
	appLog "nlcep/internal/log"
	"nlcep/internal/metric"
)

const maxBodyBytes = 64 << 10

// Server exposes the parser over HTTP.
type Server struct {
	cfg     *config.Config
	metrics *metric.Metrics
	mux     *http.ServeMux

	// now is swapped out in tests.
	now func() time.Time
}

// NewServer constructs a new Server. m may be nil, in which case /metrics
// is not registered.
func NewServer(cfg *config.Config, m *metric.Metrics) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	s := &Server{
		cfg:     cfg,
		metrics: m,
		mux:     http.NewServeMux(),
		now:     time.Now,
	}
	s.registerRoutes()
	return s
}

// Handler returns the underlying http.Handler for this server.
func (s *Server) Handler() http.Handler {
	h := http.Handler(s.mux)
	if s.basicAuthEnabled() {
		appLog.Info("HTTP basic auth enabled", "listen", "http://"+s.cfg.Listen)
		return s.basicAuthMiddleware(h)
	}
	return h
}

// basicAuthEnabled reports whether HTTP Basic Auth is configured.
func (s *Server) basicAuthEnabled() bool {
	if s.cfg.BasicAuth == nil {
		return false
	}
	// Empty credentials disable auth rather than locking everyone out.
	return s.cfg.BasicAuth.Username != "" && s.cfg.BasicAuth.Password != ""
}

// basicAuthMiddleware wraps all handlers except /health with HTTP Basic Auth.
func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	username := s.cfg.BasicAuth.Username
	password := s.cfg.BasicAuth.Password

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		u, p, ok := r.BasicAuth()
		if !ok || !secureCompare(u, username) || !secureCompare(p, password) {
			w.Header().Set("WWW-Authenticate", `Basic realm="nlcep", charset="UTF-8"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// secureCompare compares two strings in constant time.
func secureCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// StartServer serves on cfg.Listen until ctx is canceled, then shuts down
// gracefully.
func StartServer(ctx context.Context, cfg *config.Config, m *metric.Metrics) error {
	s := NewServer(cfg, m)
	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLog.Info("starting HTTP server", "listen", "http://"+s.cfg.Listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	appLog.Info("HTTP server stopped")
	return nil
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/api/parse", s.handleParse)
	s.mux.HandleFunc("/api/parse.ics", s.handleParseICS)
	if s.metrics != nil {
		s.mux.Handle("/metrics", s.metrics.Handler())
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

type parseRequest struct {
	Text string `json:"text"`
	Now  string `json:"now"`
}

// readRequest collects text and now from the query, a form body or a JSON
// body.
func readRequest(r *http.Request) (parseRequest, error) {
	var req parseRequest
	switch r.Method {
	case http.MethodGet:
	case http.MethodPost:
		r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
		if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				return req, errors.New("invalid JSON body")
			}
			return req, nil
		}
		if err := r.ParseForm(); err != nil {
			return req, errors.New("invalid form body")
		}
	default:
		return req, errMethod
	}
	req.Text = r.FormValue("text")
	req.Now = r.FormValue("now")
	return req, nil
}

var errMethod = errors.New("method not allowed")

// parse runs the parser for an HTTP request and writes any error response.
// ok is false when a response has already been written.
func (s *Server) parse(w http.ResponseWriter, r *http.Request) (ev nlcep.Event, loc *time.Location, ok bool) {
	req, err := readRequest(r)
	if err != nil {
		if errors.Is(err, errMethod) {
			w.Header().Set("Allow", "GET, POST")
			writeError(w, http.StatusMethodNotAllowed, err.Error())
			return ev, nil, false
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return ev, nil, false
	}

	now := s.now().In(s.cfg.Location())
	if req.Now != "" {
		now, err = time.Parse(time.RFC3339, req.Now)
		if err != nil {
			writeError(w, http.StatusBadRequest, "now must be an RFC 3339 timestamp")
			return ev, nil, false
		}
	}

	start := time.Now()
	ev, err = nlcep.ParseAt(req.Text, now)
	s.metrics.ObserveParse(start, err)
	if err != nil {
		var pe nlcep.ParseError
		if errors.As(err, &pe) {
			appLog.Debug("parse rejected", "text", req.Text, "code", pe.Code())
			writeParseError(w, pe)
			return ev, nil, false
		}
		appLog.Error("parse failed", err, "text", req.Text)
		writeError(w, http.StatusInternalServerError, "internal error")
		return ev, nil, false
	}
	return ev, now.Location(), true
}

// handleParse returns the parsed event as JSON.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	ev, loc, ok := s.parse(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, ev.View(loc))
}

// handleParseICS returns the parsed event as a one-event calendar.
func (s *Server) handleParseICS(w http.ResponseWriter, r *http.Request) {
	ev, _, ok := s.parse(w, r)
	if !ok {
		return
	}
	body, err := ics.Encode(ev, ics.Options{
		ProdID:   s.cfg.ICS.ProdID,
		Now:      s.now(),
		Duration: s.cfg.EventDuration(),
	})
	if err != nil {
		appLog.Debug("ics encode rejected", "date", ev.Date.String(), "err", err)
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.metrics.ObserveEncode()

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `inline; filename="event.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		appLog.Error("failed to write JSON response", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	type errResp struct {
		Error string `json:"error"`
	}
	writeJSON(w, status, errResp{Error: msg})
}

func writeParseError(w http.ResponseWriter, pe nlcep.ParseError) {
	type errResp struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	writeJSON(w, http.StatusUnprocessableEntity, errResp{Error: pe.Error(), Code: pe.Code()})
}
