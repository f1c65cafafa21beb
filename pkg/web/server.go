// Package web serves the checklist page and a small JSON API over a Session.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"tableflip.dev/routine/pkg/app"
	"tableflip.dev/routine/pkg/day"
	"tableflip.dev/routine/pkg/geo"
	"tableflip.dev/routine/pkg/tracker"
)

// RefreshInterval is how often the page reloads itself, so a rollover shows
// up without user action.
const RefreshInterval = 60 * time.Second

// Server handles HTTP requests for one Session.
type Server struct {
	session *app.Session
	addr    string
	logger  *log.Logger
}

// New creates a new server.
func New(s *app.Session, addr string, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{session: s, addr: addr, logger: logger}
}

// Handler returns the routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Page
	mux.HandleFunc("GET /{$}", s.index)
	mux.HandleFunc("POST /tasks/{id}/toggle", s.toggleForm)
	mux.HandleFunc("POST /reset", s.resetForm)
	mux.HandleFunc("POST /location", s.locationForm)

	// API
	mux.HandleFunc("GET /api/dashboard", s.dashboard)
	mux.HandleFunc("GET /api/weather", s.weather)
	mux.HandleFunc("GET /api/quote", s.quote)
	mux.HandleFunc("GET /api/session", s.sessionInfo)
	mux.HandleFunc("GET /api/history", s.history)
	mux.HandleFunc("POST /api/tasks/{id}/toggle", s.toggleAPI)

	// Health check
	mux.HandleFunc("GET /health", s.health)

	return s.withLogging(mux)
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", "addr", s.addr, "session", s.session.Info().ID)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) withLogging(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		h.ServeHTTP(rec, r)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path,
			"status", rec.status, "took", time.Since(start))
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Dashboard(r.Context()))
}

func (s *Server) weather(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Weather(r.Context()))
}

func (s *Server) quote(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Quote())
}

func (s *Server) sessionInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Info())
}

func (s *Server) history(w http.ResponseWriter, r *http.Request) {
	days := 7
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > app.MaxReportDays {
			writeError(w, http.StatusBadRequest, "days must be between 1 and 366")
			return
		}
		days = n
	}

	until := s.session.Day()
	t, err := until.Time()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	since := day.Of(t.AddDate(0, 0, -(days - 1)))

	res, err := s.session.Report(r.Context(), since, until)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) toggleAPI(w http.ResponseWriter, r *http.Request) {
	res, err := s.session.Toggle(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, toggleStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func toggleStatus(err error) int {
	if errors.Is(err, tracker.ErrUnknownTask) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func (s *Server) toggleForm(w http.ResponseWriter, r *http.Request) {
	res, err := s.session.Toggle(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, tracker.ErrUnknownTask) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		s.logger.Error("toggle failed", "id", r.PathValue("id"), "err", err)
		redirect(w, r, url.Values{"alert": {"Could not save your progress."}})
		return
	}
	q := url.Values{}
	if res.Celebration != nil {
		q.Set("celebrate", strconv.FormatFloat(res.Celebration.Percentage, 'g', -1, 64))
	}
	redirect(w, r, q)
}

func (s *Server) resetForm(w http.ResponseWriter, r *http.Request) {
	if r.FormValue("confirm") != "yes" {
		redirect(w, r, url.Values{"alert": {"Reset cancelled."}})
		return
	}
	if err := s.session.Reset(r.Context()); err != nil {
		s.logger.Error("reset failed", "err", err)
		redirect(w, r, url.Values{"alert": {"Could not reset today's progress."}})
		return
	}
	redirect(w, r, nil)
}

func (s *Server) locationForm(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.FormValue("place"))
	_, err := s.session.SetLocation(r.Context(), query)
	switch {
	case err == nil, errors.Is(err, geo.ErrEmptyQuery):
		redirect(w, r, nil)
	default:
		redirect(w, r, url.Values{"alert": {"Could not find \"" + query + "\". Try a different place name."}})
	}
}

func redirect(w http.ResponseWriter, r *http.Request, q url.Values) {
	target := "/"
	if len(q) > 0 {
		target += "?" + q.Encode()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
