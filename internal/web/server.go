// Package web serves the export artifacts over plain HTTP for browsers.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/rdvdesk/core/internal/export"
	"github.com/rdvdesk/core/internal/filter"
	"github.com/rdvdesk/core/internal/intake"
	"github.com/rdvdesk/core/internal/repository"
)

// Exporter produces the export artifacts.
type Exporter interface {
	Report(ctx context.Context, c *filter.Criteria, quoted bool) (string, error)
	CalendarFile(ctx context.Context, id, link string) (string, error)
}

// Server exposes:
//
//	GET /health
//	GET /api/export?status=&date=&advisor=&search=&quoted=1
//	GET /api/appointments/{id}/ics?link=
type Server struct {
	exp Exporter
	log zerolog.Logger
	mux *http.ServeMux
}

func NewServer(exp Exporter, log zerolog.Logger) *Server {
	s := &Server{
		exp: exp,
		log: log,
		mux: http.NewServeMux(),
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /api/export", s.handleExport)
	s.mux.HandleFunc("GET /api/appointments/{id}/ics", s.handleCalendar)
}

// Handler returns the mux wrapped with request logging.
func (s *Server) Handler() http.Handler {
	return s.logRequests(s.mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	c := &filter.Criteria{
		Status:  q.Get("status"),
		Date:    q.Get("date"),
		Advisor: q.Get("advisor"),
		Search:  q.Get("search"),
	}
	quoted := q.Get("quoted") == "1" || q.Get("quoted") == "true"

	body, err := s.exp.Report(r.Context(), c, quoted)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeAttachment(w, export.TabularContentType, export.TabularFilename, body)
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	body, err := s.exp.CalendarFile(r.Context(), id, r.URL.Query().Get("link"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeAttachment(w, export.CalendarContentType, export.CalendarFilename(id), body)
}

func writeAttachment(w http.ResponseWriter, contentType, filename, body string) {
	w.Header().Set("Content-Type", contentType+"; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		ve   *intake.ValidationError
		fe   *export.FormatError
		code int
		body = errorBody{Error: err.Error()}
	)
	switch {
	case errors.As(err, &ve):
		code = http.StatusBadRequest
		body.Fields = ve.Fields
	case errors.As(err, &fe):
		code = http.StatusUnprocessableEntity
	case errors.Is(err, repository.ErrNotFound):
		code = http.StatusNotFound
		body.Error = "appointment not found"
	default:
		code = http.StatusInternalServerError
		body.Error = "internal error"
		s.log.Error().Err(err).Str("path", r.URL.Path).Msg("export failed")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("elapsed", time.Since(start)).
			Msg("http request")
	})
}
