// Package server exposes scanned usage data over a local HTTP API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/theirongolddev/ccdash/internal/model"
	"github.com/theirongolddev/ccdash/internal/pipeline"
)

// Config controls the HTTP server runtime.
type Config struct {
	Addr string
}

// Server serves project and session usage over HTTP.
type Server struct {
	cfg     Config
	scanner *pipeline.Scanner
}

// New returns a server bound to the given scanner.
func New(cfg Config, scanner *pipeline.Scanner) *Server {
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8642"
	}
	return &Server{cfg: cfg, scanner: scanner}
}

// Handler returns the route table. Separate from Run so tests can
// drive it through httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /api/projects", s.handleProjects)
	mux.HandleFunc("GET /api/projects/{project}", s.handleProject)
	mux.HandleFunc("GET /api/projects/{project}/sessions", s.handleSessions)
	mux.HandleFunc("GET /api/projects/{project}/sessions/{session}", s.handleSession)
	mux.HandleFunc("POST /api/refresh", s.handleRefresh)
	return logRequests(mux)
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("ccdash serving on http://%s", s.cfg.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	useCache := !r.URL.Query().Has("refresh")
	writeJSON(w, http.StatusOK, s.scanner.ScanAll(useCache))
}

func (s *Server) handleProject(w http.ResponseWriter, r *http.Request) {
	p, err := s.scanner.FindProject(r.PathValue("project"))
	if err != nil {
		writeScanError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	p, err := s.scanner.FindProject(r.PathValue("project"))
	if err != nil {
		writeScanError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p.Sessions)
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	d, err := s.scanner.FindSession(r.PathValue("project"), r.PathValue("session"))
	if err != nil {
		writeScanError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleRefresh(w http.ResponseWriter, _ *http.Request) {
	// Drop the slot before rescanning so a failed rescan cannot leave
	// a stale result behind.
	if s.scanner.Cache != nil {
		s.scanner.Cache.Invalidate()
	}
	writeJSON(w, http.StatusOK, s.scanner.ScanAll(false))
}

// writeScanError maps pipeline errors onto HTTP status codes. Unknown
// errors are logged and reported as a generic 500.
func writeScanError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidInput):
		writeJSONError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, model.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, err.Error())
	default:
		log.Printf("ccdash http error: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s (%s)", r.Method, r.URL.Path, time.Since(start).Round(time.Millisecond))
	})
}
