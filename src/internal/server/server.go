// Package server exposes the reference finder over HTTP. The surface is
// deliberately thin: one lookup route and a health check.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"referee/src/internal/referee"
)

// Finder is the single operation the routing layer consumes.
type Finder interface {
	FindReferences(ctx context.Context, entityID string) ([]referee.Candidate, error)
}

// Server routes HTTP requests to a Finder.
type Server struct {
	finder Finder
	log    *zap.Logger
	mux    *http.ServeMux
}

// New returns a Server for the finder.
func New(finder Finder, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{finder: finder, log: log, mux: http.NewServeMux()}
	s.mux.HandleFunc("GET /referee/{item}", s.handleReferee)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleReferee(w http.ResponseWriter, r *http.Request) {
	item := r.PathValue("item")
	start := time.Now()

	results, err := s.finder.FindReferences(r.Context(), item)
	if err != nil {
		s.log.Warn("find references failed",
			zap.String("item", item), zap.Error(err))
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	s.log.Info("find references",
		zap.String("item", item),
		zap.Int("candidates", len(results)),
		zap.Duration("took", time.Since(start)))

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(results); err != nil {
		s.log.Warn("encode response failed", zap.Error(err))
	}
}
