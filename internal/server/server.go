// Package server is the HTTP boundary over the core query API: it routes
// requests, shapes results into transport payloads, and serves the static
// frontend. No statistics logic lives here.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/jward/namepop"
)

// Server wires the query API to HTTP routes.
type Server struct {
	queries   *namepop.Queries
	logger    *zap.Logger
	staticDir string
}

// New returns a server over q. staticDir may be empty to disable static
// file serving.
func New(q *namepop.Queries, logger *zap.Logger, staticDir string) *Server {
	return &Server{queries: q, logger: logger, staticDir: staticDir}
}

// Router returns the route table. API routes are registered before the
// static catch-all.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/known_years", s.HandleKnownYears).Methods("GET")
	r.HandleFunc("/api/known_names", s.HandleKnownNames).Methods("GET")
	r.HandleFunc("/api/load", s.HandleLoad).Methods("POST")
	if s.staticDir != "" {
		r.PathPrefix("/").Handler(http.FileServer(http.Dir(s.staticDir)))
	}
	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", zap.String("addr", addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
