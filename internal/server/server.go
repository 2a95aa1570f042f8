// Package server exposes bookmarks, history, suggestions and blended search
// results over HTTP for the browser start page, and serves its static files.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/nikbrunner/newtab/internal/model"
	"github.com/nikbrunner/newtab/internal/navigate"
	"github.com/nikbrunner/newtab/internal/omnibox"
	"github.com/nikbrunner/newtab/internal/storage"
)

const shutdownTimeout = 5 * time.Second

// Params holds the dependencies of a Server.
type Params struct {
	Storage     storage.Storage
	History     omnibox.HistorySource
	Suggestions omnibox.SuggestionSource
	Resolver    *navigate.Resolver
	StaticDir   string
	Logger      zerolog.Logger
}

// Server serves the start page API.
type Server struct {
	storage   storage.Storage
	history   omnibox.HistorySource
	suggest   omnibox.SuggestionSource
	resolver  *navigate.Resolver
	staticDir string
	logger    zerolog.Logger
}

// New creates a Server.
func New(p Params) *Server {
	if p.History == nil {
		p.History = omnibox.HistoryFunc(func(context.Context, string) ([]model.HistoryEntry, error) {
			return nil, nil
		})
	}
	if p.Suggestions == nil {
		p.Suggestions = omnibox.SuggestionFunc(func(context.Context, string) ([]model.Suggestion, error) {
			return nil, nil
		})
	}
	if p.Resolver == nil {
		p.Resolver = navigate.NewResolver("")
	}
	return &Server{
		storage:   p.Storage,
		history:   p.History,
		suggest:   p.Suggestions,
		resolver:  p.Resolver,
		staticDir: p.StaticDir,
		logger:    p.Logger,
	}
}

// Handler returns the routed handler wrapped in request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/bookmarks", withCORS(s.handleBookmarks))
	mux.HandleFunc("/api/history", withCORS(s.handleHistory))
	mux.HandleFunc("/api/suggest", withCORS(s.handleSuggest))
	mux.HandleFunc("/api/search", withCORS(s.handleSearch))
	if s.staticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(s.staticDir)))
	}
	return s.logRequests(mux)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func withCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Content-Type", "application/json")
		next(w, r)
	}
}
