// Package httpapi serves match-3 boards as a JSON API. Each session is one
// board held in memory; finished boards are written to the score store.
//
// Routes:
//
//	GET    /health
//	GET    /levels
//	POST   /sessions                 {"level": 0, "seed": 42}
//	GET    /sessions/{id}
//	DELETE /sessions/{id}
//	POST   /sessions/{id}/swap       {"a": {"row":0,"col":0}, "b": {"row":0,"col":1}}
//	GET    /sessions/{id}/moves
//	GET    /sessions/{id}/hint
//	GET    /scores/{gameId}
//	GET    /results/{id}
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/games/match3/levels"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

// Options configures the API server.
type Options struct {
	// Settings with the difficulty already applied, as returned by
	// match3.Settings. The zero value uses match3.Settings().
	Settings config.Match3Config
	Preset   config.DifficultyPreset

	// Store receives finished sessions. May be nil.
	Store  *storage.Store
	Logger *log.Logger

	// AllowedOrigins for CORS. Empty allows any origin.
	AllowedOrigins []string

	// SessionTTL drops boards nobody touched for this long. Zero keeps them.
	SessionTTL  time.Duration
	MaxSessions int

	// CleanupPeriod is how often Serve sweeps idle sessions (default 30s).
	CleanupPeriod time.Duration

	// Seed returns the deal seed when a request does not pin one.
	Seed func() int64
}

// Server is the HTTP API.
type Server struct {
	r        chi.Router
	opts     Options
	sessions *sessionStore
	levels   []levels.Level
	logger   *log.Logger
}

// New builds the router and its session store.
func New(opts Options) *Server {
	if opts.Settings.Board.Rows == 0 {
		opts.Settings, opts.Preset = match3.Settings()
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "match3-http",
		})
	}
	if opts.CleanupPeriod <= 0 {
		opts.CleanupPeriod = 30 * time.Second
	}
	if opts.Seed == nil {
		opts.Seed = func() int64 { return time.Now().UnixNano() }
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	s := &Server{
		r:        chi.NewRouter(),
		opts:     opts,
		sessions: newSessionStore(opts.SessionTTL, opts.MaxSessions),
		levels:   levels.Campaign(),
		logger:   opts.Logger,
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(s.requestLogger)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         60 * 15,
	}))

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "sessions": s.sessions.len()})
	})
	s.r.Get("/levels", s.handleLevels)

	s.r.Route("/sessions", func(rr chi.Router) {
		rr.Post("/", s.handleCreate)
		rr.Route("/{id}", func(sr chi.Router) {
			sr.Get("/", s.handleGet)
			sr.Delete("/", s.handleDelete)
			sr.Post("/swap", s.handleSwap)
			sr.Get("/moves", s.handleMoves)
			sr.Get("/hint", s.handleHint)
		})
	})
	s.r.Get("/scores/{gameId}", s.handleScores)
	s.r.Get("/results/{id}", s.handleResult)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", r.URL.Path)
	})
	s.r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", r.Method+" "+r.URL.Path)
	})

	return s
}

// Handler returns the root handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.r
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go s.cleanupLoop(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// cleanupLoop records and drops idle sessions until ctx is done.
func (s *Server) cleanupLoop(ctx context.Context) {
	if s.opts.SessionTTL <= 0 {
		return
	}
	ticker := time.NewTicker(s.opts.CleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-ctx.Done():
			return
		}
	}
}

// cleanup records and drops idle sessions.
func (s *Server) cleanup() int {
	evicted := s.sessions.expire()
	for _, sess := range evicted {
		s.record(sess)
	}
	if len(evicted) > 0 {
		s.logger.Info("expired idle sessions", "count", len(evicted))
	}
	return len(evicted)
}

// requestLogger logs one line per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}
