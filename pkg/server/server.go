// Package server exposes workspaces over HTTP.
//
// Each workspace holds one diagram. Clients create a workspace from document
// text, search it, and fetch the diagram as flow JSON, SVG or DOT:
//
//	POST   /api/workspaces                create from the request body
//	GET    /api/workspaces/{id}           flow JSON of the current diagram
//	PUT    /api/workspaces/{id}           regenerate from the request body
//	DELETE /api/workspaces/{id}           discard
//	POST   /api/workspaces/{id}/search    {"query": "$.user.name"}
//	GET    /api/workspaces/{id}/svg       SVG (?engine=graphviz for neato routing)
//	GET    /api/workspaces/{id}/dot       Graphviz DOT
//	GET    /api/workspaces/{id}/source    the text of the last successful generate
//	GET    /                              HTML viewer on a new sample workspace
//	GET    /healthz                       status, workspace count and build info
//
// Bodies are read as JSON unless ?format=yaml or ?format=toml is given.
// Errors are returned as {"code": ..., "message": ...}. Workspaces live in
// memory only.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/jsontree/pkg/buildinfo"
	"github.com/matzehuels/jsontree/pkg/tree"
	"github.com/matzehuels/jsontree/pkg/workspace"
)

// Options configures a Server.
type Options struct {
	Layout        tree.Options
	View          workspace.ViewOptions
	MaxWorkspaces int
	WorkspaceTTL  time.Duration

	// Logger receives request and error logs. Nil discards them.
	Logger *log.Logger
}

// Timeouts bounds the lifetime of connections in [Server.ListenAndServe].
type Timeouts struct {
	Read     time.Duration
	Write    time.Duration
	Shutdown time.Duration
}

// Server serves the workspace API.
type Server struct {
	opts   Options
	store  *Store
	logger *log.Logger
	router chi.Router
}

// New creates a Server with an empty store.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		opts:   opts,
		store:  NewStore(opts.Layout, opts.View, opts.MaxWorkspaces, opts.WorkspaceTTL),
		logger: logger,
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Store returns the workspace store.
func (s *Server) Store() *Store { return s.store }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":     "ok",
			"workspaces": s.store.Len(),
			"build":      buildinfo.Get(),
		})
	})

	r.Route("/api/workspaces", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Put("/", s.handleGenerate)
			r.Delete("/", s.handleDelete)
			r.Post("/search", s.handleSearch)
			r.Get("/svg", s.handleSVG)
			r.Get("/dot", s.handleDOT)
			r.Get("/source", s.handleSource)
		})
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully. Expired workspaces are swept once a minute.
func (s *Server) ListenAndServe(ctx context.Context, addr string, t Timeouts) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  t.Read,
		WriteTimeout: t.Write,
	}

	go s.sweep(ctx, time.Minute)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), t.Shutdown)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) sweep(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.store.Cleanup(); n > 0 {
				s.logger.Debug("expired workspaces removed", "count", n)
			}
		}
	}
}
