// Package server exposes the pipeline over HTTP.
//
// All engine endpoints accept and return JSON and never persist anything:
// the client sends a snapshot and receives the updated one.
//
//	POST /v1/layout         arrange a tree
//	POST /v1/containment    resolve a drag-and-drop
//	POST /v1/placement      find a free spot for a new node
//	POST /v1/edges/recalc   re-resolve edge sides
//	POST /v1/outline        import a bulleted outline
//	GET  /healthz           liveness plus hook counters
package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mindgeo/pkg/observability"
	"github.com/matzehuels/mindgeo/pkg/pipeline"
)

// Config controls the HTTP listener.
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	MaxBodyBytes int64
	CORSOrigins  []string

	// Defaults applied to every request before its own options.
	Defaults pipeline.Options
}

// Server serves the engine API.
type Server struct {
	runner   *pipeline.Runner
	logger   *log.Logger
	counters *observability.Counters
	cfg      Config
}

// New creates a server. counters may be nil; /healthz then omits them.
func New(runner *pipeline.Runner, logger *log.Logger, cfg Config, counters *observability.Counters) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 8 << 20
	}
	return &Server{
		runner:   runner,
		logger:   logger,
		counters: counters,
		cfg:      cfg,
	}
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
// ready, when non-nil, receives the bound address once listening.
func (s *Server) ListenAndServe(ctx context.Context, ready func(addr string)) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}
	if ready != nil {
		ready(ln.Addr().String())
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != http.ErrServerClosed {
		return err
	}
	return nil
}
