// Package transport exposes the blocking engine over HTTP. It is the seam
// between enforcement (evaluate), presentation (the blocked page), and
// control (refresh, home navigation).
package transport

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/haukened/tubegate/internal/block/common/clock"
	"github.com/haukened/tubegate/internal/block/common/log"
)

// Server is the HTTP transport for the blocking engine.
type Server struct {
	addr      string
	homeURL   string
	evaluator Evaluator
	refresher Refresher
	clk       clock.Clock
	logger    log.Logger
	router    chi.Router

	// Synchronization for graceful shutdown
	mu      sync.Mutex
	running bool
	httpSrv *http.Server
	lis     net.Listener
}

// Options configures a Server. Clock defaults to the real clock.
type Options struct {
	Addr      string
	HomeURL   string
	Evaluator Evaluator
	Refresher Refresher
	Clock     clock.Clock
	Logger    log.Logger
}

// NewServer builds the transport and registers its routes.
func NewServer(opts Options) *Server {
	clk := opts.Clock
	if clk == nil {
		clk = clock.RealClock{}
	}
	s := &Server{
		addr:      opts.Addr,
		homeURL:   opts.HomeURL,
		evaluator: opts.Evaluator,
		refresher: opts.Refresher,
		clk:       clk,
		logger:    opts.Logger,
	}
	s.router = s.routes()
	return s
}

// Handler returns the routed handler. Exposed for in-process tests.
func (s *Server) Handler() http.Handler { return s.router }

// Start binds the listener and begins serving. It returns once the listener
// is bound; serving continues in the background until Stop.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("HTTP transport already running")
	}

	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to bind HTTP listener on %s: %w", s.addr, err)
	}

	s.lis = lis
	s.httpSrv = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	s.running = true

	s.logger.Info(map[string]any{
		"transport": "http",
		"address":   lis.Addr().String(),
	}, "Block transport started")

	httpSrv := s.httpSrv
	go func() {
		if err := httpSrv.Serve(lis); err != nil && err != http.ErrServerClosed {
			s.logger.Error(map[string]any{
				"error": err.Error(),
			}, "HTTP transport serve loop exited")
		}
	}()

	return nil
}

// Stop gracefully shuts down the transport.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	err := s.httpSrv.Shutdown(ctx)
	if err != nil {
		s.logger.Warn(map[string]any{
			"error": err.Error(),
		}, "Error shutting down HTTP transport")
	}

	s.running = false
	s.httpSrv = nil
	s.lis = nil

	s.logger.Info(map[string]any{
		"transport": "http",
		"address":   s.addr,
	}, "Block transport stopped")

	return err
}

// Address returns the bound network address, or the configured address when
// the transport is not running.
func (s *Server) Address() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lis != nil {
		return s.lis.Addr().String()
	}
	return s.addr
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Post("/evaluate", s.handleEvaluate)
	r.Get("/blocked", s.handleBlocked)
	r.Get("/countdown", s.handleCountdown)
	r.Post("/nav/home", s.handleNavHome)
	r.Post("/refresh", s.handleRefresh)
	return r
}

// logRequests emits one structured line per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug(map[string]any{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   ww.Status(),
			"duration": time.Since(start).String(),
		}, "Request handled")
	})
}
