// Package engine provides the mock server engine: a real HTTP listener that
// serves pre-registered canned responses and records every inbound request.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/jjs98/easy-server-mock/internal/storage"
	"github.com/jjs98/easy-server-mock/pkg/logging"
	"github.com/jjs98/easy-server-mock/pkg/mock"
	"github.com/jjs98/easy-server-mock/pkg/requestlog"
)

// DefaultPort is the port used when the caller passes a non-positive port.
const DefaultPort = 7900

// shutdownTimeout bounds how long Stop waits for in-flight handlers.
const shutdownTimeout = 5 * time.Second

// Server is a mock HTTP server instance. Each Server exclusively owns its
// endpoint registry, its request log, and its listener; multiple instances
// on distinct ports are fully independent.
//
// Start and Stop are idempotent and expected to be called from the owning
// test, not concurrently with themselves. Reset is independent of lifecycle.
type Server struct {
	port int
	host string
	log  *slog.Logger

	endpoints storage.EndpointStore
	requests  requestlog.Store

	mu         sync.Mutex
	httpServer *http.Server
	running    bool
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the operational logger. Defaults to a no-op logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithListenAddress sets the host/interface to bind. Defaults to binding
// all interfaces, which is what a local test double wants.
func WithListenAddress(host string) Option {
	return func(s *Server) {
		s.host = host
	}
}

// New creates a Server that will listen on the given port.
// A non-positive port selects DefaultPort. The server does not bind until
// Start is called.
func New(port int, opts ...Option) *Server {
	if port <= 0 {
		port = DefaultPort
	}
	s := &Server{
		port:      port,
		log:       logging.Nop(),
		endpoints: storage.NewInMemoryEndpointStore(),
		requests:  requestlog.NewInMemoryStore(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start binds the listener and begins accepting connections. It is
// idempotent: a second call while running returns nil without rebinding.
// A bind failure (port held by anyone, including another Server in this
// process) is returned to the caller; there is no retry or fallback port.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	ln, err := net.Listen("tcp", net.JoinHostPort(s.host, fmt.Sprintf("%d", s.port)))
	if err != nil {
		return err
	}

	// The stdlib http.Server is single-use after Shutdown, so every
	// start builds a fresh one.
	srv := &http.Server{
		Handler: &handler{
			endpoints: s.endpoints,
			requests:  s.requests,
			log:       s.log.With("subcomponent", "handler"),
		},
	}
	s.httpServer = srv

	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.log.Error("mock server error", "port", s.port, "error", err)
		}
	}()

	s.running = true
	s.log.Info("mock server started", "port", s.port)
	return nil
}

// Stop gracefully shuts the listener down: new connections are refused,
// in-flight handlers run to completion, and the port is released. The
// registry and log are released with it, so a later Start re-enters
// running with empty state unless the caller repopulates them. Safe to
// call multiple times; before Start it is a pure no-op and leaves any
// pre-start registrations in place.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := s.httpServer.Shutdown(ctx)
	s.httpServer = nil
	s.running = false
	s.endpoints.Clear()
	s.requests.Clear()
	s.log.Info("mock server stopped", "port", s.port)

	if err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Dispose is an alias for Stop.
func (s *Server) Dispose() error {
	return s.Stop()
}

// Reset clears the endpoint registry and the request log. It does not
// affect lifecycle state, and it does not abort responses whose delay is
// already in flight; those complete with the response they matched.
func (s *Server) Reset() {
	s.endpoints.Clear()
	s.requests.Clear()
}

// GetRequests returns the captured requests in arrival order, optionally
// filtered by path and/or method. A nil filter returns the complete log.
// The result is a point-in-time snapshot; a racing in-flight dispatch that
// has not yet logged its request simply does not appear.
func (s *Server) GetRequests(filter *requestlog.Filter) []*requestlog.Entry {
	return s.requests.List(filter)
}

// RequestCount returns the number of captured requests.
func (s *Server) RequestCount() int {
	return s.requests.Count()
}

// Register inserts a canned response for (path, method) directly,
// bypassing the builder. The first registration for a pair wins; later
// calls return false and change nothing.
func (s *Server) Register(path, method string, resp *mock.Response) bool {
	return s.endpoints.Register(path, method, resp)
}

// Endpoints returns a snapshot of all registered endpoints.
func (s *Server) Endpoints() []storage.Endpoint {
	return s.endpoints.Snapshot()
}

// IsRunning reports whether the listener is accepting connections.
func (s *Server) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Port returns the configured port.
func (s *Server) Port() int {
	return s.port
}

// URL returns the base URL clients should use to reach the server.
func (s *Server) URL() string {
	return fmt.Sprintf("http://localhost:%d", s.port)
}
