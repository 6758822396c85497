package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"go.trai.ch/mazerepair/internal/core/domain"
	"go.trai.ch/mazerepair/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	_ ports.Lifecycle       = (*Server)(nil)
	_ ports.HealthIndicator = (*Server)(nil)
)

// Server owns the HTTP listener of one application context.
type Server struct {
	addr            string
	shutdownTimeout time.Duration
	server          *http.Server
	log             ports.Logger

	mu        sync.Mutex
	listener  net.Listener
	boundAddr atomic.Value
	stopped   bool
	done      chan struct{}
	errs      chan error
}

// NewServer creates a server for handler. The listener is bound on Start.
// A stopped Server cannot be started again.
func NewServer(settings domain.ServerSettings, handler http.Handler, log ports.Logger) *Server {
	return &Server{
		addr:            settings.Address(),
		shutdownTimeout: settings.ShutdownTimeout,
		log:             log,
		server: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: settings.ReadHeaderTimeout,
		},
		errs: make(chan error, 1),
	}
}

// Name identifies the server in logs.
func (s *Server) Name() string {
	return "http"
}

// Start binds the listener and serves in the background.
func (s *Server) Start(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil || s.stopped {
		return zerr.With(domain.ErrAlreadyStarted, "component", s.Name())
	}

	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrListenFailed.Error()), "addr", s.addr)
	}
	s.listener = lis
	s.boundAddr.Store(lis.Addr().String())
	s.done = make(chan struct{})

	go func(done chan<- struct{}) {
		defer close(done)
		if err := s.server.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.errs <- zerr.With(zerr.Wrap(err, domain.ErrServerFailed.Error()), "component", s.Name())
		}
	}(s.done)

	s.log.Info("http server started", "addr", lis.Addr().String())
	return nil
}

// Stop shuts the server down gracefully within the shutdown timeout and
// closes remaining connections after it.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return nil
	}

	if s.shutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.shutdownTimeout)
		defer cancel()
	}

	s.boundAddr.Store("")
	err := s.server.Shutdown(ctx)
	if err != nil {
		_ = s.server.Close()
	}
	<-s.done
	s.listener = nil
	s.stopped = true

	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrShutdownFailed.Error()), "component", s.Name())
	}
	s.log.Debug("http server stopped")
	return nil
}

// Addr returns the bound address, or "" when not started.
func (s *Server) Addr() string {
	addr, _ := s.boundAddr.Load().(string)
	return addr
}

// Errors reports a serve failure after a successful Start.
func (s *Server) Errors() <-chan error {
	return s.errs
}

// Health reports UP while the listener is bound.
func (s *Server) Health(_ context.Context) domain.Health {
	addr := s.Addr()
	if addr == "" {
		return domain.Down(errors.New("listener not bound"))
	}
	return domain.Up(map[string]any{"addr": addr})
}
