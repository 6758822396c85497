// Package grpcserver exposes the standard gRPC health service for the application.
package grpcserver

import (
	"context"
	"errors"
	"net"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"go.trai.ch/mazerepair/internal/core/domain"
	"go.trai.ch/mazerepair/internal/core/ports"
	"go.trai.ch/zerr"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

var (
	_ ports.Lifecycle       = (*Server)(nil)
	_ ports.HealthIndicator = (*Server)(nil)
)

// Server serves grpc.health.v1.Health on its own listener.
type Server struct {
	addr            string
	service         string
	shutdownTimeout time.Duration
	grpcServer      *grpc.Server
	health          *health.Server
	log             ports.Logger

	mu        sync.Mutex
	listener  net.Listener
	boundAddr atomic.Value
	stopped   bool
	done      chan struct{}
	errs      chan error
}

// NewServer creates a health server for service, the application name.
// The listener is bound on Start and a stopped Server cannot be started again.
func NewServer(settings *domain.Settings, log ports.Logger) *Server {
	s := &Server{
		addr:            net.JoinHostPort(settings.Server.Host, strconv.Itoa(settings.Management.GRPC.Port)),
		service:         settings.App.Name,
		shutdownTimeout: settings.Server.ShutdownTimeout,
		grpcServer:      grpc.NewServer(),
		health:          health.NewServer(),
		log:             log,
		errs:            make(chan error, 1),
	}
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	s.health.SetServingStatus(s.service, healthpb.HealthCheckResponse_NOT_SERVING)
	healthpb.RegisterHealthServer(s.grpcServer, s.health)
	return s
}

// Name identifies the server in logs.
func (s *Server) Name() string {
	return "grpc"
}

// Start binds the listener, serves in the background and reports SERVING.
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
		if err := s.grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			s.errs <- zerr.With(zerr.Wrap(err, domain.ErrServerFailed.Error()), "component", s.Name())
		}
	}(s.done)

	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	s.health.SetServingStatus(s.service, healthpb.HealthCheckResponse_SERVING)
	s.log.Info("grpc health server started", "addr", lis.Addr().String())
	return nil
}

// Stop reports NOT_SERVING to watchers, then stops gracefully. Connections
// still open after the shutdown timeout are closed forcibly.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return nil
	}

	s.health.Shutdown()
	s.boundAddr.Store("")

	stopped := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(stopped)
	}()

	var timeout <-chan time.Time
	if s.shutdownTimeout > 0 {
		timer := time.NewTimer(s.shutdownTimeout)
		defer timer.Stop()
		timeout = timer.C
	}

	var err error
	select {
	case <-stopped:
	case <-timeout:
		s.grpcServer.Stop()
		<-stopped
	case <-ctx.Done():
		s.grpcServer.Stop()
		<-stopped
		err = ctx.Err()
	}
	<-s.done

	s.listener = nil
	s.stopped = true

	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrShutdownFailed.Error()), "component", s.Name())
	}
	s.log.Debug("grpc health server stopped")
	return nil
}

// Addr returns the bound address, or "" when not running.
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
