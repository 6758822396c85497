// Package app builds, starts and releases the maze-repair application context.
package app

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/grindlemire/graft"
	"go.trai.ch/mazerepair/internal/adapters/assets"
	"go.trai.ch/mazerepair/internal/adapters/grpcserver"
	"go.trai.ch/mazerepair/internal/adapters/httpserver"
	"go.trai.ch/mazerepair/internal/adapters/metrics"
	"go.trai.ch/mazerepair/internal/adapters/telemetry"
	"go.trai.ch/mazerepair/internal/core/domain"
	"go.trai.ch/mazerepair/internal/core/ports"
	"go.trai.ch/mazerepair/internal/engine/health"
	"golang.org/x/sync/errgroup"
)

// Components is the wired but not yet started application graph.
type Components struct {
	Settings *domain.Settings
	Logger   ports.Logger
	Health   *health.Registry
	Metrics  *metrics.Registry
	Tracing  *telemetry.Provider
	Assets   *assets.Store
	// Watcher is nil unless a static directory is watched.
	Watcher *assets.Watcher
	HTTP    *httpserver.Server
	// GRPC is nil unless management.grpc.enabled is set.
	GRPC *grpcserver.Server
}

// Lifecycles returns the components to start, in start order.
func (c *Components) Lifecycles() []ports.Lifecycle {
	out := []ports.Lifecycle{c.Assets}
	if c.Watcher != nil {
		out = append(out, c.Watcher)
	}
	out = append(out, c.HTTP)
	if c.GRPC != nil {
		out = append(out, c.GRPC)
	}
	return out
}

// Context is a running application context. It owns every resource acquired
// at startup until Close is called.
type Context struct {
	components *Components
	profiles   []string
	started    []ports.Lifecycle

	closeOnce sync.Once
	closeErr  error
}

// Load builds the application graph for the bootstrap options and starts it.
// Every failure is reported as domain.ErrStartupFailed joined with its cause,
// and anything acquired before the failure is released.
func Load(ctx context.Context, opts ...Option) (*Context, error) {
	begin := time.Now()

	var b domain.Bootstrap
	for _, opt := range opts {
		opt(&b)
	}
	b = b.WithDefaults()

	components, _, err := graft.ExecuteFor[*Components](domain.WithBootstrap(ctx, b))
	if err != nil {
		return nil, errors.Join(domain.ErrStartupFailed, err)
	}
	built := time.Since(begin)

	started, err := startAll(ctx, components.Lifecycles())
	if err != nil {
		return nil, errors.Join(domain.ErrStartupFailed, err, components.Tracing.Shutdown(ctx))
	}

	c := &Context{
		components: components,
		profiles:   slices.Clone(b.Profiles),
		started:    started,
	}

	components.Health.SetReady(true)
	components.Metrics.RecordStartup(built, time.Since(begin))
	components.Logger.Info("application context started",
		"name", components.Settings.App.Name,
		"profiles", c.profiles,
		"http", c.HTTPAddr(),
		"duration", time.Since(begin).String(),
	)
	return c, nil
}

// Close stops every started component in reverse order and shuts tracing
// down. It is safe to call more than once and from several goroutines; every
// call returns the result of the first.
func (c *Context) Close(ctx context.Context) error {
	c.closeOnce.Do(func() {
		c.components.Health.SetReady(false)
		c.closeErr = errors.Join(
			stopAll(ctx, c.started),
			c.components.Tracing.Shutdown(ctx),
		)
		c.components.Logger.Debug("application context closed")
	})
	return c.closeErr
}

// Run blocks until ctx is cancelled or a server fails.
func (c *Context) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	watch := func(errs <-chan error) {
		g.Go(func() error {
			select {
			case err := <-errs:
				return err
			case <-gctx.Done():
				return nil
			}
		})
	}

	watch(c.components.HTTP.Errors())
	if c.components.GRPC != nil {
		watch(c.components.GRPC.Errors())
	}
	return g.Wait()
}

// Settings returns the bound configuration.
func (c *Context) Settings() *domain.Settings {
	return c.components.Settings
}

// HTTPAddr returns the address the HTTP listener is bound to.
func (c *Context) HTTPAddr() string {
	return c.components.HTTP.Addr()
}

// GRPCAddr returns the gRPC health listener address, or "" when disabled.
func (c *Context) GRPCAddr() string {
	if c.components.GRPC == nil {
		return ""
	}
	return c.components.GRPC.Addr()
}

// Profiles returns the active profiles.
func (c *Context) Profiles() []string {
	return slices.Clone(c.profiles)
}

// Logger returns the context's logger.
func (c *Context) Logger() ports.Logger {
	return c.components.Logger
}

// Health returns the context's health registry.
func (c *Context) Health() *health.Registry {
	return c.components.Health
}

// Metrics returns the context's metrics registry.
func (c *Context) Metrics() *metrics.Registry {
	return c.components.Metrics
}
