package app

import (
	"context"
	"errors"

	"github.com/grindlemire/graft"
	"go.trai.ch/mazerepair/internal/adapters/config"
	"go.trai.ch/mazerepair/internal/core/domain"
)

// Launcher runs the application for the command line.
type Launcher struct{}

// NewLauncher creates a Launcher.
func NewLauncher() *Launcher {
	return &Launcher{}
}

// Serve starts the application and blocks until ctx is cancelled or a server
// fails. Shutdown is bounded by server.shutdown-timeout.
func (l *Launcher) Serve(ctx context.Context, opts ...Option) error {
	c, err := Load(ctx, opts...)
	if err != nil {
		return err
	}

	runErr := c.Run(ctx)
	c.Logger().Info("shutting down")

	stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.Settings().Server.ShutdownTimeout)
	defer cancel()

	return errors.Join(runErr, c.Close(stopCtx))
}

// Check runs the startup verification.
func (l *Launcher) Check(ctx context.Context, opts ...Option) Report {
	return Verify(ctx, opts...)
}

// EffectiveConfig renders the merged configuration for the options as YAML
// without starting anything.
func (l *Launcher) EffectiveConfig(ctx context.Context, opts ...Option) ([]byte, error) {
	var b domain.Bootstrap
	for _, opt := range opts {
		opt(&b)
	}

	settings, _, err := graft.ExecuteFor[*domain.Settings](domain.WithBootstrap(ctx, b.WithDefaults()))
	if err != nil {
		return nil, err
	}
	return config.Render(settings)
}
