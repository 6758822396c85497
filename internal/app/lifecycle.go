package app

import (
	"context"
	"errors"
	"slices"

	"go.trai.ch/mazerepair/internal/core/ports"
	"go.trai.ch/zerr"
)

// startAll starts components in order. On failure the components that did
// start are stopped in reverse order and the start error is returned together
// with any stop errors. The returned slice lists what is running.
func startAll(ctx context.Context, components []ports.Lifecycle) ([]ports.Lifecycle, error) {
	started := make([]ports.Lifecycle, 0, len(components))
	for _, c := range components {
		if err := c.Start(ctx); err != nil {
			startErr := zerr.With(zerr.Wrap(err, "failed to start component"), "component", c.Name())
			return nil, errors.Join(startErr, stopAll(ctx, started))
		}
		started = append(started, c)
	}
	return started, nil
}

// stopAll stops components in reverse order and joins every error.
func stopAll(ctx context.Context, started []ports.Lifecycle) error {
	var errs []error
	for _, c := range slices.Backward(started) {
		if err := c.Stop(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
