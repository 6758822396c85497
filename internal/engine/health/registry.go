// Package health aggregates component health indicators and tracks readiness.
package health

import (
	"context"
	"maps"
	"slices"
	"sync"
	"sync/atomic"

	"go.trai.ch/mazerepair/internal/core/domain"
	"go.trai.ch/mazerepair/internal/core/ports"
)

// PingIndicator is the name of the indicator every registry starts with.
const PingIndicator = "ping"

// Registry holds named health indicators.
type Registry struct {
	mu         sync.RWMutex
	indicators map[string]ports.HealthIndicator
	ready      atomic.Bool
}

// NewRegistry creates a registry containing the ping indicator.
func NewRegistry() *Registry {
	r := &Registry{indicators: make(map[string]ports.HealthIndicator)}
	r.Register(PingIndicator, ports.HealthIndicatorFunc(func(context.Context) domain.Health {
		return domain.Up(nil)
	}))
	return r
}

// Register adds or replaces the indicator under name.
func (r *Registry) Register(name string, indicator ports.HealthIndicator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.indicators[name] = indicator
}

// Names returns the registered indicator names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.indicators))
}

// Check runs every indicator and aggregates the results.
// The overall status is the most severe component status.
func (r *Registry) Check(ctx context.Context) domain.CompositeHealth {
	r.mu.RLock()
	indicators := maps.Clone(r.indicators)
	r.mu.RUnlock()

	result := domain.CompositeHealth{
		Status:     domain.StatusUp,
		Components: make(map[string]domain.Health, len(indicators)),
	}
	for _, name := range slices.Sorted(maps.Keys(indicators)) {
		h := indicators[name].Health(ctx)
		if h.Status == "" {
			h.Status = domain.StatusUnknown
		}
		result.Components[name] = h
		result.Status = result.Status.Worse(h.Status)
	}
	return result
}

// Liveness reports whether the process is alive. A constructed registry always is.
func (r *Registry) Liveness() domain.Health {
	return domain.Up(nil)
}

// Readiness reports UP between SetReady(true) and SetReady(false).
func (r *Registry) Readiness() domain.Health {
	if r.ready.Load() {
		return domain.Up(nil)
	}
	return domain.Health{Status: domain.StatusOutOfService}
}

// SetReady marks the application as accepting or refusing traffic.
func (r *Registry) SetReady(ready bool) {
	r.ready.Store(ready)
}

// Ready reports the current readiness flag.
func (r *Registry) Ready() bool {
	return r.ready.Load()
}
