package ports

import (
	"context"

	"go.trai.ch/mazerepair/internal/core/domain"
)

// HealthIndicator reports the health of one component.
//
//go:generate mockgen -source=health.go -destination=mocks/mock_health.go -package=mocks
type HealthIndicator interface {
	Health(ctx context.Context) domain.Health
}

// HealthIndicatorFunc adapts a function to HealthIndicator.
type HealthIndicatorFunc func(ctx context.Context) domain.Health

// Health calls f.
func (f HealthIndicatorFunc) Health(ctx context.Context) domain.Health {
	return f(ctx)
}
