package ports

import "context"

// Lifecycle is a component that acquires resources on Start and releases them on Stop.
//
//go:generate mockgen -source=lifecycle.go -destination=mocks/mock_lifecycle.go -package=mocks
type Lifecycle interface {
	// Name identifies the component in logs and errors.
	Name() string
	// Start acquires the component's resources. It must not block.
	Start(ctx context.Context) error
	// Stop releases everything Start acquired. It is safe to call after a failed Start.
	Stop(ctx context.Context) error
}
