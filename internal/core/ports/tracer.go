package ports

import "context"

// Tracer creates spans around units of work.
//
//go:generate mockgen -source=tracer.go -destination=mocks/mock_tracer.go -package=mocks
type Tracer interface {
	// Start opens a span and returns a context carrying it.
	Start(ctx context.Context, name string) (context.Context, Span)
}

// Span is one traced unit of work.
type Span interface {
	// End completes the span.
	End()
	// SetAttribute adds a key-value pair to the span.
	SetAttribute(key string, value any)
	// RecordError marks the span as failed.
	RecordError(err error)
}
