package telemetry

import (
	"context"

	"go.trai.ch/mazerepair/internal/core/ports"
)

// NoOpTracer is used when tracing is disabled.
type NoOpTracer struct{}

// NewNoOpTracer creates a new NoOpTracer.
func NewNoOpTracer() *NoOpTracer {
	return &NoOpTracer{}
}

// Start returns ctx unchanged and a span that does nothing.
func (t *NoOpTracer) Start(ctx context.Context, _ string) (context.Context, ports.Span) {
	return ctx, NoOpSpan{}
}

// NoOpSpan is a no-op implementation of ports.Span.
type NoOpSpan struct{}

// End does nothing.
func (NoOpSpan) End() {}

// SetAttribute does nothing.
func (NoOpSpan) SetAttribute(string, any) {}

// RecordError does nothing.
func (NoOpSpan) RecordError(error) {}
