package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/mazerepair/internal/core/ports"
)

// LogBridge implements sdktrace.SpanProcessor by writing finished spans to the logger at debug level.
type LogBridge struct {
	log ports.Logger
}

// NewLogBridge returns a new LogBridge.
func NewLogBridge(log ports.Logger) *LogBridge {
	return &LogBridge{log: log}
}

// OnStart does nothing.
func (b *LogBridge) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

// OnEnd is called when a span ends.
func (b *LogBridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.log == nil {
		return
	}

	sc := s.SpanContext()
	if !sc.IsValid() {
		return
	}

	args := []any{
		"name", s.Name(),
		"trace_id", sc.TraceID().String(),
		"span_id", sc.SpanID().String(),
		"duration", s.EndTime().Sub(s.StartTime()).String(),
	}
	if s.Status().Code == codes.Error {
		args = append(args, "error", s.Status().Description)
	}
	b.log.Debug("span finished", args...)
}

// ForceFlush does nothing.
func (b *LogBridge) ForceFlush(context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *LogBridge) Shutdown(context.Context) error {
	return nil
}
