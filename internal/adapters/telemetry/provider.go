// Package telemetry implements request tracing with OpenTelemetry.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/mazerepair/internal/core/domain"
	"go.trai.ch/mazerepair/internal/core/ports"
	"go.trai.ch/zerr"
)

// InstrumentationName names the tracer used for HTTP spans.
const InstrumentationName = "go.trai.ch/mazerepair/http"

// Provider owns the tracer provider of one application context.
// The provider is never installed globally.
type Provider struct {
	tp     *sdktrace.TracerProvider
	tracer ports.Tracer
}

// NewProvider creates a tracer provider for the settings. When tracing is
// disabled the provider hands out a no-op tracer and holds no resources.
// Extra span processors receive every sampled span in addition to the log bridge.
func NewProvider(
	settings domain.TracingSettings,
	app domain.AppSettings,
	log ports.Logger,
	processors ...sdktrace.SpanProcessor,
) *Provider {
	if !settings.Enabled {
		return &Provider{tracer: NewNoOpTracer()}
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", app.Name),
		attribute.String("service.version", app.Version),
	)

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(settings.SamplingRatio))),
		sdktrace.WithSpanProcessor(NewLogBridge(log)),
	}
	for _, p := range processors {
		opts = append(opts, sdktrace.WithSpanProcessor(p))
	}

	tp := sdktrace.NewTracerProvider(opts...)
	return &Provider{
		tp:     tp,
		tracer: NewOTelTracer(tp.Tracer(InstrumentationName)),
	}
}

// Tracer returns the tracer for HTTP spans.
func (p *Provider) Tracer() ports.Tracer {
	return p.tracer
}

// Enabled reports whether spans are recorded.
func (p *Provider) Enabled() bool {
	return p.tp != nil
}

// Shutdown flushes and stops the span processors. It is safe to call more than once.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.tp == nil {
		return nil
	}
	if err := p.tp.Shutdown(ctx); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrShutdownFailed.Error()), "component", "tracing")
	}
	return nil
}
