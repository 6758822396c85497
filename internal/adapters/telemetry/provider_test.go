package telemetry_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/mazerepair/internal/adapters/logger"
	"go.trai.ch/mazerepair/internal/adapters/telemetry"
	"go.trai.ch/mazerepair/internal/core/domain"
)

var app = domain.AppSettings{Name: "maze-repair", Version: "0.3.3"}

func TestProvider_Disabled(t *testing.T) {
	p := telemetry.NewProvider(domain.TracingSettings{Enabled: false}, app, nil)

	assert.False(t, p.Enabled())
	assert.IsType(t, &telemetry.NoOpTracer{}, p.Tracer())

	ctx, span := p.Tracer().Start(t.Context(), "noop")
	assert.Equal(t, t.Context(), ctx)
	span.SetAttribute("key", "value")
	span.RecordError(errors.New("ignored"))
	span.End()

	require.NoError(t, p.Shutdown(t.Context()))
}

func TestProvider_RecordsSpans(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&buf, slog.LevelDebug, domain.LogFormatJSON)
	recorder := tracetest.NewSpanRecorder()

	p := telemetry.NewProvider(domain.TracingSettings{Enabled: true, SamplingRatio: 1}, app, log, recorder)
	require.True(t, p.Enabled())

	_, span := p.Tracer().Start(t.Context(), "GET /actuator/health")
	span.SetAttribute("http.status_code", 200)
	span.SetAttribute("http.route", "/actuator/health")
	span.SetAttribute("retry", false)
	span.SetAttribute("custom", struct{ A int }{A: 1})
	span.RecordError(errors.New("handler failed"))
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "GET /actuator/health", ended[0].Name())
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "handler failed", ended[0].Status().Description)

	attrs := map[string]string{}
	for _, kv := range ended[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, "200", attrs["http.status_code"])
	assert.Equal(t, "false", attrs["retry"])
	assert.Equal(t, "{1}", attrs["custom"])

	assert.Contains(t, buf.String(), `"msg":"span finished"`)
	assert.Contains(t, buf.String(), `"name":"GET /actuator/health"`)
	assert.Contains(t, buf.String(), `"error":"handler failed"`)

	require.NoError(t, p.Shutdown(t.Context()))
	require.NoError(t, p.Shutdown(t.Context()))
}

func TestProvider_ZeroSamplingRecordsNothing(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	p := telemetry.NewProvider(domain.TracingSettings{Enabled: true, SamplingRatio: 0}, app, nil, recorder)

	_, span := p.Tracer().Start(t.Context(), "dropped")
	span.End()

	assert.Empty(t, recorder.Ended())
	require.NoError(t, p.Shutdown(t.Context()))
}
