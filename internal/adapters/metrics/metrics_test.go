package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mazerepair/internal/adapters/metrics"
)

func TestRegistry_RecordStartup(t *testing.T) {
	r := metrics.New("maze-repair")
	r.RecordStartup(1500*time.Millisecond, 2*time.Second)

	families, err := r.Gatherer().Gather()
	require.NoError(t, err)

	values := map[string]float64{}
	for _, f := range families {
		if len(f.GetMetric()) == 1 && f.GetMetric()[0].GetGauge() != nil {
			values[f.GetName()] = f.GetMetric()[0].GetGauge().GetValue()
		}
	}
	assert.InDelta(t, 1.5, values["application_started_time_seconds"], 1e-9)
	assert.InDelta(t, 2.0, values["application_ready_time_seconds"], 1e-9)
}

func TestRegistry_ObserveRequest(t *testing.T) {
	r := metrics.New("maze-repair")
	r.ObserveRequest(http.MethodGet, "/actuator/health", http.StatusOK, 10*time.Millisecond)
	r.ObserveRequest(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	count, err := testutil.GatherAndCount(r.Gatherer(), "http_server_requests_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestRegistry_IndependentInstances(t *testing.T) {
	first := metrics.New("maze-repair")
	second := metrics.New("maze-repair")
	first.ObserveRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)

	count, err := testutil.GatherAndCount(second.Gatherer(), "http_server_requests_seconds")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRegistry_Handler(t *testing.T) {
	r := metrics.New("maze-repair")
	r.RecordStartup(time.Second, time.Second)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `application_ready_time_seconds{application="maze-repair"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
