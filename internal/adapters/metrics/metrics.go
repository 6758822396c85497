// Package metrics exposes application metrics through a per-context Prometheus registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	metricRequests     = "http_server_requests_seconds"
	metricStartedTime  = "application_started_time_seconds"
	metricReadyTime    = "application_ready_time_seconds"
	methodLabel        = "method"
	routeLabel         = "uri"
	statusLabel        = "status"
	applicationLabel   = "application"
	unmatchedRouteName = "UNKNOWN"
)

// Registry owns the collectors of one application context.
// Each context gets its own registry so repeated builds never collide.
type Registry struct {
	reg      *prometheus.Registry
	requests *prometheus.HistogramVec
	started  prometheus.Gauge
	ready    prometheus.Gauge
}

// New creates a registry with Go runtime and process collectors.
func New(application string) *Registry {
	constLabels := prometheus.Labels{applicationLabel: application}

	r := &Registry{
		reg: prometheus.NewRegistry(),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        metricRequests,
			Help:        "Duration of HTTP server requests.",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{methodLabel, routeLabel, statusLabel}),
		started: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        metricStartedTime,
			Help:        "Time taken to build the application context.",
			ConstLabels: constLabels,
		}),
		ready: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        metricReadyTime,
			Help:        "Time taken for the application to be ready to service requests.",
			ConstLabels: constLabels,
		}),
	}

	r.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.requests,
		r.started,
		r.ready,
	)
	return r
}

// ObserveRequest records one served HTTP request. An empty route is reported as UNKNOWN.
func (r *Registry) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = unmatchedRouteName
	}
	r.requests.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// RecordStartup records how long building and starting the context took.
func (r *Registry) RecordStartup(started, ready time.Duration) {
	r.started.Set(started.Seconds())
	r.ready.Set(ready.Seconds())
}

// Gatherer exposes the underlying registry for inspection.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// Handler serves the registry in the Prometheus text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}
