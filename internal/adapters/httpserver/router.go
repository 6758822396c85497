// Package httpserver serves the web bundle and the actuator endpoints over HTTP.
package httpserver

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.trai.ch/mazerepair/internal/core/domain"
	"go.trai.ch/mazerepair/internal/core/ports"
	"golang.org/x/time/rate"
)

// Actuator endpoint ids used by management.endpoints.web.exposure.include.
const (
	EndpointHealth     = "health"
	EndpointInfo       = "info"
	EndpointPrometheus = "prometheus"
)

// HealthSource reports aggregated and probe health.
type HealthSource interface {
	Check(ctx context.Context) domain.CompositeHealth
	Liveness() domain.Health
	Readiness() domain.Health
}

// MetricsSource records request metrics and serves the scrape endpoint.
type MetricsSource interface {
	ObserveRequest(method, route string, status int, elapsed time.Duration)
	Handler() http.Handler
}

// AssetSource resolves request paths to bundle files.
type AssetSource interface {
	Get(requestPath string) (*domain.Asset, error)
}

// Dependencies are the collaborators the router needs.
type Dependencies struct {
	Settings *domain.Settings
	Logger   ports.Logger
	Tracer   ports.Tracer
	Metrics  MetricsSource
	Health   HealthSource
	Assets   AssetSource
	Info     Info
}

// NewRouter builds the HTTP handler.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(tracing(deps.Tracer))
	r.Use(observe(deps.Metrics))
	r.Use(accessLog(deps.Logger))
	r.Use(middleware.Recoverer)
	if limit := deps.Settings.Server.RateLimit; limit > 0 {
		r.Use(rateLimit(rate.NewLimiter(rate.Limit(limit), deps.Settings.Server.RateBurst)))
	}

	mgmt := deps.Settings.Management
	exposure := mgmt.Endpoints.Web.Exposure

	actuator := func(r chi.Router) {
		if exposure.Exposes(EndpointHealth) {
			h := &healthHandler{source: deps.Health}
			r.Get("/"+EndpointHealth, h.health)
			r.Get("/"+EndpointHealth+"/liveness", h.liveness)
			r.Get("/"+EndpointHealth+"/readiness", h.readiness)
		}
		if exposure.Exposes(EndpointInfo) {
			r.Get("/"+EndpointInfo, infoHandler(deps.Info))
		}
		if exposure.Exposes(EndpointPrometheus) && deps.Metrics != nil {
			r.Method(http.MethodGet, "/"+EndpointPrometheus, deps.Metrics.Handler())
		}
	}
	if base := strings.TrimSuffix(mgmt.BasePath, "/"); base == "" {
		r.Group(actuator)
	} else {
		r.Route(base, actuator)
	}

	static := &staticHandler{assets: deps.Assets, log: deps.Logger}
	r.Get("/*", static.ServeHTTP)
	r.Head("/*", static.ServeHTTP)

	return r
}
