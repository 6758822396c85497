package domain

import (
	"net"
	"strconv"
	"strings"
	"time"
)

// Settings is the bound application configuration.
type Settings struct {
	App        AppSettings        `yaml:"app"`
	Server     ServerSettings     `yaml:"server"`
	Management ManagementSettings `yaml:"management"`
	Logging    LoggingSettings    `yaml:"logging"`
	Web        WebSettings        `yaml:"web"`
	Tracing    TracingSettings    `yaml:"tracing"`
}

// AppSettings describes the application for the info endpoint.
type AppSettings struct {
	Name        string `json:"name"        yaml:"name"`
	Version     string `json:"version"     yaml:"version"`
	Description string `json:"description" yaml:"description"`
}

// ServerSettings configures the HTTP listener.
type ServerSettings struct {
	Host              string        `yaml:"host"`
	Port              int           `yaml:"port"`
	ReadHeaderTimeout time.Duration `yaml:"read-header-timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown-timeout"`
	// RateLimit is the sustained number of requests per second. Zero disables limiting.
	RateLimit float64 `yaml:"rate-limit"`
	RateBurst int     `yaml:"rate-burst"`
}

// Address returns host:port for the HTTP listener.
func (s ServerSettings) Address() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// ManagementSettings configures the actuator endpoints.
type ManagementSettings struct {
	BasePath  string            `yaml:"base-path"`
	Endpoints EndpointsSettings `yaml:"endpoints"`
	GRPC      GRPCSettings      `yaml:"grpc"`
}

// EndpointsSettings groups endpoint exposure by transport.
type EndpointsSettings struct {
	Web WebEndpointsSettings `yaml:"web"`
}

// WebEndpointsSettings controls which actuator endpoints are mounted over HTTP.
type WebEndpointsSettings struct {
	Exposure ExposureSettings `yaml:"exposure"`
}

// ExposureSettings lists exposed endpoint ids.
type ExposureSettings struct {
	// Include is a comma separated list of endpoint ids, or "*".
	Include string `yaml:"include"`
}

// Exposes reports whether the endpoint id is included.
func (e ExposureSettings) Exposes(id string) bool {
	for item := range strings.SplitSeq(e.Include, ",") {
		item = strings.TrimSpace(item)
		if item == "*" || item == id {
			return true
		}
	}
	return false
}

// GRPCSettings configures the gRPC health listener.
type GRPCSettings struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

// LoggingSettings configures the logger.
type LoggingSettings struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Log formats.
const (
	LogFormatPretty = "pretty"
	LogFormatJSON   = "json"
	LogFormatAuto   = "auto"
)

// WebSettings configures the static web bundle.
type WebSettings struct {
	// StaticDir serves the bundle from disk instead of the embedded copy when set.
	StaticDir string        `yaml:"static-dir"`
	Watch     bool          `yaml:"watch"`
	CacheTTL  time.Duration `yaml:"cache-ttl"`
}

// TracingSettings configures request tracing.
type TracingSettings struct {
	Enabled       bool    `yaml:"enabled"`
	SamplingRatio float64 `yaml:"sampling-ratio"`
}
