package config

import (
	"errors"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/mazerepair/internal/core/domain"
	"go.trai.ch/zerr"
)

const maxPort = 65535

var logLevels = []string{"debug", "info", "warn", "error"}

// Validate checks the bound settings and reports every invalid key.
//
//nolint:cyclop // flat list of independent checks
func Validate(s *domain.Settings) error {
	var errs []error
	check := func(ok bool, key string, value any) {
		if !ok {
			errs = append(errs, invalid(key, value))
		}
	}

	if _, err := semver.NewVersion(s.App.Version); err != nil {
		errs = append(errs, zerr.With(zerr.Wrap(err, domain.ErrInvalidConfig.Error()), "key", "app.version"))
	}

	check(s.Server.Port >= 0 && s.Server.Port <= maxPort, "server.port", s.Server.Port)
	check(s.Server.ReadHeaderTimeout > 0, "server.read-header-timeout", s.Server.ReadHeaderTimeout)
	check(s.Server.ShutdownTimeout > 0, "server.shutdown-timeout", s.Server.ShutdownTimeout)
	check(s.Server.RateLimit >= 0, "server.rate-limit", s.Server.RateLimit)
	check(s.Server.RateLimit == 0 || s.Server.RateBurst > 0, "server.rate-burst", s.Server.RateBurst)

	check(strings.HasPrefix(s.Management.BasePath, "/"), "management.base-path", s.Management.BasePath)
	check(s.Management.GRPC.Port >= 0 && s.Management.GRPC.Port <= maxPort, "management.grpc.port", s.Management.GRPC.Port)

	check(isLogLevel(s.Logging.Level), "logging.level", s.Logging.Level)
	check(isLogFormat(s.Logging.Format), "logging.format", s.Logging.Format)

	check(s.Web.CacheTTL >= 0, "web.cache-ttl", s.Web.CacheTTL)
	if s.Web.StaticDir != "" {
		info, err := os.Stat(s.Web.StaticDir)
		check(err == nil && info.IsDir(), "web.static-dir", s.Web.StaticDir)
	}

	check(s.Tracing.SamplingRatio >= 0 && s.Tracing.SamplingRatio <= 1, "tracing.sampling-ratio", s.Tracing.SamplingRatio)

	return errors.Join(errs...)
}

func invalid(key string, value any) error {
	return zerr.With(zerr.With(domain.ErrInvalidConfig, "key", key), "value", value)
}

func isLogLevel(level string) bool {
	for _, l := range logLevels {
		if strings.EqualFold(l, level) {
			return true
		}
	}
	return false
}

func isLogFormat(format string) bool {
	switch format {
	case domain.LogFormatPretty, domain.LogFormatJSON, domain.LogFormatAuto:
		return true
	default:
		return false
	}
}
