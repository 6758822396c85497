package config_test

import (
	"errors"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mazerepair/internal/adapters/config"
	"go.trai.ch/mazerepair/internal/core/domain"
	"go.trai.ch/zerr"
)

// newLoader returns a loader over the embedded files with an isolated environment.
func newLoader(env map[string]string) *config.Loader {
	return &config.Loader{
		Embedded: config.EmbeddedFS(),
		LookupEnv: func(key string) (string, bool) {
			v, ok := env[key]
			return v, ok
		},
		Environ: func() []string {
			out := make([]string, 0, len(env))
			for k, v := range env {
				out = append(out, k+"="+v)
			}
			return out
		},
	}
}

func metadata(t *testing.T, err error) map[string]any {
	t.Helper()
	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr), "expected *zerr.Error in %v", err)
	return zErr.Metadata()
}

func TestLoad_DefaultProfile(t *testing.T) {
	settings, err := newLoader(nil).Load([]string{domain.DefaultProfile})
	require.NoError(t, err)

	assert.Equal(t, "maze-repair", settings.App.Name)
	assert.Equal(t, "0.3.3", settings.App.Version)
	assert.Equal(t, "0.0.0.0", settings.Server.Host)
	assert.Equal(t, 8080, settings.Server.Port)
	assert.Equal(t, 10*time.Second, settings.Server.ShutdownTimeout)
	assert.Equal(t, "info", settings.Logging.Level)
	assert.Equal(t, domain.LogFormatAuto, settings.Logging.Format)
	assert.False(t, settings.Management.GRPC.Enabled)
	assert.False(t, settings.Management.Endpoints.Web.Exposure.Exposes("prometheus"))
	assert.InDelta(t, 1.0, settings.Tracing.SamplingRatio, 0)
}

func TestLoad_LocalProfile(t *testing.T) {
	settings, err := newLoader(nil).Load([]string{"local"})
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", settings.Server.Host)
	assert.Equal(t, 8080, settings.Server.Port, "base value survives when the profile does not override it")
	assert.Equal(t, "debug", settings.Logging.Level)
	assert.Equal(t, domain.LogFormatPretty, settings.Logging.Format)
	assert.True(t, settings.Management.GRPC.Enabled)
	assert.Equal(t, 9090, settings.Management.GRPC.Port)
	assert.True(t, settings.Management.Endpoints.Web.Exposure.Exposes("prometheus"))
	assert.True(t, settings.Web.Watch)
	assert.Equal(t, time.Minute, settings.Web.CacheTTL)
	assert.True(t, settings.Tracing.Enabled)
}

func TestLoad_LocalProfile_PlaceholderFromEnvironment(t *testing.T) {
	settings, err := newLoader(map[string]string{"MAZEREPAIR_LOCAL_HOST": "localhost"}).Load([]string{"local"})
	require.NoError(t, err)
	assert.Equal(t, "localhost", settings.Server.Host)
}

func TestLoad_ProductionRequiresPort(t *testing.T) {
	_, err := newLoader(nil).Load([]string{"production"})
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrUnresolvablePlaceholder)
	assert.Contains(t, err.Error(), "could not resolve placeholder ${PORT} in server.port")

	var placeholderErr *domain.PlaceholderError
	require.ErrorAs(t, err, &placeholderErr)
	assert.Equal(t, "PORT", placeholderErr.Placeholder)
	assert.Equal(t, "server.port", placeholderErr.Key)
}

func TestLoad_ProductionPortIsTyped(t *testing.T) {
	settings, err := newLoader(map[string]string{"PORT": "9000"}).Load([]string{"production"})
	require.NoError(t, err)
	assert.Equal(t, 9000, settings.Server.Port)
	assert.Equal(t, domain.LogFormatJSON, settings.Logging.Format)
}

func TestLoad_ProfileOrder(t *testing.T) {
	loader := newLoader(nil)
	loader.Dir = fstest.MapFS{
		"application-a.yaml": {Data: []byte("server:\n  port: 1111\n")},
		"application-b.yaml": {Data: []byte("server:\n  port: 2222\n")},
	}

	settings, err := loader.Load([]string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, 2222, settings.Server.Port)

	settings, err = loader.Load([]string{"b", "a"})
	require.NoError(t, err)
	assert.Equal(t, 1111, settings.Server.Port)
}

func TestLoad_ExternalDirOverridesEmbedded(t *testing.T) {
	loader := newLoader(nil)
	loader.Dir = fstest.MapFS{
		"application.yaml":       {Data: []byte("app:\n  description: external\n")},
		"application-local.yaml": {Data: []byte("logging:\n  level: warn\n")},
	}

	settings, err := loader.Load([]string{"local"})
	require.NoError(t, err)
	assert.Equal(t, "external", settings.App.Description)
	assert.Equal(t, "maze-repair", settings.App.Name)
	assert.Equal(t, "warn", settings.Logging.Level)
	assert.Equal(t, "127.0.0.1", settings.Server.Host)
}

func TestLoad_DottedKeys(t *testing.T) {
	loader := newLoader(nil)
	loader.Dir = fstest.MapFS{
		"application-flat.yaml": {Data: []byte("server.port: 3333\nmanagement.grpc.enabled: true\n")},
	}

	settings, err := loader.Load([]string{"flat"})
	require.NoError(t, err)
	assert.Equal(t, 3333, settings.Server.Port)
	assert.True(t, settings.Management.GRPC.Enabled)
	assert.Equal(t, "0.0.0.0", settings.Server.Host)
}

func TestLoad_EnvironmentBinding(t *testing.T) {
	loader := newLoader(map[string]string{
		"MAZEREPAIR_SERVER_PORT":                "4444",
		"MAZEREPAIR_SERVER_SHUTDOWN_TIMEOUT":    "3s",
		"MAZEREPAIR_MANAGEMENT_GRPC_ENABLED":    "true",
		"MAZEREPAIR_NOT_A_KEY":                  "ignored",
		"MAZEREPAIR_PROFILES_ACTIVE":            "production",
		"MAZEREPAIR_WEB_CACHE_TTL":              "0s",
		"MAZEREPAIR_MANAGEMENT_ENDPOINTS_WEB_X": "ignored",
	})

	settings, err := loader.Load([]string{domain.DefaultProfile})
	require.NoError(t, err)
	assert.Equal(t, 4444, settings.Server.Port)
	assert.Equal(t, 3*time.Second, settings.Server.ShutdownTimeout)
	assert.True(t, settings.Management.GRPC.Enabled)
	assert.Equal(t, time.Duration(0), settings.Web.CacheTTL)
}

func TestLoad_OverridesWin(t *testing.T) {
	loader := newLoader(map[string]string{"MAZEREPAIR_SERVER_PORT": "4444"})
	loader.Overrides = map[string]string{"server.port": "0", "logging.level": "error"}

	settings, err := loader.Load([]string{"local"})
	require.NoError(t, err)
	assert.Equal(t, 0, settings.Server.Port)
	assert.Equal(t, "error", settings.Logging.Level)
}

func TestLoad_PlaceholderReferencesOtherKey(t *testing.T) {
	loader := newLoader(nil)
	loader.Dir = fstest.MapFS{
		"application-ref.yaml": {Data: []byte("app:\n  description: ${app.name} v${app.version}\n")},
	}

	settings, err := loader.Load([]string{"ref"})
	require.NoError(t, err)
	assert.Equal(t, "maze-repair v0.3.3", settings.App.Description)
}

func TestLoad_PlaceholderNestedDefault(t *testing.T) {
	loader := newLoader(map[string]string{"FALLBACK_PORT": "5555"})
	loader.Dir = fstest.MapFS{
		"application-nested.yaml": {Data: []byte("server:\n  port: ${PRIMARY_PORT:${FALLBACK_PORT:1}}\n")},
	}

	settings, err := loader.Load([]string{"nested"})
	require.NoError(t, err)
	assert.Equal(t, 5555, settings.Server.Port)
}

func TestLoad_PlaceholderCycle(t *testing.T) {
	loader := newLoader(nil)
	loader.Dir = fstest.MapFS{
		"application-cycle.yaml": {Data: []byte("app:\n  name: ${app.description}\n  description: ${app.name}\n")},
	}

	_, err := loader.Load([]string{"cycle"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circular placeholder reference")
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name     string
		files    fstest.MapFS
		profiles []string
		contains string
		key      string
	}{
		{
			name:     "invalid profile name",
			profiles: []string{"../etc"},
			contains: "profile name can only contain",
		},
		{
			name:     "missing profile",
			profiles: []string{"staging"},
			contains: "no configuration found for profile",
		},
		{
			name:     "invalid yaml",
			files:    fstest.MapFS{"application-bad.yaml": {Data: []byte("server: [\n")}},
			profiles: []string{"bad"},
			contains: "failed to parse config file",
		},
		{
			name:     "top level sequence",
			files:    fstest.MapFS{"application-seq.yaml": {Data: []byte("- a\n- b\n")}},
			profiles: []string{"seq"},
			contains: "failed to parse config file",
		},
		{
			name:     "unknown key",
			files:    fstest.MapFS{"application-typo.yaml": {Data: []byte("server:\n  prot: 1\n")}},
			profiles: []string{"typo"},
			contains: "failed to bind configuration",
		},
		{
			name:     "wrong type",
			files:    fstest.MapFS{"application-type.yaml": {Data: []byte("server:\n  port: eighty\n")}},
			profiles: []string{"type"},
			contains: "failed to bind configuration",
		},
		{
			name:     "port out of range",
			files:    fstest.MapFS{"application-port.yaml": {Data: []byte("server:\n  port: 70000\n")}},
			profiles: []string{"port"},
			contains: "invalid configuration value",
			key:      "server.port",
		},
		{
			name:     "bad log level",
			files:    fstest.MapFS{"application-log.yaml": {Data: []byte("logging:\n  level: loud\n")}},
			profiles: []string{"log"},
			contains: "invalid configuration value",
			key:      "logging.level",
		},
		{
			name:     "bad version",
			files:    fstest.MapFS{"application-ver.yaml": {Data: []byte("app:\n  version: latest\n")}},
			profiles: []string{"ver"},
			contains: "invalid configuration value",
			key:      "app.version",
		},
		{
			name:     "missing static dir",
			files:    fstest.MapFS{"application-web.yaml": {Data: []byte("web:\n  static-dir: /does/not/exist\n")}},
			profiles: []string{"web"},
			contains: "invalid configuration value",
			key:      "web.static-dir",
		},
		{
			name:     "sampling ratio above one",
			files:    fstest.MapFS{"application-trace.yaml": {Data: []byte("tracing:\n  sampling-ratio: 2\n")}},
			profiles: []string{"trace"},
			contains: "invalid configuration value",
			key:      "tracing.sampling-ratio",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := newLoader(nil)
			if tt.files != nil {
				loader.Dir = tt.files
			}

			_, err := loader.Load(tt.profiles)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
			if tt.key != "" {
				assert.Equal(t, tt.key, metadata(t, err)["key"])
			}
		})
	}
}

func TestLoad_InvalidOverrideKey(t *testing.T) {
	loader := newLoader(nil)
	loader.Overrides = map[string]string{"server..port": "1"}

	_, err := loader.Load([]string{domain.DefaultProfile})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid override")
}

func TestParseOverride(t *testing.T) {
	key, value, err := config.ParseOverride("server.port=0")
	require.NoError(t, err)
	assert.Equal(t, "server.port", key)
	assert.Equal(t, "0", value)

	key, value, err = config.ParseOverride("app.description=a=b")
	require.NoError(t, err)
	assert.Equal(t, "app.description", key)
	assert.Equal(t, "a=b", value)

	_, _, err = config.ParseOverride("novalue")
	require.Error(t, err)
}

func TestEnvName(t *testing.T) {
	assert.Equal(t, "MAZEREPAIR_SERVER_PORT", config.EnvName("server.port"))
	assert.Equal(t, "MAZEREPAIR_WEB_CACHE_TTL", config.EnvName("web.cache-ttl"))
}
