package app

import (
	"io"
	"maps"

	"go.trai.ch/mazerepair/internal/adapters/config" //nolint:depguard // Wired in app layer
	"go.trai.ch/mazerepair/internal/core/domain"
)

// Option customizes how an application context is bootstrapped.
type Option func(*domain.Bootstrap)

// WithProfiles selects the active configuration profiles, lowest precedence first.
func WithProfiles(profiles ...string) Option {
	return func(b *domain.Bootstrap) {
		b.Profiles = append([]string(nil), profiles...)
	}
}

// WithConfigDir adds a directory whose application*.yaml files override the embedded ones.
func WithConfigDir(dir string) Option {
	return func(b *domain.Bootstrap) {
		b.ConfigDir = dir
	}
}

// WithOverride sets a configuration key with the highest precedence.
func WithOverride(key, value string) Option {
	return func(b *domain.Bootstrap) {
		if b.Overrides == nil {
			b.Overrides = make(map[string]string)
		} else {
			b.Overrides = maps.Clone(b.Overrides)
		}
		b.Overrides[key] = value
	}
}

// WithOverrides parses key=value pairs into a single override option.
func WithOverrides(pairs ...string) (Option, error) {
	overrides := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, err := config.ParseOverride(pair)
		if err != nil {
			return nil, err
		}
		overrides[key] = value
	}
	return func(b *domain.Bootstrap) {
		for key, value := range overrides {
			WithOverride(key, value)(b)
		}
	}, nil
}

// WithRandomPort binds every listener to an ephemeral port chosen by the OS.
func WithRandomPort() Option {
	return func(b *domain.Bootstrap) {
		WithOverride("server.port", "0")(b)
		WithOverride("management.grpc.port", "0")(b)
	}
}

// WithLogOutput sends log records to w.
func WithLogOutput(w io.Writer) Option {
	return func(b *domain.Bootstrap) {
		b.LogOutput = w
	}
}

// WithEnv replaces the process environment with env for configuration lookups.
func WithEnv(env map[string]string) Option {
	env = maps.Clone(env)
	return func(b *domain.Bootstrap) {
		b.LookupEnv = func(key string) (string, bool) {
			v, ok := env[key]
			return v, ok
		}
		b.Environ = func() []string {
			out := make([]string, 0, len(env))
			for k, v := range env {
				out = append(out, k+"="+v)
			}
			return out
		}
	}
}
