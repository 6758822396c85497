package domain

import (
	"context"
	"io"
	"os"
	"strings"
)

const (
	// DefaultProfile is active when no profile is selected.
	DefaultProfile = "default"

	// EnvPrefix prefixes every environment variable the application binds.
	EnvPrefix = "MAZEREPAIR_"

	// ProfilesEnvVar selects the active profiles as a comma separated list.
	ProfilesEnvVar = EnvPrefix + "PROFILES_ACTIVE"
)

// Bootstrap holds the inputs needed to build an application context.
// It travels through the dependency graph on the context.
type Bootstrap struct {
	// Profiles lists the active configuration profiles in precedence order.
	Profiles []string
	// ConfigDir optionally points at a directory whose application*.yaml files
	// take precedence over the embedded ones.
	ConfigDir string
	// Overrides maps dotted keys to values and wins over every other source.
	Overrides map[string]string
	// LogOutput receives log records. Defaults to os.Stderr.
	LogOutput io.Writer
	// LookupEnv reads a single environment variable.
	LookupEnv func(key string) (string, bool)
	// Environ lists the environment as KEY=VALUE pairs.
	Environ func() []string
}

type bootstrapKey struct{}

// WithBootstrap returns a copy of ctx carrying b.
func WithBootstrap(ctx context.Context, b Bootstrap) context.Context {
	return context.WithValue(ctx, bootstrapKey{}, b)
}

// BootstrapFrom returns the Bootstrap stored in ctx with defaults applied.
func BootstrapFrom(ctx context.Context) Bootstrap {
	b, _ := ctx.Value(bootstrapKey{}).(Bootstrap)
	return b.WithDefaults()
}

// WithDefaults fills unset fields from the process environment.
func (b Bootstrap) WithDefaults() Bootstrap {
	if b.LookupEnv == nil {
		b.LookupEnv = os.LookupEnv
	}
	if b.Environ == nil {
		b.Environ = os.Environ
	}
	if b.LogOutput == nil {
		b.LogOutput = os.Stderr
	}
	if len(b.Profiles) == 0 {
		if v, ok := b.LookupEnv(ProfilesEnvVar); ok {
			b.Profiles = SplitProfiles(v)
		}
	}
	if len(b.Profiles) == 0 {
		b.Profiles = []string{DefaultProfile}
	}
	return b
}

// SplitProfiles parses a comma separated profile list, dropping blanks.
func SplitProfiles(s string) []string {
	var profiles []string
	for p := range strings.SplitSeq(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			profiles = append(profiles, p)
		}
	}
	return profiles
}
