package domain

import "go.trai.ch/zerr"

var (
	// ErrStartupFailed is joined with the cause of any failure while building or starting the application context.
	ErrStartupFailed = zerr.New("application context failed to start")

	// ErrConfigReadFailed is returned when a configuration file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when a configuration file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigDecodeFailed is returned when the merged configuration does not match the settings schema.
	ErrConfigDecodeFailed = zerr.New("failed to bind configuration")

	// ErrInvalidConfig is returned when a configuration value fails validation.
	ErrInvalidConfig = zerr.New("invalid configuration value")

	// ErrInvalidProfile is returned when a profile name contains invalid characters.
	ErrInvalidProfile = zerr.New("profile name can only contain alphanumeric characters, hyphens and underscores")

	// ErrProfileNotFound is returned when no configuration file exists for an active profile.
	ErrProfileNotFound = zerr.New("no configuration found for profile")

	// ErrUnresolvablePlaceholder is returned when a ${...} placeholder has no value and no default.
	ErrUnresolvablePlaceholder = zerr.New("could not resolve placeholder")

	// ErrPlaceholderCycle is returned when placeholders reference each other in a loop.
	ErrPlaceholderCycle = zerr.New("circular placeholder reference")

	// ErrInvalidOverride is returned when a key=value override cannot be parsed.
	ErrInvalidOverride = zerr.New("invalid override, expected key=value")

	// ErrListenFailed is returned when a server cannot bind its listener.
	ErrListenFailed = zerr.New("failed to bind listener")

	// ErrServerFailed is returned when a running server stops unexpectedly.
	ErrServerFailed = zerr.New("server stopped unexpectedly")

	// ErrShutdownFailed is returned when a component does not stop cleanly.
	ErrShutdownFailed = zerr.New("failed to stop component")

	// ErrAssetBundleInvalid is returned when the static web bundle has no index document.
	ErrAssetBundleInvalid = zerr.New("static bundle is missing index.html")

	// ErrAssetNotFound is returned when a requested static asset does not exist.
	ErrAssetNotFound = zerr.New("asset not found")

	// ErrWatcherFailed is returned when the static directory watcher cannot be started.
	ErrWatcherFailed = zerr.New("failed to watch static directory")

	// ErrCheckFailed is returned by the check command after the failure has been reported.
	ErrCheckFailed = zerr.New("startup verification failed")

	// ErrAlreadyStarted is returned when a lifecycle component is started twice.
	ErrAlreadyStarted = zerr.New("component already started")
)
