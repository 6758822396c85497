// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/mazerepair/internal/adapters/assets"
	_ "go.trai.ch/mazerepair/internal/adapters/config"
	_ "go.trai.ch/mazerepair/internal/adapters/grpcserver"
	_ "go.trai.ch/mazerepair/internal/adapters/httpserver"
	_ "go.trai.ch/mazerepair/internal/adapters/logger"
	_ "go.trai.ch/mazerepair/internal/adapters/metrics"
	_ "go.trai.ch/mazerepair/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/mazerepair/internal/app"
	_ "go.trai.ch/mazerepair/internal/engine/health"
)
