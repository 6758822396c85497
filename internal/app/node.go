package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mazerepair/internal/adapters/assets"     //nolint:depguard // Wired in app layer
	"go.trai.ch/mazerepair/internal/adapters/config"     //nolint:depguard // Wired in app layer
	"go.trai.ch/mazerepair/internal/adapters/grpcserver" //nolint:depguard // Wired in app layer
	"go.trai.ch/mazerepair/internal/adapters/httpserver" //nolint:depguard // Wired in app layer
	"go.trai.ch/mazerepair/internal/adapters/logger"     //nolint:depguard // Wired in app layer
	"go.trai.ch/mazerepair/internal/adapters/metrics"    //nolint:depguard // Wired in app layer
	"go.trai.ch/mazerepair/internal/adapters/telemetry"  //nolint:depguard // Wired in app layer
	"go.trai.ch/mazerepair/internal/core/domain"
	"go.trai.ch/mazerepair/internal/core/ports"
	"go.trai.ch/mazerepair/internal/engine/health"
)

// ComponentsNodeID is the unique identifier for the application components Graft node.
const ComponentsNodeID graft.ID = "app.components"

func init() {
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: false,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.NodeID,
			health.NodeID,
			metrics.NodeID,
			telemetry.ProviderNodeID,
			assets.StoreNodeID,
			assets.WatcherNodeID,
			httpserver.NodeID,
			grpcserver.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	settings, err := graft.Dep[*domain.Settings](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	registry, err := graft.Dep[*health.Registry](ctx)
	if err != nil {
		return nil, err
	}

	metricsRegistry, err := graft.Dep[*metrics.Registry](ctx)
	if err != nil {
		return nil, err
	}

	tracing, err := graft.Dep[*telemetry.Provider](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[*assets.Store](ctx)
	if err != nil {
		return nil, err
	}

	watcher, err := graft.Dep[*assets.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	httpServer, err := graft.Dep[*httpserver.Server](ctx)
	if err != nil {
		return nil, err
	}

	grpcServer, err := graft.Dep[*grpcserver.Server](ctx)
	if err != nil {
		return nil, err
	}

	registry.Register("assets", store)
	registry.Register("http", httpServer)
	if grpcServer != nil {
		registry.Register("grpc", grpcServer)
	}

	return &Components{
		Settings: settings,
		Logger:   log,
		Health:   registry,
		Metrics:  metricsRegistry,
		Tracing:  tracing,
		Assets:   store,
		Watcher:  watcher,
		HTTP:     httpServer,
		GRPC:     grpcServer,
	}, nil
}
