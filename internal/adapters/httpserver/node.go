package httpserver

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/grindlemire/graft"
	"go.trai.ch/mazerepair/internal/adapters/assets"    //nolint:depguard // Wired in adapter wiring
	"go.trai.ch/mazerepair/internal/adapters/config"    //nolint:depguard // Wired in adapter wiring
	"go.trai.ch/mazerepair/internal/adapters/logger"    //nolint:depguard // Wired in adapter wiring
	"go.trai.ch/mazerepair/internal/adapters/metrics"   //nolint:depguard // Wired in adapter wiring
	"go.trai.ch/mazerepair/internal/adapters/telemetry" //nolint:depguard // Wired in adapter wiring
	"go.trai.ch/mazerepair/internal/core/domain"
	"go.trai.ch/mazerepair/internal/core/ports"
	"go.trai.ch/mazerepair/internal/engine/health"
)

const (
	// InstanceIDNodeID is the unique identifier for the instance id Graft node.
	InstanceIDNodeID graft.ID = "adapter.http_instance_id"
	// RouterNodeID is the unique identifier for the HTTP router Graft node.
	RouterNodeID graft.ID = "adapter.http_router"
	// NodeID is the unique identifier for the HTTP server Graft node.
	NodeID graft.ID = "adapter.http_server"
)

// InstanceID identifies one application context in the info endpoint.
type InstanceID string

// Handler is the fully wired HTTP handler.
type Handler struct {
	http.Handler
}

func init() {
	graft.Register(graft.Node[InstanceID]{
		ID:        InstanceIDNodeID,
		Cacheable: false,
		Run: func(_ context.Context) (InstanceID, error) {
			return InstanceID(uuid.NewString()), nil
		},
	})

	graft.Register(graft.Node[*Handler]{
		ID:        RouterNodeID,
		Cacheable: false,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.NodeID,
			telemetry.ProviderNodeID,
			metrics.NodeID,
			health.NodeID,
			assets.StoreNodeID,
			InstanceIDNodeID,
		},
		Run: runRouterNode,
	})

	graft.Register(graft.Node[*Server]{
		ID:        NodeID,
		Cacheable: false,
		DependsOn: []graft.ID{config.NodeID, logger.NodeID, RouterNodeID},
		Run: func(ctx context.Context) (*Server, error) {
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			handler, err := graft.Dep[*Handler](ctx)
			if err != nil {
				return nil, err
			}
			return NewServer(settings.Server, handler, log), nil
		},
	})
}

func runRouterNode(ctx context.Context) (*Handler, error) {
	settings, err := graft.Dep[*domain.Settings](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	provider, err := graft.Dep[*telemetry.Provider](ctx)
	if err != nil {
		return nil, err
	}

	registry, err := graft.Dep[*metrics.Registry](ctx)
	if err != nil {
		return nil, err
	}

	healthRegistry, err := graft.Dep[*health.Registry](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[*assets.Store](ctx)
	if err != nil {
		return nil, err
	}

	instanceID, err := graft.Dep[InstanceID](ctx)
	if err != nil {
		return nil, err
	}

	return &Handler{NewRouter(Dependencies{
		Settings: settings,
		Logger:   log,
		Tracer:   provider.Tracer(),
		Metrics:  registry,
		Health:   healthRegistry,
		Assets:   store,
		Info:     NewInfo(settings, string(instanceID), domain.BootstrapFrom(ctx).Profiles),
	})}, nil
}
