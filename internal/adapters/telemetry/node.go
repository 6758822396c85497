package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mazerepair/internal/adapters/config"
	"go.trai.ch/mazerepair/internal/adapters/logger"
	"go.trai.ch/mazerepair/internal/core/domain"
	"go.trai.ch/mazerepair/internal/core/ports"
)

// ProviderNodeID is the unique identifier for the tracer provider Graft node.
const ProviderNodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[*Provider]{
		ID:        ProviderNodeID,
		Cacheable: false,
		DependsOn: []graft.ID{config.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Provider, error) {
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewProvider(settings.Tracing, settings.App, log), nil
		},
	})
}
