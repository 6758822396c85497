package metrics

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mazerepair/internal/adapters/config"
	"go.trai.ch/mazerepair/internal/core/domain"
)

// NodeID is the unique identifier for the metrics registry Graft node.
const NodeID graft.ID = "adapter.metrics"

func init() {
	graft.Register(graft.Node[*Registry]{
		ID:        NodeID,
		Cacheable: false,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (*Registry, error) {
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return New(settings.App.Name), nil
		},
	})
}
