package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mazerepair/internal/core/domain"
	"go.trai.ch/mazerepair/internal/core/ports"
)

const (
	// LoaderNodeID is the unique identifier for the config loader Graft node.
	LoaderNodeID graft.ID = "adapter.config_loader"
	// NodeID is the unique identifier for the bound settings Graft node.
	NodeID graft.ID = "adapter.config"
)

func init() {
	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        LoaderNodeID,
		Cacheable: false,
		Run: func(ctx context.Context) (ports.ConfigLoader, error) {
			return NewLoader(domain.BootstrapFrom(ctx)), nil
		},
	})

	graft.Register(graft.Node[*domain.Settings]{
		ID:        NodeID,
		Cacheable: false,
		DependsOn: []graft.ID{LoaderNodeID},
		Run: func(ctx context.Context) (*domain.Settings, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			return loader.Load(domain.BootstrapFrom(ctx).Profiles)
		},
	})
}
