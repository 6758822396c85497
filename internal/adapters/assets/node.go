package assets

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mazerepair/internal/adapters/config"
	"go.trai.ch/mazerepair/internal/adapters/logger"
	"go.trai.ch/mazerepair/internal/core/domain"
	"go.trai.ch/mazerepair/internal/core/ports"
)

const (
	// StoreNodeID is the unique identifier for the asset store Graft node.
	StoreNodeID graft.ID = "adapter.assets"
	// WatcherNodeID is the unique identifier for the static directory watcher Graft node.
	WatcherNodeID graft.ID = "adapter.assets_watcher"
)

func init() {
	graft.Register(graft.Node[*Store]{
		ID:        StoreNodeID,
		Cacheable: false,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (*Store, error) {
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(settings.Web)
		},
	})

	// The watcher node yields nil unless a static directory is watched.
	graft.Register(graft.Node[*Watcher]{
		ID:        WatcherNodeID,
		Cacheable: false,
		DependsOn: []graft.ID{config.NodeID, StoreNodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Watcher, error) {
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			store, err := graft.Dep[*Store](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			if !settings.Web.Watch || settings.Web.StaticDir == "" {
				return nil, nil
			}
			return NewWatcher(settings.Web.StaticDir, store, log), nil
		},
	})
}
