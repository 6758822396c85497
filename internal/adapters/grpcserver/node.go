package grpcserver

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mazerepair/internal/adapters/config" //nolint:depguard // Wired in adapter wiring
	"go.trai.ch/mazerepair/internal/adapters/logger" //nolint:depguard // Wired in adapter wiring
	"go.trai.ch/mazerepair/internal/core/domain"
	"go.trai.ch/mazerepair/internal/core/ports"
)

// NodeID is the unique identifier for the gRPC health server Graft node.
const NodeID graft.ID = "adapter.grpc_server"

func init() {
	// Yields nil when management.grpc.enabled is false.
	graft.Register(graft.Node[*Server]{
		ID:        NodeID,
		Cacheable: false,
		DependsOn: []graft.ID{config.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Server, error) {
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			if !settings.Management.GRPC.Enabled {
				return nil, nil
			}
			return NewServer(settings, log), nil
		},
	})
}
