package health

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the health registry Graft node.
const NodeID graft.ID = "engine.health"

func init() {
	graft.Register(graft.Node[*Registry]{
		ID:        NodeID,
		Cacheable: false,
		Run: func(_ context.Context) (*Registry, error) {
			return NewRegistry(), nil
		},
	})
}
