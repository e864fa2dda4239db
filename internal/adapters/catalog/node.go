package catalog

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/modpack/internal/adapters/logger"
	"go.trai.ch/modpack/internal/core/ports"
)

// NodeID is the unique identifier for the catalog store Graft node.
const NodeID graft.ID = "adapter.catalog_store"

func init() {
	graft.Register(graft.Node[ports.CatalogStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.CatalogStore, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(log), nil
		},
	})
}
