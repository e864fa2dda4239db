package checksum

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/modpack/internal/core/ports"
)

const NodeID graft.ID = "adapter.checksum_verifier"

func init() {
	graft.Register(graft.Node[ports.ChecksumVerifier]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.ChecksumVerifier, error) {
			return NewVerifier(), nil
		},
	})
}
