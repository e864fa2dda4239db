package resolver

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/modpack/internal/adapters/checksum"           //nolint:depguard // Wired in engine wiring
	"go.trai.ch/modpack/internal/adapters/fs"                 //nolint:depguard // Wired in engine wiring
	"go.trai.ch/modpack/internal/adapters/httpfetch"          //nolint:depguard // Wired in engine wiring
	"go.trai.ch/modpack/internal/adapters/logger"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/modpack/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/modpack/internal/core/ports"
)

// NodeID is the unique identifier for the resolver Graft node.
const NodeID graft.ID = "engine.resolver"

func init() {
	graft.Register(graft.Node[*Resolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			httpfetch.NodeID,
			fs.ArtifactStoreNodeID,
			checksum.NodeID,
			progrock.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Resolver, error) {
			fetcher, err := graft.Dep[ports.Fetcher](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.ArtifactStore](ctx)
			if err != nil {
				return nil, err
			}

			verifier, err := graft.Dep[ports.ChecksumVerifier](ctx)
			if err != nil {
				return nil, err
			}

			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(fetcher, store, verifier, telemetry, log), nil
		},
	})
}
