package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/modpack/internal/adapters/archive"            //nolint:depguard // Wired in app layer
	"go.trai.ch/modpack/internal/adapters/catalog"            //nolint:depguard // Wired in app layer
	"go.trai.ch/modpack/internal/adapters/checksum"           //nolint:depguard // Wired in app layer
	"go.trai.ch/modpack/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/modpack/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/modpack/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/modpack/internal/core/ports"
	"go.trai.ch/modpack/internal/engine/resolver"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			catalog.NodeID,
			archive.NodeID,
			checksum.NodeID,
			resolver.NodeID,
			progrock.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			return NewComponents(app, log, telemetry), nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.CatalogStore](ctx)
	if err != nil {
		return nil, err
	}

	extractor, err := graft.Dep[ports.MetadataExtractor](ctx)
	if err != nil {
		return nil, err
	}

	verifier, err := graft.Dep[ports.ChecksumVerifier](ctx)
	if err != nil {
		return nil, err
	}

	res, err := graft.Dep[*resolver.Resolver](ctx)
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

	return New(loader, store, extractor, verifier, res, telemetry, log), nil
}
