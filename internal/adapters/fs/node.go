package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/spf13/afero"
	"go.trai.ch/modpack/internal/core/ports"
)

const ArtifactStoreNodeID graft.ID = "adapter.fs.artifact_store"

func init() {
	graft.Register(graft.Node[ports.ArtifactStore]{
		ID:        ArtifactStoreNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.ArtifactStore, error) {
			return NewArtifactStore(afero.NewOsFs()), nil
		},
	})
}
