package resolver_test

import (
	"testing"

	"github.com/spf13/afero"
	"go.trai.ch/modpack/internal/adapters/checksum"
	"go.trai.ch/modpack/internal/adapters/fs"
	"go.trai.ch/modpack/internal/adapters/httpfetch"
	"go.trai.ch/modpack/internal/adapters/telemetry"
	"go.trai.ch/modpack/internal/core/ports/mocks"
	"go.trai.ch/modpack/internal/engine/resolver"
	"go.uber.org/mock/gomock"
)

// integrationEnv wires the resolver to real adapters over an in-memory file system.
type integrationEnv struct {
	fs       afero.Fs
	resolver *resolver.Resolver
}

func newIntegrationEnv(t *testing.T) *integrationEnv {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	log.EXPECT().Outcome(gomock.Any()).AnyTimes()

	mem := afero.NewMemMapFs()
	return &integrationEnv{
		fs: mem,
		resolver: resolver.New(
			httpfetch.NewFetcher(),
			fs.NewArtifactStore(mem),
			checksum.NewVerifier(),
			telemetry.NewNoOp(),
			log,
		),
	}
}

func (e *integrationEnv) read(path string) ([]byte, error) {
	return afero.ReadFile(e.fs, path)
}

func (e *integrationEnv) exists(path string) (bool, error) {
	return afero.Exists(e.fs, path)
}
