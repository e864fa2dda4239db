package ports

import "go.trai.ch/modpack/internal/core/domain"

// ConfigLoader defines the interface for loading the resolve profile.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the profile at path. A missing file yields the default profile.
	Load(path string) (*domain.Profile, error)
}
