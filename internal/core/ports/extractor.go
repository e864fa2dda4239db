package ports

import "go.trai.ch/modpack/internal/core/domain"

// MetadataExtractor reads package metadata embedded in a package archive.
//
//go:generate mockgen -source=extractor.go -destination=mocks/mock_extractor.go -package=mocks
type MetadataExtractor interface {
	// Extract returns one record per package described inside the archive at path.
	// Each record carries at most one artifact, without checksum or mirrors.
	// It returns domain.ErrMetadataNotFound when the archive carries no metadata.
	Extract(path string) ([]domain.CatalogRecord, error)
}
