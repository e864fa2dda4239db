package ports

import "go.trai.ch/modpack/internal/core/domain"

// CatalogStore reads and writes catalog files.
//
//go:generate mockgen -source=catalog_store.go -destination=mocks/mock_catalog_store.go -package=mocks
type CatalogStore interface {
	// Load reads the catalog records stored at path, in file order.
	// Keys may appear in any order; unknown keys are ignored.
	Load(path string) ([]domain.CatalogRecord, error)

	// Encode renders records in the canonical catalog file format.
	Encode(records []domain.CatalogRecord) ([]byte, error)

	// Save writes records in the canonical format to path, replacing any existing file atomically.
	Save(path string, records []domain.CatalogRecord) error

	// IsCanonical reports whether the file at path holds exactly the canonical
	// encoding of records.
	IsCanonical(path string, records []domain.CatalogRecord) (bool, error)
}
