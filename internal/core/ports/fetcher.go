package ports

import (
	"context"

	"go.trai.ch/modpack/internal/core/domain"
)

// Fetcher downloads content from a URL.
//
//go:generate mockgen -source=fetcher.go -destination=mocks/mock_fetcher.go -package=mocks
type Fetcher interface {
	// Fetch retrieves the content at url.
	// A non-200 response yields domain.ErrArtifactUnavailable; transport failures yield
	// domain.ErrFetchFailed. Neither is retried.
	Fetch(ctx context.Context, url string) (*domain.Download, error)
}
