// Package app implements the application layer for modpack.
package app

import (
	"context"
	"fmt"

	"go.trai.ch/modpack/internal/core/domain"
	"go.trai.ch/modpack/internal/core/ports"
	"go.trai.ch/modpack/internal/engine/resolver"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	catalogStore ports.CatalogStore
	extractor    ports.MetadataExtractor
	verifier     ports.ChecksumVerifier
	resolver     *resolver.Resolver
	telemetry    ports.Telemetry
	logger       ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	store ports.CatalogStore,
	extractor ports.MetadataExtractor,
	verifier ports.ChecksumVerifier,
	res *resolver.Resolver,
	telemetry ports.Telemetry,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		catalogStore: store,
		extractor:    extractor,
		verifier:     verifier,
		resolver:     res,
		telemetry:    telemetry,
		logger:       log,
	}
}

// ResolveOptions holds command-line overrides for a resolve run.
// Empty values fall back to the profile.
type ResolveOptions struct {
	ConfigPath      string
	Catalog         string
	PlatformVersion string
	DownloadDir     string

	// Ignore replaces the profile's ignore list when non-nil.
	Ignore []string
}

// Resolve downloads the given packages and their dependencies. Without identifiers
// the profile's package list is resolved.
func (a *App) Resolve(ctx context.Context, identifiers []string, opts ResolveOptions) (*domain.Resolution, error) {
	profile, err := a.configLoader.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	if len(identifiers) == 0 {
		identifiers = profile.Packages
	}
	if len(identifiers) == 0 {
		return nil, domain.ErrNoTargetsSpecified
	}

	req := resolver.Request{
		Identifiers:     identifiers,
		PlatformVersion: firstNonEmpty(opts.PlatformVersion, profile.PlatformVersion),
		Ignore:          profile.Ignore,
		DownloadRoot:    firstNonEmpty(opts.DownloadDir, profile.DownloadDir),
	}
	if opts.Ignore != nil {
		req.Ignore = opts.Ignore
	}
	if req.PlatformVersion == "" {
		return nil, domain.ErrNoPlatformVersion
	}

	catalogPath := firstNonEmpty(opts.Catalog, profile.Catalog)
	catalog, err := a.loadCatalog(catalogPath)
	if err != nil {
		return nil, err
	}
	a.logger.Info(fmt.Sprintf("Loaded %d packages from %s", catalog.Len(), catalogPath))

	defer func() {
		if closeErr := a.telemetry.Close(); closeErr != nil {
			a.logger.Warn("failed to close telemetry: " + closeErr.Error())
		}
	}()

	resolution, err := a.resolver.Resolve(ctx, catalog, req)
	if err != nil {
		return resolution, err
	}

	a.logger.Info(fmt.Sprintf(
		"Resolved %d packages: %d downloaded, %d ignored, %d unmatched, %d failed",
		resolution.Resolved.Len(),
		resolution.Count(domain.OutcomeDownloaded),
		resolution.Count(domain.OutcomeIgnored),
		resolution.Count(domain.OutcomeUnmatched),
		resolution.Count(domain.OutcomeFetchFailed),
	))
	return resolution, nil
}

// loadCatalog reads the catalog at path and indexes it.
func (a *App) loadCatalog(path string) (*domain.Catalog, error) {
	records, err := a.catalogStore.Load(path)
	if err != nil {
		return nil, err
	}

	catalog, err := domain.NewCatalog(records)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return catalog, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
