package app

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/modpack/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// NormalizeOptions configures a normalize run.
type NormalizeOptions struct {
	ConfigPath string

	// Inputs are source catalogs, concatenated in order. Empty means the profile's catalog.
	Inputs []string

	// Output is the file the canonical catalog is written to. Empty means the
	// canonical bytes are only returned.
	Output string

	// Check compares the canonical form with the existing file instead of writing it.
	// The file checked is Output, or the single input when Output is empty.
	Check bool
}

// NormalizeResult describes a completed normalize run.
type NormalizeResult struct {
	Records []domain.CatalogRecord
	Data    []byte
}

// Normalize canonicalizes one or more catalog files.
func (a *App) Normalize(ctx context.Context, opts NormalizeOptions) (*NormalizeResult, error) {
	inputs := opts.Inputs
	if len(inputs) == 0 {
		profile, err := a.configLoader.Load(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		inputs = []string{profile.Catalog}
	}

	loaded := make([][]domain.CatalogRecord, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	for i, path := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			records, err := a.catalogStore.Load(path)
			if err != nil {
				return err
			}
			loaded[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	normalized, err := domain.Normalize(slices.Concat(loaded...))
	if err != nil {
		return nil, err
	}
	for _, w := range normalized.Warnings {
		a.logger.Warn(w)
	}

	if opts.Check {
		target := opts.Output
		if target == "" {
			target = inputs[0]
		}
		ok, err := a.catalogStore.IsCanonical(target, normalized.Records)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, zerr.With(domain.ErrCatalogNotCanonical, "path", target)
		}
		return &NormalizeResult{Records: normalized.Records}, nil
	}

	if opts.Output != "" {
		if err := a.catalogStore.Save(opts.Output, normalized.Records); err != nil {
			return nil, err
		}
		return &NormalizeResult{Records: normalized.Records}, nil
	}

	data, err := a.catalogStore.Encode(normalized.Records)
	if err != nil {
		return nil, err
	}
	return &NormalizeResult{Records: normalized.Records, Data: data}, nil
}

// AddOptions configures adding a package archive to the catalog.
type AddOptions struct {
	ConfigPath string
	Catalog    string

	// Archive is the local package archive to describe.
	Archive string

	// Mirror is the download URL recorded for the archive.
	Mirror string

	// Algorithm selects the checksum algorithm; empty means md5.
	Algorithm string
}

// AddResult describes how each package found in the archive was merged.
type AddResult struct {
	Identifiers []string
	Results     []domain.MergeResult
	Checksum    string
}

// Add reads the metadata embedded in an archive, computes its checksum and merges the
// described packages into the catalog, which is then normalized and saved.
func (a *App) Add(_ context.Context, opts AddOptions) (*AddResult, error) {
	if strings.TrimSpace(opts.Mirror) == "" {
		return nil, domain.ErrMirrorRequired
	}

	catalogPath := opts.Catalog
	if catalogPath == "" {
		profile, err := a.configLoader.Load(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		catalogPath = profile.Catalog
	}

	extracted, err := a.extractor.Extract(opts.Archive)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(opts.Archive)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrArchiveOpenFailed.Error()), "path", opts.Archive)
	}
	checksum, err := a.verifier.Compute(opts.Algorithm, data)
	if err != nil {
		return nil, err
	}

	records, err := a.loadRecordsOrEmpty(catalogPath)
	if err != nil {
		return nil, err
	}

	result := &AddResult{Checksum: checksum}
	for _, record := range extracted {
		for i := range record.Artifacts {
			record.Artifacts[i].Checksum = checksum
			record.Artifacts[i].Mirrors = []string{opts.Mirror}
		}

		var merged domain.MergeResult
		records, merged = domain.Merge(records, record)
		result.Identifiers = append(result.Identifiers, record.Identifier)
		result.Results = append(result.Results, merged)
	}

	normalized, err := domain.Normalize(records)
	if err != nil {
		return nil, err
	}
	for _, w := range normalized.Warnings {
		a.logger.Warn(w)
	}

	if err := a.catalogStore.Save(catalogPath, normalized.Records); err != nil {
		return nil, err
	}
	for i, id := range result.Identifiers {
		a.logger.Info(describeMerge(id, result.Results[i]))
	}
	return result, nil
}

func describeMerge(id string, result domain.MergeResult) string {
	switch result {
	case domain.MergeAddedRecord:
		return "Added " + id
	case domain.MergeAddedArtifact:
		return "Added new artifact to " + id
	case domain.MergeAddedMirror:
		return "Added mirror to " + id
	default:
		return id + " is already in the catalog"
	}
}

// loadRecordsOrEmpty reads the catalog at path; a missing file is an empty catalog.
func (a *App) loadRecordsOrEmpty(path string) ([]domain.CatalogRecord, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return a.catalogStore.Load(path)
}

// ListOptions configures listing catalog packages.
type ListOptions struct {
	ConfigPath string
	Catalog    string

	// PlatformVersion keeps only packages with an artifact that names it explicitly.
	PlatformVersion string
}

// List returns the catalog records, in catalog order.
func (a *App) List(_ context.Context, opts ListOptions) ([]domain.CatalogRecord, error) {
	catalog, err := a.catalogFromOptions(opts.ConfigPath, opts.Catalog)
	if err != nil {
		return nil, err
	}

	var out []domain.CatalogRecord
	for _, r := range catalog.Records() {
		if opts.PlatformVersion != "" && !r.ListsPlatformVersion(opts.PlatformVersion) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// VersionsOptions configures listing platform versions.
type VersionsOptions struct {
	ConfigPath string
	Catalog    string
}

// Versions returns every platform version named in the catalog. Versions that parse
// as semantic versions come first in ascending order, the rest follow sorted as strings.
func (a *App) Versions(_ context.Context, opts VersionsOptions) ([]string, error) {
	catalog, err := a.catalogFromOptions(opts.ConfigPath, opts.Catalog)
	if err != nil {
		return nil, err
	}
	return SortVersions(domain.PlatformVersions(catalog.Records())), nil
}

// SortVersions orders versions semver-aware, returning a new slice.
func SortVersions(versions []string) []string {
	type parsed struct {
		raw string
		v   *semver.Version
	}

	items := make([]parsed, len(versions))
	for i, raw := range versions {
		v, err := semver.NewVersion(raw)
		if err != nil {
			v = nil
		}
		items[i] = parsed{raw: raw, v: v}
	}

	slices.SortStableFunc(items, func(a, b parsed) int {
		switch {
		case a.v != nil && b.v != nil:
			if c := a.v.Compare(b.v); c != 0 {
				return c
			}
			return strings.Compare(a.raw, b.raw)
		case a.v != nil:
			return -1
		case b.v != nil:
			return 1
		default:
			return strings.Compare(a.raw, b.raw)
		}
	})

	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.raw
	}
	return out
}

func (a *App) catalogFromOptions(configPath, catalogPath string) (*domain.Catalog, error) {
	if catalogPath == "" {
		profile, err := a.configLoader.Load(configPath)
		if err != nil {
			return nil, err
		}
		catalogPath = profile.Catalog
	}
	return a.loadCatalog(catalogPath)
}
