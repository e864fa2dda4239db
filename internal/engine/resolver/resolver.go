// Package resolver implements the dependency resolution walk.
package resolver

import (
	"context"
	"fmt"
	"path/filepath"

	"go.trai.ch/modpack/internal/core/domain"
	"go.trai.ch/modpack/internal/core/ports"
	"go.trai.ch/zerr"
)

// Request describes one resolution run.
type Request struct {
	// Identifiers seed the worklist, in order.
	Identifiers []string

	// PlatformVersion filters artifacts and names the download subdirectory.
	PlatformVersion string

	// Ignore lists identifiers that are reported and skipped, ignoring case.
	Ignore []string

	// DownloadRoot is the directory artifacts are written under.
	DownloadRoot string
}

// Resolver expands requested identifiers into a verified set of downloads.
type Resolver struct {
	fetcher   ports.Fetcher
	store     ports.ArtifactStore
	verifier  ports.ChecksumVerifier
	telemetry ports.Telemetry
	logger    ports.Logger
}

// New creates a new Resolver.
func New(
	fetcher ports.Fetcher,
	store ports.ArtifactStore,
	verifier ports.ChecksumVerifier,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *Resolver {
	return &Resolver{
		fetcher:   fetcher,
		store:     store,
		verifier:  verifier,
		telemetry: telemetry,
		logger:    logger,
	}
}

// Resolve walks the worklist breadth-first until it is empty.
//
// Each identifier is marked resolved before it is processed, so dependency cycles
// terminate. Unmatched identifiers and failed fetches are recorded and skipped; their
// dependencies are never explored. A checksum mismatch, a write failure or context
// cancellation aborts the run. The partial resolution is returned alongside the error.
func (r *Resolver) Resolve(ctx context.Context, catalog *domain.Catalog, req Request) (*domain.Resolution, error) {
	worklist := domain.NewWorklist(req.Identifiers...)
	ignore := domain.NewIdentifierSet(req.Ignore...)
	resolution := &domain.Resolution{Resolved: domain.NewResolvedSet()}
	dir := filepath.Join(req.DownloadRoot, req.PlatformVersion)

	for {
		if err := ctx.Err(); err != nil {
			return resolution, zerr.Wrap(err, domain.ErrResolutionFailed.Error())
		}

		id, ok := worklist.Pop()
		if !ok {
			break
		}
		if id == "" || !resolution.Resolved.Add(id) {
			continue
		}

		outcome, err := r.process(ctx, catalog, id, ignore, req.PlatformVersion, dir)
		if err != nil {
			return resolution, err
		}
		resolution.Outcomes = append(resolution.Outcomes, outcome)
		r.logger.Outcome(outcome)

		if outcome.Status == domain.OutcomeDownloaded {
			worklist.Push(outcome.Artifact.Dependencies...)
		}
	}

	return resolution, nil
}

// process handles a single identifier that has just been marked resolved.
func (r *Resolver) process(
	ctx context.Context,
	catalog *domain.Catalog,
	id string,
	ignore domain.IdentifierSet,
	platformVersion, dir string,
) (domain.Outcome, error) {
	ctx, vertex := r.telemetry.Record(ctx, id)
	outcome := domain.Outcome{Identifier: id}

	if ignore.Contains(id) {
		r.logger.Info("Ignoring " + id)
		vertex.Skipped()
		outcome.Status = domain.OutcomeIgnored
		return outcome, nil
	}

	r.logger.Info("Resolving " + id + "..")

	artifact, ok := catalog.TopMatch(id, platformVersion)
	if !ok {
		r.logger.Warn(fmt.Sprintf("No matches found for %q", id))
		vertex.Skipped()
		outcome.Status = domain.OutcomeUnmatched
		return outcome, nil
	}
	outcome.Artifact = &artifact

	if artifact.Checksum == "" {
		err := zerr.With(domain.ErrMissingChecksum, "identifier", id)
		vertex.Complete(err)
		return outcome, err
	}

	url := artifact.PrimaryMirror()
	if url == "" {
		err := zerr.With(domain.ErrNoMirrors, "identifier", id)
		r.logger.Warn("Skipping " + id + ": " + err.Error())
		vertex.Complete(err)
		outcome.Status = domain.OutcomeFetchFailed
		outcome.Err = err
		return outcome, nil
	}

	r.logger.Info("Downloading " + url)
	vertex.Log(domain.LogLevelInfo, "Downloading "+url)

	download, err := r.fetcher.Fetch(ctx, url)
	if err != nil {
		vertex.Complete(err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return outcome, zerr.Wrap(ctxErr, domain.ErrResolutionFailed.Error())
		}
		r.logger.Warn("Failed to download " + url + ": " + err.Error())
		outcome.Status = domain.OutcomeFetchFailed
		outcome.Err = err
		return outcome, nil
	}

	if err := r.verifier.Verify(artifact.Checksum, download.Data); err != nil {
		err = zerr.With(zerr.With(err, "identifier", id), "url", url)
		vertex.Complete(err)
		return outcome, err
	}

	filename := domain.FilenameFromURL(download.URL, id)
	path, err := r.store.Write(dir, filename, download.Data)
	if err != nil {
		err = zerr.With(err, "identifier", id)
		vertex.Complete(err)
		return outcome, err
	}

	vertex.Complete(nil)
	outcome.Status = domain.OutcomeDownloaded
	outcome.Path = path
	return outcome, nil
}
