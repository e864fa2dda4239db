package domain

import "go.trai.ch/zerr"

var (
	// ErrDuplicateIdentifier is returned when two catalog records share an identifier, ignoring case.
	ErrDuplicateIdentifier = zerr.New("duplicate package identifier")

	// ErrMissingIdentifier is returned when a catalog record has neither an identifier nor an external id.
	ErrMissingIdentifier = zerr.New("missing package identifier")

	// ErrChecksumMismatch is returned when downloaded content does not match the declared checksum.
	ErrChecksumMismatch = zerr.New("checksum mismatch")

	// ErrMissingChecksum is returned when an artifact selected for download declares no checksum.
	ErrMissingChecksum = zerr.New("artifact declares no checksum")

	// ErrUnsupportedChecksum is returned when a checksum uses an unknown algorithm or encoding.
	ErrUnsupportedChecksum = zerr.New("unsupported checksum format")

	// ErrArtifactUnavailable is returned when a mirror answers with a non-200 status.
	ErrArtifactUnavailable = zerr.New("artifact not available at mirror")

	// ErrFetchFailed is returned when a mirror cannot be reached or the transfer fails.
	ErrFetchFailed = zerr.New("failed to fetch artifact")

	// ErrNoMirrors is returned when an artifact has no mirror to download from.
	ErrNoMirrors = zerr.New("artifact has no mirrors")

	// ErrArtifactWriteFailed is returned when a downloaded artifact cannot be written to disk.
	ErrArtifactWriteFailed = zerr.New("failed to write artifact")

	// ErrResolutionFailed is returned when a resolution run is aborted.
	ErrResolutionFailed = zerr.New("resolution failed")

	// ErrNoTargetsSpecified is returned when a resolve run has no identifiers to resolve.
	ErrNoTargetsSpecified = zerr.New("no packages specified")

	// ErrNoPlatformVersion is returned when a resolve run has no target platform version.
	ErrNoPlatformVersion = zerr.New("no target platform version specified")

	// ErrCatalogReadFailed is returned when the catalog file cannot be read.
	ErrCatalogReadFailed = zerr.New("failed to read catalog")

	// ErrCatalogParseFailed is returned when the catalog file cannot be parsed.
	ErrCatalogParseFailed = zerr.New("failed to parse catalog")

	// ErrCatalogMarshalFailed is returned when the catalog cannot be encoded.
	ErrCatalogMarshalFailed = zerr.New("failed to encode catalog")

	// ErrCatalogWriteFailed is returned when the catalog file cannot be written.
	ErrCatalogWriteFailed = zerr.New("failed to write catalog")

	// ErrCatalogNotCanonical is returned by a check run when the catalog file is not in canonical form.
	ErrCatalogNotCanonical = zerr.New("catalog is not in canonical form")

	// ErrConfigReadFailed is returned when the profile file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the profile file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrArchiveOpenFailed is returned when a package archive cannot be opened.
	ErrArchiveOpenFailed = zerr.New("failed to open package archive")

	// ErrMetadataNotFound is returned when a package archive carries no recognizable metadata.
	ErrMetadataNotFound = zerr.New("no package metadata found in archive")

	// ErrMetadataParseFailed is returned when embedded package metadata is malformed.
	ErrMetadataParseFailed = zerr.New("failed to parse package metadata")

	// ErrMirrorRequired is returned when an artifact is added to the catalog without a mirror URL.
	ErrMirrorRequired = zerr.New("a mirror URL is required")
)
