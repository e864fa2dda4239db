package domain

const (
	// DefaultCatalogFile is the catalog file used when none is configured.
	DefaultCatalogFile = "index.json"

	// DefaultDownloadDir is the download root used when none is configured.
	DefaultDownloadDir = "downloads"

	// DefaultConfigFile is the name of the optional profile file.
	DefaultConfigFile = "modpack.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultIgnore returns the identifiers ignored when no ignore list is configured.
// The platform loader is never distributed through the catalog.
func DefaultIgnore() []string {
	return []string{"forge"}
}
