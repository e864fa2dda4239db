package domain

// Profile holds the defaults for a resolve run, usually loaded from modpack.yaml.
type Profile struct {
	// Catalog is the path of the canonical catalog file.
	Catalog string

	// PlatformVersion is the target platform version.
	PlatformVersion string

	// DownloadDir is the download root; artifacts land in DownloadDir/PlatformVersion.
	DownloadDir string

	// Ignore lists identifiers that are never fetched.
	Ignore []string

	// Packages lists identifiers resolved when none are given on the command line.
	Packages []string
}

// DefaultProfile returns the profile used when no profile file exists.
func DefaultProfile() *Profile {
	return &Profile{
		Catalog:     DefaultCatalogFile,
		DownloadDir: DefaultDownloadDir,
		Ignore:      DefaultIgnore(),
	}
}
