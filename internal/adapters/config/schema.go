package config

// Profilefile represents the structure of the modpack.yaml profile file.
type Profilefile struct {
	Catalog         string         `yaml:"catalog"`
	PlatformVersion string         `yaml:"platform_version"`
	DownloadDir     string         `yaml:"download_dir"`
	Ignore          []string       `yaml:"ignore"`
	Mods            []string       `yaml:"mods"`
	Unknown         map[string]any `yaml:",inline"`
}
