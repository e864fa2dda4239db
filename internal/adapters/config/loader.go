// Package config provides the profile loader for modpack.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/modpack/internal/core/domain"
	"go.trai.ch/modpack/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new configuration loader.
func NewLoader(log ports.Logger) *Loader {
	return &Loader{Logger: log}
}

// Load reads the profile at path. An empty path means modpack.yaml in the working
// directory. A missing file yields the default profile.
//
// Relative catalog and download paths are resolved against the profile's directory.
func (l *Loader) Load(path string) (*domain.Profile, error) {
	if path == "" {
		path = domain.DefaultConfigFile
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.DefaultProfile(), nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	var file Profilefile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}

	if len(file.Unknown) > 0 && l.Logger != nil {
		keys := make([]string, 0, len(file.Unknown))
		for k := range file.Unknown {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		l.Logger.Warn("ignoring unknown keys in " + path + ": " + strings.Join(keys, ", "))
	}

	return file.toProfile(filepath.Dir(path)), nil
}

func (f *Profilefile) toProfile(root string) *domain.Profile {
	profile := domain.DefaultProfile()

	if catalog := strings.TrimSpace(f.Catalog); catalog != "" {
		profile.Catalog = resolvePath(root, catalog)
	} else {
		profile.Catalog = resolvePath(root, profile.Catalog)
	}
	if dir := strings.TrimSpace(f.DownloadDir); dir != "" {
		profile.DownloadDir = resolvePath(root, dir)
	} else {
		profile.DownloadDir = resolvePath(root, profile.DownloadDir)
	}

	profile.PlatformVersion = strings.TrimSpace(f.PlatformVersion)
	if f.Ignore != nil {
		profile.Ignore = canonicalizeStrings(f.Ignore)
	}
	profile.Packages = canonicalizeStrings(f.Mods)
	return profile
}

func resolvePath(root, path string) string {
	if filepath.IsAbs(path) || root == "." {
		return filepath.Clean(path)
	}
	return filepath.Join(root, path)
}

// canonicalizeStrings trims entries and drops empty ones, keeping order.
func canonicalizeStrings(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
