// Package archive reads package metadata embedded in jar/zip archives.
package archive

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/klauspost/compress/zip"
	"github.com/tidwall/jsonc"
	"go.trai.ch/modpack/internal/core/domain"
	"go.trai.ch/modpack/internal/core/ports"
	"go.trai.ch/zerr"
)

// MetadataFile is the name of the metadata entry inside a package archive.
const MetadataFile = "mcmod.info"

// dependencyAliases maps legacy dependency names to catalog identifiers.
var dependencyAliases = map[string]string{
	"mod_minecraftforge": "forge",
	"forge":              "forge",
}

var _ ports.MetadataExtractor = (*Extractor)(nil)

// Extractor implements ports.MetadataExtractor for mcmod.info metadata.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract opens the archive at path and converts its mcmod.info into catalog records.
func (e *Extractor) Extract(path string) ([]domain.CatalogRecord, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrArchiveOpenFailed.Error()), "path", path)
	}
	defer func() {
		_ = r.Close()
	}()

	var entry *zip.File
	for _, f := range r.File {
		if f.Name == MetadataFile {
			entry = f
			break
		}
	}
	if entry == nil {
		return nil, zerr.With(domain.ErrMetadataNotFound, "path", path)
	}

	rc, err := entry.Open()
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrArchiveOpenFailed.Error()), "path", path)
	}
	defer func() {
		_ = rc.Close()
	}()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrArchiveOpenFailed.Error()), "path", path)
	}

	records, err := Parse(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	if len(records) == 0 {
		return nil, zerr.With(domain.ErrMetadataNotFound, "path", path)
	}
	return records, nil
}

// modInfo is one entry of an mcmod.info file. encoding/json matches keys
// case-insensitively, which covers both modid and modId.
type modInfo struct {
	ModID        string          `json:"modid"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Version      json.RawMessage `json:"version"`
	MCVersion    json.RawMessage `json:"mcversion"`
	URL          string          `json:"url"`
	RequiredMods []string        `json:"requiredMods"`
	Dependencies []string        `json:"dependencies"`
}

// modList is the wrapped form used by newer mcmod.info files.
type modList struct {
	ModList []modInfo `json:"modlist"`
}

// Parse converts raw mcmod.info content into catalog records.
// Raw line breaks inside strings, comments and trailing commas are tolerated, and
// both the bare array and the {"modList": [...]} wrapper are accepted.
func Parse(data []byte) ([]domain.CatalogRecord, error) {
	data = jsonc.ToJSON(data)
	data = bytes.ReplaceAll(data, []byte("\r"), nil)
	data = bytes.ReplaceAll(data, []byte("\n"), nil)
	data = bytes.TrimSpace(data)

	var mods []modInfo
	switch {
	case bytes.HasPrefix(data, []byte("[")):
		if err := json.Unmarshal(data, &mods); err != nil {
			return nil, zerr.Wrap(err, domain.ErrMetadataParseFailed.Error())
		}
	case bytes.HasPrefix(data, []byte("{")):
		var wrapped modList
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return nil, zerr.Wrap(err, domain.ErrMetadataParseFailed.Error())
		}
		mods = wrapped.ModList
	default:
		return nil, domain.ErrMetadataParseFailed
	}

	records := make([]domain.CatalogRecord, 0, len(mods))
	for i := range mods {
		records = append(records, mods[i].toRecord())
	}
	return records, nil
}

func (m *modInfo) toRecord() domain.CatalogRecord {
	record := domain.CatalogRecord{
		Name:        m.Name,
		Description: m.Description,
		Identifier:  m.ModID,
	}
	if m.URL != "" {
		record.URLs = map[string]string{"homepage": m.URL}
	}

	artifact := domain.Artifact{
		Version:      scalar(m.Version),
		Dependencies: dependencies(m.ModID, m.RequiredMods, m.Dependencies),
	}
	if mc := scalar(m.MCVersion); mc != "" {
		artifact.PlatformVersions = []string{mc}
	}
	record.Artifacts = []domain.Artifact{artifact}
	return record
}

// scalar renders a JSON string or number as a string.
func scalar(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// dependencies merges required mods and declared dependencies in order, dropping
// version ranges ("forge@[10.13,)"), duplicates and self references.
func dependencies(self string, lists ...[]string) []string {
	seen := map[string]struct{}{strings.ToLower(self): {}}
	var out []string
	for _, list := range lists {
		for _, dep := range list {
			name, _, _ := strings.Cut(dep, "@")
			name = strings.TrimSpace(name)
			if alias, ok := dependencyAliases[strings.ToLower(name)]; ok {
				name = alias
			}
			key := strings.ToLower(name)
			if _, dup := seen[key]; dup || name == "" {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, name)
		}
	}
	return out
}
