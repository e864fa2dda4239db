package domain

import (
	"slices"
	"strings"
)

// MergeResult reports how an incoming record was folded into a catalog.
type MergeResult int

const (
	// MergeAddedRecord means the package was new to the catalog.
	MergeAddedRecord MergeResult = iota
	// MergeAddedArtifact means the package existed and gained a new artifact.
	MergeAddedArtifact
	// MergeAddedMirror means an artifact with the same checksum existed and gained mirrors.
	MergeAddedMirror
	// MergeUnchanged means the catalog already held the artifact and its mirrors.
	MergeUnchanged
)

// Merge folds incoming into records and returns the updated slice.
//
// A record with the same identifier (ignoring case) receives incoming's artifacts;
// missing display fields and urls are filled in, existing ones are kept. An artifact
// whose checksum matches an existing one only contributes mirrors and platform
// versions the existing artifact lacks. The result is not normalized.
func Merge(records []CatalogRecord, incoming CatalogRecord) ([]CatalogRecord, MergeResult) {
	i := slices.IndexFunc(records, func(r CatalogRecord) bool {
		return strings.EqualFold(r.Identifier, incoming.Identifier)
	})
	if i < 0 {
		return append(records, cloneRecord(&incoming)), MergeAddedRecord
	}

	existing := cloneRecord(&records[i])
	if existing.Name == "" {
		existing.Name = incoming.Name
	}
	if existing.Description == "" {
		existing.Description = incoming.Description
	}
	if existing.ExternalID == "" {
		existing.ExternalID = incoming.ExternalID
	}
	for k, v := range incoming.URLs {
		if _, ok := existing.URLs[k]; ok {
			continue
		}
		if existing.URLs == nil {
			existing.URLs = make(map[string]string, len(incoming.URLs))
		}
		existing.URLs[k] = v
	}

	result := MergeUnchanged
	for _, a := range incoming.Artifacts {
		j := slices.IndexFunc(existing.Artifacts, func(e Artifact) bool {
			return e.Checksum != "" && strings.EqualFold(e.Checksum, a.Checksum)
		})
		if j < 0 {
			existing.Artifacts = append(existing.Artifacts, cloneArtifact(a))
			result = min(result, MergeAddedArtifact)
			continue
		}

		target := &existing.Artifacts[j]
		before := len(target.Mirrors)
		target.Mirrors = appendMissing(target.Mirrors, a.Mirrors)
		if len(target.Mirrors) != before {
			result = min(result, MergeAddedMirror)
		}
		if !target.SupportsAllPlatforms() {
			target.PlatformVersions = appendMissing(target.PlatformVersions, a.PlatformVersions)
		}
		if target.Version == "" {
			target.Version = a.Version
		}
	}

	out := slices.Clone(records)
	out[i] = existing
	return out, result
}

func appendMissing(dst, values []string) []string {
	for _, v := range values {
		if !slices.Contains(dst, v) {
			dst = append(dst, v)
		}
	}
	return dst
}

func cloneArtifact(a Artifact) Artifact {
	a.PlatformVersions = slices.Clone(a.PlatformVersions)
	a.Dependencies = slices.Clone(a.Dependencies)
	a.Mirrors = slices.Clone(a.Mirrors)
	return a
}

// PlatformVersions returns every platform version named by an artifact in records,
// without duplicates, in first-seen order.
func PlatformVersions(records []CatalogRecord) []string {
	seen := make(map[string]struct{})
	var out []string
	for i := range records {
		for _, a := range records[i].Artifacts {
			for _, v := range a.PlatformVersions {
				if _, ok := seen[v]; ok {
					continue
				}
				seen[v] = struct{}{}
				out = append(out, v)
			}
		}
	}
	return out
}

// ListsPlatformVersion reports whether any artifact of r names v explicitly.
// Wildcard artifacts do not count.
func (r *CatalogRecord) ListsPlatformVersion(v string) bool {
	for i := range r.Artifacts {
		if slices.Contains(r.Artifacts[i].PlatformVersions, v) {
			return true
		}
	}
	return false
}
