package domain

import (
	"cmp"
	"maps"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Normalized is the result of normalizing a batch of catalog records.
type Normalized struct {
	// Records are the canonical records, sorted by lowercased identifier.
	Records []CatalogRecord

	// Warnings describe non-fatal corrections applied to the input.
	Warnings []string
}

// Normalize canonicalizes raw catalog records.
//
// Records missing an identifier get their external id instead. Empty values are pruned
// at every level, artifacts without a mirror are dropped, duplicate identifiers
// (ignoring case) are rejected, records are sorted by lowercased identifier and each
// record's artifacts are sorted newest-first by primary mirror URL.
//
// The input is not modified. On error no records are returned.
func Normalize(records []CatalogRecord) (*Normalized, error) {
	out := &Normalized{
		Records: make([]CatalogRecord, 0, len(records)),
	}

	for i := range records {
		record := cloneRecord(&records[i])

		if strings.TrimSpace(record.Identifier) == "" {
			externalID := strings.TrimSpace(record.ExternalID)
			if externalID == "" {
				return nil, zerr.With(ErrMissingIdentifier, "record", describeRecord(&records[i], i))
			}
			out.Warnings = append(out.Warnings,
				"missing identifier, using external id "+externalID+" for record "+describeRecord(&records[i], i))
			record.Identifier = externalID
		}

		out.Warnings = append(out.Warnings, pruneRecord(&record)...)
		out.Records = append(out.Records, record)
	}

	seen := make(map[string]int, len(out.Records))
	for i := range out.Records {
		key := identifierKey(out.Records[i].Identifier)
		if prev, exists := seen[key]; exists {
			return nil, duplicateError(&out.Records[prev], prev, &out.Records[i], i)
		}
		seen[key] = i
	}

	slices.SortStableFunc(out.Records, func(a, b CatalogRecord) int {
		return strings.Compare(identifierKey(a.Identifier), identifierKey(b.Identifier))
	})

	for i := range out.Records {
		SortArtifacts(out.Records[i].Artifacts)
	}

	return out, nil
}

// SortArtifacts orders artifacts newest-first: descending by primary mirror URL, which
// is the catalog's proxy for recency. Checksum and version break ties so the order
// never depends on input order.
func SortArtifacts(artifacts []Artifact) {
	slices.SortStableFunc(artifacts, func(a, b Artifact) int {
		if c := strings.Compare(b.PrimaryMirror(), a.PrimaryMirror()); c != 0 {
			return c
		}
		if c := strings.Compare(a.Checksum, b.Checksum); c != 0 {
			return c
		}
		return cmp.Compare(a.Version, b.Version)
	})
}

// pruneRecord strips empty values from a record in place and returns a warning
// for every artifact that had to be dropped.
func pruneRecord(r *CatalogRecord) []string {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	r.Identifier = strings.TrimSpace(r.Identifier)
	r.ExternalID = strings.TrimSpace(r.ExternalID)
	r.URLs = pruneMap(r.URLs)

	var warnings []string
	artifacts := r.Artifacts[:0]
	for i := range r.Artifacts {
		a := r.Artifacts[i]
		a.Version = strings.TrimSpace(a.Version)
		a.Checksum = strings.TrimSpace(a.Checksum)
		a.PlatformVersions = dedupe(pruneList(a.PlatformVersions))
		a.Dependencies = pruneList(a.Dependencies)
		a.Mirrors = pruneList(a.Mirrors)

		if len(a.Mirrors) == 0 {
			warnings = append(warnings, "dropping artifact without mirrors from "+r.Identifier+describeVersion(&a))
			continue
		}
		artifacts = append(artifacts, a)
	}
	if len(artifacts) == 0 {
		artifacts = nil
	}
	r.Artifacts = artifacts

	return warnings
}

func describeVersion(a *Artifact) string {
	if a.Version == "" {
		return ""
	}
	return " (version " + a.Version + ")"
}

func pruneList(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func pruneMap(values map[string]string) map[string]string {
	var out map[string]string
	for k, v := range values {
		if v = strings.TrimSpace(v); k == "" || v == "" {
			continue
		}
		if out == nil {
			out = make(map[string]string, len(values))
		}
		out[k] = v
	}
	return out
}

// dedupe removes repeated values, keeping the first occurrence.
func dedupe(values []string) []string {
	if len(values) < 2 {
		return values
	}
	seen := make(map[string]struct{}, len(values))
	out := values[:0]
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func cloneRecord(r *CatalogRecord) CatalogRecord {
	out := *r
	out.URLs = maps.Clone(r.URLs)
	if r.Artifacts != nil {
		out.Artifacts = make([]Artifact, len(r.Artifacts))
		for i, a := range r.Artifacts {
			a.PlatformVersions = slices.Clone(a.PlatformVersions)
			a.Dependencies = slices.Clone(a.Dependencies)
			a.Mirrors = slices.Clone(a.Mirrors)
			out.Artifacts[i] = a
		}
	}
	return out
}
