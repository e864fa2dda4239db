// Package domain contains the core domain models and business logic for the package catalog
// and dependency resolution.
package domain

import (
	"slices"
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// CatalogRecord describes one package and the downloadable builds published for it.
//
// Field order is the canonical key order of the catalog file. Empty values are
// absent: the json tags omit them so an encoded record only carries populated fields.
type CatalogRecord struct {
	Name        string            `json:"name,omitempty"`
	Description string            `json:"description,omitempty"`
	Identifier  string            `json:"identifier,omitempty"`
	ExternalID  string            `json:"external_id,omitempty"`
	URLs        map[string]string `json:"urls,omitempty"`
	Artifacts   []Artifact        `json:"artifacts,omitempty"`
}

// Artifact is one downloadable build of a package.
type Artifact struct {
	// Version is the package's own display version.
	Version string `json:"version,omitempty"`

	// PlatformVersions lists the target-platform versions the build supports.
	// An empty list is a wildcard: the build supports every platform version.
	PlatformVersions []string `json:"platform_versions,omitempty"`

	// Checksum is the hex digest used to verify a completed download.
	Checksum string `json:"checksum,omitempty"`

	// Dependencies are identifiers of packages required at install time, in declared order.
	Dependencies []string `json:"dependencies,omitempty"`

	// Mirrors are download URLs in preference order. Mirrors[0] is the primary
	// and doubles as the recency sort key.
	Mirrors []string `json:"mirrors,omitempty"`
}

// SupportsAllPlatforms reports whether the artifact declares no platform versions.
func (a *Artifact) SupportsAllPlatforms() bool {
	return len(a.PlatformVersions) == 0
}

// Supports reports whether the artifact is usable for the given platform version.
// An empty version applies no filter.
func (a *Artifact) Supports(platformVersion string) bool {
	if platformVersion == "" || a.SupportsAllPlatforms() {
		return true
	}
	return slices.Contains(a.PlatformVersions, platformVersion)
}

// PrimaryMirror returns the first mirror URL, or an empty string if there is none.
func (a *Artifact) PrimaryMirror() string {
	if len(a.Mirrors) == 0 {
		return ""
	}
	return a.Mirrors[0]
}

// Catalog is an immutable, case-insensitively indexed view over catalog records.
type Catalog struct {
	records []CatalogRecord
	index   map[string]int
}

// NewCatalog indexes the given records by lowercased identifier.
// It returns ErrDuplicateIdentifier if two records share an identifier, ignoring case,
// and ErrMissingIdentifier if a record has none.
func NewCatalog(records []CatalogRecord) (*Catalog, error) {
	c := &Catalog{
		records: records,
		index:   make(map[string]int, len(records)),
	}

	for i := range records {
		id := records[i].Identifier
		if id == "" {
			return nil, zerr.With(ErrMissingIdentifier, "record", describeRecord(&records[i], i))
		}

		key := identifierKey(id)
		if prev, exists := c.index[key]; exists {
			return nil, duplicateError(&records[prev], prev, &records[i], i)
		}
		c.index[key] = i
	}

	return c, nil
}

// Records returns the catalog records in catalog order.
func (c *Catalog) Records() []CatalogRecord {
	return c.records
}

// Len returns the number of records in the catalog.
func (c *Catalog) Len() int {
	return len(c.records)
}

// Lookup finds a record by identifier, ignoring case.
func (c *Catalog) Lookup(identifier string) (*CatalogRecord, bool) {
	i, ok := c.index[identifierKey(identifier)]
	if !ok {
		return nil, false
	}
	return &c.records[i], true
}

// identifierKey is the comparison key for identifiers.
func identifierKey(identifier string) string {
	return strings.ToLower(identifier)
}

// describeRecord renders a short human-readable reference to a record for error metadata.
func describeRecord(r *CatalogRecord, position int) string {
	var b strings.Builder
	b.WriteString("#")
	b.WriteString(strconv.Itoa(position))
	if r.Identifier != "" {
		b.WriteString(" identifier=")
		b.WriteString(r.Identifier)
	}
	if r.ExternalID != "" {
		b.WriteString(" external_id=")
		b.WriteString(r.ExternalID)
	}
	if r.Name != "" {
		b.WriteString(" name=")
		b.WriteString(r.Name)
	}
	return b.String()
}

func duplicateError(first *CatalogRecord, firstPos int, second *CatalogRecord, secondPos int) error {
	err := zerr.With(ErrDuplicateIdentifier, "identifier", second.Identifier)
	err = zerr.With(err, "first", describeRecord(first, firstPos))
	return zerr.With(err, "second", describeRecord(second, secondPos))
}
