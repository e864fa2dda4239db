package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"go.trai.ch/modpack/internal/core/domain"
)

// recordDTO is the on-disk shape of a catalog record. Besides the canonical keys it
// accepts the legacy spelling used by older index files (modid, curseforge_id,
// downloads, mcversions, md5). Unknown keys are ignored and optional values of the
// wrong JSON type are dropped instead of failing the whole catalog.
type recordDTO struct {
	Name         flexString    `json:"name"`
	Description  flexString    `json:"description"`
	Identifier   flexString    `json:"identifier"`
	ModID        flexString    `json:"modid"`
	ExternalID   flexString    `json:"external_id"`
	CurseForgeID flexString    `json:"curseforge_id"`
	URLs         flexURLs      `json:"urls"`
	Artifacts    flexArtifacts `json:"artifacts"`
	Downloads    flexArtifacts `json:"downloads"`
}

type artifactDTO struct {
	Version          flexString  `json:"version"`
	PlatformVersions flexStrings `json:"platform_versions"`
	MCVersions       flexStrings `json:"mcversions"`
	Checksum         flexString  `json:"checksum"`
	MD5              flexString  `json:"md5"`
	Dependencies     flexStrings `json:"dependencies"`
	Mirrors          flexStrings `json:"mirrors"`
}

// toDomain converts the record and reports every malformed value it dropped.
func (r *recordDTO) toDomain(position int) (domain.CatalogRecord, []string) {
	record := domain.CatalogRecord{
		Name:        r.Name.Value,
		Description: r.Description.Value,
		Identifier:  firstNonEmpty(r.Identifier.Value, r.ModID.Value),
		ExternalID:  firstNonEmpty(r.ExternalID.Value, r.CurseForgeID.Value),
		URLs:        r.URLs.Values,
	}

	var dropped []string
	for _, f := range []struct {
		key string
		v   flexString
	}{
		{"name", r.Name},
		{"description", r.Description},
		{"identifier", r.Identifier},
		{"modid", r.ModID},
		{"external_id", r.ExternalID},
		{"curseforge_id", r.CurseForgeID},
	} {
		if f.v.Invalid {
			dropped = append(dropped, f.key)
		}
	}
	if r.URLs.Invalid {
		dropped = append(dropped, "urls")
	}
	for _, key := range r.URLs.Dropped {
		dropped = append(dropped, "urls."+key)
	}

	artifacts, key := r.Artifacts, "artifacts"
	if len(artifacts.Values) == 0 && !artifacts.Invalid && artifacts.Dropped == 0 {
		artifacts, key = r.Downloads, "downloads"
	}
	if artifacts.Invalid {
		dropped = append(dropped, key)
	}
	for i := 0; i < artifacts.Dropped; i++ {
		dropped = append(dropped, key+" entry")
	}
	if len(artifacts.Values) > 0 {
		record.Artifacts = make([]domain.Artifact, len(artifacts.Values))
		for i := range artifacts.Values {
			var fields []string
			record.Artifacts[i], fields = artifacts.Values[i].toDomain()
			for _, f := range fields {
				dropped = append(dropped, fmt.Sprintf("%s[%d].%s", key, i, f))
			}
		}
	}

	if len(dropped) == 0 {
		return record, nil
	}
	warnings := make([]string, len(dropped))
	for i, field := range dropped {
		warnings[i] = fmt.Sprintf("ignoring malformed %s in record %s", field, describe(&record, position))
	}
	return record, warnings
}

func (a *artifactDTO) toDomain() (domain.Artifact, []string) {
	platforms := a.PlatformVersions
	if len(platforms.Values) == 0 {
		platforms = a.MCVersions
	}

	var dropped []string
	for _, f := range []struct {
		key string
		v   flexString
	}{
		{"version", a.Version},
		{"checksum", a.Checksum},
		{"md5", a.MD5},
	} {
		if f.v.Invalid {
			dropped = append(dropped, f.key)
		}
	}
	for _, f := range []struct {
		key string
		v   flexStrings
	}{
		{"platform_versions", a.PlatformVersions},
		{"mcversions", a.MCVersions},
		{"dependencies", a.Dependencies},
		{"mirrors", a.Mirrors},
	} {
		if f.v.Dropped > 0 {
			dropped = append(dropped, f.key)
		}
	}

	return domain.Artifact{
		Version:          a.Version.Value,
		PlatformVersions: platforms.Values,
		Checksum:         firstNonEmpty(a.Checksum.Value, a.MD5.Value),
		Dependencies:     a.Dependencies.Values,
		Mirrors:          a.Mirrors.Values,
	}, dropped
}

func describe(r *domain.CatalogRecord, position int) string {
	if r.Identifier != "" {
		return fmt.Sprintf("%d (%s)", position, r.Identifier)
	}
	return fmt.Sprint(position)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func isNull(data []byte) bool {
	return bytes.Equal(data, []byte("null"))
}

// flexString decodes a JSON string, number or null. Registry ids in older catalogs
// are numbers; versions sometimes are too. Any other JSON value leaves the string
// empty and sets Invalid.
type flexString struct {
	Value   string
	Invalid bool
}

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*s = flexString{}
	if isNull(data) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &s.Value)
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		s.Invalid = true
		return nil
	}
	s.Value = n.String()
	return nil
}

// flexStrings decodes either a JSON array or a single scalar. Entries that are not
// scalars are skipped and counted in Dropped.
type flexStrings struct {
	Values  []string
	Dropped int
}

func (s *flexStrings) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*s = flexStrings{}
	if len(data) > 0 && data[0] == '[' {
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		for _, item := range raw {
			var v flexString
			if err := v.UnmarshalJSON(item); err != nil {
				return err
			}
			if v.Invalid {
				s.Dropped++
				continue
			}
			s.Values = append(s.Values, v.Value)
		}
		return nil
	}

	var single flexString
	if err := single.UnmarshalJSON(data); err != nil {
		return err
	}
	switch {
	case single.Invalid:
		s.Dropped = 1
	case single.Value != "":
		s.Values = []string{single.Value}
	}
	return nil
}

// flexURLs decodes the urls object keeping only string values. Keys with other
// values are listed in Dropped; a urls value that is not an object sets Invalid.
type flexURLs struct {
	Values  map[string]string
	Dropped []string
	Invalid bool
}

func (u *flexURLs) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*u = flexURLs{}
	if isNull(data) {
		return nil
	}
	if len(data) == 0 || data[0] != '{' {
		u.Invalid = true
		return nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for key, value := range raw {
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			u.Dropped = append(u.Dropped, key)
			continue
		}
		if u.Values == nil {
			u.Values = make(map[string]string, len(raw))
		}
		u.Values[key] = s
	}
	slices.Sort(u.Dropped)
	return nil
}

// flexArtifacts decodes an artifact list. Entries that are not objects are counted in
// Dropped; a value that is not an array sets Invalid.
type flexArtifacts struct {
	Values  []artifactDTO
	Dropped int
	Invalid bool
}

func (a *flexArtifacts) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*a = flexArtifacts{}
	if isNull(data) {
		return nil
	}
	if len(data) == 0 || data[0] != '[' {
		a.Invalid = true
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, item := range raw {
		item = bytes.TrimSpace(item)
		if len(item) == 0 || item[0] != '{' {
			a.Dropped++
			continue
		}
		var dto artifactDTO
		if err := json.Unmarshal(item, &dto); err != nil {
			return err
		}
		a.Values = append(a.Values, dto)
	}
	return nil
}
