// Package catalog implements catalog file storage.
package catalog

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/tidwall/jsonc"
	"go.trai.ch/modpack/internal/core/domain"
	"go.trai.ch/modpack/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CatalogStore = (*Store)(nil)

// Store implements ports.CatalogStore for JSON catalog files.
type Store struct {
	logger ports.Logger
}

// NewStore creates a new catalog Store. Values dropped while reading are reported
// through log.
func NewStore(log ports.Logger) *Store {
	return &Store{logger: log}
}

// Load reads the catalog records stored at path.
func (s *Store) Load(path string) ([]domain.CatalogRecord, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCatalogReadFailed.Error()), "path", path)
	}

	records, warnings, err := Decode(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	for _, w := range warnings {
		s.logger.Warn(path + ": " + w)
	}
	return records, nil
}

// Decode parses catalog file content. Comments and trailing commas are tolerated
// so hand-edited source catalogs can be read. Optional values of the wrong type are
// dropped and described in the returned warnings; only a file that is not a JSON
// array of objects fails.
func Decode(data []byte) ([]domain.CatalogRecord, []string, error) {
	var dtos []recordDTO
	if err := json.Unmarshal(jsonc.ToJSON(data), &dtos); err != nil {
		return nil, nil, zerr.Wrap(err, domain.ErrCatalogParseFailed.Error())
	}

	var warnings []string
	records := make([]domain.CatalogRecord, len(dtos))
	for i := range dtos {
		var dropped []string
		records[i], dropped = dtos[i].toDomain(i)
		warnings = append(warnings, dropped...)
	}
	return records, warnings, nil
}

// Encode renders records as a 2-space indented JSON array with a trailing newline.
// Keys follow the field order of domain.CatalogRecord and empty values are omitted.
func (s *Store) Encode(records []domain.CatalogRecord) ([]byte, error) {
	if records == nil {
		records = []domain.CatalogRecord{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, zerr.Wrap(err, domain.ErrCatalogMarshalFailed.Error())
	}
	return buf.Bytes(), nil
}

// Save writes records in canonical form to path.
func (s *Store) Save(path string, records []domain.CatalogRecord) error {
	data, err := s.Encode(records)
	if err != nil {
		return err
	}

	if err := atomicWriteFile(path, data); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCatalogWriteFailed.Error()), "path", path)
	}
	return nil
}

// IsCanonical compares the fingerprint of the file at path with the fingerprint of
// the canonical encoding of records.
func (s *Store) IsCanonical(path string, records []domain.CatalogRecord) (bool, error) {
	existing, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrCatalogReadFailed.Error()), "path", path)
	}

	canonical, err := s.Encode(records)
	if err != nil {
		return false, err
	}
	return Fingerprint(existing) == Fingerprint(canonical), nil
}

// Fingerprint returns the xxhash64 of encoded catalog content.
func Fingerprint(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// atomicWriteFile writes data to a file atomically by writing to a temp file and renaming it.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, ".catalog-*.json")
	if err != nil {
		return err
	}
	tmpName := tmpFile.Name()

	// Clean up temp file on error
	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}

	if err := tmpFile.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
