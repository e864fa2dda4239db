package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/modpack/internal/adapters/catalog"
	"go.trai.ch/modpack/internal/core/domain"
	"go.trai.ch/modpack/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// newStore returns a store whose warnings are collected in the returned slice.
func newStore(t *testing.T) (*catalog.Store, *[]string) {
	t.Helper()
	var warnings []string
	log := mocks.NewMockLogger(gomock.NewController(t))
	log.EXPECT().Warn(gomock.Any()).Do(func(msg string) {
		warnings = append(warnings, msg)
	}).AnyTimes()
	return catalog.NewStore(log), &warnings
}

func sampleRecords() []domain.CatalogRecord {
	return []domain.CatalogRecord{
		{
			Name:        "Example Mod",
			Description: "Adds <things> & stuff",
			Identifier:  "examplemod",
			ExternalID:  "223794",
			URLs: map[string]string{
				"source":   "https://example.org/src",
				"homepage": "https://example.org",
			},
			Artifacts: []domain.Artifact{
				{
					Version:          "1.1",
					PlatformVersions: []string{"1.12.2"},
					Checksum:         "0cc175b9c0f1b6a831c399e269772661",
					Dependencies:     []string{"forge", "jei"},
					Mirrors:          []string{"http://host/a-1.1.jar", "http://mirror/a-1.1.jar"},
				},
				{
					Version:  "1.0",
					Checksum: "92eb5ffee6ae2fec3ad71c777531578f",
					Mirrors:  []string{"http://host/a-1.0.jar"},
				},
			},
		},
		{Identifier: "jei"},
	}
}

func TestStore_Encode_Golden(t *testing.T) {
	store, _ := newStore(t)

	data, err := store.Encode(sampleRecords())
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "canonical", data)
}

func TestStore_Encode_Empty(t *testing.T) {
	store, _ := newStore(t)

	data, err := store.Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestStore_SaveLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "index.json")
	store, _ := newStore(t)

	require.NoError(t, store.Save(path, sampleRecords()))

	got, err := store.Load(path)
	require.NoError(t, err)
	if diff := cmp.Diff(sampleRecords(), got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestStore_NormalizedEncodingIsIdempotent(t *testing.T) {
	store, _ := newStore(t)

	first, err := domain.Normalize(sampleRecords())
	require.NoError(t, err)
	firstBytes, err := store.Encode(first.Records)
	require.NoError(t, err)

	decoded, warnings, err := catalog.Decode(firstBytes)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	second, err := domain.Normalize(decoded)
	require.NoError(t, err)
	secondBytes, err := store.Encode(second.Records)
	require.NoError(t, err)

	assert.Equal(t, string(firstBytes), string(secondBytes))
	assert.Equal(t, catalog.Fingerprint(firstBytes), catalog.Fingerprint(secondBytes))
}

func TestStore_Load_LegacyKeys(t *testing.T) {
	store, warnings := newStore(t)

	got, err := store.Load(filepath.Join("testdata", "legacy_index.json"))
	require.NoError(t, err)

	want := []domain.CatalogRecord{
		{
			Name:        "Just Enough Items",
			Description: "JEI is an item and recipe viewing mod",
			Identifier:  "jei",
			ExternalID:  "238222",
			URLs:        map[string]string{"curseforge": "https://minecraft.curseforge.com/projects/jei"},
			Artifacts: []domain.Artifact{
				{
					Version:          "4.8.5.138",
					PlatformVersions: []string{"1.12.2"},
					Checksum:         "4a8a08f09d37b73795649038408b5f33",
					Dependencies:     []string{"forge"},
					Mirrors:          []string{"https://minecraft.curseforge.com/projects/jei/files/2512195/download"},
				},
			},
		},
		{
			Name:       "Numeric Only",
			ExternalID: "12345",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, *warnings)
}

func TestDecode_ToleratesComments(t *testing.T) {
	data := []byte(`[
  // hand-maintained entry
  {
    "identifier": "examplemod", /* inline */
    "artifacts": [
      {"checksum": "abc", "mirrors": ["http://host/a-1.0.jar"],},
    ],
  },
]`)

	got, _, err := catalog.Decode(data)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "examplemod", got[0].Identifier)
	assert.Equal(t, []string{"http://host/a-1.0.jar"}, got[0].Artifacts[0].Mirrors)
}

func TestDecode_SingleStringLists(t *testing.T) {
	got, _, err := catalog.Decode([]byte(`[{"identifier": "x", "artifacts": [{"platform_versions": "1.7.10", "mirrors": "http://host/x.jar", "version": 2}]}]`))
	require.NoError(t, err)
	require.Len(t, got, 1)

	a := got[0].Artifacts[0]
	assert.Equal(t, []string{"1.7.10"}, a.PlatformVersions)
	assert.Equal(t, []string{"http://host/x.jar"}, a.Mirrors)
	assert.Equal(t, "2", a.Version)
}

func TestDecode_Malformed(t *testing.T) {
	_, _, err := catalog.Decode([]byte(`{"identifier": "not-an-array"}`))
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrCatalogParseFailed.Error())
}

func TestStore_Load_Missing(t *testing.T) {
	store, _ := newStore(t)

	_, err := store.Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrCatalogReadFailed.Error())
}

func TestFingerprint_DetectsChanges(t *testing.T) {
	a := catalog.Fingerprint([]byte("[]\n"))
	b := catalog.Fingerprint([]byte("[ ]\n"))
	assert.NotEqual(t, a, b)
}

func TestStore_IsCanonical(t *testing.T) {
	store, _ := newStore(t)
	path := filepath.Join(t.TempDir(), "index.json")

	normalized, err := domain.Normalize(sampleRecords())
	require.NoError(t, err)
	require.NoError(t, store.Save(path, normalized.Records))

	ok, err := store.IsCanonical(path, normalized.Records)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, os.WriteFile(path, []byte(`[{"identifier": "jei"}, {"identifier": "examplemod"}]`), 0o600))
	ok, err = store.IsCanonical(path, normalized.Records)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = store.IsCanonical(filepath.Join(t.TempDir(), "missing.json"), nil)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrCatalogReadFailed.Error())
}

func TestDecode_DropsMalformedOptionalValues(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     domain.CatalogRecord
		warnings []string
	}{
		{
			name:     "non-string url value",
			input:    `[{"identifier": "jei", "urls": {"home": 5, "src": "https://example.org"}}]`,
			want:     domain.CatalogRecord{Identifier: "jei", URLs: map[string]string{"src": "https://example.org"}},
			warnings: []string{"ignoring malformed urls.home in record 0 (jei)"},
		},
		{
			name:     "urls is a string",
			input:    `[{"identifier": "jei", "urls": "http://x"}]`,
			want:     domain.CatalogRecord{Identifier: "jei"},
			warnings: []string{"ignoring malformed urls in record 0 (jei)"},
		},
		{
			name:     "description is an array",
			input:    `[{"identifier": "jei", "description": ["x"], "name": "JEI"}]`,
			want:     domain.CatalogRecord{Identifier: "jei", Name: "JEI"},
			warnings: []string{"ignoring malformed description in record 0 (jei)"},
		},
		{
			name:  "checksum is an object",
			input: `[{"identifier": "jei", "artifacts": [{"checksum": {"md5": "x"}, "md5": "abc", "mirrors": ["http://host/j.jar"]}]}]`,
			want: domain.CatalogRecord{Identifier: "jei", Artifacts: []domain.Artifact{
				{Checksum: "abc", Mirrors: []string{"http://host/j.jar"}},
			}},
			warnings: []string{"ignoring malformed artifacts[0].checksum in record 0 (jei)"},
		},
		{
			name:  "non-scalar list entries",
			input: `[{"identifier": "jei", "artifacts": [{"dependencies": ["forge", {"id": "x"}], "mirrors": ["http://host/j.jar"]}]}]`,
			want: domain.CatalogRecord{Identifier: "jei", Artifacts: []domain.Artifact{
				{Dependencies: []string{"forge"}, Mirrors: []string{"http://host/j.jar"}},
			}},
			warnings: []string{"ignoring malformed artifacts[0].dependencies in record 0 (jei)"},
		},
		{
			name:  "artifact entry is not an object",
			input: `[{"identifier": "jei", "artifacts": ["http://host/j.jar", {"mirrors": ["http://host/j.jar"]}]}]`,
			want: domain.CatalogRecord{Identifier: "jei", Artifacts: []domain.Artifact{
				{Mirrors: []string{"http://host/j.jar"}},
			}},
			warnings: []string{"ignoring malformed artifacts entry in record 0 (jei)"},
		},
		{
			name:     "artifacts is an object",
			input:    `[{"identifier": "jei", "artifacts": {"mirrors": []}}]`,
			want:     domain.CatalogRecord{Identifier: "jei"},
			warnings: []string{"ignoring malformed artifacts in record 0 (jei)"},
		},
		{
			name:     "identifier is a boolean",
			input:    `[{"identifier": true, "external_id": 42}]`,
			want:     domain.CatalogRecord{ExternalID: "42"},
			warnings: []string{"ignoring malformed identifier in record 0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, warnings, err := catalog.Decode([]byte(tt.input))
			require.NoError(t, err)
			require.Len(t, got, 1)
			if diff := cmp.Diff(tt.want, got[0]); diff != "" {
				t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, tt.warnings, warnings)
		})
	}
}

func TestStore_Load_WarnsAboutDroppedValues(t *testing.T) {
	store, warnings := newStore(t)
	path := filepath.Join(t.TempDir(), "index.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"identifier": "jei", "urls": {"home": 5}}]`), 0o600))

	got, err := store.Load(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].URLs)
	assert.Equal(t, []string{path + ": ignoring malformed urls.home in record 0 (jei)"}, *warnings)

	normalized, err := domain.Normalize(got)
	require.NoError(t, err)
	assert.Equal(t, "jei", normalized.Records[0].Identifier)
}
