package archive_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/modpack/internal/adapters/archive"
	"go.trai.ch/modpack/internal/core/domain"
)

// writeJar creates a zip archive holding the given entries.
func writeJar(t *testing.T, entries map[string]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "mod.jar")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck // Best effort close in test

	w := zip.NewWriter(f)
	for name, content := range entries {
		entry, err := w.Create(name)
		require.NoError(t, err)
		_, err = entry.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return path
}

func TestExtractor_Extract(t *testing.T) {
	path := writeJar(t, map[string]string{
		"META-INF/MANIFEST.MF": "Manifest-Version: 1.0\n",
		archive.MetadataFile: `[
  {
    "modid": "examplemod",
    "name": "Example Mod",
    "description": "Adds
things",
    "version": "1.0",
    "mcversion": "1.12.2",
    "url": "https://example.org",
    "authorList": ["someone"],
    "requiredMods": ["Forge@[14.23,)", "jei"],
    "dependencies": ["jei", "baubles"]
  }
]`,
	})

	got, err := archive.NewExtractor().Extract(path)
	require.NoError(t, err)

	want := []domain.CatalogRecord{
		{
			Name:        "Example Mod",
			Description: "Addsthings",
			Identifier:  "examplemod",
			URLs:        map[string]string{"homepage": "https://example.org"},
			Artifacts: []domain.Artifact{
				{
					Version:          "1.0",
					PlatformVersions: []string{"1.12.2"},
					Dependencies:     []string{"forge", "jei", "baubles"},
				},
			},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_ModListWrapper(t *testing.T) {
	got, err := archive.Parse([]byte(`{
  "modListVersion": 2,
  "modList": [
    {"modId": "journeymap", "mcversion": "1.7.10", "requiredMods": ["mod_MinecraftForge"]},
    {"modId": "journeymap-api", "version": 1.2}
  ]
}`))
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "journeymap", got[0].Identifier)
	assert.Equal(t, []string{"1.7.10"}, got[0].Artifacts[0].PlatformVersions)
	assert.Equal(t, []string{"forge"}, got[0].Artifacts[0].Dependencies)

	assert.Equal(t, "journeymap-api", got[1].Identifier)
	assert.Equal(t, "1.2", got[1].Artifacts[0].Version)
	assert.Empty(t, got[1].Artifacts[0].PlatformVersions)
}

func TestParse_ToleratesComments(t *testing.T) {
	got, err := archive.Parse([]byte(`[
  // generated by the build
  {"modid": "a", "dependencies": ["a", "b",],},
]`))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"b"}, got[0].Artifacts[0].Dependencies)
}

func TestParse_Malformed(t *testing.T) {
	for name, input := range map[string]string{
		"garbage":     "not json",
		"broken list": `[{"modid": }]`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := archive.Parse([]byte(input))
			require.Error(t, err)
			assert.ErrorContains(t, err, domain.ErrMetadataParseFailed.Error())
		})
	}
}

func TestExtractor_Extract_NoMetadata(t *testing.T) {
	path := writeJar(t, map[string]string{"a.class": "cafebabe"})

	_, err := archive.NewExtractor().Extract(path)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrMetadataNotFound.Error())
}

func TestExtractor_Extract_EmptyList(t *testing.T) {
	path := writeJar(t, map[string]string{archive.MetadataFile: "[]"})

	_, err := archive.NewExtractor().Extract(path)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrMetadataNotFound.Error())
}

func TestExtractor_Extract_NotAnArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.jar")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0o600))

	_, err := archive.NewExtractor().Extract(path)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrArchiveOpenFailed.Error())
}
