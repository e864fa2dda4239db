package fs_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/modpack/internal/adapters/fs"
	"go.trai.ch/modpack/internal/core/domain"
)

func TestArtifactStore_Write(t *testing.T) {
	mem := afero.NewMemMapFs()
	store := fs.NewArtifactStore(mem)

	dir := filepath.Join("downloads", "1.12.2")
	path, err := store.Write(dir, "a-1.0.jar", []byte("jar"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "a-1.0.jar"), path)

	got, err := afero.ReadFile(mem, path)
	require.NoError(t, err)
	assert.Equal(t, []byte("jar"), got)

	entries, err := afero.ReadDir(mem, dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestArtifactStore_Write_Overwrites(t *testing.T) {
	mem := afero.NewMemMapFs()
	store := fs.NewArtifactStore(mem)

	_, err := store.Write("downloads", "a.jar", []byte("old"))
	require.NoError(t, err)
	path, err := store.Write("downloads", "a.jar", []byte("new"))
	require.NoError(t, err)

	got, err := afero.ReadFile(mem, path)
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), got)
}

func TestArtifactStore_Write_OnDisk(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "downloads", "1.7.10")
	store := fs.NewArtifactStore(afero.NewOsFs())

	path, err := store.Write(dir, "b.jar", []byte("b"))
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(domain.FilePerm), info.Mode().Perm())
}

func TestArtifactStore_Write_Failure(t *testing.T) {
	store := fs.NewArtifactStore(failingFs{Fs: afero.NewMemMapFs()})

	_, err := store.Write("downloads", "a.jar", []byte("a"))
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrArtifactWriteFailed.Error())
}

// failingFs refuses to create directories.
type failingFs struct {
	afero.Fs
}

func (failingFs) MkdirAll(string, os.FileMode) error {
	return errors.New("read-only file system")
}
