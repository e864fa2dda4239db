// Package fs provides file system adapters for storing downloaded artifacts.
package fs

import (
	"path/filepath"

	"github.com/spf13/afero"
	"go.trai.ch/modpack/internal/core/domain"
	"go.trai.ch/modpack/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ArtifactStore = (*ArtifactStore)(nil)

// ArtifactStore implements ports.ArtifactStore on top of an afero file system.
type ArtifactStore struct {
	fs afero.Fs
}

// NewArtifactStore creates an ArtifactStore writing to fs.
func NewArtifactStore(fs afero.Fs) *ArtifactStore {
	return &ArtifactStore{fs: fs}
}

// Write stores data as dir/filename. The directory is created on demand and the file
// is replaced atomically, so a partially written artifact is never observable.
func (s *ArtifactStore) Write(dir, filename string, data []byte) (string, error) {
	path := filepath.Join(dir, filename)

	if err := s.fs.MkdirAll(dir, domain.DirPerm); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrArtifactWriteFailed.Error()), "path", dir)
	}

	if err := s.atomicWriteFile(path, data); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrArtifactWriteFailed.Error()), "path", path)
	}
	return path, nil
}

// atomicWriteFile writes data to a file atomically by writing to a temp file and renaming it.
func (s *ArtifactStore) atomicWriteFile(path string, data []byte) error {
	tmpFile, err := afero.TempFile(s.fs, filepath.Dir(path), ".download-*")
	if err != nil {
		return err
	}
	tmpName := tmpFile.Name()

	// Clean up temp file on error
	defer func() {
		if exists, _ := afero.Exists(s.fs, tmpName); exists {
			_ = s.fs.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}

	if err := tmpFile.Close(); err != nil {
		return err
	}

	if err := s.fs.Chmod(tmpName, domain.FilePerm); err != nil {
		return err
	}

	return s.fs.Rename(tmpName, path)
}
