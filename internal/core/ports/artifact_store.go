package ports

// ArtifactStore persists downloaded artifacts.
//
//go:generate mockgen -source=artifact_store.go -destination=mocks/mock_artifact_store.go -package=mocks
type ArtifactStore interface {
	// Write stores data as dir/filename, creating dir if needed, and returns the written path.
	// An existing file with the same name is replaced.
	Write(dir, filename string, data []byte) (string, error)
}
