package ports

// ChecksumVerifier computes and checks content digests.
//
//go:generate mockgen -source=verifier.go -destination=mocks/mock_verifier.go -package=mocks
type ChecksumVerifier interface {
	// Verify checks data against the declared checksum.
	// It returns domain.ErrChecksumMismatch when the digests differ.
	Verify(checksum string, data []byte) error

	// Compute returns the checksum of data using the named algorithm, in catalog notation.
	Compute(algorithm string, data []byte) (string, error)
}
