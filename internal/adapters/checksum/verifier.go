// Package checksum implements content digest computation and verification.
package checksum

import (
	"crypto/md5"  //nolint:gosec // md5 is the catalog's legacy integrity format, not a security boundary
	"crypto/sha1" //nolint:gosec // sha1 checksums are still published by some registries
	_ "crypto/sha256"
	_ "crypto/sha512"
	"encoding/hex"
	"strings"

	"github.com/opencontainers/go-digest"
	"go.trai.ch/modpack/internal/core/domain"
	"go.trai.ch/modpack/internal/core/ports"
	"go.trai.ch/zerr"
)

// Algorithm names accepted by Compute.
const (
	MD5    = "md5"
	SHA1   = "sha1"
	SHA256 = string(digest.SHA256)
	SHA384 = string(digest.SHA384)
	SHA512 = string(digest.SHA512)
)

// DefaultAlgorithm is used when no algorithm is requested.
const DefaultAlgorithm = MD5

var _ ports.ChecksumVerifier = (*Verifier)(nil)

// Verifier implements ports.ChecksumVerifier.
//
// Checksums are either bare hex, whose algorithm is inferred from its length, or
// "algorithm:hex" digests as used by OCI registries.
type Verifier struct{}

// NewVerifier creates a new Verifier.
func NewVerifier() *Verifier {
	return &Verifier{}
}

// Verify checks data against the declared checksum. A checksum that is not a
// recognizable digest can never match, so it is reported as a mismatch against the
// default algorithm, with the format error as cause.
func (v *Verifier) Verify(checksum string, data []byte) error {
	expected := strings.ToLower(strings.TrimSpace(checksum))
	if expected == "" {
		return domain.ErrMissingChecksum
	}

	algorithm, err := detect(expected)
	if err != nil {
		actual, computeErr := v.Compute(DefaultAlgorithm, data)
		if computeErr != nil {
			return computeErr
		}
		mismatch := zerr.With(zerr.Wrap(err, domain.ErrChecksumMismatch.Error()), "expected", expected)
		return zerr.With(mismatch, "actual", actual)
	}

	actual, err := v.Compute(algorithm, data)
	if err != nil {
		return err
	}

	if !strings.Contains(expected, ":") {
		actual = strings.TrimPrefix(actual, algorithm+":")
	}
	if actual != expected {
		err := zerr.With(domain.ErrChecksumMismatch, "expected", expected)
		return zerr.With(err, "actual", actual)
	}
	return nil
}

// Compute returns the checksum of data. md5 and sha1 are rendered as bare hex, the
// sha2 family as prefixed digests.
func (v *Verifier) Compute(algorithm string, data []byte) (string, error) {
	switch strings.ToLower(algorithm) {
	case "", MD5:
		sum := md5.Sum(data) //nolint:gosec // see import
		return hex.EncodeToString(sum[:]), nil
	case SHA1:
		sum := sha1.Sum(data) //nolint:gosec // see import
		return hex.EncodeToString(sum[:]), nil
	case SHA256, SHA384, SHA512:
		alg := digest.Algorithm(strings.ToLower(algorithm))
		if !alg.Available() {
			return "", zerr.With(domain.ErrUnsupportedChecksum, "algorithm", algorithm)
		}
		return alg.FromBytes(data).String(), nil
	default:
		return "", zerr.With(domain.ErrUnsupportedChecksum, "algorithm", algorithm)
	}
}

// detect returns the algorithm a normalized checksum was produced with.
func detect(checksum string) (string, error) {
	if strings.Contains(checksum, ":") {
		d, err := digest.Parse(checksum)
		if err != nil {
			return "", zerr.With(zerr.Wrap(err, domain.ErrUnsupportedChecksum.Error()), "checksum", checksum)
		}
		return string(d.Algorithm()), nil
	}

	if _, err := hex.DecodeString(checksum); err != nil {
		return "", zerr.With(domain.ErrUnsupportedChecksum, "checksum", checksum)
	}

	switch len(checksum) {
	case md5.Size * 2:
		return MD5, nil
	case sha1.Size * 2:
		return SHA1, nil
	case 64:
		return SHA256, nil
	case 96:
		return SHA384, nil
	case 128:
		return SHA512, nil
	default:
		return "", zerr.With(domain.ErrUnsupportedChecksum, "checksum", checksum)
	}
}
