package serialization

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/pkg/errors"
)

// checksumKey is the metadata key holding the data-section checksum.
const checksumKey = "sha256"

// ComputeChecksum returns the hex-encoded SHA-256 of data.
func ComputeChecksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ValidateChecksum compares the checksum of data against stored.
// Returns ErrChecksumMismatch if they don't match.
func ValidateChecksum(data []byte, stored string) error {
	if computed := ComputeChecksum(data); computed != stored {
		return errors.Wrapf(ErrChecksumMismatch, "computed %s, stored %s", computed, stored)
	}
	return nil
}
