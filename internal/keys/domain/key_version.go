// Package domain defines the domain model for versioned symmetric keys.
//
// Key material itself lives only in the platform key store; the database holds
// metadata rows (version, fingerprint, active flag) that are append-only.
// Exactly one version is active at any time once a key exists; old versions
// are never deleted because old ciphertexts may still reference them.
package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// KeyVersion is the metadata record for one version of the sealing key.
type KeyVersion struct {
	// ID is the unique row identifier (UUIDv7).
	ID uuid.UUID
	// Version is the monotonically increasing key version number, starting at 1.
	Version uint
	// Fingerprint is a short derived hash of the key material for diagnostics.
	// It is never sufficient to reconstruct the key.
	Fingerprint string
	// IsActive marks the version used to seal new values.
	IsActive bool
	// CreatedAt is the UTC timestamp when this version was created.
	CreatedAt time.Time
}

// Fingerprint derives the diagnostic fingerprint of key material:
// the first 8 bytes of its SHA-256 digest, hex encoded.
func Fingerprint(material []byte) string {
	sum := sha256.Sum256(material)
	return hex.EncodeToString(sum[:8])
}

// Account returns the platform key store account name for a key version.
func Account(version uint) string {
	return fmt.Sprintf("v%d", version)
}
