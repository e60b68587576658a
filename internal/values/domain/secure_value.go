// Package domain defines the domain model for secure values: AEAD-sealed
// payloads addressed by a short opaque reference id. The refId is the only
// thing that ever appears in persisted user text; the label, when present,
// exists for authoring convenience and is resolved to the refId at save time.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// SecureValue represents one sealed secret.
type SecureValue struct {
	// ID is the unique row identifier (UUIDv7).
	ID uuid.UUID
	// RefID is the short opaque token embedded in canonical text.
	RefID string
	// Ciphertext contains the AEAD-sealed payload including the authentication tag.
	Ciphertext []byte
	// Nonce is the random value used during AEAD encryption.
	Nonce []byte
	// KeyVersion is the key version under which Ciphertext was sealed.
	KeyVersion uint
	// Label is the optional unique human-readable name.
	Label *string
	// Plaintext holds the decrypted value in memory only; must be zeroed after use.
	Plaintext []byte `json:"-"`
	// CreatedAt is the UTC timestamp when the value was created.
	CreatedAt time.Time
	// UpdatedAt is the UTC timestamp of the last reseal or edit.
	UpdatedAt time.Time
}
