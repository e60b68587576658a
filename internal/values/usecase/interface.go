// Package usecase implements the secure value store: AEAD sealing under the
// active key version, label management, and lazy key migration on read.
package usecase

import (
	"context"

	valuesDomain "github.com/allisson/refvault/internal/values/domain"
)

// SecureValueRepository defines persistence operations for secure values.
type SecureValueRepository interface {
	// Create inserts a new secure value.
	Create(ctx context.Context, value *valuesDomain.SecureValue) error

	// GetByRefID retrieves a secure value by its reference id.
	GetByRefID(ctx context.Context, refID string) (*valuesDomain.SecureValue, error)

	// GetByLabel retrieves a secure value by its label.
	GetByLabel(ctx context.Context, label string) (*valuesDomain.SecureValue, error)

	// UpdateSealed replaces the sealed payload of a secure value in place.
	UpdateSealed(ctx context.Context, value *valuesDomain.SecureValue) error

	// List retrieves all secure values ordered by creation time descending.
	List(ctx context.Context) ([]*valuesDomain.SecureValue, error)

	// ListBehindVersion retrieves secure values sealed under a key version
	// older than the given version.
	ListBehindVersion(ctx context.Context, version uint) ([]*valuesDomain.SecureValue, error)

	// Delete removes a secure value by its reference id.
	Delete(ctx context.Context, refID string) error
}

// SecureValueUseCase manages sealed secrets addressed by opaque reference ids.
type SecureValueUseCase interface {
	// Encrypt seals plaintext under the active key and returns the stored
	// value with a fresh unique refId. No label is assigned.
	Encrypt(ctx context.Context, plaintext []byte) (*valuesDomain.SecureValue, error)

	// EncryptWithLabel seals plaintext and assigns a unique label.
	// Returns valuesDomain.ErrDuplicateLabel when the label is taken;
	// the store is left unchanged in that case.
	EncryptWithLabel(ctx context.Context, plaintext []byte, label string) (*valuesDomain.SecureValue, error)

	// Decrypt opens the sealed payload for a refId. When the value is sealed
	// under an old key version it is re-sealed under the active key as a side
	// effect; the returned plaintext never depends on migration succeeding.
	Decrypt(ctx context.Context, refID string) ([]byte, error)

	// Update replaces the plaintext of an existing secure value.
	Update(ctx context.Context, refID string, plaintext []byte) error

	// ResolveLabel returns the refId carrying the given label.
	ResolveLabel(ctx context.Context, label string) (string, error)

	// RotateAllToCurrentKey re-seals every value behind the active key
	// version. Returns the number of values migrated.
	RotateAllToCurrentKey(ctx context.Context) (int, error)

	// List returns all secure value records (metadata only, never plaintext).
	List(ctx context.Context) ([]*valuesDomain.SecureValue, error)

	// Delete removes a secure value by its reference id.
	Delete(ctx context.Context, refID string) error
}
