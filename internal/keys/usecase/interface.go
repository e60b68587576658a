// Package usecase implements key lifecycle orchestration: auto-provisioning,
// rotation, and key material retrieval for the secure value store.
package usecase

import (
	"context"

	keysDomain "github.com/allisson/refvault/internal/keys/domain"
)

// KeyVersionRepository defines persistence operations for key version metadata.
type KeyVersionRepository interface {
	// Create inserts a new key version row.
	Create(ctx context.Context, kv *keysDomain.KeyVersion) error

	// GetActive retrieves the currently active key version.
	// Returns errors.ErrNotFound when no key has ever been created.
	GetActive(ctx context.Context) (*keysDomain.KeyVersion, error)

	// GetByVersion retrieves a key version row by its version number.
	GetByVersion(ctx context.Context, version uint) (*keysDomain.KeyVersion, error)

	// List retrieves all key version rows ordered by version descending.
	List(ctx context.Context) ([]*keysDomain.KeyVersion, error)

	// DeactivateAll clears the active flag on every key version.
	DeactivateAll(ctx context.Context) error
}

// KeyUseCase manages versioned symmetric keys backed by the platform key store.
type KeyUseCase interface {
	// ActiveVersion returns the current key version, auto-provisioning
	// version 1 when no key has ever been created.
	ActiveVersion(ctx context.Context) (uint, error)

	// Material fetches key bytes for a specific version from the platform
	// key store. Returns keysDomain.ErrKeyMaterialMissing when the store no
	// longer holds the material. Callers must zero the returned slice after use.
	Material(ctx context.Context, version uint) ([]byte, error)

	// Rotate generates new key material, stores it under a fresh version
	// number, marks it active, and deactivates the previous version.
	// On failure no version is recorded.
	Rotate(ctx context.Context) (uint, error)

	// List returns metadata for all key versions, newest first.
	List(ctx context.Context) ([]*keysDomain.KeyVersion, error)
}
