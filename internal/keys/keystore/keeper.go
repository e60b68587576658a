package keystore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gocloud.dev/secrets"

	apperrors "github.com/allisson/refvault/internal/errors"

	// Register supported keeper drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// KeeperKeyStore implements KeyStore on the local filesystem with key material
// sealed at rest by a gocloud.dev secrets keeper. Each account is one file
// named "<scope>__<account>" under the store directory.
//
// Supported keeper URIs: gcpkms://, awskms://, azurekeyvault://,
// hashivault://, base64key:// (local).
type KeeperKeyStore struct {
	dir    string
	keeper *secrets.Keeper
}

// NewKeeperKeyStore opens the keeper for keeperURI and prepares dir as the
// storage directory.
func NewKeeperKeyStore(ctx context.Context, dir, keeperURI string) (*KeeperKeyStore, error) {
	if dir == "" {
		return nil, apperrors.New("key store directory is required")
	}
	if keeperURI == "" {
		return nil, apperrors.New("keeper URI is required")
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create key store directory: %w", err)
	}

	keeper, err := secrets.OpenKeeper(ctx, keeperURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open keeper: %w", err)
	}

	return &KeeperKeyStore{dir: dir, keeper: keeper}, nil
}

func (k *KeeperKeyStore) path(scope, account string) string {
	return filepath.Join(k.dir, scope+"__"+account)
}

// Put seals the material with the keeper and writes it to the account file.
func (k *KeeperKeyStore) Put(ctx context.Context, scope, account string, material []byte) error {
	sealed, err := k.keeper.Encrypt(ctx, material)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrUnavailable, fmt.Sprintf("keeper encrypt: %v", err))
	}

	if err := os.WriteFile(k.path(scope, account), sealed, 0o600); err != nil {
		return fmt.Errorf("failed to write key store entry: %w", err)
	}
	return nil
}

// Get reads the account file and unseals it with the keeper.
func (k *KeeperKeyStore) Get(ctx context.Context, scope, account string) ([]byte, error) {
	sealed, err := os.ReadFile(k.path(scope, account))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(apperrors.ErrNotFound, "key store entry")
		}
		return nil, fmt.Errorf("failed to read key store entry: %w", err)
	}

	material, err := k.keeper.Decrypt(ctx, sealed)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUnavailable, fmt.Sprintf("keeper decrypt: %v", err))
	}
	return material, nil
}

// Delete removes the account file. A missing file is not an error.
func (k *KeeperKeyStore) Delete(ctx context.Context, scope, account string) error {
	if err := os.Remove(k.path(scope, account)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove key store entry: %w", err)
	}
	return nil
}

// Close releases the underlying keeper.
func (k *KeeperKeyStore) Close() error {
	return k.keeper.Close()
}
