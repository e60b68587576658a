package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/refvault/internal/crypto/domain"
	"github.com/allisson/refvault/internal/database"
	apperrors "github.com/allisson/refvault/internal/errors"
	keysDomain "github.com/allisson/refvault/internal/keys/domain"
	"github.com/allisson/refvault/internal/keys/keystore"
)

// Scope is the platform key store scope under which all key material is filed.
const Scope = "refvault"

// keyUseCase implements KeyUseCase on top of the platform key store and the
// key version metadata repository.
//
// Material is written to the platform store first and registered in the
// database last, so a failed rotation never leaves a registered version
// without material. The orphaned material of a failed registration is
// removed best-effort.
type keyUseCase struct {
	txManager database.TxManager
	repo      KeyVersionRepository
	store     keystore.KeyStore
	logger    *slog.Logger

	// serializes provision/rotate within this process
	mu sync.Mutex
}

// NewKeyUseCase creates a new KeyUseCase.
func NewKeyUseCase(
	txManager database.TxManager,
	repo KeyVersionRepository,
	store keystore.KeyStore,
	logger *slog.Logger,
) KeyUseCase {
	return &keyUseCase{
		txManager: txManager,
		repo:      repo,
		store:     store,
		logger:    logger,
	}
}

// ActiveVersion returns the current key version, auto-provisioning version 1
// when no key has ever been created.
func (k *keyUseCase) ActiveVersion(ctx context.Context) (uint, error) {
	active, err := k.repo.GetActive(ctx)
	if err == nil {
		return active.Version, nil
	}
	if !apperrors.Is(err, apperrors.ErrNotFound) {
		return 0, err
	}

	return k.provision(ctx)
}

// Material fetches key bytes for a specific version from the platform key store.
func (k *keyUseCase) Material(ctx context.Context, version uint) ([]byte, error) {
	material, err := k.store.Get(ctx, Scope, keysDomain.Account(version))
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, keysDomain.ErrKeyMaterialMissing
		}
		return nil, err
	}
	return material, nil
}

// Rotate generates new key material and registers it as the active version.
func (k *keyUseCase) Rotate(ctx context.Context) (uint, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	var next uint = 1
	if versions, err := k.repo.List(ctx); err != nil {
		return 0, err
	} else if len(versions) > 0 {
		next = versions[0].Version + 1
	}

	return k.createVersion(ctx, next)
}

// List returns metadata for all key versions, newest first.
func (k *keyUseCase) List(ctx context.Context) ([]*keysDomain.KeyVersion, error) {
	return k.repo.List(ctx)
}

// provision creates version 1 on first use.
func (k *keyUseCase) provision(ctx context.Context) (uint, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	// Another caller may have provisioned while we waited on the lock.
	if active, err := k.repo.GetActive(ctx); err == nil {
		return active.Version, nil
	} else if !apperrors.Is(err, apperrors.ErrNotFound) {
		return 0, err
	}

	k.logger.Info("no key found, provisioning version 1")
	return k.createVersion(ctx, 1)
}

// createVersion writes material for the given version to the platform store,
// then registers the metadata row inside a transaction that also deactivates
// the previous version.
func (k *keyUseCase) createVersion(ctx context.Context, version uint) (uint, error) {
	material := make([]byte, cryptoDomain.KeySize)
	if _, err := rand.Read(material); err != nil {
		return 0, fmt.Errorf("failed to generate key material: %w", err)
	}
	defer cryptoDomain.Zero(material)

	account := keysDomain.Account(version)
	if err := k.store.Put(ctx, Scope, account, material); err != nil {
		return 0, apperrors.Wrap(err, "failed to store key material")
	}

	kv := &keysDomain.KeyVersion{
		ID:          uuid.Must(uuid.NewV7()),
		Version:     version,
		Fingerprint: keysDomain.Fingerprint(material),
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}

	err := k.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if err := k.repo.DeactivateAll(txCtx); err != nil {
			return err
		}
		return k.repo.Create(txCtx, kv)
	})
	if err != nil {
		// Registration failed: remove the orphaned material so the store
		// never holds keys for unregistered versions.
		if delErr := k.store.Delete(ctx, Scope, account); delErr != nil {
			k.logger.Error("failed to remove orphaned key material",
				slog.String("account", account),
				slog.Any("error", delErr),
			)
		}
		return 0, apperrors.Wrap(err, "failed to register key version")
	}

	k.logger.Info("key version created",
		slog.Uint64("version", uint64(version)),
		slog.String("fingerprint", kv.Fingerprint),
	)

	return version, nil
}
