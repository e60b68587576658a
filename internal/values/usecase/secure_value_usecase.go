package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	cryptoDomain "github.com/allisson/refvault/internal/crypto/domain"
	cryptoService "github.com/allisson/refvault/internal/crypto/service"
	apperrors "github.com/allisson/refvault/internal/errors"
	keysUsecase "github.com/allisson/refvault/internal/keys/usecase"
	appvalidation "github.com/allisson/refvault/internal/validation"
	valuesDomain "github.com/allisson/refvault/internal/values/domain"
	valuesService "github.com/allisson/refvault/internal/values/service"
)

// refIDMaxAttempts bounds collision retries when generating a fresh refId.
const refIDMaxAttempts = 5

// secureValueUseCase implements SecureValueUseCase.
//
// Every payload is sealed with the refId as associated data, so a ciphertext
// copied onto another row fails authentication. Values sealed under an old key
// version are migrated to the active key the next time they are decrypted;
// migration failures are logged and never affect the returned plaintext.
type secureValueUseCase struct {
	repo        SecureValueRepository
	keys        keysUsecase.KeyUseCase
	aeadManager cryptoService.AEADManager
	refIDGen    valuesService.RefIDGenerator
	algorithm   cryptoDomain.Algorithm
	refIDLength int
	logger      *slog.Logger
}

// NewSecureValueUseCase creates a new SecureValueUseCase.
func NewSecureValueUseCase(
	repo SecureValueRepository,
	keys keysUsecase.KeyUseCase,
	aeadManager cryptoService.AEADManager,
	refIDGen valuesService.RefIDGenerator,
	algorithm cryptoDomain.Algorithm,
	refIDLength int,
	logger *slog.Logger,
) SecureValueUseCase {
	return &secureValueUseCase{
		repo:        repo,
		keys:        keys,
		aeadManager: aeadManager,
		refIDGen:    refIDGen,
		algorithm:   algorithm,
		refIDLength: refIDLength,
		logger:      logger,
	}
}

// Encrypt seals plaintext under the active key and stores it with a fresh refId.
func (s *secureValueUseCase) Encrypt(ctx context.Context, plaintext []byte) (*valuesDomain.SecureValue, error) {
	return s.create(ctx, plaintext, nil)
}

// EncryptWithLabel seals plaintext and assigns a unique label.
func (s *secureValueUseCase) EncryptWithLabel(ctx context.Context, plaintext []byte, label string) (*valuesDomain.SecureValue, error) {
	if err := validation.Validate(label, appvalidation.LabelRule{}); err != nil {
		return nil, appvalidation.WrapValidationError(err)
	}

	if _, err := s.repo.GetByLabel(ctx, label); err == nil {
		return nil, valuesDomain.ErrDuplicateLabel
	} else if !apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	return s.create(ctx, plaintext, &label)
}

// Decrypt opens the sealed payload for a refId, migrating the value to the
// active key version when it lags behind.
func (s *secureValueUseCase) Decrypt(ctx context.Context, refID string) ([]byte, error) {
	value, err := s.repo.GetByRefID(ctx, refID)
	if err != nil {
		return nil, err
	}

	plaintext, err := s.open(ctx, value)
	if err != nil {
		return nil, err
	}

	active, err := s.keys.ActiveVersion(ctx)
	if err != nil {
		s.logger.Warn("cannot determine active key version, skipping migration",
			slog.String("ref_id", refID),
			slog.Any("error", err),
		)
		return plaintext, nil
	}

	if value.KeyVersion < active {
		if err := s.reseal(ctx, value, plaintext, active); err != nil {
			s.logger.Warn("lazy key migration failed",
				slog.String("ref_id", refID),
				slog.Uint64("from_version", uint64(value.KeyVersion)),
				slog.Uint64("to_version", uint64(active)),
				slog.Any("error", err),
			)
		} else {
			s.logger.Info("secure value migrated to active key",
				slog.String("ref_id", refID),
				slog.Uint64("version", uint64(active)),
			)
		}
	}

	return plaintext, nil
}

// Update replaces the plaintext of an existing secure value, sealing the new
// payload under the active key version.
func (s *secureValueUseCase) Update(ctx context.Context, refID string, plaintext []byte) error {
	value, err := s.repo.GetByRefID(ctx, refID)
	if err != nil {
		return err
	}

	active, err := s.keys.ActiveVersion(ctx)
	if err != nil {
		return err
	}

	return s.reseal(ctx, value, plaintext, active)
}

// ResolveLabel returns the refId carrying the given label.
func (s *secureValueUseCase) ResolveLabel(ctx context.Context, label string) (string, error) {
	value, err := s.repo.GetByLabel(ctx, label)
	if err != nil {
		return "", err
	}
	return value.RefID, nil
}

// RotateAllToCurrentKey re-seals every value sealed under a key version older
// than the active one. Values that fail to migrate are logged and skipped.
func (s *secureValueUseCase) RotateAllToCurrentKey(ctx context.Context) (int, error) {
	active, err := s.keys.ActiveVersion(ctx)
	if err != nil {
		return 0, err
	}

	behind, err := s.repo.ListBehindVersion(ctx, active)
	if err != nil {
		return 0, err
	}

	migrated := 0
	for _, value := range behind {
		plaintext, err := s.open(ctx, value)
		if err != nil {
			s.logger.Error("cannot open secure value for migration",
				slog.String("ref_id", value.RefID),
				slog.Uint64("version", uint64(value.KeyVersion)),
				slog.Any("error", err),
			)
			continue
		}

		err = s.reseal(ctx, value, plaintext, active)
		cryptoDomain.Zero(plaintext)
		if err != nil {
			s.logger.Error("cannot reseal secure value",
				slog.String("ref_id", value.RefID),
				slog.Any("error", err),
			)
			continue
		}
		migrated++
	}

	return migrated, nil
}

// List returns all secure value records, newest first.
func (s *secureValueUseCase) List(ctx context.Context) ([]*valuesDomain.SecureValue, error) {
	return s.repo.List(ctx)
}

// Delete removes a secure value by its reference id.
func (s *secureValueUseCase) Delete(ctx context.Context, refID string) error {
	return s.repo.Delete(ctx, refID)
}

// create generates a fresh refId, seals the plaintext and inserts the row.
func (s *secureValueUseCase) create(ctx context.Context, plaintext []byte, label *string) (*valuesDomain.SecureValue, error) {
	refID, err := s.freshRefID(ctx)
	if err != nil {
		return nil, err
	}

	ciphertext, nonce, version, err := s.seal(ctx, plaintext, refID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	value := &valuesDomain.SecureValue{
		ID:         uuid.Must(uuid.NewV7()),
		RefID:      refID,
		Ciphertext: ciphertext,
		Nonce:      nonce,
		KeyVersion: version,
		Label:      label,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(ctx, value); err != nil {
		return nil, err
	}

	return value, nil
}

// freshRefID generates a refId that does not collide with an existing value.
func (s *secureValueUseCase) freshRefID(ctx context.Context) (string, error) {
	for i := 0; i < refIDMaxAttempts; i++ {
		refID, err := s.refIDGen.Generate(s.refIDLength)
		if err != nil {
			return "", err
		}

		_, err = s.repo.GetByRefID(ctx, refID)
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return refID, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", apperrors.New("failed to generate a unique refId")
}

// seal encrypts plaintext under the active key, binding it to refID via AAD.
func (s *secureValueUseCase) seal(ctx context.Context, plaintext []byte, refID string) (ciphertext, nonce []byte, version uint, err error) {
	version, err = s.keys.ActiveVersion(ctx)
	if err != nil {
		return nil, nil, 0, err
	}
	return s.sealUnder(ctx, plaintext, refID, version)
}

// sealUnder encrypts plaintext under a specific key version.
func (s *secureValueUseCase) sealUnder(ctx context.Context, plaintext []byte, refID string, version uint) (ciphertext, nonce []byte, v uint, err error) {
	material, err := s.keys.Material(ctx, version)
	if err != nil {
		return nil, nil, 0, err
	}
	defer cryptoDomain.Zero(material)

	cipher, err := s.aeadManager.CreateCipher(material, s.algorithm)
	if err != nil {
		return nil, nil, 0, err
	}

	ciphertext, nonce, err = cipher.Encrypt(plaintext, []byte(refID))
	if err != nil {
		return nil, nil, 0, err
	}

	return ciphertext, nonce, version, nil
}

// open decrypts the sealed payload of a stored value.
func (s *secureValueUseCase) open(ctx context.Context, value *valuesDomain.SecureValue) ([]byte, error) {
	material, err := s.keys.Material(ctx, value.KeyVersion)
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(material)

	cipher, err := s.aeadManager.CreateCipher(material, s.algorithm)
	if err != nil {
		return nil, err
	}

	plaintext, err := cipher.Decrypt(value.Ciphertext, value.Nonce, []byte(value.RefID))
	if err != nil {
		return nil, valuesDomain.ErrAuthFailure
	}

	return plaintext, nil
}

// reseal encrypts plaintext under the given key version and persists the new
// sealed payload in place.
func (s *secureValueUseCase) reseal(ctx context.Context, value *valuesDomain.SecureValue, plaintext []byte, version uint) error {
	ciphertext, nonce, _, err := s.sealUnder(ctx, plaintext, value.RefID, version)
	if err != nil {
		return err
	}

	value.Ciphertext = ciphertext
	value.Nonce = nonce
	value.KeyVersion = version
	value.UpdatedAt = time.Now().UTC()

	return s.repo.UpdateSealed(ctx, value)
}
