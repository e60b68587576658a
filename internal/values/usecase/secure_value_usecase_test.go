package usecase

import (
	"context"
	"crypto/rand"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/refvault/internal/crypto/domain"
	cryptoService "github.com/allisson/refvault/internal/crypto/service"
	apperrors "github.com/allisson/refvault/internal/errors"
	keysDomain "github.com/allisson/refvault/internal/keys/domain"
	valuesDomain "github.com/allisson/refvault/internal/values/domain"
	valuesService "github.com/allisson/refvault/internal/values/service"
)

// fakeKeyUseCase serves key material from memory with a controllable active version.
type fakeKeyUseCase struct {
	active   uint
	material map[uint][]byte

	activeErr error
}

func newFakeKeyUseCase(t *testing.T) *fakeKeyUseCase {
	t.Helper()
	f := &fakeKeyUseCase{material: make(map[uint][]byte)}
	f.rotate(t)
	return f
}

func (f *fakeKeyUseCase) rotate(t *testing.T) {
	t.Helper()
	key := make([]byte, cryptoDomain.KeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)
	f.active++
	f.material[f.active] = key
}

func (f *fakeKeyUseCase) ActiveVersion(_ context.Context) (uint, error) {
	if f.activeErr != nil {
		return 0, f.activeErr
	}
	return f.active, nil
}

func (f *fakeKeyUseCase) Material(_ context.Context, version uint) ([]byte, error) {
	key, ok := f.material[version]
	if !ok {
		return nil, keysDomain.ErrKeyMaterialMissing
	}
	// callers zero the returned slice, hand out a copy
	out := make([]byte, len(key))
	copy(out, key)
	return out, nil
}

func (f *fakeKeyUseCase) Rotate(_ context.Context) (uint, error) {
	return f.active, nil
}

func (f *fakeKeyUseCase) List(_ context.Context) ([]*keysDomain.KeyVersion, error) {
	return nil, nil
}

// fakeSecureValueRepository keeps secure values in memory keyed by refId.
type fakeSecureValueRepository struct {
	values map[string]*valuesDomain.SecureValue

	updateErr error
}

func newFakeSecureValueRepository() *fakeSecureValueRepository {
	return &fakeSecureValueRepository{values: make(map[string]*valuesDomain.SecureValue)}
}

func (f *fakeSecureValueRepository) Create(_ context.Context, value *valuesDomain.SecureValue) error {
	f.values[value.RefID] = value
	return nil
}

func (f *fakeSecureValueRepository) GetByRefID(_ context.Context, refID string) (*valuesDomain.SecureValue, error) {
	value, ok := f.values[refID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return value, nil
}

func (f *fakeSecureValueRepository) GetByLabel(_ context.Context, label string) (*valuesDomain.SecureValue, error) {
	for _, value := range f.values {
		if value.Label != nil && *value.Label == label {
			return value, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeSecureValueRepository) UpdateSealed(_ context.Context, value *valuesDomain.SecureValue) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.values[value.RefID]; !ok {
		return apperrors.ErrNotFound
	}
	f.values[value.RefID] = value
	return nil
}

func (f *fakeSecureValueRepository) List(_ context.Context) ([]*valuesDomain.SecureValue, error) {
	out := make([]*valuesDomain.SecureValue, 0, len(f.values))
	for _, value := range f.values {
		out = append(out, value)
	}
	return out, nil
}

func (f *fakeSecureValueRepository) ListBehindVersion(_ context.Context, version uint) ([]*valuesDomain.SecureValue, error) {
	var out []*valuesDomain.SecureValue
	for _, value := range f.values {
		if value.KeyVersion < version {
			out = append(out, value)
		}
	}
	return out, nil
}

func (f *fakeSecureValueRepository) Delete(_ context.Context, refID string) error {
	if _, ok := f.values[refID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(f.values, refID)
	return nil
}

func newTestSecureValueUseCase(t *testing.T) (SecureValueUseCase, *fakeSecureValueRepository, *fakeKeyUseCase) {
	t.Helper()

	repo := newFakeSecureValueRepository()
	keys := newFakeKeyUseCase(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	useCase := NewSecureValueUseCase(
		repo,
		keys,
		cryptoService.NewAEADManager(),
		valuesService.NewRefIDGenerator(),
		cryptoDomain.AESGCM,
		6,
		logger,
	)
	return useCase, repo, keys
}

func TestSecureValueUseCase_Encrypt(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		useCase, repo, _ := newTestSecureValueUseCase(t)

		value, err := useCase.Encrypt(ctx, []byte("hunter2"))
		require.NoError(t, err)
		assert.Len(t, value.RefID, 6)
		assert.Equal(t, uint(1), value.KeyVersion)
		assert.Nil(t, value.Label)
		assert.NotEqual(t, []byte("hunter2"), value.Ciphertext)

		plaintext, err := useCase.Decrypt(ctx, value.RefID)
		require.NoError(t, err)
		assert.Equal(t, []byte("hunter2"), plaintext)
		assert.Len(t, repo.values, 1)
	})

	t.Run("distinct refIds", func(t *testing.T) {
		useCase, _, _ := newTestSecureValueUseCase(t)

		first, err := useCase.Encrypt(ctx, []byte("a"))
		require.NoError(t, err)
		second, err := useCase.Encrypt(ctx, []byte("a"))
		require.NoError(t, err)
		assert.NotEqual(t, first.RefID, second.RefID)
	})

	t.Run("key lookup failure", func(t *testing.T) {
		useCase, _, keys := newTestSecureValueUseCase(t)
		keys.activeErr = apperrors.ErrUnavailable

		_, err := useCase.Encrypt(ctx, []byte("a"))
		assert.ErrorIs(t, err, apperrors.ErrUnavailable)
	})
}

func TestSecureValueUseCase_EncryptWithLabel(t *testing.T) {
	ctx := context.Background()

	t.Run("label round trip", func(t *testing.T) {
		useCase, _, _ := newTestSecureValueUseCase(t)

		value, err := useCase.EncryptWithLabel(ctx, []byte("tok"), "github token")
		require.NoError(t, err)
		require.NotNil(t, value.Label)
		assert.Equal(t, "github token", *value.Label)

		refID, err := useCase.ResolveLabel(ctx, "github token")
		require.NoError(t, err)
		assert.Equal(t, value.RefID, refID)
	})

	t.Run("duplicate label leaves store unchanged", func(t *testing.T) {
		useCase, repo, _ := newTestSecureValueUseCase(t)

		_, err := useCase.EncryptWithLabel(ctx, []byte("one"), "api key")
		require.NoError(t, err)

		_, err = useCase.EncryptWithLabel(ctx, []byte("two"), "api key")
		assert.ErrorIs(t, err, valuesDomain.ErrDuplicateLabel)
		assert.Len(t, repo.values, 1)
	})

	t.Run("rejects grammar characters", func(t *testing.T) {
		useCase, _, _ := newTestSecureValueUseCase(t)

		_, err := useCase.EncryptWithLabel(ctx, []byte("x"), "bad{label}")
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}

func TestSecureValueUseCase_Decrypt(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown refId", func(t *testing.T) {
		useCase, _, _ := newTestSecureValueUseCase(t)

		_, err := useCase.Decrypt(ctx, "nosuch")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("tampered ciphertext", func(t *testing.T) {
		useCase, repo, _ := newTestSecureValueUseCase(t)

		value, err := useCase.Encrypt(ctx, []byte("secret"))
		require.NoError(t, err)
		repo.values[value.RefID].Ciphertext[0] ^= 0xff

		_, err = useCase.Decrypt(ctx, value.RefID)
		assert.ErrorIs(t, err, valuesDomain.ErrAuthFailure)
	})

	t.Run("ciphertext bound to its refId", func(t *testing.T) {
		useCase, repo, _ := newTestSecureValueUseCase(t)

		first, err := useCase.Encrypt(ctx, []byte("first"))
		require.NoError(t, err)
		second, err := useCase.Encrypt(ctx, []byte("second"))
		require.NoError(t, err)

		// graft first's sealed payload onto second's row
		repo.values[second.RefID].Ciphertext = first.Ciphertext
		repo.values[second.RefID].Nonce = first.Nonce

		_, err = useCase.Decrypt(ctx, second.RefID)
		assert.ErrorIs(t, err, valuesDomain.ErrAuthFailure)
	})

	t.Run("missing key material", func(t *testing.T) {
		useCase, _, keys := newTestSecureValueUseCase(t)

		value, err := useCase.Encrypt(ctx, []byte("secret"))
		require.NoError(t, err)
		delete(keys.material, 1)

		_, err = useCase.Decrypt(ctx, value.RefID)
		assert.ErrorIs(t, err, keysDomain.ErrKeyMaterialMissing)
	})

	t.Run("lazy migration to active key", func(t *testing.T) {
		useCase, repo, keys := newTestSecureValueUseCase(t)

		value, err := useCase.Encrypt(ctx, []byte("old wine"))
		require.NoError(t, err)
		assert.Equal(t, uint(1), value.KeyVersion)

		keys.rotate(t)
		keys.rotate(t)

		plaintext, err := useCase.Decrypt(ctx, value.RefID)
		require.NoError(t, err)
		assert.Equal(t, []byte("old wine"), plaintext)
		assert.Equal(t, uint(3), repo.values[value.RefID].KeyVersion)

		// the old key is gone, the migrated value must still open
		delete(keys.material, 1)
		plaintext, err = useCase.Decrypt(ctx, value.RefID)
		require.NoError(t, err)
		assert.Equal(t, []byte("old wine"), plaintext)
	})

	t.Run("migration failure does not affect plaintext", func(t *testing.T) {
		useCase, repo, keys := newTestSecureValueUseCase(t)

		value, err := useCase.Encrypt(ctx, []byte("sticky"))
		require.NoError(t, err)

		keys.rotate(t)
		repo.updateErr = apperrors.ErrUnavailable

		plaintext, err := useCase.Decrypt(ctx, value.RefID)
		require.NoError(t, err)
		assert.Equal(t, []byte("sticky"), plaintext)
	})
}

func TestSecureValueUseCase_Update(t *testing.T) {
	ctx := context.Background()
	useCase, repo, keys := newTestSecureValueUseCase(t)

	value, err := useCase.Encrypt(ctx, []byte("before"))
	require.NoError(t, err)

	keys.rotate(t)
	require.NoError(t, useCase.Update(ctx, value.RefID, []byte("after")))
	assert.Equal(t, uint(2), repo.values[value.RefID].KeyVersion)

	plaintext, err := useCase.Decrypt(ctx, value.RefID)
	require.NoError(t, err)
	assert.Equal(t, []byte("after"), plaintext)

	assert.ErrorIs(t, useCase.Update(ctx, "nosuch", []byte("x")), apperrors.ErrNotFound)
}

func TestSecureValueUseCase_RotateAllToCurrentKey(t *testing.T) {
	ctx := context.Background()

	t.Run("migrates everything behind the active key", func(t *testing.T) {
		useCase, repo, keys := newTestSecureValueUseCase(t)

		refIDs := make([]string, 0, 3)
		for _, plaintext := range []string{"a", "b", "c"} {
			value, err := useCase.Encrypt(ctx, []byte(plaintext))
			require.NoError(t, err)
			refIDs = append(refIDs, value.RefID)
		}

		keys.rotate(t)

		migrated, err := useCase.RotateAllToCurrentKey(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, migrated)
		for _, refID := range refIDs {
			assert.Equal(t, uint(2), repo.values[refID].KeyVersion)
		}

		migrated, err = useCase.RotateAllToCurrentKey(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, migrated)
	})

	t.Run("skips values it cannot open", func(t *testing.T) {
		useCase, repo, keys := newTestSecureValueUseCase(t)

		healthy, err := useCase.Encrypt(ctx, []byte("fine"))
		require.NoError(t, err)
		broken, err := useCase.Encrypt(ctx, []byte("doomed"))
		require.NoError(t, err)
		repo.values[broken.RefID].Ciphertext[0] ^= 0xff

		keys.rotate(t)

		migrated, err := useCase.RotateAllToCurrentKey(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, migrated)
		assert.Equal(t, uint(2), repo.values[healthy.RefID].KeyVersion)
		assert.Equal(t, uint(1), repo.values[broken.RefID].KeyVersion)
	})
}

func TestSecureValueUseCase_Delete(t *testing.T) {
	ctx := context.Background()
	useCase, _, _ := newTestSecureValueUseCase(t)

	value, err := useCase.Encrypt(ctx, []byte("ephemeral"))
	require.NoError(t, err)

	require.NoError(t, useCase.Delete(ctx, value.RefID))
	_, err = useCase.Decrypt(ctx, value.RefID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	assert.ErrorIs(t, useCase.Delete(ctx, value.RefID), apperrors.ErrNotFound)
}
