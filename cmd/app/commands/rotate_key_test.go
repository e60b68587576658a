package commands

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	keysDomain "github.com/allisson/refvault/internal/keys/domain"
)

type stubKeyUseCase struct {
	activeVersionFn func(ctx context.Context) (uint, error)
	materialFn      func(ctx context.Context, version uint) ([]byte, error)
	rotateFn        func(ctx context.Context) (uint, error)
	listFn          func(ctx context.Context) ([]*keysDomain.KeyVersion, error)
}

func (s *stubKeyUseCase) ActiveVersion(ctx context.Context) (uint, error) {
	return s.activeVersionFn(ctx)
}

func (s *stubKeyUseCase) Material(ctx context.Context, version uint) ([]byte, error) {
	return s.materialFn(ctx, version)
}

func (s *stubKeyUseCase) Rotate(ctx context.Context) (uint, error) {
	return s.rotateFn(ctx)
}

func (s *stubKeyUseCase) List(ctx context.Context) ([]*keysDomain.KeyVersion, error) {
	return s.listFn(ctx)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunRotateKey(t *testing.T) {
	ctx := context.Background()

	t.Run("text-output", func(t *testing.T) {
		useCase := &stubKeyUseCase{
			rotateFn: func(ctx context.Context) (uint, error) { return 3, nil },
		}

		var out bytes.Buffer
		err := RunRotateKey(ctx, useCase, testLogger(), &out, "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), "new active version: 3")
	})

	t.Run("json-output", func(t *testing.T) {
		useCase := &stubKeyUseCase{
			rotateFn: func(ctx context.Context) (uint, error) { return 7, nil },
		}

		var out bytes.Buffer
		err := RunRotateKey(ctx, useCase, testLogger(), &out, "json")

		require.NoError(t, err)
		require.Contains(t, out.String(), `"version": 7`)
	})

	t.Run("rotation-failure", func(t *testing.T) {
		useCase := &stubKeyUseCase{
			rotateFn: func(ctx context.Context) (uint, error) {
				return 0, errors.New("key store unreachable")
			},
		}

		var out bytes.Buffer
		err := RunRotateKey(ctx, useCase, testLogger(), &out, "text")

		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to rotate key")
		require.Empty(t, out.String())
	})
}
