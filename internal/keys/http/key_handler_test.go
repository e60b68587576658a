package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	keysDomain "github.com/allisson/refvault/internal/keys/domain"
	"github.com/allisson/refvault/internal/keys/http/dto"
)

// TestMain sets Gin to test mode for all tests in this package.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// stubKeyUseCase implements the use case with overridable functions.
type stubKeyUseCase struct {
	activeVersion func(ctx context.Context) (uint, error)
	material      func(ctx context.Context, version uint) ([]byte, error)
	rotate        func(ctx context.Context) (uint, error)
	list          func(ctx context.Context) ([]*keysDomain.KeyVersion, error)
}

func (s *stubKeyUseCase) ActiveVersion(ctx context.Context) (uint, error) {
	return s.activeVersion(ctx)
}

func (s *stubKeyUseCase) Material(ctx context.Context, version uint) ([]byte, error) {
	return s.material(ctx, version)
}

func (s *stubKeyUseCase) Rotate(ctx context.Context) (uint, error) {
	return s.rotate(ctx)
}

func (s *stubKeyUseCase) List(ctx context.Context) ([]*keysDomain.KeyVersion, error) {
	return s.list(ctx)
}

func newTestHandler(stub *stubKeyUseCase) *KeyHandler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewKeyHandler(stub, logger)
}

func TestKeyHandler_RotateHandler(t *testing.T) {
	t.Run("returns the new version", func(t *testing.T) {
		stub := &stubKeyUseCase{
			rotate: func(_ context.Context) (uint, error) {
				return 2, nil
			},
		}
		handler := newTestHandler(stub)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/v1/keys/rotate", nil)

		handler.RotateHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response dto.RotateKeyResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, uint(2), response.Version)
	})

	t.Run("maps failures to 500", func(t *testing.T) {
		stub := &stubKeyUseCase{
			rotate: func(_ context.Context) (uint, error) {
				return 0, errors.New("keeper unreachable")
			},
		}
		handler := newTestHandler(stub)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/v1/keys/rotate", nil)

		handler.RotateHandler(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestKeyHandler_ListHandler(t *testing.T) {
	stub := &stubKeyUseCase{
		list: func(_ context.Context) ([]*keysDomain.KeyVersion, error) {
			return []*keysDomain.KeyVersion{
				{
					ID:          uuid.Must(uuid.NewV7()),
					Version:     2,
					Fingerprint: "a1b2c3d4e5f60708",
					IsActive:    true,
					CreatedAt:   time.Now().UTC(),
				},
				{
					ID:          uuid.Must(uuid.NewV7()),
					Version:     1,
					Fingerprint: "0807f6e5d4c3b2a1",
					IsActive:    false,
					CreatedAt:   time.Now().UTC(),
				},
			}, nil
		},
	}
	handler := newTestHandler(stub)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/v1/keys", nil)

	handler.ListHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.ListKeyVersionsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.KeyVersions, 2)
	assert.True(t, response.KeyVersions[0].IsActive)
	assert.Equal(t, uint(1), response.KeyVersions[1].Version)
}
