package http

import (
	"bytes"
	"context"
	"encoding/json"
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

	apperrors "github.com/allisson/refvault/internal/errors"
	variablesDomain "github.com/allisson/refvault/internal/variables/domain"
	"github.com/allisson/refvault/internal/variables/http/dto"
)

// TestMain sets Gin to test mode for all tests in this package.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// stubVariableUseCase implements the use case with overridable functions.
type stubVariableUseCase struct {
	set          func(ctx context.Context, refID, value string) (*variablesDomain.Variable, error)
	setWithLabel func(ctx context.Context, value, label string) (*variablesDomain.Variable, error)
	get          func(ctx context.Context, refID string) (*variablesDomain.Variable, error)
	resolveLabel func(ctx context.Context, label string) (string, error)
	generateID   func(ctx context.Context) (string, error)
	list         func(ctx context.Context) ([]*variablesDomain.Variable, error)
	delete       func(ctx context.Context, refID string) error
}

func (s *stubVariableUseCase) Set(ctx context.Context, refID, value string) (*variablesDomain.Variable, error) {
	return s.set(ctx, refID, value)
}

func (s *stubVariableUseCase) SetWithLabel(ctx context.Context, value, label string) (*variablesDomain.Variable, error) {
	return s.setWithLabel(ctx, value, label)
}

func (s *stubVariableUseCase) Get(ctx context.Context, refID string) (*variablesDomain.Variable, error) {
	return s.get(ctx, refID)
}

func (s *stubVariableUseCase) ResolveLabel(ctx context.Context, label string) (string, error) {
	return s.resolveLabel(ctx, label)
}

func (s *stubVariableUseCase) GenerateID(ctx context.Context) (string, error) {
	return s.generateID(ctx)
}

func (s *stubVariableUseCase) List(ctx context.Context) ([]*variablesDomain.Variable, error) {
	return s.list(ctx)
}

func (s *stubVariableUseCase) Delete(ctx context.Context, refID string) error {
	return s.delete(ctx, refID)
}

func newTestHandler(stub *stubVariableUseCase) *VariableHandler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewVariableHandler(stub, logger)
}

func createTestContext(method, target string, body any) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader io.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	}

	c.Request = httptest.NewRequest(method, target, reader)
	c.Request.Header.Set("Content-Type", "application/json")

	return c, w
}

func newStoredVariable(refID, value string, label *string) *variablesDomain.Variable {
	now := time.Now().UTC()
	return &variablesDomain.Variable{
		ID:        uuid.Must(uuid.NewV7()),
		RefID:     refID,
		Value:     value,
		Label:     label,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestVariableHandler_SetHandler(t *testing.T) {
	t.Run("upserts by refId", func(t *testing.T) {
		stub := &stubVariableUseCase{
			set: func(_ context.Context, refID, value string) (*variablesDomain.Variable, error) {
				assert.Equal(t, "v1a2b3", refID)
				assert.Equal(t, "staging", value)
				return newStoredVariable(refID, value, nil), nil
			},
		}
		handler := newTestHandler(stub)

		c, w := createTestContext(http.MethodPost, "/v1/variables", dto.SetVariableRequest{
			RefID: "v1a2b3",
			Value: "staging",
		})

		handler.SetHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response dto.VariableResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "v1a2b3", response.RefID)
		assert.Equal(t, "staging", response.Value)
	})

	t.Run("creates a labeled variable", func(t *testing.T) {
		label := "environment"
		stub := &stubVariableUseCase{
			setWithLabel: func(_ context.Context, value, gotLabel string) (*variablesDomain.Variable, error) {
				assert.Equal(t, label, gotLabel)
				return newStoredVariable("v1a2b3", value, &label), nil
			},
		}
		handler := newTestHandler(stub)

		c, w := createTestContext(http.MethodPost, "/v1/variables", dto.SetVariableRequest{
			Label: label,
			Value: "staging",
		})

		handler.SetHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("rejects both refId and label", func(t *testing.T) {
		handler := newTestHandler(&stubVariableUseCase{})

		c, w := createTestContext(http.MethodPost, "/v1/variables", dto.SetVariableRequest{
			RefID: "v1a2b3",
			Label: "environment",
			Value: "staging",
		})

		handler.SetHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("rejects neither refId nor label", func(t *testing.T) {
		handler := newTestHandler(&stubVariableUseCase{})

		c, w := createTestContext(http.MethodPost, "/v1/variables", dto.SetVariableRequest{
			Value: "staging",
		})

		handler.SetHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("rejects a duplicate label", func(t *testing.T) {
		stub := &stubVariableUseCase{
			setWithLabel: func(_ context.Context, _, _ string) (*variablesDomain.Variable, error) {
				return nil, variablesDomain.ErrDuplicateLabel
			},
		}
		handler := newTestHandler(stub)

		c, w := createTestContext(http.MethodPost, "/v1/variables", dto.SetVariableRequest{
			Label: "taken",
			Value: "staging",
		})

		handler.SetHandler(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestVariableHandler_GetHandler(t *testing.T) {
	t.Run("returns the variable", func(t *testing.T) {
		stub := &stubVariableUseCase{
			get: func(_ context.Context, refID string) (*variablesDomain.Variable, error) {
				return newStoredVariable(refID, "staging", nil), nil
			},
		}
		handler := newTestHandler(stub)

		c, w := createTestContext(http.MethodGet, "/v1/variables/v1a2b3", nil)
		c.Params = gin.Params{{Key: "refId", Value: "v1a2b3"}}

		handler.GetHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.VariableResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "staging", response.Value)
	})

	t.Run("returns 404 for an unknown refId", func(t *testing.T) {
		stub := &stubVariableUseCase{
			get: func(_ context.Context, _ string) (*variablesDomain.Variable, error) {
				return nil, apperrors.ErrNotFound
			},
		}
		handler := newTestHandler(stub)

		c, w := createTestContext(http.MethodGet, "/v1/variables/missing", nil)
		c.Params = gin.Params{{Key: "refId", Value: "missing"}}

		handler.GetHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestVariableHandler_ListHandler(t *testing.T) {
	stub := &stubVariableUseCase{
		list: func(_ context.Context) ([]*variablesDomain.Variable, error) {
			return []*variablesDomain.Variable{
				newStoredVariable("v1a2b3", "staging", nil),
			}, nil
		},
	}
	handler := newTestHandler(stub)

	c, w := createTestContext(http.MethodGet, "/v1/variables", nil)

	handler.ListHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.ListVariablesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Variables, 1)
}

func TestVariableHandler_DeleteHandler(t *testing.T) {
	stub := &stubVariableUseCase{
		delete: func(_ context.Context, refID string) error {
			assert.Equal(t, "v1a2b3", refID)
			return nil
		},
	}
	handler := newTestHandler(stub)

	c, w := createTestContext(http.MethodDelete, "/v1/variables/v1a2b3", nil)
	c.Params = gin.Params{{Key: "refId", Value: "v1a2b3"}}

	handler.DeleteHandler(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, w.Code)
}
