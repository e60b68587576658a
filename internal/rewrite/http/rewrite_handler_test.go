package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rewriteDomain "github.com/allisson/refvault/internal/rewrite/domain"
	"github.com/allisson/refvault/internal/rewrite/http/dto"
)

// TestMain sets Gin to test mode for all tests in this package.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type stubCanonicalizer struct {
	fn func(ctx context.Context, text string) (string, error)
}

func (s *stubCanonicalizer) Canonicalize(ctx context.Context, text string) (string, error) {
	return s.fn(ctx, text)
}

type stubResolver struct {
	fn func(ctx context.Context, text string) (string, error)
}

func (s *stubResolver) Resolve(ctx context.Context, text string) (string, error) {
	return s.fn(ctx, text)
}

func newTestHandler(canonicalize, resolve func(ctx context.Context, text string) (string, error)) *RewriteHandler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRewriteHandler(
		&stubCanonicalizer{fn: canonicalize},
		&stubResolver{fn: resolve},
		logger,
	)
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

func TestRewriteHandler_CanonicalizeHandler(t *testing.T) {
	t.Run("returns the rewritten text", func(t *testing.T) {
		handler := newTestHandler(
			func(_ context.Context, text string) (string, error) {
				assert.Equal(t, "token={secure:hunter2}", text)
				return "token={🔒:a1b2c3}", nil
			},
			nil,
		)

		c, w := createTestContext(http.MethodPost, "/v1/canonicalize", dto.CanonicalizeRequest{
			Text: "token={secure:hunter2}",
		})

		handler.CanonicalizeHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.RewriteResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "token={🔒:a1b2c3}", response.Text)
	})

	t.Run("returns the offending span on failure", func(t *testing.T) {
		spanErr := rewriteDomain.NewSpanError(
			rewriteDomain.ErrLabelNotFound,
			rewriteDomain.Span{Start: 5, End: 17},
			"{var#missing}",
		)
		handler := newTestHandler(
			func(_ context.Context, text string) (string, error) {
				return text, spanErr
			},
			nil,
		)

		c, w := createTestContext(http.MethodPost, "/v1/canonicalize", dto.CanonicalizeRequest{
			Text: "env={var#missing}",
		})

		handler.CanonicalizeHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var response dto.CanonicalizeErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "canonicalize_failed", response.Error)
		assert.Equal(t, 5, response.Span.Start)
		assert.Equal(t, 17, response.Span.End)
		assert.Equal(t, "{var#missing}", response.Token)
	})

	t.Run("maps non-span failures through the error mapper", func(t *testing.T) {
		handler := newTestHandler(
			func(_ context.Context, _ string) (string, error) {
				return "", errors.New("tx begin failed")
			},
			nil,
		)

		c, w := createTestContext(http.MethodPost, "/v1/canonicalize", dto.CanonicalizeRequest{
			Text: "plain",
		})

		handler.CanonicalizeHandler(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("rejects an empty text", func(t *testing.T) {
		handler := newTestHandler(nil, nil)

		c, w := createTestContext(http.MethodPost, "/v1/canonicalize", map[string]string{})

		handler.CanonicalizeHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestRewriteHandler_ResolveHandler(t *testing.T) {
	t.Run("returns the resolved text", func(t *testing.T) {
		handler := newTestHandler(
			nil,
			func(_ context.Context, text string) (string, error) {
				assert.Equal(t, "token={🔒:a1b2c3}", text)
				return "token=hunter2", nil
			},
		)

		c, w := createTestContext(http.MethodPost, "/v1/resolve", dto.ResolveRequest{
			Text: "token={🔒:a1b2c3}",
		})

		handler.ResolveHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.RewriteResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "token=hunter2", response.Text)
	})

	t.Run("maps resolution failures through the error mapper", func(t *testing.T) {
		handler := newTestHandler(
			nil,
			func(_ context.Context, _ string) (string, error) {
				return "", context.DeadlineExceeded
			},
		)

		c, w := createTestContext(http.MethodPost, "/v1/resolve", dto.ResolveRequest{
			Text: "`command@slow`",
		})

		handler.ResolveHandler(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
