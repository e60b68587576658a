// Package http provides HTTP handlers for key lifecycle operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/refvault/internal/httputil"
	"github.com/allisson/refvault/internal/keys/http/dto"
	keysUsecase "github.com/allisson/refvault/internal/keys/usecase"
)

// KeyHandler handles HTTP requests for key lifecycle operations.
type KeyHandler struct {
	useCase keysUsecase.KeyUseCase
	logger  *slog.Logger
}

// NewKeyHandler creates a new key handler.
func NewKeyHandler(useCase keysUsecase.KeyUseCase, logger *slog.Logger) *KeyHandler {
	return &KeyHandler{
		useCase: useCase,
		logger:  logger,
	}
}

// RotateHandler generates a new key version and marks it active.
// POST /v1/keys/rotate
// Returns 201 Created with the new version number. Existing values stay
// readable and migrate lazily on their next decrypt.
func (h *KeyHandler) RotateHandler(c *gin.Context) {
	version, err := h.useCase.Rotate(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.RotateKeyResponse{Version: version})
}

// ListHandler lists key version metadata, newest first.
// GET /v1/keys
func (h *KeyHandler) ListHandler(c *gin.Context) {
	kvs, err := h.useCase.List(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapKeyVersionsToListResponse(kvs))
}
