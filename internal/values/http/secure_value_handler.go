// Package http provides HTTP handlers for secure value management.
// Values are sealed with an AEAD cipher under the active key version and
// addressed by short opaque reference ids.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	cryptoDomain "github.com/allisson/refvault/internal/crypto/domain"
	"github.com/allisson/refvault/internal/httputil"
	appvalidation "github.com/allisson/refvault/internal/validation"
	valuesDomain "github.com/allisson/refvault/internal/values/domain"
	"github.com/allisson/refvault/internal/values/http/dto"
	valuesUsecase "github.com/allisson/refvault/internal/values/usecase"
)

// SecureValueHandler handles HTTP requests for secure value management.
type SecureValueHandler struct {
	useCase valuesUsecase.SecureValueUseCase
	logger  *slog.Logger
}

// NewSecureValueHandler creates a new secure value handler.
func NewSecureValueHandler(
	useCase valuesUsecase.SecureValueUseCase,
	logger *slog.Logger,
) *SecureValueHandler {
	return &SecureValueHandler{
		useCase: useCase,
		logger:  logger,
	}
}

// CreateHandler seals a new value under the active key.
// POST /v1/values
// Returns 201 Created with value metadata (never the plaintext).
func (h *SecureValueHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateSecureValueRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, appvalidation.WrapValidationError(err), h.logger)
		return
	}

	var value *valuesDomain.SecureValue
	var err error
	if req.Label != "" {
		value, err = h.useCase.EncryptWithLabel(c.Request.Context(), req.Value, req.Label)
	} else {
		value, err = h.useCase.Encrypt(c.Request.Context(), req.Value)
	}
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapSecureValueToResponse(value))
}

// GetHandler decrypts the value for a refId.
// GET /v1/values/:refId
// Returns 200 OK with plaintext. SECURITY: Plaintext is zeroed after response.
func (h *SecureValueHandler) GetHandler(c *gin.Context) {
	refID := c.Param("refId")
	if refID == "" {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("refId cannot be empty"), h.logger)
		return
	}

	plaintext, err := h.useCase.Decrypt(c.Request.Context(), refID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	defer cryptoDomain.Zero(plaintext)

	c.JSON(http.StatusOK, dto.GetSecureValueResponse{
		RefID: refID,
		Value: plaintext,
	})
}

// UpdateHandler replaces the plaintext of an existing value.
// PUT /v1/values/:refId
// Returns 204 No Content.
func (h *SecureValueHandler) UpdateHandler(c *gin.Context) {
	refID := c.Param("refId")

	var req dto.UpdateSecureValueRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, appvalidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.useCase.Update(c.Request.Context(), refID, req.Value); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListHandler lists secure value metadata records.
// GET /v1/values
// Returns 200 OK with metadata only; plaintext is never included.
func (h *SecureValueHandler) ListHandler(c *gin.Context) {
	values, err := h.useCase.List(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSecureValuesToListResponse(values))
}

// RewrapHandler re-seals every value behind the active key version.
// POST /v1/values/rewrap
// Returns 200 OK with the number of migrated values.
func (h *SecureValueHandler) RewrapHandler(c *gin.Context) {
	migrated, err := h.useCase.RotateAllToCurrentKey(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.RewrapResponse{Migrated: migrated})
}

// DeleteHandler removes a secure value.
// DELETE /v1/values/:refId
// Returns 204 No Content.
func (h *SecureValueHandler) DeleteHandler(c *gin.Context) {
	refID := c.Param("refId")

	if err := h.useCase.Delete(c.Request.Context(), refID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
