// Package http provides HTTP handlers for variable management. Variables are
// plaintext values sharing the refId addressing scheme with secure values.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/refvault/internal/httputil"
	appvalidation "github.com/allisson/refvault/internal/validation"
	variablesDomain "github.com/allisson/refvault/internal/variables/domain"
	"github.com/allisson/refvault/internal/variables/http/dto"
	variablesUsecase "github.com/allisson/refvault/internal/variables/usecase"
)

// VariableHandler handles HTTP requests for variable management.
type VariableHandler struct {
	useCase variablesUsecase.VariableUseCase
	logger  *slog.Logger
}

// NewVariableHandler creates a new variable handler.
func NewVariableHandler(
	useCase variablesUsecase.VariableUseCase,
	logger *slog.Logger,
) *VariableHandler {
	return &VariableHandler{
		useCase: useCase,
		logger:  logger,
	}
}

// SetHandler stores a variable, upserting by refId or creating a labeled one.
// POST /v1/variables
// Returns 201 Created with the stored variable.
func (h *VariableHandler) SetHandler(c *gin.Context) {
	var req dto.SetVariableRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, appvalidation.WrapValidationError(err), h.logger)
		return
	}

	var variable *variablesDomain.Variable
	var err error
	if req.RefID != "" {
		variable, err = h.useCase.Set(c.Request.Context(), req.RefID, req.Value)
	} else {
		variable, err = h.useCase.SetWithLabel(c.Request.Context(), req.Value, req.Label)
	}
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapVariableToResponse(variable))
}

// GetHandler retrieves a variable by refId.
// GET /v1/variables/:refId
func (h *VariableHandler) GetHandler(c *gin.Context) {
	refID := c.Param("refId")
	if refID == "" {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("refId cannot be empty"), h.logger)
		return
	}

	variable, err := h.useCase.Get(c.Request.Context(), refID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapVariableToResponse(variable))
}

// ListHandler lists all variables.
// GET /v1/variables
func (h *VariableHandler) ListHandler(c *gin.Context) {
	variables, err := h.useCase.List(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapVariablesToListResponse(variables))
}

// DeleteHandler removes a variable.
// DELETE /v1/variables/:refId
// Returns 204 No Content.
func (h *VariableHandler) DeleteHandler(c *gin.Context) {
	refID := c.Param("refId")

	if err := h.useCase.Delete(c.Request.Context(), refID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
