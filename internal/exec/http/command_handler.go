// Package http provides HTTP handlers for the stored command directory.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	execDomain "github.com/allisson/refvault/internal/exec/domain"
	"github.com/allisson/refvault/internal/exec/http/dto"
	execUsecase "github.com/allisson/refvault/internal/exec/usecase"
	"github.com/allisson/refvault/internal/httputil"
	appvalidation "github.com/allisson/refvault/internal/validation"
)

// CommandHandler handles HTTP requests for stored command management.
type CommandHandler struct {
	useCase execUsecase.CommandUseCase
	logger  *slog.Logger
}

// NewCommandHandler creates a new command handler.
func NewCommandHandler(useCase execUsecase.CommandUseCase, logger *slog.Logger) *CommandHandler {
	return &CommandHandler{
		useCase: useCase,
		logger:  logger,
	}
}

// CreateHandler stores a new command.
// POST /v1/commands
// Returns 201 Created with the stored command.
func (h *CommandHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateCommandRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, appvalidation.WrapValidationError(err), h.logger)
		return
	}

	var label *string
	if req.Label != "" {
		label = &req.Label
	}

	command, err := h.useCase.Create(
		c.Request.Context(),
		req.CommandID,
		execDomain.CommandKind(req.Kind),
		req.Body,
		label,
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapCommandToResponse(command))
}

// GetHandler retrieves a command by its canonical id.
// GET /v1/commands/:commandId
func (h *CommandHandler) GetHandler(c *gin.Context) {
	command, err := h.useCase.Get(c.Request.Context(), c.Param("commandId"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCommandToResponse(command))
}

// ListHandler lists all stored commands.
// GET /v1/commands
func (h *CommandHandler) ListHandler(c *gin.Context) {
	commands, err := h.useCase.List(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCommandsToListResponse(commands))
}

// DeleteHandler removes a stored command.
// DELETE /v1/commands/:commandId
// Returns 204 No Content.
func (h *CommandHandler) DeleteHandler(c *gin.Context) {
	if err := h.useCase.Delete(c.Request.Context(), c.Param("commandId")); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
