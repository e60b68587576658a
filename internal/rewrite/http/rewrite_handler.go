// Package http provides HTTP handlers for the two rewrite phases:
// author-time canonicalization and execution-time resolution.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/refvault/internal/errors"
	"github.com/allisson/refvault/internal/httputil"
	rewriteDomain "github.com/allisson/refvault/internal/rewrite/domain"
	"github.com/allisson/refvault/internal/rewrite/http/dto"
	rewriteUsecase "github.com/allisson/refvault/internal/rewrite/usecase"
	appvalidation "github.com/allisson/refvault/internal/validation"
)

// RewriteHandler handles HTTP requests for text rewriting.
type RewriteHandler struct {
	canonicalizer rewriteUsecase.Canonicalizer
	resolver      rewriteUsecase.Resolver
	logger        *slog.Logger
}

// NewRewriteHandler creates a new rewrite handler.
func NewRewriteHandler(
	canonicalizer rewriteUsecase.Canonicalizer,
	resolver rewriteUsecase.Resolver,
	logger *slog.Logger,
) *RewriteHandler {
	return &RewriteHandler{
		canonicalizer: canonicalizer,
		resolver:      resolver,
		logger:        logger,
	}
}

// CanonicalizeHandler rewrites author-facing placeholders into canonical form.
// POST /v1/canonicalize
// Returns 200 OK with the rewritten text, or 422 with the offending span when
// any placeholder fails. On failure the text is not partially rewritten and
// store writes made by earlier rules are rolled back.
func (h *RewriteHandler) CanonicalizeHandler(c *gin.Context) {
	var req dto.CanonicalizeRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, appvalidation.WrapValidationError(err), h.logger)
		return
	}

	text, err := h.canonicalizer.Canonicalize(c.Request.Context(), req.Text)
	if err != nil {
		var spanErr *rewriteDomain.SpanError
		if apperrors.As(err, &spanErr) {
			h.logger.Warn("canonicalization failed",
				slog.String("token", spanErr.Token),
				slog.Int("start", spanErr.Span.Start),
				slog.Int("end", spanErr.Span.End),
			)
			c.JSON(http.StatusUnprocessableEntity, dto.MapSpanErrorToResponse(spanErr))
			return
		}

		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.RewriteResponse{Text: text})
}

// ResolveHandler substitutes canonical references with live values.
// POST /v1/resolve
// Returns 200 OK. Unresolved references stay verbatim in the output and chain
// execution failures appear inline, so this endpoint only errors on malformed
// requests or resolution deadline/backpressure failures.
func (h *RewriteHandler) ResolveHandler(c *gin.Context) {
	var req dto.ResolveRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, appvalidation.WrapValidationError(err), h.logger)
		return
	}

	text, err := h.resolver.Resolve(c.Request.Context(), req.Text)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.RewriteResponse{Text: text})
}
