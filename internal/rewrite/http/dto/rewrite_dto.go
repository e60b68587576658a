// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	rewriteDomain "github.com/allisson/refvault/internal/rewrite/domain"
)

// CanonicalizeRequest contains the author-time text to rewrite.
type CanonicalizeRequest struct {
	Text string `json:"text"`
}

// Validate checks if the canonicalize request is valid.
func (r *CanonicalizeRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Text, validation.Required),
	)
}

// ResolveRequest contains the canonical text to resolve.
type ResolveRequest struct {
	Text string `json:"text"`
}

// Validate checks if the resolve request is valid.
func (r *ResolveRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Text, validation.Required),
	)
}

// RewriteResponse carries rewritten text for both phases.
type RewriteResponse struct {
	Text string `json:"text"`
}

// SpanResponse is the byte range of an offending token.
type SpanResponse struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// CanonicalizeErrorResponse reports a failed canonicalization pass. The span
// and token point at the placeholder that failed; the submitted text was left
// untouched and no store writes were kept.
type CanonicalizeErrorResponse struct {
	Error   string       `json:"error"`
	Message string       `json:"message"`
	Span    SpanResponse `json:"span"`
	Token   string       `json:"token"`
}

// MapSpanErrorToResponse converts a span error to an API error response.
func MapSpanErrorToResponse(spanErr *rewriteDomain.SpanError) CanonicalizeErrorResponse {
	return CanonicalizeErrorResponse{
		Error:   "canonicalize_failed",
		Message: spanErr.Error(),
		Span: SpanResponse{
			Start: spanErr.Span.Start,
			End:   spanErr.Span.End,
		},
		Token: spanErr.Token,
	}
}
