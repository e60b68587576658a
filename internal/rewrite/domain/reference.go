// Package domain defines the reference model for the placeholder grammar:
// the parse-time reference kinds, text spans, and the structured errors the
// canonicalizer reports back to the author.
package domain

import "fmt"

// Kind identifies what a reference points at.
type Kind string

const (
	// SecureRef points at a sealed secure value.
	SecureRef Kind = "secure"
	// VarRef points at a plaintext variable.
	VarRef Kind = "var"
	// IdRef points at a command by its canonical id.
	IdRef Kind = "id"
	// CommandChainRef points at the live output of another command,
	// optionally narrowed by a JSON path.
	CommandChainRef Kind = "command"
)

// Span is a half-open byte range [Start, End) into the authored text.
type Span struct {
	Start int
	End   int
}

// Reference is one parsed occurrence of a placeholder. It is never persisted;
// canonical text carries only refIds.
type Reference struct {
	Kind   Kind
	Target string
	Path   string
	Span   Span
}

// Token returns the exact source text the reference was parsed from.
func (r Reference) Token(text string) string {
	if r.Span.Start < 0 || r.Span.End > len(text) || r.Span.Start >= r.Span.End {
		return ""
	}
	return text[r.Span.Start:r.Span.End]
}

// SpanError reports a canonicalization failure together with the offending
// span, so the caller can point the author at the exact token.
type SpanError struct {
	Err   error
	Span  Span
	Token string
}

// Error implements the error interface.
func (e *SpanError) Error() string {
	return fmt.Sprintf("%v at [%d:%d] %q", e.Err, e.Span.Start, e.Span.End, e.Token)
}

// Unwrap returns the underlying error.
func (e *SpanError) Unwrap() error {
	return e.Err
}

// NewSpanError creates a SpanError for the given token span.
func NewSpanError(err error, span Span, token string) *SpanError {
	return &SpanError{Err: err, Span: span, Token: token}
}
