// Package usecase implements the two rewrite phases: author-time
// canonicalization of placeholder text and execution-time resolution of
// canonical references.
package usecase

import (
	"context"
)

// CommandDirectory resolves command labels to canonical ids at
// canonicalization time.
type CommandDirectory interface {
	// ResolveLabel returns the canonical id of the command carrying the label.
	ResolveLabel(ctx context.Context, label string) (string, error)
}

// VariableSource supplies the active named-environment's variable map, used
// as a fallback when a variable reference is not found in the store.
type VariableSource interface {
	// Lookup returns the value for a plain variable name.
	Lookup(ctx context.Context, name string) (string, bool)
}

// Canonicalizer rewrites author-facing placeholder syntax into canonical form
// before persistence.
type Canonicalizer interface {
	// Canonicalize rewrites all placeholders in text. On error the original
	// text is returned unchanged together with a *domain.SpanError pointing
	// at the offending token; no partial rewrite is ever returned and any
	// store writes made by earlier rules are rolled back.
	Canonicalize(ctx context.Context, text string) (string, error)
}

// Resolver replaces canonical references with live values at execution time.
type Resolver interface {
	// Resolve substitutes chain, variable, and secure references in that
	// order. Unresolved references are left verbatim; chain execution
	// failures are substituted inline as diagnostic text.
	Resolve(ctx context.Context, text string) (string, error)
}
