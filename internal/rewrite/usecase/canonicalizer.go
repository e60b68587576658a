package usecase

import (
	"context"

	"github.com/allisson/refvault/internal/database"
	apperrors "github.com/allisson/refvault/internal/errors"
	rewriteDomain "github.com/allisson/refvault/internal/rewrite/domain"
	rewriteService "github.com/allisson/refvault/internal/rewrite/service"
	valuesUsecase "github.com/allisson/refvault/internal/values/usecase"
	variablesUsecase "github.com/allisson/refvault/internal/variables/usecase"
)

// canonicalizer implements Canonicalizer.
//
// The eight author-time rules run in priority order; each rule scans the
// current state of the string and rewrites its matches right-to-left so that
// replacements never invalidate the offsets of matches not yet processed.
// The whole pass runs inside one transaction: a failing rule aborts the field
// and rolls back the variables and secure values created by earlier rules.
type canonicalizer struct {
	txManager database.TxManager
	values    valuesUsecase.SecureValueUseCase
	variables variablesUsecase.VariableUseCase
	commands  CommandDirectory
}

// NewCanonicalizer creates a new Canonicalizer.
func NewCanonicalizer(
	txManager database.TxManager,
	values valuesUsecase.SecureValueUseCase,
	variables variablesUsecase.VariableUseCase,
	commands CommandDirectory,
) Canonicalizer {
	return &canonicalizer{
		txManager: txManager,
		values:    values,
		variables: variables,
		commands:  commands,
	}
}

// Canonicalize rewrites all placeholders in text into canonical form.
func (c *canonicalizer) Canonicalize(ctx context.Context, text string) (string, error) {
	result := text

	err := c.txManager.WithTx(ctx, func(txCtx context.Context) error {
		out, err := c.apply(txCtx, text)
		if err != nil {
			return err
		}
		result = out
		return nil
	})
	if err != nil {
		return text, err
	}

	return result, nil
}

type rewriteRule func(ctx context.Context, text string) (string, error)

func (c *canonicalizer) apply(ctx context.Context, text string) (string, error) {
	rules := []rewriteRule{
		c.rewriteCommandLabels,   // {id#label} / [id#label]
		c.rewriteVariableCreates, // {var#label:value} / [var#label:value]
		c.rewriteVariableLabels,  // {var#label} / [var#label]
		c.rewriteRawIDs,          // {id:rawId} / [id:rawId]
		c.rewriteRawVars,         // {var:rawId} / [var:rawId]
		c.rewriteSecureCreates,   // {secure#label:plaintext}
		c.rewriteSecureLabels,    // {secure#label}
		c.rewriteSecureAnonymous, // {secure:plaintext}
	}

	var err error
	for _, rule := range rules {
		text, err = rule(ctx, text)
		if err != nil {
			return "", err
		}
	}

	return text, nil
}

func (c *canonicalizer) rewriteCommandLabels(ctx context.Context, text string) (string, error) {
	matches := rewriteService.FindLabeled(text, "id", true)

	for i := len(matches) - 1; i >= 0; i-- {
		match := matches[i]

		commandID, err := c.commands.ResolveLabel(ctx, match.Label)
		if err != nil {
			return "", spanError(err, match, text)
		}

		text = splice(text, match.Span, rewriteService.CanonicalID(commandID))
	}

	return text, nil
}

func (c *canonicalizer) rewriteVariableCreates(ctx context.Context, text string) (string, error) {
	matches := rewriteService.FindLabeledWithValue(text, "var", true)

	for i := len(matches) - 1; i >= 0; i-- {
		match := matches[i]

		variable, err := c.variables.SetWithLabel(ctx, match.Value, match.Label)
		if err != nil {
			return "", spanError(err, match, text)
		}

		text = splice(text, match.Span, rewriteService.CanonicalVar(variable.RefID))
	}

	return text, nil
}

func (c *canonicalizer) rewriteVariableLabels(ctx context.Context, text string) (string, error) {
	matches := rewriteService.FindLabeled(text, "var", true)

	for i := len(matches) - 1; i >= 0; i-- {
		match := matches[i]

		refID, err := c.variables.ResolveLabel(ctx, match.Label)
		if err != nil {
			return "", spanError(err, match, text)
		}

		text = splice(text, match.Span, rewriteService.CanonicalVar(refID))
	}

	return text, nil
}

// rewriteRawIDs is a pass-through: the id may refer to something created
// later or a deliberately external id, so no existence check is made.
func (c *canonicalizer) rewriteRawIDs(_ context.Context, text string) (string, error) {
	matches := rewriteService.FindRaw(text, "id", true)

	for i := len(matches) - 1; i >= 0; i-- {
		match := matches[i]
		text = splice(text, match.Span, rewriteService.CanonicalID(match.Value))
	}

	return text, nil
}

func (c *canonicalizer) rewriteRawVars(_ context.Context, text string) (string, error) {
	matches := rewriteService.FindRaw(text, "var", true)

	for i := len(matches) - 1; i >= 0; i-- {
		match := matches[i]
		text = splice(text, match.Span, rewriteService.CanonicalVar(match.Value))
	}

	return text, nil
}

func (c *canonicalizer) rewriteSecureCreates(ctx context.Context, text string) (string, error) {
	matches := rewriteService.FindLabeledWithValue(text, "secure", false)

	for i := len(matches) - 1; i >= 0; i-- {
		match := matches[i]

		value, err := c.values.EncryptWithLabel(ctx, []byte(match.Value), match.Label)
		if err != nil {
			return "", spanError(err, match, text)
		}

		text = splice(text, match.Span, rewriteService.SecureToken(value.RefID))
	}

	return text, nil
}

func (c *canonicalizer) rewriteSecureLabels(ctx context.Context, text string) (string, error) {
	matches := rewriteService.FindLabeled(text, "secure", false)

	for i := len(matches) - 1; i >= 0; i-- {
		match := matches[i]

		refID, err := c.values.ResolveLabel(ctx, match.Label)
		if err != nil {
			return "", spanError(err, match, text)
		}

		text = splice(text, match.Span, rewriteService.SecureToken(refID))
	}

	return text, nil
}

func (c *canonicalizer) rewriteSecureAnonymous(ctx context.Context, text string) (string, error) {
	matches := rewriteService.FindRaw(text, "secure", false)

	for i := len(matches) - 1; i >= 0; i-- {
		match := matches[i]

		value, err := c.values.Encrypt(ctx, []byte(match.Value))
		if err != nil {
			return "", spanError(err, match, text)
		}

		text = splice(text, match.Span, rewriteService.SecureToken(value.RefID))
	}

	return text, nil
}

// spanError wraps a failure with the offending span, translating plain
// not-found lookups into the author-facing label error.
func spanError(err error, match rewriteService.PlaceholderMatch, text string) error {
	if apperrors.Is(err, apperrors.ErrNotFound) {
		err = rewriteDomain.ErrLabelNotFound
	}
	return rewriteDomain.NewSpanError(err, match.Span, match.Token(text))
}

// splice replaces the span of text with the replacement.
func splice(text string, span rewriteDomain.Span, replacement string) string {
	return text[:span.Start] + replacement + text[span.End:]
}
