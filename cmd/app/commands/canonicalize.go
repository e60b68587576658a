package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	apperrors "github.com/allisson/refvault/internal/errors"
	rewriteDomain "github.com/allisson/refvault/internal/rewrite/domain"
	rewriteUsecase "github.com/allisson/refvault/internal/rewrite/usecase"
)

// RunCanonicalize rewrites author-facing placeholders in text into canonical
// form and prints the result. On a placeholder failure the offending token and
// its position are reported and the input is left untouched.
func RunCanonicalize(
	ctx context.Context,
	canonicalizer rewriteUsecase.Canonicalizer,
	logger *slog.Logger,
	w io.Writer,
	text string,
) error {
	if text == "" {
		return fmt.Errorf("text must not be empty")
	}

	result, err := canonicalizer.Canonicalize(ctx, text)
	if err != nil {
		var spanErr *rewriteDomain.SpanError
		if apperrors.As(err, &spanErr) {
			return fmt.Errorf(
				"failed to canonicalize token %q at position %d: %w",
				spanErr.Token,
				spanErr.Span.Start,
				err,
			)
		}
		return fmt.Errorf("failed to canonicalize text: %w", err)
	}

	fmt.Fprintln(w, result)

	logger.Info("text canonicalized", slog.Int("length", len(result)))
	return nil
}
