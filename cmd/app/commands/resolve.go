package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	rewriteUsecase "github.com/allisson/refvault/internal/rewrite/usecase"
)

// RunResolve substitutes chain, variable, and secure references in canonical
// text and prints the resolved result. The output may contain secret material,
// so it goes to the writer only, never to the log.
func RunResolve(
	ctx context.Context,
	resolver rewriteUsecase.Resolver,
	logger *slog.Logger,
	w io.Writer,
	text string,
) error {
	if text == "" {
		return fmt.Errorf("text must not be empty")
	}

	result, err := resolver.Resolve(ctx, text)
	if err != nil {
		return fmt.Errorf("failed to resolve text: %w", err)
	}

	fmt.Fprintln(w, result)

	logger.Info("text resolved", slog.Int("length", len(result)))
	return nil
}
