package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	valuesUsecase "github.com/allisson/refvault/internal/values/usecase"
)

// RunRewrapValues re-seals every secure value that is behind the active key
// version. Useful after rotate-key when waiting for lazy migration on read is
// not acceptable.
func RunRewrapValues(
	ctx context.Context,
	secureValueUseCase valuesUsecase.SecureValueUseCase,
	logger *slog.Logger,
	w io.Writer,
	format string,
) error {
	logger.Info("starting value rewrap process")

	migrated, err := secureValueUseCase.RotateAllToCurrentKey(ctx)
	if err != nil {
		return fmt.Errorf("failed to rewrap values: %w", err)
	}

	if format == "json" {
		if err := writeJSON(w, map[string]any{"migrated": migrated}); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(w, "Rewrapped %d value(s) under the active key\n", migrated)
	}

	logger.Info("value rewrap process completed", slog.Int("migrated", migrated))
	return nil
}
