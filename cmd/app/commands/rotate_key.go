package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	keysUsecase "github.com/allisson/refvault/internal/keys/usecase"
)

// RunRotateKey generates new key material and marks it as the active version.
// Existing values stay readable under their old versions and migrate to the new
// key lazily on read, or eagerly via the rewrap-values command.
func RunRotateKey(
	ctx context.Context,
	keyUseCase keysUsecase.KeyUseCase,
	logger *slog.Logger,
	w io.Writer,
	format string,
) error {
	logger.Info("rotating key")

	version, err := keyUseCase.Rotate(ctx)
	if err != nil {
		return fmt.Errorf("failed to rotate key: %w", err)
	}

	if format == "json" {
		if err := writeJSON(w, map[string]any{"version": version}); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(w, "Key rotated, new active version: %d\n", version)
	}

	logger.Info("key rotated successfully", slog.Uint64("version", uint64(version)))
	return nil
}
