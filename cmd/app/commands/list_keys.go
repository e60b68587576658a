package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	keysUsecase "github.com/allisson/refvault/internal/keys/usecase"
)

// RunListKeys prints metadata for every key version, newest first.
// Key material is never printed, only the derived fingerprint.
func RunListKeys(
	ctx context.Context,
	keyUseCase keysUsecase.KeyUseCase,
	logger *slog.Logger,
	w io.Writer,
	format string,
) error {
	keyVersions, err := keyUseCase.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list key versions: %w", err)
	}

	if format == "json" {
		items := make([]map[string]any, 0, len(keyVersions))
		for _, kv := range keyVersions {
			items = append(items, map[string]any{
				"version":     kv.Version,
				"fingerprint": kv.Fingerprint,
				"is_active":   kv.IsActive,
				"created_at":  kv.CreatedAt.Format(time.RFC3339),
			})
		}
		if err := writeJSON(w, items); err != nil {
			return err
		}
	} else {
		for _, kv := range keyVersions {
			marker := " "
			if kv.IsActive {
				marker = "*"
			}
			fmt.Fprintf(
				w,
				"%s version=%d fingerprint=%s created_at=%s\n",
				marker,
				kv.Version,
				kv.Fingerprint,
				kv.CreatedAt.Format(time.RFC3339),
			)
		}
	}

	logger.Info("listed key versions", slog.Int("count", len(keyVersions)))
	return nil
}
