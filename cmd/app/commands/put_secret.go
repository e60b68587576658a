package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	cryptoDomain "github.com/allisson/refvault/internal/crypto/domain"
	rewriteService "github.com/allisson/refvault/internal/rewrite/service"
	valuesDomain "github.com/allisson/refvault/internal/values/domain"
	valuesUsecase "github.com/allisson/refvault/internal/values/usecase"
)

// RunPutSecret seals a value under the active key and prints the canonical
// secure token that references it.
func RunPutSecret(
	ctx context.Context,
	secureValueUseCase valuesUsecase.SecureValueUseCase,
	logger *slog.Logger,
	w io.Writer,
	value string,
	label string,
	format string,
) error {
	if value == "" {
		return fmt.Errorf("value must not be empty")
	}

	plaintext := []byte(value)
	defer cryptoDomain.Zero(plaintext)

	var (
		stored *valuesDomain.SecureValue
		err    error
	)
	if label == "" {
		stored, err = secureValueUseCase.Encrypt(ctx, plaintext)
	} else {
		stored, err = secureValueUseCase.EncryptWithLabel(ctx, plaintext, label)
	}
	if err != nil {
		return fmt.Errorf("failed to store secret: %w", err)
	}

	refID := stored.RefID
	token := rewriteService.SecureToken(refID)
	if format == "json" {
		if err := writeJSON(w, map[string]any{"ref_id": refID, "token": token}); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(w, "Stored secret %s, reference token: %s\n", refID, token)
	}

	logger.Info("secret stored", slog.String("ref_id", refID))
	return nil
}
