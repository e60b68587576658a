package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	rewriteService "github.com/allisson/refvault/internal/rewrite/service"
	variablesDomain "github.com/allisson/refvault/internal/variables/domain"
	variablesUsecase "github.com/allisson/refvault/internal/variables/usecase"
)

// RunPutVariable stores a plaintext variable and prints the canonical
// reference token. Exactly one of refID and label must be provided: refID
// upserts an addressed variable, label creates a fresh one.
func RunPutVariable(
	ctx context.Context,
	variableUseCase variablesUsecase.VariableUseCase,
	logger *slog.Logger,
	w io.Writer,
	refID string,
	label string,
	value string,
	format string,
) error {
	if (refID == "") == (label == "") {
		return fmt.Errorf("exactly one of --ref-id and --label must be provided")
	}

	var (
		variable *variablesDomain.Variable
		err      error
	)
	if refID != "" {
		variable, err = variableUseCase.Set(ctx, refID, value)
	} else {
		variable, err = variableUseCase.SetWithLabel(ctx, value, label)
	}
	if err != nil {
		return fmt.Errorf("failed to store variable: %w", err)
	}

	token := rewriteService.CanonicalVar(variable.RefID)
	if format == "json" {
		if err := writeJSON(w, map[string]any{"ref_id": variable.RefID, "token": token}); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(w, "Stored variable %s, reference token: %s\n", variable.RefID, token)
	}

	logger.Info("variable stored", slog.String("ref_id", variable.RefID))
	return nil
}
