package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	execDomain "github.com/allisson/refvault/internal/exec/domain"
	execUsecase "github.com/allisson/refvault/internal/exec/usecase"
	rewriteService "github.com/allisson/refvault/internal/rewrite/service"
)

// RunPutCommand registers a command definition under a canonical id and prints
// the chain reference token that invokes it.
func RunPutCommand(
	ctx context.Context,
	commandUseCase execUsecase.CommandUseCase,
	logger *slog.Logger,
	w io.Writer,
	commandID string,
	kind string,
	body string,
	label string,
	format string,
) error {
	var labelPtr *string
	if label != "" {
		labelPtr = &label
	}

	command, err := commandUseCase.Create(ctx, commandID, execDomain.CommandKind(kind), body, labelPtr)
	if err != nil {
		return fmt.Errorf("failed to store command: %w", err)
	}

	token := rewriteService.CanonicalChain(command.CommandID)
	if format == "json" {
		if err := writeJSON(w, map[string]any{"command_id": command.CommandID, "token": token}); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(w, "Stored command %s, reference token: %s\n", command.CommandID, token)
	}

	logger.Info("command stored",
		slog.String("command_id", command.CommandID),
		slog.String("kind", kind),
	)
	return nil
}
