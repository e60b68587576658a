package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	execUsecase "github.com/allisson/refvault/internal/exec/usecase"
)

// RunListCommands prints every registered command definition, newest first.
func RunListCommands(
	ctx context.Context,
	commandUseCase execUsecase.CommandUseCase,
	logger *slog.Logger,
	w io.Writer,
	format string,
) error {
	cmds, err := commandUseCase.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list commands: %w", err)
	}

	if format == "json" {
		items := make([]map[string]any, 0, len(cmds))
		for _, cmd := range cmds {
			item := map[string]any{
				"command_id": cmd.CommandID,
				"kind":       string(cmd.Kind),
				"created_at": cmd.CreatedAt.Format(time.RFC3339),
			}
			if cmd.Label != nil {
				item["label"] = *cmd.Label
			}
			items = append(items, item)
		}
		if err := writeJSON(w, items); err != nil {
			return err
		}
	} else {
		for _, cmd := range cmds {
			label := "-"
			if cmd.Label != nil {
				label = *cmd.Label
			}
			fmt.Fprintf(
				w,
				"command_id=%s kind=%s label=%s created_at=%s\n",
				cmd.CommandID,
				cmd.Kind,
				label,
				cmd.CreatedAt.Format(time.RFC3339),
			)
		}
	}

	logger.Info("listed commands", slog.Int("count", len(cmds)))
	return nil
}
