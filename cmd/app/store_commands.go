package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/refvault/cmd/app/commands"
	"github.com/allisson/refvault/internal/app"
	"github.com/allisson/refvault/internal/config"
)

func getStoreCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "put-secret",
			Usage: "Seal a value under the active key and print its reference token",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "value",
					Aliases:  []string{"v"},
					Required: true,
					Usage:    "Plaintext value to seal",
				},
				&cli.StringFlag{
					Name:    "label",
					Aliases: []string{"l"},
					Usage:   "Optional unique human-readable label",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				secureValueUseCase, err := container.SecureValueUseCase()
				if err != nil {
					return err
				}

				return commands.RunPutSecret(
					ctx,
					secureValueUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("value"),
					cmd.String("label"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "put-variable",
			Usage: "Store a plaintext variable and print its reference token",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "value",
					Aliases:  []string{"v"},
					Required: true,
					Usage:    "Value to store",
				},
				&cli.StringFlag{
					Name:    "ref-id",
					Aliases: []string{"r"},
					Usage:   "Existing reference id to upsert (mutually exclusive with --label)",
				},
				&cli.StringFlag{
					Name:    "label",
					Aliases: []string{"l"},
					Usage:   "Unique label for a new variable (mutually exclusive with --ref-id)",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				variableUseCase, err := container.VariableUseCase()
				if err != nil {
					return err
				}

				return commands.RunPutVariable(
					ctx,
					variableUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("ref-id"),
					cmd.String("label"),
					cmd.String("value"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "put-command",
			Usage: "Register a command definition and print its chain reference token",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "id",
					Aliases:  []string{"i"},
					Required: true,
					Usage:    "Canonical command id (alphanumeric)",
				},
				&cli.StringFlag{
					Name:     "kind",
					Aliases:  []string{"k"},
					Required: true,
					Usage:    "Command kind: 'shell' or 'static'",
				},
				&cli.StringFlag{
					Name:     "body",
					Aliases:  []string{"b"},
					Required: true,
					Usage:    "Shell script or static text",
				},
				&cli.StringFlag{
					Name:    "label",
					Aliases: []string{"l"},
					Usage:   "Optional unique human-readable label",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				commandUseCase, err := container.CommandUseCase()
				if err != nil {
					return err
				}

				return commands.RunPutCommand(
					ctx,
					commandUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("id"),
					cmd.String("kind"),
					cmd.String("body"),
					cmd.String("label"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "list-commands",
			Usage: "List all registered command definitions",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				commandUseCase, err := container.CommandUseCase()
				if err != nil {
					return err
				}

				return commands.RunListCommands(
					ctx,
					commandUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("format"),
				)
			},
		},
	}
}
