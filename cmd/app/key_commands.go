package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/refvault/cmd/app/commands"
	"github.com/allisson/refvault/internal/app"
	"github.com/allisson/refvault/internal/config"
)

func getKeyCommands() []*cli.Command {
	formatFlag := func() *cli.StringFlag {
		return &cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Value:   "text",
			Usage:   "Output format: 'text' or 'json'",
		}
	}

	return []*cli.Command{
		{
			Name:  "rotate-key",
			Usage: "Generate new key material and make it the active version",
			Flags: []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				keyUseCase, err := container.KeyUseCase()
				if err != nil {
					return err
				}

				return commands.RunRotateKey(
					ctx,
					keyUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "list-keys",
			Usage: "List all key versions with their fingerprints",
			Flags: []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				keyUseCase, err := container.KeyUseCase()
				if err != nil {
					return err
				}

				return commands.RunListKeys(
					ctx,
					keyUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "rewrap-values",
			Usage: "Re-seal all secure values under the active key version",
			Flags: []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				secureValueUseCase, err := container.SecureValueUseCase()
				if err != nil {
					return err
				}

				return commands.RunRewrapValues(
					ctx,
					secureValueUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("format"),
				)
			},
		},
	}
}
