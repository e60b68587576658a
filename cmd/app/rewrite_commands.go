package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/refvault/cmd/app/commands"
	"github.com/allisson/refvault/internal/app"
	"github.com/allisson/refvault/internal/config"
)

func getRewriteCommands() []*cli.Command {
	textFlag := func() *cli.StringFlag {
		return &cli.StringFlag{
			Name:     "text",
			Aliases:  []string{"t"},
			Required: true,
			Usage:    "Input text",
		}
	}

	return []*cli.Command{
		{
			Name:  "canonicalize",
			Usage: "Rewrite author-facing placeholders into canonical form",
			Flags: []cli.Flag{textFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				canonicalizer, err := container.Canonicalizer()
				if err != nil {
					return err
				}

				return commands.RunCanonicalize(
					ctx,
					canonicalizer,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("text"),
				)
			},
		},
		{
			Name:  "resolve",
			Usage: "Substitute chain, variable, and secure references in canonical text",
			Flags: []cli.Flag{textFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				resolver, err := container.Resolver()
				if err != nil {
					return err
				}

				return commands.RunResolve(
					ctx,
					resolver,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("text"),
				)
			},
		},
	}
}
