package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/stakwork/fieldcrypt/cmd/app/commands"
	"github.com/stakwork/fieldcrypt/internal/app"
	"github.com/stakwork/fieldcrypt/internal/config"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the HTTP server",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "migrate",
			Usage: "Run database migrations",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				db, err := container.DB()
				if err != nil {
					return err
				}

				return commands.RunMigrations(db, container.Logger(), cfg.DBDriver)
			},
		},
	}
}
