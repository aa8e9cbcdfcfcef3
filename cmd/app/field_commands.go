package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/stakwork/fieldcrypt/cmd/app/commands"
	"github.com/stakwork/fieldcrypt/internal/app"
	"github.com/stakwork/fieldcrypt/internal/config"
)

func getFieldCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "rotate-fields",
			Usage: "Re-encrypt stored fields with the active key",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "batch-size",
					Aliases: []string{"b"},
					Usage:   "Fields re-encrypted per transaction (defaults to ROTATION_BATCH_SIZE)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				svc, err := container.EncryptionService()
				if err != nil {
					return err
				}

				fieldUseCase, err := container.FieldUseCase()
				if err != nil {
					return err
				}

				batchSize := int(cmd.Int("batch-size"))
				if batchSize == 0 {
					batchSize = cfg.RotationBatchSize
				}

				return commands.RunRotateFields(
					ctx,
					fieldUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					svc.ActiveKeyID(),
					batchSize,
				)
			},
		},
	}
}
