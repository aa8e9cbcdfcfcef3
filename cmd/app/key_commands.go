package main

import (
	"context"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/stakwork/fieldcrypt/cmd/app/commands"
	"github.com/stakwork/fieldcrypt/internal/app"
	"github.com/stakwork/fieldcrypt/internal/config"
)

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-key",
			Usage: "Generate a new 32-byte encryption key",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "id",
					Aliases: []string{"i"},
					Value:   "",
					Usage:   "Key ID (defaults to key-YYYYMMDD)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunCreateKey(commands.DefaultIO().Writer, cmd.String("id"), time.Now())
			},
		},
		{
			Name:  "encrypt",
			Usage: "Encrypt a value and print the envelope JSON",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "field",
					Aliases:  []string{"f"},
					Required: true,
					Usage:    "Field name used to attribute errors",
				},
				&cli.StringFlag{
					Name:    "key-id",
					Aliases: []string{"k"},
					Usage:   "Registered key ID to encrypt with (defaults to the active key)",
				},
				&cli.StringFlag{
					Name:    "value",
					Aliases: []string{"v"},
					Usage:   "Plaintext to encrypt (read from stdin when omitted)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				svc, err := container.EncryptionService()
				if err != nil {
					return err
				}

				return commands.RunEncrypt(
					svc,
					commands.DefaultIO(),
					cmd.String("field"),
					cmd.String("key-id"),
					optionalString(cmd, "value"),
				)
			},
		},
		{
			Name:  "decrypt",
			Usage: "Decrypt a stored value and print the plaintext",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "field",
					Aliases:  []string{"f"},
					Required: true,
					Usage:    "Field name used to attribute errors",
				},
				&cli.StringFlag{
					Name:    "value",
					Aliases: []string{"v"},
					Usage:   "Envelope JSON or legacy plaintext (read from stdin when omitted)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				svc, err := container.EncryptionService()
				if err != nil {
					return err
				}

				return commands.RunDecrypt(svc, commands.DefaultIO(), cmd.String("field"), optionalString(cmd, "value"))
			},
		},
		{
			Name:  "hash-token",
			Usage: "Produce AUTH_TOKEN_HASH for an API token, generating one when none is given",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "token",
					Aliases: []string{"t"},
					Usage:   "Existing token to hash",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				tokens, err := container.TokenService()
				if err != nil {
					return err
				}

				return commands.RunHashToken(tokens, commands.DefaultIO().Writer, cmd.String("token"))
			},
		},
	}
}

// optionalString returns nil when the flag was not set on the command line,
// so an explicit empty value stays distinguishable from a missing one.
func optionalString(cmd *cli.Command, name string) *string {
	if !cmd.IsSet(name) {
		return nil
	}
	v := cmd.String(name)
	return &v
}
