package cli

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/grafana-inviter/pkg/cli/config"
	"github.com/secmon-lab/grafana-inviter/pkg/utils/apperr"
	"github.com/urfave/cli/v3"
)

const usageText = `grafana-inviter [global options] [command [command options]]

LDAP and Grafana flags belong to the command, e.g.
  grafana-inviter invite --ldap-url URL --grafana-url URL

Without a command, invite runs with settings from --config and the environment.`

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	if err := loadDotEnv(".env"); err != nil {
		return err
	}

	app := newApp(os.Stdout, config.ReadSecretFromTerminal)
	if err := app.Run(ctx, args); err != nil {
		wrapped := goerr.Wrap(err, "CLI execution failed")
		apperr.Handle(ctxlog.With(ctx, slog.Default()), wrapped)
		return wrapped
	}

	return nil
}

func newApp(stdout io.Writer, readSecret config.SecretReader) *cli.Command {
	var (
		loggerCfg config.Logger
		appCfg    config.App
	)

	return &cli.Command{
		Name:           "grafana-inviter",
		Usage:          "Invite accounts fetched from LDAP to a Grafana organization",
		UsageText:      usageText,
		Version:        "0.1.0",
		Flags:          joinFlags(loggerCfg.Flags(), appCfg.FileFlags()),
		Writer:         stdout,
		DefaultCommand: "invite",
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, err := loggerCfg.Configure()
			if err != nil {
				return nil, err
			}

			logger = logger.With(slog.String("run_id", uuid.NewString()))
			slog.SetDefault(logger)
			return ctxlog.With(ctx, logger), nil
		},
		Commands: []*cli.Command{
			cmdInvite(&appCfg, stdout, readSecret),
			cmdLinks(&appCfg, stdout, readSecret),
			cmdPending(&appCfg, stdout, readSecret),
			cmdExport(&appCfg, stdout, readSecret),
		},
	}
}

// loadDotEnv exports variables from a dotenv file so they can feed flag
// sources. A missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return goerr.Wrap(err, "failed to load dotenv file", goerr.V("path", path))
	}
	return nil
}
